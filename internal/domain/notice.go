package domain

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeInfo    NoticeKind = "info"
)

// Notice is a transient, non-blocking message for the user.
type Notice struct {
	Kind    NoticeKind
	Message string
}
