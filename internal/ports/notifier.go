package ports

import "github.com/bnema/containerdesk/internal/domain"

type Notifier interface {
	Notify(notice domain.Notice)
}

type NotifierFunc func(notice domain.Notice)

func (f NotifierFunc) Notify(notice domain.Notice) {
	f(notice)
}
