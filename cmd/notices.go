package cmd

import (
	"fmt"
	"io"
	"sync"

	"github.com/bnema/containerdesk/internal/domain"
)

var noticePrefixes = map[domain.NoticeKind]string{
	domain.NoticeSuccess: "✓",
	domain.NoticeError:   "✗",
	domain.NoticeInfo:    "•",
}

// noticeSink prints notices on stderr unless the interactive portal has
// taken them over.
type noticeSink struct {
	mu      sync.Mutex
	out     io.Writer
	forward func(domain.Notice)
}

func (s *noticeSink) Notify(notice domain.Notice) {
	s.mu.Lock()
	forward := s.forward
	out := s.out
	s.mu.Unlock()

	if forward != nil {
		forward(notice)
		return
	}
	if out == nil {
		return
	}

	_, _ = fmt.Fprintln(out, formatNotice(notice))
}

func formatNotice(notice domain.Notice) string {
	prefix, ok := noticePrefixes[notice.Kind]
	if !ok {
		prefix = noticePrefixes[domain.NoticeInfo]
	}
	return prefix + " " + notice.Message
}

func (s *noticeSink) setOutput(out io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.out = out
}

func (s *noticeSink) forwardTo(fn func(domain.Notice)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forward = fn
}

// redirect forwards notices to fn until the returned func restores the
// previous target.
func (s *noticeSink) redirect(fn func(domain.Notice)) func() {
	s.mu.Lock()
	previous := s.forward
	s.forward = fn
	s.mu.Unlock()

	return func() { s.forwardTo(previous) }
}
