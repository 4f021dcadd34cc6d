package application

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultPortalRefreshInterval = 60 * time.Second
	DefaultAdminRefreshInterval  = 20 * time.Second
)

// ErrStopRefresh ends the loop when returned by its task. Tasks must not call
// Stop themselves.
var ErrStopRefresh = errors.New("stop refresh loop")

// Refresher runs at most one repeating task at a time. Starting a task under
// a new key replaces the previous loop; starting the running key is a no-op.
type Refresher struct {
	interval time.Duration

	mu   sync.Mutex
	loop *refreshLoop
}

type refreshLoop struct {
	key    string
	cancel context.CancelFunc
	done   chan struct{}
}

func (l *refreshLoop) finished() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

func NewRefresher(interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultPortalRefreshInterval
	}

	return &Refresher{interval: interval}
}

func (r *Refresher) Interval() time.Duration {
	return r.interval
}

func (r *Refresher) Start(ctx context.Context, key string, task func(context.Context) error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loop != nil && r.loop.key == key && !r.loop.finished() {
		return
	}
	r.stopLocked()

	loopCtx, cancel := context.WithCancel(ctx)
	loop := &refreshLoop{key: key, cancel: cancel, done: make(chan struct{})}
	r.loop = loop

	go r.run(loopCtx, loop, task)
}

// Stop cancels the running loop and waits for it to exit.
func (r *Refresher) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopLocked()
}

// Running returns the key of the active loop.
func (r *Refresher) Running() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loop == nil || r.loop.finished() {
		return "", false
	}
	return r.loop.key, true
}

func (r *Refresher) stopLocked() {
	if r.loop == nil {
		return
	}

	r.loop.cancel()
	<-r.loop.done
	r.loop = nil
}

func (r *Refresher) run(ctx context.Context, loop *refreshLoop, task func(context.Context) error) {
	defer close(loop.done)
	defer loop.cancel()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		err := task(ctx)
		switch {
		case err == nil:
		case errors.Is(err, ErrStopRefresh):
			log.WithField("loop", loop.key).Info("refresh loop stopped by task")
			return
		case ctx.Err() != nil:
			return
		default:
			log.WithError(err).WithField("loop", loop.key).Warn("refresh failed, keeping current data")
		}
	}
}
