package frameloop

import (
	"context"
	"sync"
	"time"
)

// Ticker calls a function once per frame on its own goroutine until stopped.
type Ticker struct {
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewTicker(frameRate int) *Ticker {
	return &Ticker{interval: Interval(frameRate)}
}

// Start begins calling fn every frame until ctx is done or Stop is called.
// fn returns false to stop the ticker from inside a frame. Starting a running
// ticker restarts it.
func (t *Ticker) Start(ctx context.Context, fn func(now time.Time) bool) {
	t.Stop()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	t.mu.Lock()
	t.cancel, t.done = cancel, done
	t.mu.Unlock()

	go func() {
		defer close(done)
		defer cancel()
		tk := time.NewTicker(t.interval)
		defer tk.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-tk.C:
				// A stop that raced the tick wins.
				if ctx.Err() != nil {
					return
				}
				if !fn(now) {
					return
				}
			}
		}
	}()
}

// Stop cancels the ticker and waits for the frame goroutine to exit, so no
// callback runs after Stop returns. Stop must not be called from fn.
func (t *Ticker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Wait blocks until the ticker's goroutine exits on its own or ctx ends. It
// reports ctx's error whenever ctx has ended, even if the goroutine exited
// first because of it.
func (t *Ticker) Wait(ctx context.Context) error {
	t.mu.Lock()
	done := t.done
	t.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}
