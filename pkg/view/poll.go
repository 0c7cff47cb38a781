package view

import (
	"context"
	"sync"
	"time"
)

// Ticker is the part of time.Ticker the poller uses.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFunc builds a Ticker; tests swap in a manual one.
type TickerFunc func(d time.Duration) Ticker

type stdTicker struct{ t *time.Ticker }

func (s stdTicker) C() <-chan time.Time { return s.t.C }
func (s stdTicker) Stop()               { s.t.Stop() }

func NewStdTicker(d time.Duration) Ticker { return stdTicker{time.NewTicker(d)} }

// Subscription is a running poll loop. Close stops the ticker, cancels
// fetches still in flight and waits for them; it is safe to call more than once.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
	calls  sync.WaitGroup
	once   sync.Once
}

// Subscribe calls fn once per tick until Close or until ctx ends. Each call
// runs on its own goroutine, so a slow call never swallows the next tick.
func Subscribe(ctx context.Context, every time.Duration, newTicker TickerFunc, fn func(context.Context)) *Subscription {
	if newTicker == nil {
		newTicker = NewStdTicker
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &Subscription{cancel: cancel, done: make(chan struct{})}
	t := newTicker(every)
	go func() {
		defer close(s.done)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C():
				if ctx.Err() != nil {
					return
				}
				s.calls.Add(1)
				go func() {
					defer s.calls.Done()
					fn(ctx)
				}()
			}
		}
	}()
	return s
}

func (s *Subscription) Close() {
	s.once.Do(s.cancel)
	<-s.done
	s.calls.Wait()
}
