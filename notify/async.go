package notify

import (
	"context"
	"log"
	"sync"
	"time"
)

// Async sends every message on its own goroutine, detached from the caller's
// context. Failures are only logged; Send itself never fails.
type Async struct {
	next    Notifier
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewAsync(next Notifier, timeout time.Duration) *Async {
	return &Async{next: next, timeout: timeout}
}

func (a *Async) Send(ctx context.Context, msg Message) error {
	detached := context.WithoutCancel(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.Printf("⚠️  notification to %s panicked: %v", msg.To, r)
			}
		}()

		sendCtx := detached
		if a.timeout > 0 {
			var cancel context.CancelFunc
			sendCtx, cancel = context.WithTimeout(detached, a.timeout)
			defer cancel()
		}

		if err := a.next.Send(sendCtx, msg); err != nil {
			log.Printf("⚠️  failed to send %q to %s: %v", msg.Subject, msg.To, err)
		}
	}()
	return nil
}

// Wait blocks until every in-flight message has been handled.
func (a *Async) Wait() {
	a.wg.Wait()
}
