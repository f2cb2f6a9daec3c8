// Package notify delivers best-effort e-mail notifications. Callers never
// let a notification failure change the outcome of the request that caused it.
package notify

import (
	"context"
	"log"
)

type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// Func adapts a plain function to the Notifier interface.
type Func func(ctx context.Context, msg Message) error

func (f Func) Send(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// LogNotifier only logs messages. It is used when no delivery backend is configured.
type LogNotifier struct{}

func (LogNotifier) Send(ctx context.Context, msg Message) error {
	log.Printf("📧 mail delivery not configured, dropping %q to %s", msg.Subject, msg.To)
	return nil
}
