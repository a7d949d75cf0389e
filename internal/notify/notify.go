package notify

import (
	"context"
	"log"
)

// Message is one outbound notification about a booking event.
type Message struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

// Sender delivers notifications. Implementations can be swapped (SendGrid,
// log) without changing callers. Delivery is fire-and-forget from the
// booking flow's perspective; a failed send never rolls a booking back.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender writes notifications to the process log. It stands in when no
// email provider is configured (dev, tests).
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) error {
	log.Printf("notify to=%s subject=%q", msg.To, msg.Subject)
	return nil
}
