// Package email sends transactional mail (welcome notes, payment reminders)
// through an external provider. Delivery guarantees are the provider's
// problem; callers treat a failed send as non-fatal.
package email

import (
	"context"
	"time"
)

// SendRequest contains the data needed to send one email.
type SendRequest struct {
	To      []string
	From    string // Defaults to the sender's configured from address when empty
	Subject string
	HTML    string
}

// SendResult contains the provider's response.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender is the interface for sending emails via an external provider.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
