package email

import (
	"context"
	"fmt"
	"log"
	"time"
)

// NoopSender logs sends without delivering anything. Used in development and
// whenever no API key is configured.
type NoopSender struct{}

// NewNoopSender creates a new NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send logs the email but does not deliver it.
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	log.Printf("INFO: noop email send (to=%v subject=%q)", req.To, req.Subject)
	return SendResult{
		MessageID: fmt.Sprintf("noop-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}
