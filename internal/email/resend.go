package email

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/resend/resend-go/v2"
)

// ResendSender sends emails via the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

// NewResendSender creates a sender with the given API key and default from
// address (e.g. `"FitBySuárez" <coach@fitbysuarez.com>`).
func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

// Send sends a single email via Resend.
func (s *ResendSender) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	from := req.From
	if from == "" {
		from = s.from
	}

	params := &resend.SendEmailRequest{
		From:    from,
		To:      req.To,
		Subject: req.Subject,
		Html:    req.HTML,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		log.Printf("ERROR: Resend send failed (to=%v subject=%q): %v", req.To, req.Subject, err)
		return SendResult{}, fmt.Errorf("resend send failed: %w", err)
	}

	return SendResult{
		MessageID: sent.Id,
		SentAt:    time.Now(),
	}, nil
}
