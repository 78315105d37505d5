package noop

import (
	"context"
	"log"

	"findmydocs/internal/port"
)

type noopSender struct {
	portalURL string
}

// NewNoopSender creates a no-op EmailSender that logs instead of sending.
func NewNoopSender(portalURL string) port.EmailSender {
	return &noopSender{portalURL: portalURL}
}

func (s *noopSender) SendRegistrationApproved(_ context.Context, toEmail, toName string) error {
	log.Printf("[NOOP EMAIL] Registration approved for %s (%s): sign in at %s", toName, toEmail, s.portalURL)
	return nil
}

func (s *noopSender) SendRegistrationRejected(_ context.Context, toEmail, toName, reason string) error {
	log.Printf("[NOOP EMAIL] Registration rejected for %s (%s): %s", toName, toEmail, reason)
	return nil
}
