package port

import "context"

// EmailSender defines the contract for registration decision emails.
type EmailSender interface {
	SendRegistrationApproved(ctx context.Context, toEmail, toName string) error
	SendRegistrationRejected(ctx context.Context, toEmail, toName, reason string) error
}
