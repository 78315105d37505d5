package ses

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"findmydocs/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
	portalURL   string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName, portalURL string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	client := sesv2.NewFromConfig(cfg)
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		portalURL:   portalURL,
	}, nil
}

func (s *sesSender) SendRegistrationApproved(ctx context.Context, toEmail, toName string) error {
	subject := "Your Find My Docs account has been approved"
	htmlBody := buildApprovedHTML(toName, s.portalURL)
	textBody := fmt.Sprintf("Hi %s,\n\nAn administrator has approved your registration. You can now sign in at:\n%s\n\nFind My Docs Team", toName, s.portalURL)

	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) SendRegistrationRejected(ctx context.Context, toEmail, toName, reason string) error {
	subject := "Your Find My Docs registration was not approved"
	htmlBody := buildRejectedHTML(toName, reason)
	textBody := fmt.Sprintf("Hi %s,\n\nAn administrator has reviewed your registration and was unable to approve it.\n\nReason: %s\n\nYou may submit a new registration with corrected details.\n\nFind My Docs Team", toName, reason)

	return s.send(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *sesSender) send(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

func buildApprovedHTML(name, portalURL string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Account approved</h2>
  <p>Hi %s,</p>
  <p>An administrator has approved your registration. You can now sign in and start submitting document requests:</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #4F46E5; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Sign In</a>
  </p>
  <p>Or copy and paste this link into your browser:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Find My Docs - University Document Request Portal</p>
</body>
</html>`, name, portalURL, portalURL)
}

func buildRejectedHTML(name, reason string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Registration not approved</h2>
  <p>Hi %s,</p>
  <p>An administrator has reviewed your registration and was unable to approve it.</p>
  <p style="background-color: #FEF2F2; border-left: 4px solid #DC2626; padding: 12px; color: #666;">%s</p>
  <p>You may submit a new registration with corrected details.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Find My Docs - University Document Request Portal</p>
</body>
</html>`, name, reason)
}
