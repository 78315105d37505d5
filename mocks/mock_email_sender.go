package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendRegistrationApproved(ctx context.Context, toEmail, toName string) error {
	args := m.Called(ctx, toEmail, toName)
	return args.Error(0)
}

func (m *MockEmailSender) SendRegistrationRejected(ctx context.Context, toEmail, toName, reason string) error {
	args := m.Called(ctx, toEmail, toName, reason)
	return args.Error(0)
}
