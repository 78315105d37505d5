package service

import (
	"context"

	"github.com/google/uuid"

	"findmydocs/internal/domain"
	"findmydocs/internal/port"
)

// NotificationService defines the notification feed contract.
type NotificationService interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	Delete(ctx context.Context, userID, notificationID uuid.UUID) error
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
}

type notificationService struct {
	notifRepo port.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notifRepo port.NotificationRepository) NotificationService {
	return &notificationService{notifRepo: notifRepo}
}

func (s *notificationService) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	return s.notifRepo.ListByUser(ctx, userID)
}

func (s *notificationService) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return s.notifRepo.MarkRead(ctx, userID, notificationID)
}

func (s *notificationService) Delete(ctx context.Context, userID, notificationID uuid.UUID) error {
	return s.notifRepo.Delete(ctx, userID, notificationID)
}

func (s *notificationService) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	return s.notifRepo.DeleteByUser(ctx, userID)
}
