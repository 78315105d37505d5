package port

import (
	"context"

	"github.com/google/uuid"

	"findmydocs/internal/domain"
)

// NotificationRepository defines the contract for the per-user
// notification feed. Create is the sink the workflow's notification
// intents drain into.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	Delete(ctx context.Context, userID, notificationID uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
