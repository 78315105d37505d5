package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"findmydocs/internal/domain"
	"findmydocs/internal/port"
)

type notificationRepo struct {
	db *sqlx.DB
}

// NewNotificationRepo creates a new PostgreSQL-backed NotificationRepository.
func NewNotificationRepo(db *sqlx.DB) port.NotificationRepository {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, user_id, message, severity, read, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.UserID, n.Message, n.Severity, n.Read, n.CreatedAt)
	if err != nil {
		return fmt.Errorf("notificationRepo.Create: %w", err)
	}
	return nil
}

func (r *notificationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	var notifications []domain.Notification
	err := r.db.SelectContext(ctx, &notifications,
		`SELECT * FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("notificationRepo.ListByUser: %w", err)
	}
	return notifications, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE notifications SET read = true WHERE id = $1 AND user_id = $2",
		notificationID, userID)
	if err != nil {
		return fmt.Errorf("notificationRepo.MarkRead: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepo) Delete(ctx context.Context, userID, notificationID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM notifications WHERE id = $1 AND user_id = $2",
		notificationID, userID)
	if err != nil {
		return fmt.Errorf("notificationRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *notificationRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM notifications WHERE user_id = $1", userID)
	if err != nil {
		return fmt.Errorf("notificationRepo.DeleteByUser: %w", err)
	}
	return nil
}
