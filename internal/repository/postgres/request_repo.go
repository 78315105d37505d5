package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"findmydocs/internal/domain"
	"findmydocs/internal/port"
)

type requestRepo struct {
	db *sqlx.DB
}

// NewRequestRepo creates a new PostgreSQL-backed DocumentRequestRepository.
func NewRequestRepo(db *sqlx.DB) port.DocumentRequestRepository {
	return &requestRepo{db: db}
}

func (r *requestRepo) Create(ctx context.Context, req *domain.DocumentRequest) error {
	now := time.Now().UTC()
	req.SubmittedAt = now
	req.UpdatedAt = now

	query := `INSERT INTO document_requests (
		id, kind, submitter_id, submitter_name, submitter_role,
		reason, details, attachment_id,
		current_stage, status, rejection_reason, approvals,
		submitted_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8,
		$9, $10, $11, $12,
		$13, $14
	)`

	_, err := r.db.ExecContext(ctx, query,
		req.ID, req.Kind, req.SubmitterID, req.SubmitterName, req.SubmitterRole,
		req.Reason, req.Details, req.AttachmentID,
		req.CurrentStage, req.Status, req.RejectionReason, req.Approvals,
		req.SubmittedAt, req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("requestRepo.Create: %w", err)
	}
	return nil
}

func (r *requestRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentRequest, error) {
	var req domain.DocumentRequest
	err := r.db.GetContext(ctx, &req,
		"SELECT * FROM document_requests WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("requestRepo.GetByID: %w", err)
	}
	return &req, nil
}

func (r *requestRepo) List(ctx context.Context, offset, limit int) ([]domain.DocumentRequest, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM document_requests")
	if err != nil {
		return nil, 0, fmt.Errorf("requestRepo.List count: %w", err)
	}

	var reqs []domain.DocumentRequest
	err = r.db.SelectContext(ctx, &reqs,
		`SELECT * FROM document_requests
		 ORDER BY submitted_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("requestRepo.List: %w", err)
	}
	return reqs, total, nil
}

func (r *requestRepo) ListBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]domain.DocumentRequest, error) {
	var reqs []domain.DocumentRequest
	err := r.db.SelectContext(ctx, &reqs,
		`SELECT * FROM document_requests WHERE submitter_id = $1
		 ORDER BY submitted_at DESC`, submitterID)
	if err != nil {
		return nil, fmt.Errorf("requestRepo.ListBySubmitter: %w", err)
	}
	return reqs, nil
}

func (r *requestRepo) ListByStatus(ctx context.Context, status string) ([]domain.DocumentRequest, error) {
	var reqs []domain.DocumentRequest
	err := r.db.SelectContext(ctx, &reqs,
		`SELECT * FROM document_requests WHERE status = $1
		 ORDER BY submitted_at DESC`, status)
	if err != nil {
		return nil, fmt.Errorf("requestRepo.ListByStatus: %w", err)
	}
	return reqs, nil
}

// UpdateStage persists a workflow transition conditionally: the write only
// lands if current_stage still equals expectedStage. A lost race surfaces
// as domain.ErrStageConflict so the caller can re-fetch and retry.
func (r *requestRepo) UpdateStage(ctx context.Context, req *domain.DocumentRequest, expectedStage int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE document_requests SET
			current_stage = $1, status = $2, rejection_reason = $3,
			approvals = $4, updated_at = $5
		 WHERE id = $6 AND current_stage = $7`,
		req.CurrentStage, req.Status, req.RejectionReason,
		req.Approvals, req.UpdatedAt,
		req.ID, expectedStage)
	if err != nil {
		return fmt.Errorf("requestRepo.UpdateStage: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		// Distinguish a vanished row from a lost race.
		var exists bool
		if err := r.db.GetContext(ctx, &exists,
			"SELECT EXISTS (SELECT 1 FROM document_requests WHERE id = $1)", req.ID); err != nil {
			return fmt.Errorf("requestRepo.UpdateStage exists: %w", err)
		}
		if !exists {
			return domain.ErrRequestNotFound
		}
		return domain.ErrStageConflict
	}
	return nil
}

func (r *requestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM document_requests WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("requestRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}
