package port

import (
	"context"

	"github.com/google/uuid"

	"findmydocs/internal/domain"
)

// DocumentRequestRepository defines the contract for request persistence.
//
// UpdateStage is a conditional write: it only lands if the stored
// current_stage still equals expectedStage, and returns
// domain.ErrStageConflict otherwise. This is the single point of
// serialization for concurrent approval decisions.
type DocumentRequestRepository interface {
	Create(ctx context.Context, req *domain.DocumentRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentRequest, error)
	List(ctx context.Context, offset, limit int) ([]domain.DocumentRequest, int, error)
	ListBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]domain.DocumentRequest, error)
	ListByStatus(ctx context.Context, status string) ([]domain.DocumentRequest, error)
	UpdateStage(ctx context.Context, req *domain.DocumentRequest, expectedStage int) error
	Delete(ctx context.Context, id uuid.UUID) error
}
