package port

import (
	"context"

	"github.com/google/uuid"

	"findmydocs/internal/domain"
)

// FileMetaRepository defines the contract for attachment metadata.
type FileMetaRepository interface {
	Create(ctx context.Context, meta *domain.FileMeta) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.FileMeta, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.FileStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}
