package port

import (
	"context"

	"github.com/google/uuid"

	"findmydocs/internal/domain"
)

// UserRepository defines the contract for account persistence. ListByRole
// doubles as the account directory the workflow uses to resolve "who is
// the next approver" on each transition.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByNIC(ctx context.Context, nic string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RegistrationRepository defines the contract for pending account
// applications.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *domain.Registration) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Registration, error)
	GetByEmail(ctx context.Context, email string) (*domain.Registration, error)
	GetByNIC(ctx context.Context, nic string) (*domain.Registration, error)
	List(ctx context.Context) ([]domain.Registration, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
