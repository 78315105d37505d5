package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"findmydocs/internal/domain"
	"findmydocs/internal/port"
)

// CreateUserInput is the DTO for an admin creating an account directly,
// bypassing the registration approval queue.
type CreateUserInput struct {
	Name        string          `json:"name" binding:"required"`
	Email       string          `json:"email" binding:"required,email"`
	NIC         string          `json:"nic" binding:"required"`
	Password    string          `json:"password" binding:"required,min=8"`
	Role        domain.UserRole `json:"role" binding:"required"`
	Department  string          `json:"department"`
	IndexNumber string          `json:"index_number"`
}

// UpdateUserInput is the DTO for updating an account.
type UpdateUserInput struct {
	Name        string           `json:"name"`
	Department  string           `json:"department"`
	IndexNumber string           `json:"index_number"`
	Role        *domain.UserRole `json:"role"`
	IsActive    *bool            `json:"is_active"`
}

// UserService defines the account management contract.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]domain.User, int, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	userRepo port.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo port.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if !input.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	indexNumber := input.IndexNumber
	if input.Role != domain.RoleStudent {
		indexNumber = ""
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		NIC:          input.NIC,
		PasswordHash: string(hash),
		Role:         input.Role,
		Department:   input.Department,
		IndexNumber:  indexNumber,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *userService) List(ctx context.Context, offset, limit int) ([]domain.User, int, error) {
	return s.userRepo.List(ctx, offset, limit)
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Department != "" {
		user.Department = input.Department
	}
	if input.IndexNumber != "" {
		user.IndexNumber = input.IndexNumber
	}
	if input.Role != nil {
		if !input.Role.Valid() {
			return nil, domain.ErrInvalidRole
		}
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.userRepo.Delete(ctx, id)
}
