package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"findmydocs/internal/domain"
	"findmydocs/internal/port"
)

// RegisterInput is the DTO for a new account application.
type RegisterInput struct {
	Name        string          `json:"name" binding:"required"`
	Email       string          `json:"email" binding:"required,email"`
	NIC         string          `json:"nic" binding:"required"`
	Password    string          `json:"password" binding:"required,min=8"`
	Role        domain.UserRole `json:"role" binding:"required"`
	Department  string          `json:"department"`
	IndexNumber string          `json:"index_number"`
}

// RegistrationService defines the account-application approval contract.
// Applications sit in a pending pool until an admin approves (the
// application becomes a user account) or rejects (it is discarded); the
// applicant is emailed either way.
type RegistrationService interface {
	Submit(ctx context.Context, input RegisterInput) (*domain.Registration, error)
	ListPending(ctx context.Context) ([]domain.Registration, error)
	Approve(ctx context.Context, registrationID uuid.UUID) (*domain.User, error)
	Reject(ctx context.Context, registrationID uuid.UUID, reason string) error
}

type registrationService struct {
	regRepo  port.RegistrationRepository
	userRepo port.UserRepository
	emails   port.EmailSender
}

// NewRegistrationService creates a new RegistrationService.
func NewRegistrationService(
	regRepo port.RegistrationRepository,
	userRepo port.UserRepository,
	emails port.EmailSender,
) RegistrationService {
	return &registrationService{
		regRepo:  regRepo,
		userRepo: userRepo,
		emails:   emails,
	}
}

func (s *registrationService) Submit(ctx context.Context, input RegisterInput) (*domain.Registration, error) {
	if !input.Role.Valid() || input.Role == domain.RoleAdmin {
		return nil, domain.ErrInvalidRole
	}

	// An existing account or pending application with the same email or
	// NIC blocks a new application.
	if _, err := s.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("checking existing email: %w", err)
	}
	if _, err := s.userRepo.GetByNIC(ctx, input.NIC); err == nil {
		return nil, domain.ErrDuplicateNIC
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("checking existing nic: %w", err)
	}
	if _, err := s.regRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domain.ErrRegistrationPending
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("checking pending email: %w", err)
	}
	if _, err := s.regRepo.GetByNIC(ctx, input.NIC); err == nil {
		return nil, domain.ErrRegistrationPending
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("checking pending nic: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), 12)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	indexNumber := input.IndexNumber
	if input.Role != domain.RoleStudent {
		indexNumber = ""
	}

	reg := &domain.Registration{
		Name:         input.Name,
		Email:        input.Email,
		NIC:          input.NIC,
		PasswordHash: string(hash),
		Role:         input.Role,
		Department:   input.Department,
		IndexNumber:  indexNumber,
	}
	if err := s.regRepo.Create(ctx, reg); err != nil {
		return nil, err
	}
	return reg, nil
}

func (s *registrationService) ListPending(ctx context.Context) ([]domain.Registration, error) {
	return s.regRepo.List(ctx)
}

func (s *registrationService) Approve(ctx context.Context, registrationID uuid.UUID) (*domain.User, error) {
	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         reg.Name,
		Email:        reg.Email,
		NIC:          reg.NIC,
		PasswordHash: reg.PasswordHash,
		Role:         reg.Role,
		Department:   reg.Department,
		IndexNumber:  reg.IndexNumber,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user from registration: %w", err)
	}

	if err := s.regRepo.Delete(ctx, registrationID); err != nil {
		return nil, fmt.Errorf("removing approved registration: %w", err)
	}

	// Email delivery must not fail the approval.
	if err := s.emails.SendRegistrationApproved(ctx, reg.Email, reg.Name); err != nil {
		log.Printf("registrationService.Approve: sending approval email to %s: %v", reg.Email, err)
	}

	return user, nil
}

func (s *registrationService) Reject(ctx context.Context, registrationID uuid.UUID, reason string) error {
	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		return err
	}

	if err := s.regRepo.Delete(ctx, registrationID); err != nil {
		return fmt.Errorf("removing rejected registration: %w", err)
	}

	if err := s.emails.SendRegistrationRejected(ctx, reg.Email, reg.Name, reason); err != nil {
		log.Printf("registrationService.Reject: sending rejection email to %s: %v", reg.Email, err)
	}

	return nil
}
