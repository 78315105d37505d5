package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"findmydocs/internal/domain"
	"findmydocs/internal/service"
	"findmydocs/mocks"
)

func registerInput() service.RegisterInput {
	return service.RegisterInput{
		Name:        "Amaya Jayasinghe",
		Email:       "amaya@uni.edu",
		NIC:         "991234567V",
		Password:    "password123",
		Role:        domain.RoleStudent,
		Department:  "Computer Science",
		IndexNumber: "CS/2021/042",
	}
}

func TestRegistrationService_Submit_Success(t *testing.T) {
	regRepo := new(mocks.MockRegistrationRepo)
	userRepo := new(mocks.MockUserRepo)
	emails := new(mocks.MockEmailSender)
	svc := service.NewRegistrationService(regRepo, userRepo, emails)

	userRepo.On("GetByEmail", mock.Anything, "amaya@uni.edu").Return(nil, domain.ErrNotFound)
	userRepo.On("GetByNIC", mock.Anything, "991234567V").Return(nil, domain.ErrNotFound)
	regRepo.On("GetByEmail", mock.Anything, "amaya@uni.edu").Return(nil, domain.ErrNotFound)
	regRepo.On("GetByNIC", mock.Anything, "991234567V").Return(nil, domain.ErrNotFound)
	regRepo.On("Create", mock.Anything, mock.MatchedBy(func(reg *domain.Registration) bool {
		// Stored hash must verify against the submitted password.
		return bcrypt.CompareHashAndPassword([]byte(reg.PasswordHash), []byte("password123")) == nil
	})).Return(nil)

	reg, err := svc.Submit(context.Background(), registerInput())

	assert.NoError(t, err)
	assert.Equal(t, "CS/2021/042", reg.IndexNumber)
	assert.NotEqual(t, "password123", reg.PasswordHash)
	regRepo.AssertExpectations(t)
}

func TestRegistrationService_Submit_AdminRoleRefused(t *testing.T) {
	regRepo := new(mocks.MockRegistrationRepo)
	userRepo := new(mocks.MockUserRepo)
	emails := new(mocks.MockEmailSender)
	svc := service.NewRegistrationService(regRepo, userRepo, emails)

	input := registerInput()
	input.Role = domain.RoleAdmin

	_, err := svc.Submit(context.Background(), input)

	assert.ErrorIs(t, err, domain.ErrInvalidRole)
	regRepo.AssertNotCalled(t, "Create")
}

func TestRegistrationService_Submit_DuplicateEmail(t *testing.T) {
	regRepo := new(mocks.MockRegistrationRepo)
	userRepo := new(mocks.MockUserRepo)
	emails := new(mocks.MockEmailSender)
	svc := service.NewRegistrationService(regRepo, userRepo, emails)

	userRepo.On("GetByEmail", mock.Anything, "amaya@uni.edu").Return(&domain.User{ID: uuid.New()}, nil)

	_, err := svc.Submit(context.Background(), registerInput())

	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	regRepo.AssertNotCalled(t, "Create")
}

func TestRegistrationService_Submit_PendingNIC(t *testing.T) {
	regRepo := new(mocks.MockRegistrationRepo)
	userRepo := new(mocks.MockUserRepo)
	emails := new(mocks.MockEmailSender)
	svc := service.NewRegistrationService(regRepo, userRepo, emails)

	userRepo.On("GetByEmail", mock.Anything, "amaya@uni.edu").Return(nil, domain.ErrNotFound)
	userRepo.On("GetByNIC", mock.Anything, "991234567V").Return(nil, domain.ErrNotFound)
	regRepo.On("GetByEmail", mock.Anything, "amaya@uni.edu").Return(nil, domain.ErrNotFound)
	regRepo.On("GetByNIC", mock.Anything, "991234567V").Return(&domain.Registration{ID: uuid.New()}, nil)

	_, err := svc.Submit(context.Background(), registerInput())

	assert.ErrorIs(t, err, domain.ErrRegistrationPending)
}

func TestRegistrationService_Submit_NonStudentDropsIndexNumber(t *testing.T) {
	regRepo := new(mocks.MockRegistrationRepo)
	userRepo := new(mocks.MockUserRepo)
	emails := new(mocks.MockEmailSender)
	svc := service.NewRegistrationService(regRepo, userRepo, emails)

	input := registerInput()
	input.Role = domain.RoleLecturer

	userRepo.On("GetByEmail", mock.Anything, input.Email).Return(nil, domain.ErrNotFound)
	userRepo.On("GetByNIC", mock.Anything, input.NIC).Return(nil, domain.ErrNotFound)
	regRepo.On("GetByEmail", mock.Anything, input.Email).Return(nil, domain.ErrNotFound)
	regRepo.On("GetByNIC", mock.Anything, input.NIC).Return(nil, domain.ErrNotFound)
	regRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	reg, err := svc.Submit(context.Background(), input)

	assert.NoError(t, err)
	assert.Empty(t, reg.IndexNumber)
}

func TestRegistrationService_Approve_CreatesUserAndEmails(t *testing.T) {
	regRepo := new(mocks.MockRegistrationRepo)
	userRepo := new(mocks.MockUserRepo)
	emails := new(mocks.MockEmailSender)
	svc := service.NewRegistrationService(regRepo, userRepo, emails)

	regID := uuid.New()
	reg := &domain.Registration{
		ID:           regID,
		Name:         "Amaya Jayasinghe",
		Email:        "amaya@uni.edu",
		NIC:          "991234567V",
		PasswordHash: "$2a$12$already-hashed",
		Role:         domain.RoleStudent,
		Department:   "Computer Science",
		IndexNumber:  "CS/2021/042",
	}

	regRepo.On("GetByID", mock.Anything, regID).Return(reg, nil)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == reg.Email && u.PasswordHash == reg.PasswordHash && u.IsActive
	})).Return(nil)
	regRepo.On("Delete", mock.Anything, regID).Return(nil)
	emails.On("SendRegistrationApproved", mock.Anything, "amaya@uni.edu", "Amaya Jayasinghe").Return(nil)

	user, err := svc.Approve(context.Background(), regID)

	assert.NoError(t, err)
	assert.True(t, user.IsActive)
	regRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
	emails.AssertExpectations(t)
}

func TestRegistrationService_Approve_EmailFailureIsNotFatal(t *testing.T) {
	regRepo := new(mocks.MockRegistrationRepo)
	userRepo := new(mocks.MockUserRepo)
	emails := new(mocks.MockEmailSender)
	svc := service.NewRegistrationService(regRepo, userRepo, emails)

	regID := uuid.New()
	regRepo.On("GetByID", mock.Anything, regID).Return(&domain.Registration{
		ID:    regID,
		Email: "amaya@uni.edu",
		Name:  "Amaya",
		Role:  domain.RoleStudent,
	}, nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
	regRepo.On("Delete", mock.Anything, regID).Return(nil)
	emails.On("SendRegistrationApproved", mock.Anything, "amaya@uni.edu", "Amaya").Return(assert.AnError)

	_, err := svc.Approve(context.Background(), regID)

	assert.NoError(t, err)
}

func TestRegistrationService_Reject_DeletesAndEmails(t *testing.T) {
	regRepo := new(mocks.MockRegistrationRepo)
	userRepo := new(mocks.MockUserRepo)
	emails := new(mocks.MockEmailSender)
	svc := service.NewRegistrationService(regRepo, userRepo, emails)

	regID := uuid.New()
	regRepo.On("GetByID", mock.Anything, regID).Return(&domain.Registration{
		ID:    regID,
		Email: "amaya@uni.edu",
		Name:  "Amaya",
	}, nil)
	regRepo.On("Delete", mock.Anything, regID).Return(nil)
	emails.On("SendRegistrationRejected", mock.Anything, "amaya@uni.edu", "Amaya", "NIC could not be verified").Return(nil)

	err := svc.Reject(context.Background(), regID, "NIC could not be verified")

	assert.NoError(t, err)
	regRepo.AssertExpectations(t)
	emails.AssertExpectations(t)
	userRepo.AssertNotCalled(t, "Create")
}

func TestRegistrationService_Reject_NotFound(t *testing.T) {
	regRepo := new(mocks.MockRegistrationRepo)
	userRepo := new(mocks.MockUserRepo)
	emails := new(mocks.MockEmailSender)
	svc := service.NewRegistrationService(regRepo, userRepo, emails)

	regID := uuid.New()
	regRepo.On("GetByID", mock.Anything, regID).Return(nil, domain.ErrNotFound)

	err := svc.Reject(context.Background(), regID, "whatever")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	regRepo.AssertNotCalled(t, "Delete")
}
