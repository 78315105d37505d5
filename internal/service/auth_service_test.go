package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"findmydocs/internal/config"
	"findmydocs/internal/domain"
	"findmydocs/internal/service"
	"findmydocs/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-key-for-unit-tests",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 168 * time.Hour,
		Issuer:             "findmydocs-test",
	}
}

func hashPassword(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), 12)
	return string(hash)
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "student@uni.edu",
		Name:         "Test Student",
		PasswordHash: hashPassword("password123"),
		Role:         domain.RoleStudent,
		IsActive:     true,
	}
	userRepo.On("GetByEmail", mock.Anything, "student@uni.edu").Return(user, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "student@uni.edu",
		Password: "password123",
	})

	assert.NoError(t, err)
	assert.Equal(t, user, result.User)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	assert.True(t, result.Tokens.ExpiresAt.After(time.Now()))
	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "student@uni.edu",
		PasswordHash: hashPassword("correct-password"),
		IsActive:     true,
	}
	userRepo.On("GetByEmail", mock.Anything, "student@uni.edu").Return(user, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "student@uni.edu",
		Password: "wrong-password",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	userRepo.On("GetByEmail", mock.Anything, "nobody@uni.edu").Return(nil, domain.ErrNotFound)

	result, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "nobody@uni.edu",
		Password: "password123",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "former@uni.edu",
		PasswordHash: hashPassword("password123"),
		IsActive:     false,
	}
	userRepo.On("GetByEmail", mock.Anything, "former@uni.edu").Return(user, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "former@uni.edu",
		Password: "password123",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthService_ValidateToken_RoundTrip(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "hod@uni.edu",
		PasswordHash: hashPassword("password123"),
		Role:         domain.RoleHOD,
		IsActive:     true,
	}
	userRepo.On("GetByEmail", mock.Anything, "hod@uni.edu").Return(user, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "hod@uni.edu",
		Password: "password123",
	})
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(result.Tokens.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleHOD, claims.Role)
}

func TestAuthService_ValidateToken_RejectsRefreshToken(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "dean@uni.edu",
		PasswordHash: hashPassword("password123"),
		Role:         domain.RoleDean,
		IsActive:     true,
	}
	userRepo.On("GetByEmail", mock.Anything, "dean@uni.edu").Return(user, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "dean@uni.edu",
		Password: "password123",
	})
	assert.NoError(t, err)

	// A refresh token carries the wrong audience for API access.
	_, err = svc.ValidateToken(result.Tokens.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	_, err := svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "vc@uni.edu",
		PasswordHash: hashPassword("password123"),
		Role:         domain.RoleVC,
		IsActive:     true,
	}
	userRepo.On("GetByEmail", mock.Anything, "vc@uni.edu").Return(user, nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "vc@uni.edu",
		Password: "password123",
	})
	assert.NoError(t, err)

	pair, err := svc.RefreshToken(context.Background(), result.Tokens.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
}

func TestAuthService_RefreshToken_WithAccessToken(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())

	user := &domain.User{
		ID:           uuid.New(),
		Email:        "staff@uni.edu",
		PasswordHash: hashPassword("password123"),
		Role:         domain.RoleStaff,
		IsActive:     true,
	}
	userRepo.On("GetByEmail", mock.Anything, "staff@uni.edu").Return(user, nil)

	result, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "staff@uni.edu",
		Password: "password123",
	})
	assert.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), result.Tokens.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
