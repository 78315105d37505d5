package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"findmydocs/internal/domain"
)

// MockRequestRepo is a mock implementation of port.DocumentRequestRepository.
type MockRequestRepo struct {
	mock.Mock
}

func (m *MockRequestRepo) Create(ctx context.Context, req *domain.DocumentRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRequestRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.DocumentRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DocumentRequest), args.Error(1)
}

func (m *MockRequestRepo) List(ctx context.Context, offset, limit int) ([]domain.DocumentRequest, int, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.DocumentRequest), args.Int(1), args.Error(2)
}

func (m *MockRequestRepo) ListBySubmitter(ctx context.Context, submitterID uuid.UUID) ([]domain.DocumentRequest, error) {
	args := m.Called(ctx, submitterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentRequest), args.Error(1)
}

func (m *MockRequestRepo) ListByStatus(ctx context.Context, status string) ([]domain.DocumentRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DocumentRequest), args.Error(1)
}

func (m *MockRequestRepo) UpdateStage(ctx context.Context, req *domain.DocumentRequest, expectedStage int) error {
	args := m.Called(ctx, req, expectedStage)
	return args.Error(0)
}

func (m *MockRequestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
