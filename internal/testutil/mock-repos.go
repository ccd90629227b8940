package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"fraud-scoring-service/internal/core/domain"
	"fraud-scoring-service/internal/core/ports/output"
)

// MockPredictionRepo is a mock of PredictionRepository.
type MockPredictionRepo struct {
	mock.Mock
}

func (m *MockPredictionRepo) Create(ctx context.Context, record *domain.PredictionRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockPredictionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PredictionRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PredictionRecord), args.Error(1)
}

func (m *MockPredictionRepo) List(ctx context.Context, filter ports.PredictionListFilter) ([]*domain.PredictionRecord, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*domain.PredictionRecord), args.Int(1), args.Error(2)
}

// MockArtifactSource is a mock of ArtifactSource.
type MockArtifactSource struct {
	mock.Mock
}

func (m *MockArtifactSource) Exists(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

func (m *MockArtifactSource) Read(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockArtifactDecoder is a mock of ArtifactDecoder.
type MockArtifactDecoder struct {
	mock.Mock
}

func (m *MockArtifactDecoder) Decode(data []byte) (ports.Artifact, error) {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.Artifact), args.Error(1)
}
