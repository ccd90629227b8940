package ports

import (
	"context"

	"github.com/google/uuid"

	"fraud-scoring-service/internal/core/domain"
)

type PredictionListFilter struct {
	RiskLevel string
	Label     string
	Limit     int
	Offset    int
}

// PredictionRepository defines the contract for prediction audit persistence
type PredictionRepository interface {
	// Create stores a new prediction record
	Create(ctx context.Context, record *domain.PredictionRecord) error

	// GetByID retrieves a prediction record by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PredictionRecord, error)

	// List returns records newest first, plus the total matching the filter
	List(ctx context.Context, filter PredictionListFilter) ([]*domain.PredictionRecord, int, error)
}
