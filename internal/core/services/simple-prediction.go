package services

import (
	"fmt"
	"math"

	"fraud-scoring-service/internal/core/domain"
)

const (
	simpleFeatureCount  = 4
	simpleDecisionPoint = 10.0
)

// SimplePredictionService is a placeholder four-feature model used to demo
// the prediction request/response shape without a trained artifact.
type SimplePredictionService struct {
	modelVersion string
}

func NewSimplePredictionService(modelVersion string) *SimplePredictionService {
	return &SimplePredictionService{modelVersion: modelVersion}
}

// Predict returns class 1 when the feature sum exceeds the decision point.
// Probability grows with the distance from it and stays within [0.5, 1].
func (s *SimplePredictionService) Predict(features []float64) (*domain.SimplePrediction, error) {
	if len(features) != simpleFeatureCount {
		return nil, fmt.Errorf("%w: expected %d values, got %d", domain.ErrInvalidFeatureVector, simpleFeatureCount, len(features))
	}

	var sum float64
	for _, f := range features {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: features must be finite", domain.ErrInvalidFeatureVector)
		}
		sum += f
	}

	prediction := 0
	if sum > simpleDecisionPoint {
		prediction = 1
	}

	return &domain.SimplePrediction{
		Prediction:   prediction,
		Probability:  sigmoid(math.Abs(sum - simpleDecisionPoint)),
		ModelVersion: s.modelVersion,
	}, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
