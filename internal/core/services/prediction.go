package services

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"fraud-scoring-service/internal/core/domain"
	"fraud-scoring-service/internal/core/ports/output"
)

const (
	defaultRecordLimit = 20
	maxRecordLimit     = 100
)

type PredictionService struct {
	loader       *ArtifactLoader
	recordRepo   ports.PredictionRepository
	modelVersion string
}

// NewPredictionService wires the fraud prediction flow. recordRepo may be nil,
// in which case predictions are not persisted.
func NewPredictionService(loader *ArtifactLoader, recordRepo ports.PredictionRepository, modelVersion string) *PredictionService {
	return &PredictionService{
		loader:       loader,
		recordRepo:   recordRepo,
		modelVersion: modelVersion,
	}
}

// Predict runs one inference pass over features. Class and probability both
// come from the same borrowed artifact.
func (s *PredictionService) Predict(ctx context.Context, features domain.FeatureVector) (*domain.PredictionResult, error) {
	if err := features.Validate(); err != nil {
		return nil, err
	}

	artifact, err := s.loader.Artifact()
	if err != nil {
		return nil, err
	}

	batch := [][]float64{features.Row()}

	classes, err := artifact.Classify(batch)
	if err != nil {
		return nil, fmt.Errorf("%w: classify: %w", domain.ErrInferenceFailed, err)
	}
	probabilities, err := artifact.EstimateProbabilities(batch)
	if err != nil {
		return nil, fmt.Errorf("%w: estimate probabilities: %w", domain.ErrInferenceFailed, err)
	}

	if len(classes) != 1 || len(probabilities) != 1 {
		return nil, fmt.Errorf("%w: expected 1 result row, got %d classes and %d distributions",
			domain.ErrInferenceFailed, len(classes), len(probabilities))
	}
	if len(probabilities[0]) <= domain.ClassFraud {
		return nil, fmt.Errorf("%w: distribution has %d classes", domain.ErrInferenceFailed, len(probabilities[0]))
	}

	class := classes[0]
	if class != domain.ClassLegitimate && class != domain.ClassFraud {
		return nil, fmt.Errorf("%w: unexpected class %d", domain.ErrInferenceFailed, class)
	}
	fraudProbability := probabilities[0][domain.ClassFraud]
	if math.IsNaN(fraudProbability) || fraudProbability < 0 || fraudProbability > 1 {
		return nil, fmt.Errorf("%w: fraud probability %v out of range", domain.ErrInferenceFailed, fraudProbability)
	}

	result := &domain.PredictionResult{
		PredictedClass:   class,
		FraudProbability: fraudProbability,
	}

	log.WithFields(log.Fields{
		"kind":              artifact.Kind(),
		"amount":            features.Amount(),
		"tx_time":           features[0],
		"predicted_class":   result.PredictedClass,
		"prediction_label":  result.Label(),
		"fraud_probability": fmt.Sprintf("%.4f", result.FraudProbability),
		"risk_level":        result.RiskLevel(),
	}).Info("fraud prediction")

	return result, nil
}

// Score predicts a transaction, attaches presentation fields, and records
// the outcome when a prediction store is configured.
func (s *PredictionService) Score(ctx context.Context, requestID string, tx domain.Transaction) (*domain.FraudAssessment, error) {
	features, err := tx.Vector()
	if err != nil {
		return nil, err
	}

	result, err := s.Predict(ctx, features)
	if err != nil {
		return nil, err
	}

	assessment := &domain.FraudAssessment{
		PredictionResult: *result,
		Label:            result.Label(),
		Risk:             result.RiskLevel(),
		ModelVersion:     s.modelVersion,
	}

	if s.recordRepo != nil {
		record := domain.NewPredictionRecord(requestID, features, assessment)
		if err := s.recordRepo.Create(ctx, record); err != nil {
			log.WithError(err).WithField("request_id", requestID).Warn("record prediction failed")
		}
	}

	return assessment, nil
}

func (s *PredictionService) GetRecord(ctx context.Context, id uuid.UUID) (*domain.PredictionRecord, error) {
	if s.recordRepo == nil {
		return nil, domain.ErrPredictionStoreDisabled
	}
	return s.recordRepo.GetByID(ctx, id)
}

// ListRecords returns one page of audit rows. Limit defaults to 20 and is
// capped at 100; a negative offset starts from the first row.
func (s *PredictionService) ListRecords(ctx context.Context, filter ports.PredictionListFilter) (*domain.PredictionPage, error) {
	if s.recordRepo == nil {
		return nil, domain.ErrPredictionStoreDisabled
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultRecordLimit
	}
	if filter.Limit > maxRecordLimit {
		filter.Limit = maxRecordLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.RiskLevel != "" && !domain.RiskLevel(filter.RiskLevel).IsValid() {
		return nil, fmt.Errorf("%w: unknown risk level %q", domain.ErrInvalidFilter, filter.RiskLevel)
	}
	if filter.Label != "" && !domain.PredictionLabel(filter.Label).IsValid() {
		return nil, fmt.Errorf("%w: unknown label %q", domain.ErrInvalidFilter, filter.Label)
	}

	records, total, err := s.recordRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &domain.PredictionPage{
		Items:  records,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

func (s *PredictionService) ModelVersion() string {
	return s.modelVersion
}
