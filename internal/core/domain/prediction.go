package domain

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// Value Objects
// ============================================================================

// RiskLevel is a coarse band over the fraud probability
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "LOW"
	RiskLevelMedium RiskLevel = "MEDIUM"
	RiskLevelHigh   RiskLevel = "HIGH"
)

const (
	mediumRiskThreshold = 0.3
	highRiskThreshold   = 0.7
)

// RiskLevelFor maps a probability to its band. Each band includes its lower edge.
func RiskLevelFor(probability float64) RiskLevel {
	switch {
	case probability < mediumRiskThreshold:
		return RiskLevelLow
	case probability < highRiskThreshold:
		return RiskLevelMedium
	default:
		return RiskLevelHigh
	}
}

// IsValid checks if the risk level is one of the known bands
func (r RiskLevel) IsValid() bool {
	return r == RiskLevelLow || r == RiskLevelMedium || r == RiskLevelHigh
}

// PredictionLabel is the human-facing name of a predicted class
type PredictionLabel string

const (
	LabelFraudulent PredictionLabel = "FRAUDULENT"
	LabelLegitimate PredictionLabel = "LEGITIMATE"
)

const (
	ClassLegitimate = 0
	ClassFraud      = 1
)

func (l PredictionLabel) IsValid() bool {
	return l == LabelFraudulent || l == LabelLegitimate
}

// LabelFor maps a predicted class to its label.
func LabelFor(class int) PredictionLabel {
	if class == ClassFraud {
		return LabelFraudulent
	}
	return LabelLegitimate
}

// ============================================================================
// Entities
// ============================================================================

// PredictionResult is the outcome of a single inference pass.
type PredictionResult struct {
	PredictedClass   int     `json:"predicted_class"`
	FraudProbability float64 `json:"fraud_probability"`
}

func (r PredictionResult) Label() PredictionLabel {
	return LabelFor(r.PredictedClass)
}

func (r PredictionResult) RiskLevel() RiskLevel {
	return RiskLevelFor(r.FraudProbability)
}

// FraudAssessment is a PredictionResult enriched for presentation.
type FraudAssessment struct {
	PredictionResult
	Label        PredictionLabel `json:"prediction_label"`
	Risk         RiskLevel       `json:"risk_level"`
	ModelVersion string          `json:"model_version"`
}

// PredictionRecord is the audit row persisted for each fraud prediction
type PredictionRecord struct {
	ID               uuid.UUID       `json:"id"`
	CreatedAt        time.Time       `json:"created_at"`
	RequestID        string          `json:"request_id"`
	Features         FeatureVector   `json:"features"`
	PredictedClass   int             `json:"predicted_class"`
	FraudProbability float64         `json:"fraud_probability"`
	RiskLevel        RiskLevel       `json:"risk_level"`
	Label            PredictionLabel `json:"prediction_label"`
	ModelVersion     string          `json:"model_version"`
}

// NewPredictionRecord builds an audit row from an assessment.
func NewPredictionRecord(requestID string, features FeatureVector, a *FraudAssessment) *PredictionRecord {
	return &PredictionRecord{
		ID:               uuid.New(),
		CreatedAt:        time.Now().UTC(),
		RequestID:        requestID,
		Features:         features,
		PredictedClass:   a.PredictedClass,
		FraudProbability: a.FraudProbability,
		RiskLevel:        a.Risk,
		Label:            a.Label,
		ModelVersion:     a.ModelVersion,
	}
}

// PredictionPage is one page of audit rows with the paging actually applied.
type PredictionPage struct {
	Items  []*PredictionRecord
	Total  int
	Limit  int
	Offset int
}

// NextOffset is the offset of the row after this page.
func (p *PredictionPage) NextOffset() int {
	return p.Offset + len(p.Items)
}

// ArtifactStatus reports what the loader currently holds.
type ArtifactStatus struct {
	Loaded       bool   `json:"loaded"`
	ArtifactKind string `json:"artifact_kind,omitempty"`
	Path         string `json:"path,omitempty"`
}
