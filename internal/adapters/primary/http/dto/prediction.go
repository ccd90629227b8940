package dto

import (
	"time"

	"github.com/google/uuid"

	"fraud-scoring-service/internal/core/domain"
)

const timeFormat = time.RFC3339

// TransactionRequest carries the raw model features. Pointers let zero be a
// valid value while still rejecting missing fields.
type TransactionRequest struct {
	Time   *float64 `json:"Time" binding:"required,gte=0"`
	V1     *float64 `json:"V1" binding:"required"`
	V2     *float64 `json:"V2" binding:"required"`
	V3     *float64 `json:"V3" binding:"required"`
	V4     *float64 `json:"V4" binding:"required"`
	V5     *float64 `json:"V5" binding:"required"`
	V6     *float64 `json:"V6" binding:"required"`
	V7     *float64 `json:"V7" binding:"required"`
	V8     *float64 `json:"V8" binding:"required"`
	V9     *float64 `json:"V9" binding:"required"`
	V10    *float64 `json:"V10" binding:"required"`
	Amount *float64 `json:"Amount" binding:"required,gte=0"`
}

func (r TransactionRequest) ToTransaction() domain.Transaction {
	return domain.Transaction{
		Time:   *r.Time,
		V1:     *r.V1,
		V2:     *r.V2,
		V3:     *r.V3,
		V4:     *r.V4,
		V5:     *r.V5,
		V6:     *r.V6,
		V7:     *r.V7,
		V8:     *r.V8,
		V9:     *r.V9,
		V10:    *r.V10,
		Amount: *r.Amount,
	}
}

type FraudPredictionResponse struct {
	Prediction       int     `json:"prediction"`
	PredictionLabel  string  `json:"prediction_label"`
	FraudProbability float64 `json:"fraud_probability"`
	RiskLevel        string  `json:"risk_level"`
	ModelVersion     string  `json:"model_version"`
	RequestID        string  `json:"request_id,omitempty"`
}

func ToFraudPredictionResponse(a *domain.FraudAssessment, requestID string) FraudPredictionResponse {
	return FraudPredictionResponse{
		Prediction:       a.PredictedClass,
		PredictionLabel:  string(a.Label),
		FraudProbability: a.FraudProbability,
		RiskLevel:        string(a.Risk),
		ModelVersion:     a.ModelVersion,
		RequestID:        requestID,
	}
}

type ModelInfoResponse struct {
	Loaded       bool   `json:"loaded"`
	ArtifactKind string `json:"artifact_kind,omitempty"`
	Path         string `json:"path,omitempty"`
	ModelVersion string `json:"model_version"`
}

func ToModelInfoResponse(s domain.ArtifactStatus, modelVersion string) ModelInfoResponse {
	return ModelInfoResponse{
		Loaded:       s.Loaded,
		ArtifactKind: s.ArtifactKind,
		Path:         s.Path,
		ModelVersion: modelVersion,
	}
}

type PredictionRecordResponse struct {
	ID               uuid.UUID          `json:"id"`
	CreatedAt        string             `json:"created_at"`
	RequestID        string             `json:"request_id"`
	Features         map[string]float64 `json:"features"`
	Prediction       int                `json:"prediction"`
	PredictionLabel  string             `json:"prediction_label"`
	FraudProbability float64            `json:"fraud_probability"`
	RiskLevel        string             `json:"risk_level"`
	ModelVersion     string             `json:"model_version"`
}

type ListPredictionRecordsResponse struct {
	Items      []PredictionRecordResponse `json:"items"`
	Total      int                        `json:"total"`
	PageSize   int                        `json:"page_size"`
	NextOffset int                        `json:"next_offset"`
}

func ToPredictionRecordResponse(r *domain.PredictionRecord) PredictionRecordResponse {
	features := make(map[string]float64, domain.FeatureCount)
	for i, name := range domain.FeatureNames {
		features[name] = r.Features[i]
	}
	return PredictionRecordResponse{
		ID:               r.ID,
		CreatedAt:        r.CreatedAt.Format(timeFormat),
		RequestID:        r.RequestID,
		Features:         features,
		Prediction:       r.PredictedClass,
		PredictionLabel:  string(r.Label),
		FraudProbability: r.FraudProbability,
		RiskLevel:        string(r.RiskLevel),
		ModelVersion:     r.ModelVersion,
	}
}
