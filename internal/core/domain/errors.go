package domain

import "errors"

// ============================================================================
// Model Artifact Errors
// ============================================================================

var (
	ErrArtifactNotFound  = errors.New("model artifact not found")
	ErrArtifactCorrupt   = errors.New("model artifact is corrupt")
	ErrArtifactNotLoaded = errors.New("model artifact not loaded")
)

// ============================================================================
// Prediction Errors
// ============================================================================

// Validation errors
var (
	ErrInvalidFeatureVector = errors.New("invalid feature vector")
	ErrInvalidOperation     = errors.New("invalid operation")
	ErrDivisionByZero       = errors.New("division by zero")
	ErrInvalidMessage       = errors.New("message text must be between 1 and 500 characters")
	ErrInvalidPriority      = errors.New("priority must be between 1 and 5")
	ErrInvalidItemID        = errors.New("item id must be a positive integer")
	ErrInvalidFilter        = errors.New("invalid filter")
)

// Inference errors
var (
	ErrInferenceFailed = errors.New("inference failed")
)

// ============================================================================
// Prediction Store Errors
// ============================================================================

var (
	ErrPredictionNotFound      = errors.New("prediction record not found")
	ErrPredictionStoreDisabled = errors.New("prediction store is disabled")
)
