package domain

import (
	"fmt"
	"math"
)

// FeatureCount is the width of the vector the fraud model was trained on.
const FeatureCount = 12

// FeatureNames lists the positional layout of a FeatureVector.
var FeatureNames = [FeatureCount]string{
	"Time",
	"V1", "V2", "V3", "V4", "V5",
	"V6", "V7", "V8", "V9", "V10",
	"Amount",
}

// FeatureVector is the ordered model input: Time, V1..V10, Amount.
type FeatureVector [FeatureCount]float64

// NewFeatureVector copies values into a FeatureVector after checking arity
// and that every entry is a finite number.
func NewFeatureVector(values []float64) (FeatureVector, error) {
	var fv FeatureVector
	if len(values) != FeatureCount {
		return fv, fmt.Errorf("%w: expected %d values, got %d", ErrInvalidFeatureVector, FeatureCount, len(values))
	}
	copy(fv[:], values)
	if err := fv.Validate(); err != nil {
		return FeatureVector{}, err
	}
	return fv, nil
}

// Validate rejects NaN and infinite entries.
func (fv FeatureVector) Validate() error {
	for i, v := range fv {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidFeatureVector, FeatureNames[i])
		}
	}
	return nil
}

// Row returns the vector as a slice, the shape artifacts consume.
func (fv FeatureVector) Row() []float64 {
	row := make([]float64, FeatureCount)
	copy(row, fv[:])
	return row
}

// Amount returns the transaction amount entry.
func (fv FeatureVector) Amount() float64 {
	return fv[FeatureCount-1]
}

// Transaction is a named-field view of one card transaction.
type Transaction struct {
	Time   float64
	V1     float64
	V2     float64
	V3     float64
	V4     float64
	V5     float64
	V6     float64
	V7     float64
	V8     float64
	V9     float64
	V10    float64
	Amount float64
}

// Vector assembles the transaction in the order the model expects.
func (t Transaction) Vector() (FeatureVector, error) {
	return NewFeatureVector([]float64{
		t.Time,
		t.V1, t.V2, t.V3, t.V4, t.V5,
		t.V6, t.V7, t.V8, t.V9, t.V10,
		t.Amount,
	})
}
