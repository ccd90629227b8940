package artifact

import (
	"math"
)

type logisticParams struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Threshold    *float64  `json:"threshold,omitempty"`
}

const defaultThreshold = 0.5

// LogisticRegression scores p(fraud) = sigmoid(w·x + b) and predicts fraud
// when that probability reaches the threshold.
type LogisticRegression struct {
	nFeatures    int
	coefficients []float64
	intercept    float64
	threshold    float64
}

func newLogisticRegression(nFeatures int, p logisticParams) (*LogisticRegression, error) {
	if len(p.Coefficients) != nFeatures {
		return nil, corrupt("logistic regression has %d coefficients, expected %d", len(p.Coefficients), nFeatures)
	}
	for i, c := range p.Coefficients {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, corrupt("coefficient %d is not finite", i)
		}
	}
	if math.IsNaN(p.Intercept) || math.IsInf(p.Intercept, 0) {
		return nil, corrupt("intercept is not finite")
	}

	threshold := defaultThreshold
	if p.Threshold != nil {
		threshold = *p.Threshold
	}
	if !(threshold > 0 && threshold <= 1) {
		return nil, corrupt("threshold %v outside (0, 1]", threshold)
	}

	coefficients := make([]float64, len(p.Coefficients))
	copy(coefficients, p.Coefficients)

	return &LogisticRegression{
		nFeatures:    nFeatures,
		coefficients: coefficients,
		intercept:    p.Intercept,
		threshold:    threshold,
	}, nil
}

func (m *LogisticRegression) Kind() string { return KindLogisticRegression }

func (m *LogisticRegression) Classify(batch [][]float64) ([]int, error) {
	probs, err := m.EstimateProbabilities(batch)
	if err != nil {
		return nil, err
	}
	classes := make([]int, len(probs))
	for i, p := range probs {
		if p[1] >= m.threshold {
			classes[i] = 1
		}
	}
	return classes, nil
}

func (m *LogisticRegression) EstimateProbabilities(batch [][]float64) ([][]float64, error) {
	if err := checkBatch(batch, m.nFeatures); err != nil {
		return nil, err
	}
	out := make([][]float64, len(batch))
	for i, row := range batch {
		z := m.intercept
		for j, x := range row {
			z += m.coefficients[j] * x
		}
		p := sigmoid(z)
		out[i] = []float64{1 - p, p}
	}
	return out, nil
}

// sigmoid is evaluated in the numerically stable branch for each sign of z.
func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}
