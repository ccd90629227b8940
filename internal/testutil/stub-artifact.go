package testutil

import (
	"sync/atomic"
)

// StubArtifact answers every row with a fixed class and distribution.
type StubArtifact struct {
	KindName      string
	Class         int
	Probabilities []float64
	ClassifyErr   error
	EstimateErr   error

	ClassifyCalls atomic.Int32
	EstimateCalls atomic.Int32
}

// NewStubArtifact returns a stub that always predicts class with probs.
func NewStubArtifact(class int, probs ...float64) *StubArtifact {
	return &StubArtifact{KindName: "stub", Class: class, Probabilities: probs}
}

func (s *StubArtifact) Kind() string { return s.KindName }

func (s *StubArtifact) Classify(batch [][]float64) ([]int, error) {
	s.ClassifyCalls.Add(1)
	if s.ClassifyErr != nil {
		return nil, s.ClassifyErr
	}
	out := make([]int, len(batch))
	for i := range batch {
		out[i] = s.Class
	}
	return out, nil
}

func (s *StubArtifact) EstimateProbabilities(batch [][]float64) ([][]float64, error) {
	s.EstimateCalls.Add(1)
	if s.EstimateErr != nil {
		return nil, s.EstimateErr
	}
	out := make([][]float64, len(batch))
	for i := range batch {
		row := make([]float64, len(s.Probabilities))
		copy(row, s.Probabilities)
		out[i] = row
	}
	return out, nil
}
