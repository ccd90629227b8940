package artifact

import (
	"bytes"
	"fmt"

	"sigs.k8s.io/yaml"

	"fraud-scoring-service/internal/core/domain"
	"fraud-scoring-service/internal/core/ports/output"
)

const (
	KindLogisticRegression = "logistic_regression"
	KindDecisionTree       = "decision_tree"
	KindRandomForest       = "random_forest"
)

// envelope is the on-disk layout of a model artifact. JSON and YAML are
// both accepted.
type envelope struct {
	Kind      string          `json:"kind"`
	NFeatures int             `json:"n_features"`
	Classes   []int           `json:"classes,omitempty"`
	Logistic  *logisticParams `json:"logistic,omitempty"`
	Trees     []treeParams    `json:"trees,omitempty"`
}

// Decode parses artifact bytes into a ready-to-use classifier.
// Every failure wraps domain.ErrArtifactCorrupt.
func Decode(data []byte) (ports.Artifact, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, corrupt("empty artifact")
	}

	var env envelope
	if err := yaml.UnmarshalStrict(data, &env); err != nil {
		return nil, corrupt("parse: %v", err)
	}

	if env.NFeatures != domain.FeatureCount {
		return nil, corrupt("n_features is %d, expected %d", env.NFeatures, domain.FeatureCount)
	}
	if env.Classes != nil && !binaryClasses(env.Classes) {
		return nil, corrupt("classes must be [0, 1], got %v", env.Classes)
	}

	switch env.Kind {
	case KindLogisticRegression:
		if env.Logistic == nil {
			return nil, corrupt("%s artifact has no logistic section", env.Kind)
		}
		return newLogisticRegression(env.NFeatures, *env.Logistic)
	case KindDecisionTree:
		if len(env.Trees) != 1 {
			return nil, corrupt("%s artifact needs exactly one tree, got %d", env.Kind, len(env.Trees))
		}
		return newDecisionTree(env.NFeatures, env.Trees[0])
	case KindRandomForest:
		return newRandomForest(env.NFeatures, env.Trees)
	case "":
		return nil, corrupt("artifact kind is missing")
	default:
		return nil, corrupt("unsupported artifact kind %q", env.Kind)
	}
}

// Decoder exposes Decode as a ports.ArtifactDecoder.
var Decoder ports.ArtifactDecoder = ports.ArtifactDecoderFunc(Decode)

func binaryClasses(classes []int) bool {
	return len(classes) == 2 && classes[0] == domain.ClassLegitimate && classes[1] == domain.ClassFraud
}

func corrupt(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", domain.ErrArtifactCorrupt, fmt.Sprintf(format, args...))
}

func checkBatch(batch [][]float64, width int) error {
	for i, row := range batch {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d values, expected %d", domain.ErrInvalidFeatureVector, i, len(row), width)
		}
	}
	return nil
}

// argmax returns the index of the largest probability; ties go to the lower class.
func argmax(probs []float64) int {
	best := 0
	for i := 1; i < len(probs); i++ {
		if probs[i] > probs[best] {
			best = i
		}
	}
	return best
}
