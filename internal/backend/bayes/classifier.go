// Package bayes implements a multinomial naive Bayes classifier artifact.
package bayes

import (
	"errors"
	"fmt"
	"math"

	"github.com/doda2025-team8/model-service/internal/backend"
	"go.yaml.in/yaml/v3"
)

// Kind is the artifact kind handled by this package.
const Kind = "multinomial-nb"

// ErrZeroLikelihood is returned when an input has zero probability under every class.
var ErrZeroLikelihood = errors.New("input has zero likelihood under every class")

type document struct {
	Kind           string      `yaml:"kind"`
	Name           string      `yaml:"name"`
	Classes        []string    `yaml:"classes"`
	ClassLogPrior  []float64   `yaml:"class_log_prior"`
	FeatureLogProb [][]float64 `yaml:"feature_log_prob"`
}

// Classifier implements backend.ProbabilityEstimator.
type Classifier struct {
	name           string
	classes        []string
	classLogPrior  []float64
	featureLogProb [][]float64
	features       int
}

// Decode builds a Classifier from its serialized document.
func Decode(data []byte) (any, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", backend.ErrInvalidArtifact, err)
	}

	if doc.Kind != Kind {
		return nil, fmt.Errorf("%w: expected kind %s, got %q", backend.ErrInvalidArtifact, Kind, doc.Kind)
	}

	n := len(doc.Classes)
	if n < 2 {
		return nil, fmt.Errorf("%w: need at least two classes, got %d", backend.ErrInvalidArtifact, n)
	}
	if len(doc.ClassLogPrior) != n || len(doc.FeatureLogProb) != n {
		return nil, fmt.Errorf("%w: class_log_prior and feature_log_prob must have one entry per class", backend.ErrInvalidArtifact)
	}

	features := len(doc.FeatureLogProb[0])
	if features == 0 {
		return nil, fmt.Errorf("%w: feature_log_prob rows are empty", backend.ErrInvalidArtifact)
	}
	for i, row := range doc.FeatureLogProb {
		if len(row) != features {
			return nil, fmt.Errorf("%w: feature_log_prob row %d has %d features, expected %d", backend.ErrInvalidArtifact, i, len(row), features)
		}
		if !validLogProbs(row) {
			return nil, fmt.Errorf("%w: feature_log_prob row %d contains NaN or +Inf", backend.ErrInvalidArtifact, i)
		}
	}
	if !validLogProbs(doc.ClassLogPrior) {
		return nil, fmt.Errorf("%w: class_log_prior contains NaN or +Inf", backend.ErrInvalidArtifact)
	}

	name := doc.Name
	if name == "" {
		name = "multinomial naive bayes"
	}

	return &Classifier{
		name:           name,
		classes:        doc.Classes,
		classLogPrior:  doc.ClassLogPrior,
		featureLogProb: doc.FeatureLogProb,
		features:       features,
	}, nil
}

// validLogProbs reports whether every value is a log-probability. -Inf is a
// zero probability and is allowed.
func validLogProbs(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 1) {
			return false
		}
	}
	return true
}

// Register adds the classifier decoder to r.
func Register(r *backend.Registry) error {
	return r.Register(Kind, Decode)
}

// Describe returns the classifier display name.
func (c *Classifier) Describe() string {
	return c.name
}

// Classes implements backend.ProbabilityEstimator.
func (c *Classifier) Classes() []string {
	out := make([]string, len(c.classes))
	copy(out, c.classes)
	return out
}

// Predict implements backend.Classifier.
func (c *Classifier) Predict(x []backend.Vector) ([]string, error) {
	labels := make([]string, 0, len(x))

	for _, vec := range x {
		scores, err := c.jointLogLikelihood(vec)
		if err != nil {
			return nil, err
		}

		best := 0
		for i := range scores {
			if scores[i] > scores[best] {
				best = i
			}
		}
		labels = append(labels, c.classes[best])
	}

	return labels, nil
}

// PredictProba implements backend.ProbabilityEstimator.
func (c *Classifier) PredictProba(x []backend.Vector) ([][]float64, error) {
	out := make([][]float64, 0, len(x))

	for _, vec := range x {
		scores, err := c.jointLogLikelihood(vec)
		if err != nil {
			return nil, err
		}

		// log-sum-exp keeps tiny likelihoods from underflowing.
		maxScore := math.Inf(-1)
		for _, s := range scores {
			maxScore = math.Max(maxScore, s)
		}

		var sum float64
		probs := make([]float64, len(scores))
		for i, s := range scores {
			probs[i] = math.Exp(s - maxScore)
			sum += probs[i]
		}
		for i := range probs {
			probs[i] /= sum
		}

		out = append(out, probs)
	}

	return out, nil
}

func (c *Classifier) jointLogLikelihood(vec backend.Vector) ([]float64, error) {
	scores := make([]float64, len(c.classes))
	copy(scores, c.classLogPrior)

	for idx, count := range vec {
		if idx < 0 || idx >= c.features {
			return nil, fmt.Errorf("feature index %d out of range [0, %d)", idx, c.features)
		}
		// 0 * -Inf is NaN.
		if count == 0 {
			continue
		}
		for k := range scores {
			scores[k] += count * c.featureLogProb[k][idx]
		}
	}

	for _, s := range scores {
		if !math.IsInf(s, -1) {
			return scores, nil
		}
	}

	return nil, ErrZeroLikelihood
}
