package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/doda2025-team8/model-service/internal/backend"
	"github.com/doda2025-team8/model-service/internal/model"
)

// DefaultClassifierName is reported when the loaded model does not describe itself.
const DefaultClassifierName = "decision tree"

// ErrEmptyMessage is returned when there is no message to classify.
var ErrEmptyMessage = errors.New("empty message")

// Prediction is the result of classifying one message.
type Prediction struct {
	Confidence *float64
	Label      string
	Classifier string
	SMS        string
}

// Classifier is a service abstraction for SMS spam classification.
type Classifier struct {
	bundle *model.Bundle
	name   string
}

// NewClassifier creates a new Classifier service over a loaded bundle.
func NewClassifier(bundle *model.Bundle) *Classifier {
	name := DefaultClassifierName
	if d, ok := bundle.Classifier().(backend.Describer); ok {
		name = d.Describe()
	}

	return &Classifier{
		bundle: bundle,
		name:   name,
	}
}

// Name returns the display name of the loaded model.
func (s *Classifier) Name() string {
	return s.name
}

// Classify labels sms. Confidence is set only when the model can report
// class probabilities, and is rounded to four decimals.
func (s *Classifier) Classify(ctx context.Context, sms string) (*Prediction, error) {
	if strings.TrimSpace(sms) == "" {
		return nil, ErrEmptyMessage
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	vectors, err := s.bundle.Preprocessor().Transform([]string{sms})
	if err != nil {
		return nil, fmt.Errorf("failed to preprocess message: %w", err)
	}

	labels, err := s.bundle.Classifier().Predict(vectors)
	if err != nil {
		return nil, fmt.Errorf("failed to predict: %w", err)
	}
	if len(labels) != 1 {
		return nil, fmt.Errorf("failed to predict: expected 1 label, got %d", len(labels))
	}

	p := &Prediction{
		Label:      labels[0],
		Classifier: s.name,
		SMS:        sms,
	}

	if pe, ok := s.bundle.Probabilities(); ok {
		probs, err := pe.PredictProba(vectors)
		if err != nil {
			return nil, fmt.Errorf("failed to compute probabilities: %w", err)
		}
		if len(probs) == 1 && len(probs[0]) > 0 {
			confidence := round4(maxOf(probs[0]))
			p.Confidence = &confidence
		}
	}

	attrs := []any{"result", p.Label, "classifier", p.Classifier}
	if p.Confidence != nil {
		attrs = append(attrs, "confidence", *p.Confidence)
	}
	slog.InfoContext(ctx, "Prediction", attrs...)

	return p, nil
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		m = math.Max(m, v)
	}
	return m
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
