package model

import (
	"time"

	"github.com/doda2025-team8/model-service/internal/backend"
)

// Bundle holds the loaded artifacts. It is immutable once built and safe to
// share between request handlers.
type Bundle struct {
	preprocessor backend.Preprocessor
	classifier   backend.Classifier
	loadedAt     time.Time
}

// NewBundle creates a bundle from already-loaded artifacts.
func NewBundle(preprocessor backend.Preprocessor, classifier backend.Classifier) *Bundle {
	return &Bundle{
		preprocessor: preprocessor,
		classifier:   classifier,
		loadedAt:     time.Now(),
	}
}

// Preprocessor returns the loaded preprocessor.
func (b *Bundle) Preprocessor() backend.Preprocessor {
	return b.preprocessor
}

// Classifier returns the loaded model.
func (b *Bundle) Classifier() backend.Classifier {
	return b.classifier
}

// Probabilities returns the model's probability capability, if it has one.
func (b *Bundle) Probabilities() (backend.ProbabilityEstimator, bool) {
	pe, ok := b.classifier.(backend.ProbabilityEstimator)
	return pe, ok
}

// LoadedAt returns when the bundle was assembled.
func (b *Bundle) LoadedAt() time.Time {
	return b.loadedAt
}
