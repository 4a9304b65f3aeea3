package backend

// Vector is a sparse feature vector keyed by feature index.
type Vector map[int]float64

// Preprocessor turns raw messages into feature vectors.
type Preprocessor interface {
	// Transform converts each input text into a feature vector.
	Transform(texts []string) ([]Vector, error)
}

// Classifier is the mandatory capability of a loaded model.
type Classifier interface {
	// Predict returns one label per feature vector.
	Predict(x []Vector) ([]string, error)
}

// ProbabilityEstimator is an optional capability for classifiers that can
// report a class distribution. Check for it with a type assertion.
type ProbabilityEstimator interface {
	Classifier

	// Classes returns the labels in the order used by PredictProba.
	Classes() []string

	// PredictProba returns one probability distribution per feature vector.
	PredictProba(x []Vector) ([][]float64, error)
}

// Describer is an optional capability for artifacts that carry a display name.
type Describer interface {
	Describe() string
}
