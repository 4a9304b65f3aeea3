package bayes

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/doda2025-team8/model-service/internal/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDocument = `
kind: multinomial-nb
name: sms-spam-nb
classes: [ham, spam]
class_log_prior: [` + ftoa(math.Log(0.5)) + `, ` + ftoa(math.Log(0.5)) + `]
feature_log_prob:
  - [` + ftoa(math.Log(0.1)) + `, ` + ftoa(math.Log(0.9)) + `]
  - [` + ftoa(math.Log(0.8)) + `, ` + ftoa(math.Log(0.2)) + `]
`

func decode(t *testing.T, doc string) *Classifier {
	t.Helper()

	obj, err := Decode([]byte(doc))
	require.NoError(t, err)

	c, ok := obj.(*Classifier)
	require.True(t, ok)

	return c
}

func TestClassifier_Predict(t *testing.T) {
	c := decode(t, testDocument)

	labels, err := c.Predict([]backend.Vector{{0: 3}, {1: 2}, {}})
	require.NoError(t, err)

	// The empty vector ties on the equal priors and resolves to the first class.
	assert.Equal(t, []string{"spam", "ham", "ham"}, labels)
	assert.Equal(t, "sms-spam-nb", c.Describe())
	assert.Equal(t, []string{"ham", "spam"}, c.Classes())
}

func TestClassifier_PredictProba(t *testing.T) {
	c := decode(t, testDocument)

	probs, err := c.PredictProba([]backend.Vector{{0: 1}})
	require.NoError(t, err)
	require.Len(t, probs, 1)

	// P(spam|x) = 0.8 / (0.8 + 0.1)
	assert.InDelta(t, 0.1/0.9, probs[0][0], 1e-9)
	assert.InDelta(t, 0.8/0.9, probs[0][1], 1e-9)
	assert.InDelta(t, 1.0, probs[0][0]+probs[0][1], 1e-9)
}

func TestClassifier_LargeCountsDoNotUnderflow(t *testing.T) {
	c := decode(t, testDocument)

	probs, err := c.PredictProba([]backend.Vector{{0: 5000, 1: 5000}})
	require.NoError(t, err)

	assert.False(t, math.IsNaN(probs[0][0]))
	assert.InDelta(t, 1.0, probs[0][0]+probs[0][1], 1e-9)
}

func TestClassifier_OutOfRangeFeature(t *testing.T) {
	c := decode(t, testDocument)

	_, err := c.Predict([]backend.Vector{{7: 1}})
	assert.ErrorContains(t, err, "out of range")
}

func TestClassifier_SatisfiesCapabilities(t *testing.T) {
	var obj any = decode(t, testDocument)

	_, ok := obj.(backend.ProbabilityEstimator)
	assert.True(t, ok)
	_, ok = obj.(backend.Describer)
	assert.True(t, ok)
}

func TestDecode_Invalid(t *testing.T) {
	testCases := map[string]string{
		"single class":   "kind: multinomial-nb\nclasses: [ham]\nclass_log_prior: [0]\nfeature_log_prob: [[0]]\n",
		"prior mismatch": "kind: multinomial-nb\nclasses: [ham, spam]\nclass_log_prior: [0]\nfeature_log_prob: [[0], [0]]\n",
		"ragged rows":    "kind: multinomial-nb\nclasses: [ham, spam]\nclass_log_prior: [0, 0]\nfeature_log_prob: [[0, 1], [0]]\n",
		"wrong kind":     "kind: text-vectorizer\n",
		"nan feature":    "kind: multinomial-nb\nclasses: [ham, spam]\nclass_log_prior: [0, 0]\nfeature_log_prob: [[.nan], [0]]\n",
		"positive inf":   "kind: multinomial-nb\nclasses: [ham, spam]\nclass_log_prior: [.inf, 0]\nfeature_log_prob: [[0], [0]]\n",
	}

	for name, doc := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(doc))
			assert.True(t, errors.Is(err, backend.ErrInvalidArtifact), "got %v", err)
		})
	}
}

// zeroDocument gives feature 0 zero probability under both classes.
const zeroDocument = `
kind: multinomial-nb
classes: [ham, spam]
class_log_prior: [-0.69, -0.69]
feature_log_prob:
  - [-.inf, -0.1]
  - [-.inf, -2.3]
`

func TestClassifier_ZeroLikelihood(t *testing.T) {
	c := decode(t, zeroDocument)

	_, err := c.PredictProba([]backend.Vector{{0: 1}})
	assert.ErrorIs(t, err, ErrZeroLikelihood)

	_, err = c.Predict([]backend.Vector{{0: 2, 1: 1}})
	assert.ErrorIs(t, err, ErrZeroLikelihood)
}

func TestClassifier_ZeroCountsAreIgnored(t *testing.T) {
	c := decode(t, zeroDocument)

	probs, err := c.PredictProba([]backend.Vector{{0: 0, 1: 1}})
	require.NoError(t, err)
	require.Len(t, probs, 1)

	for _, p := range probs[0] {
		assert.False(t, math.IsNaN(p))
	}
	assert.InDelta(t, 1.0, probs[0][0]+probs[0][1], 1e-9)
	assert.Greater(t, probs[0][0], probs[0][1])
}

func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
