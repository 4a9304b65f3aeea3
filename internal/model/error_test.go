package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcquisitionError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &AcquisitionError{
		Artifact: "preprocessor",
		File:     "preprocessor.joblib",
		Stage:    StageFetch,
		Err:      cause,
		Hints: []Hint{
			{Title: "Mount models manually", Example: "docker run -v /path/to/output:/app/models ..."},
			{Title: "Check GitHub releases", Example: "https://github.com/acme/spam/releases"},
			{Title: "Set correct MODEL_VERSION", Example: "docker run -e MODEL_VERSION=v1.0.0 ..."},
		},
	}

	assert.Equal(t, "could not fetch preprocessor.joblib: connection refused", err.Error())
	assert.True(t, errors.Is(err, cause))

	diag := err.Diagnostic()
	assert.Contains(t, diag, "ERROR: Could not load preprocessor.joblib")
	assert.Contains(t, diag, "Reason: connection refused")
	assert.Contains(t, diag, "1. Mount models manually:\n   docker run -v /path/to/output:/app/models ...")
	assert.Contains(t, diag, "2. Check GitHub releases:\n   https://github.com/acme/spam/releases")
	assert.Contains(t, diag, "3. Set correct MODEL_VERSION:")
	assert.Equal(t, 3, strings.Count(diag, strings.Repeat("=", 60)))
}
