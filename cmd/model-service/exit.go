package main

import (
	"errors"

	"github.com/doda2025-team8/model-service/internal/config/source"
	"github.com/doda2025-team8/model-service/internal/model"
)

// CLI exit codes.
const (
	ExitSuccess = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError = 1

	// ExitArtifactNotFound indicates an artifact is missing from the release.
	ExitArtifactNotFound = 3

	// ExitTransferFailed indicates a network or download failure.
	ExitTransferFailed = 5

	// ExitLoadFailed indicates a cached artifact could not be deserialized.
	ExitLoadFailed = 6
)

// exitCodeFromError maps error types to exit codes.
func exitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, source.ErrArtifactNotFound):
		return ExitArtifactNotFound
	case errors.Is(err, source.ErrTransferFailed):
		return ExitTransferFailed
	case errors.Is(err, model.ErrLoadFailed):
		return ExitLoadFailed
	default:
		return ExitGeneralError
	}
}
