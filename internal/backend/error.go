package backend

import "errors"

// Error definitions for the backend package.
var (
	ErrNotFound          = errors.New("artifact kind not found in registry")
	ErrAlreadyRegistered = errors.New("artifact kind is already registered in the registry")
	ErrMissingKind       = errors.New("artifact document has no kind")
	ErrInvalidArtifact   = errors.New("invalid artifact document")
)
