package source

import (
	"errors"
	"fmt"
)

// Error definitions for the source package.
var (
	ErrArtifactNotFound = errors.New("artifact not found in release store")
	ErrTransferFailed   = errors.New("artifact transfer failed")
)

// FetchError describes a failed download. Kind is ErrArtifactNotFound or
// ErrTransferFailed; both Kind and Err match with errors.Is.
type FetchError struct {
	Kind       error
	Name       string
	URL        string
	StatusCode int
	Err        error
}

// Error returns the message naming the artifact and the attempted URL.
func (e *FetchError) Error() string {
	if e.Kind == ErrArtifactNotFound {
		return fmt.Sprintf("artifact %s not found at %s: publish it in a release or mount it into the cache directory manually", e.Name, e.URL)
	}

	if e.Err == nil {
		return fmt.Sprintf("failed to download artifact %s from %s", e.Name, e.URL)
	}

	return fmt.Sprintf("failed to download artifact %s from %s: %v", e.Name, e.URL, e.Err)
}

// Unwrap exposes both the kind and the underlying cause.
func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

func notFound(name, url string) *FetchError {
	return &FetchError{Kind: ErrArtifactNotFound, Name: name, URL: url, StatusCode: 404}
}

func transferFailed(name, url string, status int, err error) *FetchError {
	return &FetchError{Kind: ErrTransferFailed, Name: name, URL: url, StatusCode: status, Err: err}
}
