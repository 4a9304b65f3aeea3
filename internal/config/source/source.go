package source

import (
	"context"
	"fmt"
	"net/http"
	"os"
)

// Downloader fetches a named artifact into the local cache.
type Downloader interface {
	// Fetch downloads name and returns the cache path it was stored at.
	Fetch(ctx context.Context, name string) (string, error)
}

// PathResolver maps an artifact name to its cache path.
type PathResolver interface {
	ResolvePath(name string) string
}

// HTTPClient is the interface for HTTP operations.
// *http.Client satisfies this interface.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// EnsureModelsDirectory creates dir and any missing parents.
func EnsureModelsDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create models directory: %w", err)
	}

	return nil
}
