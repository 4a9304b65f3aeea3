package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/doda2025-team8/model-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type dirResolver string

func (d dirResolver) ResolvePath(name string) string {
	return filepath.Join(string(d), name+".joblib")
}

func testRelease(baseURL, version string) config.ReleaseConfig {
	return config.ReleaseConfig{
		Repo:      "acme/spam",
		Version:   version,
		BaseURL:   baseURL,
		Extension: ".joblib",
		Timeout:   2 * time.Second,
	}
}

func TestGitHubReleaseDownloader_URL(t *testing.T) {
	latest := NewGitHubReleaseDownloader(testRelease("https://github.com/", "latest"), dirResolver(t.TempDir()))
	assert.Equal(t,
		"https://github.com/acme/spam/releases/latest/download/preprocessor.joblib",
		latest.URL("preprocessor"))

	pinned := NewGitHubReleaseDownloader(testRelease("https://github.com", "v1.0.0"), dirResolver(t.TempDir()))
	assert.Equal(t,
		"https://github.com/acme/spam/releases/download/v1.0.0/model.joblib",
		pinned.URL("model"))
}

func TestGitHubReleaseDownloader_Fetch(t *testing.T) {
	requested := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested <- r.URL.Path
		_, _ = w.Write([]byte("model-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	var last Progress
	d := NewGitHubReleaseDownloader(testRelease(srv.URL, "v2"), dirResolver(dir),
		WithProgress(func(p Progress) { last = p }))

	path, err := d.Fetch(context.Background(), "model")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "model.joblib"), path)
	assert.Equal(t, "/acme/spam/releases/download/v2/model.joblib", <-requested)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "model-bytes", string(data))

	assert.Equal(t, "model", last.Artifact)
	assert.EqualValues(t, 11, last.BytesDone)
	assert.EqualValues(t, 11, last.BytesTotal)
	assert.InDelta(t, 100.0, last.Percent(), 0.001)
}

func TestGitHubReleaseDownloader_FetchUnknownSize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("part-1 "))
		w.(http.Flusher).Flush()
		_, _ = w.Write([]byte("part-2"))
	}))
	defer srv.Close()

	var last Progress
	d := NewGitHubReleaseDownloader(testRelease(srv.URL, "latest"), dirResolver(t.TempDir()),
		WithProgress(func(p Progress) { last = p }))

	path, err := d.Fetch(context.Background(), "preprocessor")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "part-1 part-2", string(data))
	assert.EqualValues(t, -1, last.BytesTotal)
	assert.EqualValues(t, -1, last.Percent())
}

func TestGitHubReleaseDownloader_FetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	dir := t.TempDir()
	d := NewGitHubReleaseDownloader(testRelease(srv.URL, "latest"), dirResolver(dir))

	_, err := d.Fetch(context.Background(), "preprocessor")
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrArtifactNotFound))
	assert.False(t, errors.Is(err, ErrTransferFailed))
	assert.Contains(t, err.Error(), d.URL("preprocessor"))
	assert.Contains(t, err.Error(), "mount it into the cache directory manually")

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Equal(t, "preprocessor", fetchErr.Name)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGitHubReleaseDownloader_FetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	d := NewGitHubReleaseDownloader(testRelease(srv.URL, "latest"), dirResolver(t.TempDir()))

	_, err := d.Fetch(context.Background(), "model")
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrTransferFailed))
	assert.False(t, errors.Is(err, ErrArtifactNotFound))
	assert.Contains(t, err.Error(), d.URL("model"))
	assert.Contains(t, err.Error(), "502")
}

func TestGitHubReleaseDownloader_FetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	d := NewGitHubReleaseDownloader(testRelease(baseURL, "latest"), dirResolver(t.TempDir()))

	_, err := d.Fetch(context.Background(), "model")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransferFailed))
	assert.False(t, errors.Is(err, ErrArtifactNotFound))
}

func TestGitHubReleaseDownloader_FetchHeaderTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	release := testRelease(srv.URL, "latest")
	release.Timeout = 100 * time.Millisecond
	d := NewGitHubReleaseDownloader(release, dirResolver(t.TempDir()))

	_, err := d.Fetch(context.Background(), "model")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransferFailed))
}

func TestGitHubReleaseDownloader_FetchStalledBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "64")
		_, _ = w.Write([]byte("partial"))
		w.(http.Flusher).Flush()

		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	dir := t.TempDir()
	release := testRelease(srv.URL, "latest")
	release.Timeout = 100 * time.Millisecond
	d := NewGitHubReleaseDownloader(release, dirResolver(dir))

	_, err := d.Fetch(context.Background(), "model")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransferFailed))
	assert.Contains(t, err.Error(), "no data received")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "partial downloads must not be left in the cache")
}

func TestGitHubReleaseDownloader_FetchTruncatedBodyKeepsPreviousFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "64")
		_, _ = w.Write([]byte("short"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	existing := filepath.Join(dir, "model.joblib")
	require.NoError(t, os.WriteFile(existing, []byte("old"), 0o644))

	d := NewGitHubReleaseDownloader(testRelease(srv.URL, "latest"), dirResolver(dir))

	_, err := d.Fetch(context.Background(), "model")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTransferFailed))

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestFetchError_Messages(t *testing.T) {
	nf := notFound("model", "https://example.test/model.joblib")
	assert.True(t, strings.HasPrefix(nf.Error(), "artifact model not found at https://example.test/model.joblib"))

	cause := errors.New("connection reset")
	tf := transferFailed("model", "https://example.test/model.joblib", 0, cause)
	assert.Equal(t, "failed to download artifact model from https://example.test/model.joblib: connection reset", tf.Error())
	assert.True(t, errors.Is(tf, cause))
}

func TestLogProgress_UnknownSizeIsSilent(t *testing.T) {
	fn := LogProgress()
	assert.NotPanics(t, func() {
		fn(Progress{Artifact: "model", BytesDone: 10, BytesTotal: -1})
		fn(Progress{Artifact: "model", BytesDone: 5, BytesTotal: 10})
		fn(Progress{Artifact: "model", BytesDone: 10, BytesTotal: 10})
	})
}
