package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/doda2025-team8/model-service/internal/config"
	"github.com/doda2025-team8/model-service/internal/xfs"
)

// GitHubReleaseDownloader downloads artifacts attached to GitHub releases.
type GitHubReleaseDownloader struct {
	release    config.ReleaseConfig
	resolver   PathResolver
	httpClient HTTPClient
	progressFn func(Progress)
}

// Option configures a GitHubReleaseDownloader.
type Option func(*GitHubReleaseDownloader)

// WithHTTPClient sets a custom HTTP client. Useful for testing with mock servers.
func WithHTTPClient(client HTTPClient) Option {
	return func(d *GitHubReleaseDownloader) {
		d.httpClient = client
	}
}

// WithProgress sets a callback for progress updates during download. Without
// one, every transfer logs each 10% step.
func WithProgress(fn func(Progress)) Option {
	return func(d *GitHubReleaseDownloader) {
		d.progressFn = fn
	}
}

// NewGitHubReleaseDownloader creates a downloader for the given release that
// stores artifacts at the paths chosen by resolver.
func NewGitHubReleaseDownloader(release config.ReleaseConfig, resolver PathResolver, opts ...Option) *GitHubReleaseDownloader {
	if release.Timeout <= 0 {
		release.Timeout = config.DefaultFetchTimeout
	}
	if release.BaseURL == "" {
		release.BaseURL = config.DefaultBaseURL
	}
	release.BaseURL = strings.TrimRight(release.BaseURL, "/")

	d := &GitHubReleaseDownloader{
		release:  release,
		resolver: resolver,
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.httpClient == nil {
		d.httpClient = newHTTPClient(release.Timeout)
	}

	return d
}

// URL returns the single download URL tried for name.
func (d *GitHubReleaseDownloader) URL(name string) string {
	file := url.PathEscape(name + d.release.Extension)

	if d.release.IsLatest() {
		return fmt.Sprintf("%s/%s/releases/latest/download/%s", d.release.BaseURL, d.release.Repo, file)
	}

	return fmt.Sprintf("%s/%s/releases/download/%s/%s", d.release.BaseURL, d.release.Repo, url.PathEscape(d.release.Version), file)
}

// Fetch streams the artifact into the cache and returns its path.
// A 404 yields ErrArtifactNotFound; anything else that goes wrong yields
// ErrTransferFailed. The cache path is only replaced once the transfer completes.
func (d *GitHubReleaseDownloader) Fetch(ctx context.Context, name string) (string, error) {
	u := d.URL(name)
	dest := d.resolver.ResolvePath(name)

	slog.Info("Downloading artifact", "artifact", name, "version", d.release.Version, "url", u)

	reqCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return "", transferFailed(name, u, 0, err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", transferFailed(name, u, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		slog.Error("Artifact not found in release store", "artifact", name, "url", u)
		return "", notFound(name, u)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", transferFailed(name, u, resp.StatusCode, fmt.Errorf("unexpected status %s", resp.Status))
	}

	// The transport bounds connecting and waiting for headers; a stalled body
	// is bounded here by cancelling the request when no bytes arrive in time.
	var stalled atomic.Bool
	timer := time.AfterFunc(d.release.Timeout, func() {
		stalled.Store(true)
		cancel()
	})
	defer timer.Stop()

	total := resp.ContentLength
	if total < 0 {
		total = -1
	}

	onProgress := d.progressFn
	if onProgress == nil {
		onProgress = LogProgress()
	}

	body := &progressReader{
		reader:     &stallReader{reader: resp.Body, timer: timer, timeout: d.release.Timeout},
		progress:   Progress{Artifact: name, BytesTotal: total},
		onProgress: onProgress,
	}

	n, err := xfs.WriteFileAtomic(dest, body)
	if err != nil {
		if stalled.Load() {
			err = fmt.Errorf("no data received for %s: %w", d.release.Timeout, err)
		}
		return "", transferFailed(name, u, resp.StatusCode, err)
	}

	slog.Info("Artifact downloaded successfully", "artifact", name, "path", dest, "bytes", n)

	return dest, nil
}

// stallReader pushes the stall deadline forward on every read.
type stallReader struct {
	reader  io.Reader
	timer   *time.Timer
	timeout time.Duration
}

func (s *stallReader) Read(p []byte) (int, error) {
	n, err := s.reader.Read(p)
	if n > 0 {
		s.timer.Reset(s.timeout)
	}
	return n, err
}

func newHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = (&net.Dialer{
		Timeout:   timeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.TLSHandshakeTimeout = timeout
	transport.ResponseHeaderTimeout = timeout

	return &http.Client{Transport: transport}
}
