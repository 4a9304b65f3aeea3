package model

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/doda2025-team8/model-service/internal/backend"
	"github.com/doda2025-team8/model-service/internal/config"
	"github.com/doda2025-team8/model-service/internal/config/source"
	"github.com/doda2025-team8/model-service/internal/envvar"
	"github.com/doda2025-team8/model-service/internal/xfs"
)

// DefaultLockTimeout bounds how long a fetch waits for another process that
// is downloading the same artifact.
const DefaultLockTimeout = 10 * time.Minute

// Deserializer turns a cached artifact file into an in-memory object.
type Deserializer interface {
	Deserialize(name, path string) (any, error)
}

// Manager makes artifacts available: it serves them from the cache, fetches
// them on a miss and deserializes them. It never terminates the process.
type Manager struct {
	cache        *Cache
	downloader   source.Downloader
	deserializer Deserializer
	registry     *Registry
	release      config.ReleaseConfig
	lockTimeout  time.Duration
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithDownloader replaces the release downloader.
func WithDownloader(d source.Downloader) ManagerOption {
	return func(m *Manager) {
		m.downloader = d
	}
}

// WithLockTimeout sets how long to wait for a concurrent fetch of the same artifact.
func WithLockTimeout(timeout time.Duration) ManagerOption {
	return func(m *Manager) {
		m.lockTimeout = timeout
	}
}

// NewManager creates the models directory and a Manager for it.
func NewManager(cfg *config.Config, deserializer Deserializer, opts ...ManagerOption) (*Manager, error) {
	dir := xfs.ExpandTilde(cfg.Storage.ModelsDir)
	if err := source.EnsureModelsDirectory(dir); err != nil {
		return nil, fmt.Errorf("failed to prepare models directory %s: %w", dir, err)
	}

	cache := NewCache(dir, cfg.Release.Extension)

	m := &Manager{
		cache:        cache,
		deserializer: deserializer,
		registry:     NewRegistry(),
		release:      cfg.Release,
		lockTimeout:  DefaultLockTimeout,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.downloader == nil {
		m.downloader = source.NewGitHubReleaseDownloader(cfg.Release, cache)
	}

	slog.Info("Model manager initialized", "models_dir", dir, "repo", cfg.Release.Repo, "version", cfg.Release.Version)

	return m, nil
}

// Cache returns the artifact cache.
func (m *Manager) Cache() *Cache {
	return m.cache
}

// Registry returns the artifact registry.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// LoadAll loads the preprocessor and then the model, stopping at the first
// failure, and returns them as a Bundle.
func (m *Manager) LoadAll(ctx context.Context) (*Bundle, error) {
	slog.Info("Loading SMS Spam Classifier Models")

	slog.Info("[1/2] Loading preprocessor...")
	obj, err := m.EnsureAndLoad(ctx, ArtifactPreprocessor)
	if err != nil {
		return nil, err
	}

	preprocessor, ok := obj.(backend.Preprocessor)
	if !ok {
		return nil, m.loadFailed(ArtifactPreprocessor, fmt.Errorf("%T cannot transform input", obj))
	}

	slog.Info("[2/2] Loading model...")
	obj, err = m.EnsureAndLoad(ctx, ArtifactModel)
	if err != nil {
		return nil, err
	}

	classifier, ok := obj.(backend.Classifier)
	if !ok {
		return nil, m.loadFailed(ArtifactModel, fmt.Errorf("%T cannot predict", obj))
	}

	_, probabilistic := classifier.(backend.ProbabilityEstimator)
	slog.Info("All models loaded successfully", "probabilities", probabilistic)

	return NewBundle(preprocessor, classifier), nil
}

// EnsureAndLoad returns the deserialized artifact name, fetching it first if
// it is not cached. A deserialization failure is never retried as a miss.
func (m *Manager) EnsureAndLoad(ctx context.Context, name string) (any, error) {
	path := m.cache.ResolvePath(name)
	m.registry.Set(NewArtifactInstance(name, path))

	if m.cache.IsCached(name) {
		m.transition(name, StatusCacheHit, SourceCache)
	} else {
		slog.Info("Artifact not found in cache", "artifact", m.cache.FileName(name), "models_dir", m.cache.Dir())
		m.transition(name, StatusCacheMiss, "")

		if err := m.fetch(ctx, name); err != nil {
			m.fail(name, err)
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, &AcquisitionError{
				Artifact: name,
				File:     m.cache.FileName(name),
				Stage:    StageFetch,
				Err:      err,
				Hints:    m.hints(),
			}
		}
	}

	if size, ok := m.cache.Stat(name); ok {
		_ = m.registry.Update(name, func(ai *ArtifactInstance) { ai.Size = size })
	}

	m.transition(name, StatusDeserializing, "")

	obj, err := m.deserializer.Deserialize(name, path)
	if err != nil {
		slog.Error("Failed to load artifact", "artifact", name, "path", path, "error", err)
		return nil, m.loadFailed(name, err)
	}

	m.transition(name, StatusLoaded, "")
	slog.Info("Artifact loaded successfully", "artifact", m.cache.FileName(name))

	return obj, nil
}

// fetch downloads name while holding its advisory lock. If another process
// populated the cache while we waited, the download is skipped.
func (m *Manager) fetch(ctx context.Context, name string) error {
	lockPath := filepath.Join(m.cache.Dir(), ".locks", name+".lock")

	lock, err := acquireLock(ctx, lockPath, m.lockTimeout)
	if err != nil {
		if ctx.Err() != nil {
			return err
		}
		slog.Warn("Failed to lock artifact, fetching without lock", "artifact", name, "error", err)
	} else {
		defer func() {
			if err := lock.Unlock(); err != nil {
				slog.Warn("Failed to release artifact lock", "artifact", name, "error", err)
			}
		}()

		if m.cache.IsCached(name) {
			slog.Info("Artifact was fetched by another process", "artifact", name)
			m.transition(name, StatusCacheHit, SourceCache)
			return nil
		}
	}

	m.transition(name, StatusFetching, "")

	if _, err := m.downloader.Fetch(ctx, name); err != nil {
		return err
	}

	m.transition(name, StatusFetched, SourceRelease)

	return nil
}

func (m *Manager) loadFailed(name string, err error) *AcquisitionError {
	err = fmt.Errorf("%w: %s: %w", ErrLoadFailed, m.cache.ResolvePath(name), err)
	m.fail(name, err)

	return &AcquisitionError{
		Artifact: name,
		File:     m.cache.FileName(name),
		Stage:    StageLoad,
		Err:      err,
		Hints:    m.hints(),
	}
}

func (m *Manager) transition(name string, status ArtifactStatus, src ArtifactSource) {
	_ = m.registry.Update(name, func(ai *ArtifactInstance) {
		ai.SetStatus(status)
		if src != "" {
			ai.Source = src
		}
	})
}

func (m *Manager) fail(name string, err error) {
	_ = m.registry.Update(name, func(ai *ArtifactInstance) {
		ai.SetError(err)
	})
}

// hints returns the three remediation options shown on acquisition failure.
func (m *Manager) hints() []Hint {
	return []Hint{
		{
			Title:   "Mount models manually",
			Example: fmt.Sprintf("docker run -v /path/to/output:%s ...", m.cache.Dir()),
		},
		{
			Title:   "Check GitHub releases",
			Example: m.release.ReleasesPage(),
		},
		{
			Title:   fmt.Sprintf("Set correct %s", envvar.ModelVersion),
			Example: fmt.Sprintf("docker run -e %s=v1.0.0 ...", envvar.ModelVersion),
		},
	}
}
