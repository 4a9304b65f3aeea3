package model

import (
	"time"
)

// Required artifact names, loaded in this order.
const (
	ArtifactPreprocessor = "preprocessor"
	ArtifactModel        = "model"
)

// ArtifactStatus is the acquisition state of an artifact.
type ArtifactStatus string

const (
	StatusUnresolved    ArtifactStatus = "unresolved"
	StatusCacheHit      ArtifactStatus = "cache_hit"
	StatusCacheMiss     ArtifactStatus = "cache_miss"
	StatusFetching      ArtifactStatus = "fetching"
	StatusFetched       ArtifactStatus = "fetched"
	StatusDeserializing ArtifactStatus = "deserializing"
	StatusLoaded        ArtifactStatus = "loaded"
	StatusFailed        ArtifactStatus = "failed"
)

// ArtifactSource records where the bytes of a loaded artifact came from.
type ArtifactSource string

const (
	SourceCache   ArtifactSource = "cache"
	SourceRelease ArtifactSource = "release"
)

// ArtifactInstance tracks one artifact through acquisition.
type ArtifactInstance struct {
	LoadedAt    *time.Time       `json:"loaded_at,omitempty"`
	Name        string           `json:"name"`
	Path        string           `json:"path"`
	Size        int64            `json:"size"`
	Source      ArtifactSource   `json:"source,omitempty"`
	Status      ArtifactStatus   `json:"status"`
	Transitions []ArtifactStatus `json:"transitions"`
	Error       string           `json:"error,omitempty"`
}

// NewArtifactInstance creates an unresolved artifact instance.
func NewArtifactInstance(name, path string) *ArtifactInstance {
	return &ArtifactInstance{
		Name:        name,
		Path:        path,
		Status:      StatusUnresolved,
		Transitions: []ArtifactStatus{StatusUnresolved},
	}
}

// SetStatus sets the status of the artifact instance.
func (ai *ArtifactInstance) SetStatus(status ArtifactStatus) {
	ai.Status = status
	ai.Transitions = append(ai.Transitions, status)
	if status == StatusLoaded {
		now := time.Now()
		ai.LoadedAt = &now
	}
}

// SetError marks the instance failed with err.
func (ai *ArtifactInstance) SetError(err error) {
	ai.Error = err.Error()
	ai.SetStatus(StatusFailed)
}

// clone returns a copy that does not share the transitions slice.
func (ai *ArtifactInstance) clone() ArtifactInstance {
	c := *ai
	c.Transitions = append([]ArtifactStatus(nil), ai.Transitions...)
	return c
}
