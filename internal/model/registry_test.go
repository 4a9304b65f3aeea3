package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_SetGetList(t *testing.T) {
	reg := NewRegistry()
	reg.Set(NewArtifactInstance("preprocessor", "/m/preprocessor.joblib"))
	reg.Set(NewArtifactInstance("model", "/m/model.joblib"))

	got, ok := reg.Get("model")
	require.True(t, ok)
	assert.Equal(t, StatusUnresolved, got.Status)

	// Ensure a missing artifact returns false
	_, ok = reg.Get("missing")
	assert.False(t, ok)

	list := reg.List()
	require.Len(t, list, 2)
	assert.Equal(t, "model", list[0].Name)
	assert.Equal(t, "preprocessor", list[1].Name)
}

func TestRegistry_UpdateAndSnapshots(t *testing.T) {
	reg := NewRegistry()
	reg.Set(NewArtifactInstance("model", "/m/model.joblib"))

	snapshot, _ := reg.Get("model")

	require.NoError(t, reg.Update("model", func(ai *ArtifactInstance) {
		ai.SetStatus(StatusCacheHit)
		ai.SetStatus(StatusDeserializing)
		ai.SetStatus(StatusLoaded)
	}))

	got, _ := reg.Get("model")
	assert.Equal(t, StatusLoaded, got.Status)
	assert.NotNil(t, got.LoadedAt)
	assert.Equal(t, []ArtifactStatus{StatusUnresolved, StatusCacheHit, StatusDeserializing, StatusLoaded}, got.Transitions)

	// Earlier snapshots are unaffected.
	assert.Equal(t, []ArtifactStatus{StatusUnresolved}, snapshot.Transitions)

	err := reg.Update("missing", func(*ArtifactInstance) {})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestArtifactInstance_SetError(t *testing.T) {
	ai := NewArtifactInstance("model", "/m/model.joblib")
	ai.SetError(errors.New("boom"))

	assert.Equal(t, StatusFailed, ai.Status)
	assert.Equal(t, "boom", ai.Error)
	assert.Nil(t, ai.LoadedAt)
}
