//go:build windows

package model

import (
	"context"
	"time"
)

// fileLock is a no-op on Windows; the atomic rename of downloads still keeps
// readers from observing partial files.
type fileLock struct{}

func acquireLock(_ context.Context, _ string, _ time.Duration) (*fileLock, error) {
	return &fileLock{}, nil
}

// Unlock releases the lock.
func (l *fileLock) Unlock() error {
	return nil
}
