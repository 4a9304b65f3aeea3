//go:build !windows

package model

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// fileLock serializes fetches of one artifact across processes sharing a
// models directory, using flock() advisory locking.
type fileLock struct {
	file *os.File
}

// acquireLock blocks until the lock at path is held, ctx is done or timeout
// expires. The lock file and its directory are created if missing.
func acquireLock(ctx context.Context, path string, timeout time.Duration) (*fileLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	deadline := time.Now().Add(timeout)
	sleep := 10 * time.Millisecond

	for {
		err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
		if err == nil {
			return &fileLock{file: file}, nil
		}

		if time.Now().After(deadline) {
			file.Close()
			return nil, fmt.Errorf("lock timeout after %v", timeout)
		}

		select {
		case <-ctx.Done():
			file.Close()
			return nil, ctx.Err()
		case <-time.After(sleep):
		}

		if sleep < 500*time.Millisecond {
			sleep *= 2
		}
	}
}

// Unlock releases the lock. Safe to call multiple times.
func (l *fileLock) Unlock() error {
	if l.file == nil {
		return nil
	}

	err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
	l.file.Close()
	l.file = nil

	return err
}
