package model

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/doda2025-team8/model-service/internal/xfs"
)

// Cache maps artifact names to files inside the models directory.
// A present file is trusted as-is; its contents are not validated.
type Cache struct {
	dir string
	ext string
}

// NewCache creates a cache rooted at dir whose files carry extension ext.
func NewCache(dir, ext string) *Cache {
	return &Cache{dir: dir, ext: ext}
}

// Dir returns the models directory.
func (c *Cache) Dir() string {
	return c.dir
}

// FileName returns the base name of the cached file for name.
func (c *Cache) FileName(name string) string {
	return name + c.ext
}

// ResolvePath returns the cache path of name. It never touches the disk.
func (c *Cache) ResolvePath(name string) string {
	return filepath.Join(c.dir, c.FileName(name))
}

// Stat returns the size of the cached file if it is a readable regular file.
func (c *Cache) Stat(name string) (int64, bool) {
	path := c.ResolvePath(name)

	size, ok := xfs.RegularFileSize(path)
	if !ok {
		return 0, false
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	f.Close()

	return size, true
}

// IsCached reports whether name is present in the cache.
func (c *Cache) IsCached(name string) bool {
	size, ok := c.Stat(name)
	if ok {
		slog.Info("Found cached artifact", "artifact", name, "file", c.FileName(name), "bytes", size)
	}

	return ok
}
