// Package cache provides the advisory on-disk cache of extracted
// catalog trees, keyed by catalog reference and version. The cache is
// purely advisory: callers always re-parse the files found at a cached
// path and never assume freshness.
package cache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/hashstructure/v2"
	"github.com/otiai10/copy"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// catalogIdentity is the hash input for cache keys.
type catalogIdentity struct {
	Catalog string
	Version string
}

// Key derives the cache key for a catalog reference and version. The
// same inputs always hash to the same key, so repeat lookups for one
// catalog land in one directory.
func Key(catalogRef, version string) (string, error) {
	h, err := hashstructure.Hash(catalogIdentity{Catalog: catalogRef, Version: version}, hashstructure.FormatV2, nil)
	if err != nil {
		return "", fmt.Errorf("hash catalog identity: %w", err)
	}
	return fmt.Sprintf("%x", h), nil
}

// Cache is a directory-backed catalog cache.
type Cache struct {
	fs  afero.Fs
	dir string
}

// New returns a Cache rooted at dir, creating it if needed. A nil fs
// defaults to the operating system filesystem.
func New(fs afero.Fs, dir string) (*Cache, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &Cache{fs: fs, dir: dir}, nil
}

// Has reports whether a catalog tree is cached under key.
func (c *Cache) Has(key string) bool {
	ok, err := afero.DirExists(c.fs, c.path(key))
	if err != nil {
		logrus.Debugf("cache lookup for key %q: %v", key, err)
		return false
	}
	return ok
}

// Path returns the directory a cached catalog tree lives at for key.
// The path is returned whether or not anything is cached there;
// callers check Has first.
func (c *Cache) Path(key string) string {
	return c.path(key)
}

// Store copies an extracted catalog tree into the cache under key,
// replacing any previous content for that key. The otiai10 copier only
// reaches the operating system filesystem, so other backends copy
// through afero.
func (c *Cache) Store(key, srcDir string) error {
	dst := c.path(key)
	if err := c.fs.RemoveAll(dst); err != nil {
		return fmt.Errorf("clear cache entry %q: %w", key, err)
	}
	var err error
	if _, ok := c.fs.(*afero.OsFs); ok {
		err = copy.Copy(srcDir, dst)
	} else {
		err = copyDir(c.fs, srcDir, dst)
	}
	if err != nil {
		return fmt.Errorf("store cache entry %q: %w", key, err)
	}
	logrus.Debugf("cached catalog tree at %q", dst)
	return nil
}

// copyDir recursively copies src to dst within fs.
func copyDir(fs afero.Fs, src, dst string) error {
	return afero.Walk(fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return fs.MkdirAll(target, info.Mode().Perm())
		}
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return err
		}
		return afero.WriteFile(fs, target, data, info.Mode().Perm())
	})
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key)
}
