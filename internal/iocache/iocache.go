// Package iocache keeps fetched tables on disk, so an interrupted
// migration resumes without querying the source again.
//
// Each value is stored as a gzip-compressed gob file named after its key.
// A value is written to a temporary file first and renamed when complete,
// so a crash never leaves a truncated cache entry behind.
package iocache

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/gnfmt"
	"github.com/gnames/symbdb/internal/iofs"
	"github.com/gnames/symbdb/pkg/lifecycle"
)

// Ext is the extension of cache files.
const Ext = ".gob.gz"

type cache struct {
	dir string
	enc gnfmt.GNgob
}

// New creates a cache in dir. The directory is created on first Store.
func New(dir string) lifecycle.Cache {
	return &cache{dir: dir}
}

// Path returns the file that stores key.
func Path(dir, key string) string {
	return filepath.Join(dir, key+Ext)
}

func (c *cache) Load(key string, v any) (bool, error) {
	path := Path(c.dir, key)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, ReadError(key, path, err)
	}
	defer f.Close()

	zr, err := gzip.NewReader(f)
	if err != nil {
		return false, ReadError(key, path, err)
	}
	defer zr.Close()

	data, err := io.ReadAll(zr)
	if err != nil {
		return false, ReadError(key, path, err)
	}

	if err = c.enc.Decode(data, v); err != nil {
		return false, ReadError(key, path, err)
	}

	slog.Info("Loaded from cache", "key", key, "path", path)
	return true, nil
}

func (c *cache) Store(key string, v any) error {
	path := Path(c.dir, key)
	if err := iofs.TouchDir(c.dir); err != nil {
		return WriteError(key, path, err)
	}

	data, err := c.enc.Encode(v)
	if err != nil {
		return WriteError(key, path, err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err = zw.Write(data); err != nil {
		return WriteError(key, path, err)
	}
	if err = zw.Close(); err != nil {
		return WriteError(key, path, err)
	}

	tmp, err := os.CreateTemp(c.dir, key+".*.tmp")
	if err != nil {
		return WriteError(key, path, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err = tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return WriteError(key, path, err)
	}
	if err = tmp.Close(); err != nil {
		return WriteError(key, path, err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return WriteError(key, path, err)
	}

	slog.Info("Stored in cache", "key", key, "path", path, "bytes", buf.Len())
	return nil
}

// Clear removes cache files. Other files in the directory are kept.
func (c *cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return ClearError(c.dir, err)
	}

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Ext) {
			continue
		}
		if err = os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return ClearError(c.dir, err)
		}
	}
	slog.Info("Cache cleared", "dir", c.dir)
	return nil
}
