package adapter

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	m "github.com/mouse-blink/butterfly/internal/model"
)

// CacheSchema is bumped whenever the encoded entry layout changes. Entries
// written with another schema are treated as misses.
const CacheSchema = 1

const cacheExt = ".msgpack.zst"

// TransformCache stores pipeline outcomes keyed by content and options.
type TransformCache interface {
	Get(key string) (m.CacheEntry, bool, error)
	Put(key string, entry m.CacheEntry) error
	Clear() error
}

// LocalTransformCache keeps one zstd compressed msgpack file per key.
type LocalTransformCache struct {
	dir m.Path
}

// NewTransformCache returns a cache rooted at dir.
func NewTransformCache(dir m.Path) *LocalTransformCache {
	return &LocalTransformCache{dir: dir}
}

// CacheKey derives a cache key from its parts.
func CacheKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))

	return hex.EncodeToString(sum[:])
}

// Get returns the entry stored under key.
func (c *LocalTransformCache) Get(key string) (m.CacheEntry, bool, error) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return m.CacheEntry{}, false, nil
		}

		return m.CacheEntry{}, false, fmt.Errorf("read cache entry: %w", err)
	}

	raw, err := decompress(data)
	if err != nil {
		return m.CacheEntry{}, false, err
	}

	var entry m.CacheEntry
	if err := msgpack.Unmarshal(raw, &entry); err != nil {
		return m.CacheEntry{}, false, fmt.Errorf("decode cache entry: %w", err)
	}

	if entry.Schema != CacheSchema {
		return m.CacheEntry{}, false, nil
	}

	return entry, true, nil
}

// Put stores entry under key. The file is written next to its final name
// and renamed into place.
func (c *LocalTransformCache) Put(key string, entry m.CacheEntry) error {
	entry.Schema = CacheSchema

	raw, err := msgpack.Marshal(&entry)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	target := c.path(key)
	if err := os.MkdirAll(filepath.Dir(target), 0o750); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), filepath.Base(target)+".*")
	if err != nil {
		return fmt.Errorf("create cache entry: %w", err)
	}

	if _, err := tmp.Write(compress(raw)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("write cache entry: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("close cache entry: %w", err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("commit cache entry: %w", err)
	}

	return nil
}

// Clear removes every entry.
func (c *LocalTransformCache) Clear() error {
	if err := os.RemoveAll(string(c.dir)); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	return nil
}

func (c *LocalTransformCache) path(key string) string {
	shard := "00"
	if len(key) >= 2 {
		shard = key[:2]
	}

	return filepath.Join(string(c.dir), shard, key+cacheExt)
}
