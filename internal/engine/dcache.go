package engine

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when cachePayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache remembers which file contents are already clean for a given rule
// library, keyed by the sha256 of the content. Переписывание идемпотентно и
// ключ содержательный: любая правка файла меняет ключ, так что протухнуть
// кэш не может — только потерять актуальность вместе с fingerprint правил.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16
	// Fingerprint of the rule library the verdict was computed against
	Fingerprint string
	Clean       bool
	CheckedAt   time.Time
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// OpenDiskCacheAt returns a disk cache rooted at an explicit directory (tests).
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог "clean" — для удобства очистки руками.
	return filepath.Join(c.dir, "clean", hexKey+".mp")
}

// MarkClean records that content with the given hash needs no fixes under the
// given rule fingerprint.
func (c *DiskCache) MarkClean(key [32]byte, fingerprint string) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	payload := cachePayload{
		Schema:      diskCacheSchemaVersion,
		Fingerprint: fingerprint,
		Clean:       true,
		CheckedAt:   time.Now(),
	}
	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(&payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// IsClean reports whether content with the given hash was proven clean for
// the given rule fingerprint. Cache misses and stale entries are not errors.
func (c *DiskCache) IsClean(key [32]byte, fingerprint string) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()

	var payload cachePayload
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(&payload); err != nil {
		// повреждённая запись — просто промах
		return false, nil
	}
	if payload.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	if payload.Fingerprint != fingerprint {
		return false, nil
	}
	return payload.Clean, nil
}

// Clear removes every cached verdict.
func (c *DiskCache) Clear() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.RemoveAll(filepath.Join(c.dir, "clean")); err != nil {
		return fmt.Errorf("clear disk cache: %w", err)
	}
	return nil
}
