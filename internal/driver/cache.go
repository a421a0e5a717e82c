package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"fixit/internal/diag"
	"fixit/internal/source"
	"fixit/internal/version"
)

// Current schema version - increment when cachePayload changes.
const resultCacheSchema uint16 = 1

// CacheKey identifies one lint result: content, rule set, suppression
// mode and the fixit build.
type CacheKey [sha256.Size]byte

func NewCacheKey(file *source.File, codes []diag.Code, useIgnoreComments bool) CacheKey {
	h := sha256.New()
	h.Write([]byte(strconv.Itoa(int(resultCacheSchema))))
	h.Write([]byte{0})
	h.Write([]byte(version.Version))
	h.Write([]byte{0})
	h.Write([]byte(file.Path))
	h.Write([]byte{0})
	h.Write(file.Hash[:])
	for _, c := range codes {
		h.Write([]byte(c))
		h.Write([]byte{0})
	}
	if useIgnoreComments {
		h.Write([]byte{1})
	}
	var k CacheKey
	copy(k[:], h.Sum(nil))
	return k
}

// ResultCache stores lint results on disk as msgpack files.
// Thread-safe for concurrent access.
type ResultCache struct {
	mu  sync.RWMutex
	dir string
}

type cachePayload struct {
	Schema      uint16
	Diagnostics []diag.Diagnostic
}

// OpenResultCache opens $XDG_CACHE_HOME/<app> (~/.cache/<app> by default).
func OpenResultCache(app string) (*ResultCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewResultCache(filepath.Join(base, app))
}

// NewResultCache uses dir as is.
func NewResultCache(dir string) (*ResultCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ResultCache{dir: dir}, nil
}

func (c *ResultCache) pathFor(key CacheKey) string {
	hexKey := hex.EncodeToString(key[:])
	// двухсимвольные подкаталоги, чтобы не держать тысячи файлов в одном
	return filepath.Join(c.dir, "results", hexKey[:2], hexKey+".mp")
}

// Put stores diags under key, replacing the file atomically.
func (c *ResultCache) Put(key CacheKey, diags []diag.Diagnostic) error {
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
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(&cachePayload{Schema: resultCacheSchema, Diagnostics: diags}); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get returns the stored diagnostics. A payload from another schema is a miss.
func (c *ResultCache) Get(key CacheKey) ([]diag.Diagnostic, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload cachePayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != resultCacheSchema {
		return nil, false, nil
	}
	return payload.Diagnostics, true, nil
}

// DropAll removes every stored result.
func (c *ResultCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "results"))
}
