package config

import (
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 256

// Cache remembers the config for each directory. It is safe for
// concurrent use; two goroutines missing the same key may both load it.
type Cache struct {
	entries *lru.Cache[string, *Config]
	load    func(dir string) (*Config, error)
}

// NewCache returns a cache holding at most size directories
// (size <= 0 picks a default).
func NewCache(size int) *Cache {
	if size <= 0 {
		size = defaultCacheSize
	}
	entries, err := lru.New[string, *Config](size)
	if err != nil {
		// только при size <= 0
		panic(err)
	}
	return &Cache{entries: entries, load: LoadFor}
}

// Get returns the config for dir, loading it on a miss. Errors are not cached.
func (c *Cache) Get(dir string) (*Config, error) {
	key, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if cfg, ok := c.entries.Get(key); ok {
		return cfg, nil
	}
	cfg, err := c.load(key)
	if err != nil {
		return nil, err
	}
	c.entries.Add(key, cfg)
	return cfg, nil
}

// Invalidate drops everything, e.g. after a config file changed.
func (c *Cache) Invalidate() {
	c.entries.Purge()
}

// Len is the number of cached directories.
func (c *Cache) Len() int {
	return c.entries.Len()
}
