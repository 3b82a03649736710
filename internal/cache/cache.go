// Package cache stores marshalled analysis results keyed by source content
// hash. Analysis is a pure function of its input text, so identical bytes
// always map to the identical result and entries never invalidate.
//
// Lookups go through an in-memory cache first; misses fall back to a sqlite
// database so results survive across runs.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/maypok86/otter"
)

const createResultsTable = `
CREATE TABLE IF NOT EXISTS analysis_results (
	source_hash TEXT PRIMARY KEY,
	result      BLOB NOT NULL,
	created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// Cache is a two-tier result cache. Safe for concurrent use.
type Cache struct {
	db     *sql.DB
	memory otter.Cache[string, []byte]
}

// Key returns the cache key for a source unit: hex SHA-256 of its bytes.
func Key(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

// DefaultLocation returns the default cache directory, ~/.pyaudit/cache.
func DefaultLocation() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".pyaudit", "cache")
}

// Open creates or opens the cache at the given directory. An empty dir
// selects the default location. memoryCapacity bounds the in-memory tier.
func Open(dir string, memoryCapacity int) (*Cache, error) {
	if dir == "" {
		dir = DefaultLocation()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, "results.db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	if _, err := db.Exec(createResultsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	if memoryCapacity <= 0 {
		memoryCapacity = 1024
	}
	memory, err := otter.MustBuilder[string, []byte](memoryCapacity).Build()
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to build memory cache: %w", err)
	}

	return &Cache{db: db, memory: memory}, nil
}

// Get returns the cached result for a key, if present.
func (c *Cache) Get(key string) ([]byte, bool, error) {
	if data, ok := c.memory.Get(key); ok {
		return data, true, nil
	}

	var data []byte
	err := c.db.QueryRow("SELECT result FROM analysis_results WHERE source_hash = ?", key).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache lookup failed: %w", err)
	}

	c.memory.Set(key, data)
	return data, true, nil
}

// Put stores a result under its key. Replacing an existing entry is a no-op
// in practice: the same key always carries the same result bytes.
func (c *Cache) Put(key string, result []byte) error {
	if _, err := c.db.Exec(
		"INSERT OR REPLACE INTO analysis_results (source_hash, result) VALUES (?, ?)",
		key, result,
	); err != nil {
		return fmt.Errorf("cache store failed: %w", err)
	}
	c.memory.Set(key, result)
	return nil
}

// Len reports the number of persisted entries.
func (c *Cache) Len() (int, error) {
	var count int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM analysis_results").Scan(&count); err != nil {
		return 0, fmt.Errorf("cache count failed: %w", err)
	}
	return count, nil
}

// Close releases both tiers.
func (c *Cache) Close() error {
	c.memory.Close()
	return c.db.Close()
}
