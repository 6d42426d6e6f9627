package recent

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketRecent = []byte("recent_formats")
	keyFormats   = []byte("formats")
)

// BoltCache persists the recent-format list in a local bbolt file so the slot
// survives between CLI sessions.
type BoltCache struct {
	db *bolt.DB
}

// OpenBolt opens (creating if needed) the database file backing the cache.
func OpenBolt(path string) (*BoltCache, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("recent: db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("recent: open db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRecent)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("recent: init schema: %w", err)
	}
	return &BoltCache{db: db}, nil
}

// Load reads the stored list; a missing key yields an empty list.
func (c *BoltCache) Load() ([]string, error) {
	var formats []string
	err := c.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(bucketRecent).Get(keyFormats)
		if raw == nil {
			return nil
		}
		return json.Unmarshal(raw, &formats)
	})
	if err != nil {
		return nil, fmt.Errorf("recent: load: %w", err)
	}
	return formats, nil
}

// Store replaces the stored list.
func (c *BoltCache) Store(formats []string) error {
	raw, err := json.Marshal(formats)
	if err != nil {
		return fmt.Errorf("recent: encode: %w", err)
	}
	err = c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRecent).Put(keyFormats, raw)
	})
	if err != nil {
		return fmt.Errorf("recent: store: %w", err)
	}
	return nil
}

// Close releases the underlying database file.
func (c *BoltCache) Close() error {
	return c.db.Close()
}
