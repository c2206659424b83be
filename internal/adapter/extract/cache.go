package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"

	"personarank/internal/domain"
)

var bucketPages = []byte("pages")

// Cache persists extracted pages keyed by file identity (absolute path,
// modification time, size), so unchanged documents are not re-parsed across
// runs. Only raw page text is stored; embeddings never are.
type Cache struct {
	db *bbolt.DB
}

// OpenCache opens (or creates) the extraction cache at path.
func OpenCache(path string) (*Cache, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketPages)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Cache{db: db}, nil
}

type cacheEntry struct {
	Pages []domain.Page `json:"pages"`
}

// Get returns cached pages for the file, or ok=false when the file is not
// cached or has changed since it was cached.
func (c *Cache) Get(path string) ([]domain.Page, bool) {
	key, err := cacheKey(path)
	if err != nil {
		return nil, false
	}

	var entry cacheEntry
	found := false
	c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketPages).Get(key)
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &entry); err != nil {
			return nil
		}
		found = true
		return nil
	})
	if !found {
		return nil, false
	}
	return entry.Pages, true
}

// Put stores extracted pages under the file's current identity.
func (c *Cache) Put(path string, pages []domain.Page) error {
	key, err := cacheKey(path)
	if err != nil {
		return err
	}

	data, err := json.Marshal(cacheEntry{Pages: pages})
	if err != nil {
		return err
	}

	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketPages).Put(key, data)
	})
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// cacheKey builds the identity key: path changes, content-size changes, and
// mtime changes all invalidate the entry.
func cacheKey(path string) ([]byte, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf("%s|%d|%d", abs, info.ModTime().UnixNano(), info.Size())), nil
}
