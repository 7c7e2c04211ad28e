package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/cardgrid/internal/domain"
)

// Bucket names
var (
	bucketSession = []byte("session")
	bucketPages   = []byte("pages")
)

const keyLocation = "location"

// BrowseStore implements domain.Store using BoltDB.
type BrowseStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

// NewBrowseStore opens the store under baseCacheDir, namespaced by source so
// two listing services never share pages. An empty dir keeps everything in memory.
func NewBrowseStore(baseCacheDir, sourceID string) (*BrowseStore, error) {
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return &BrowseStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if sourceID != "" {
		dir = filepath.Join(baseCacheDir, hashSourceID(sourceID))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "cardgrid.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSession, bucketPages} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BrowseStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashSourceID(sourceID string) string {
	normalized := strings.TrimRight(strings.ToLower(sourceID), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *BrowseStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *BrowseStore) get(bucket []byte, key string, dest interface{}) bool {
	cacheKey := string(bucket) + ":" + key

	// Check memory cache first
	s.mu.RLock()
	if data, ok := s.cache[cacheKey]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *BrowseStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	cacheKey := string(bucket) + ":" + key

	s.mu.Lock()
	s.cache[cacheKey] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (s *BrowseStore) remove(bucket []byte, key string) error {
	s.mu.Lock()
	delete(s.cache, string(bucket)+":"+key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Delete([]byte(key))
	})
}

// === Location ===

// Location returns the last saved location
func (s *BrowseStore) Location() (string, bool) {
	var location string
	ok := s.get(bucketSession, keyLocation, &location)
	return location, ok
}

// SaveLocation replaces the saved location
func (s *BrowseStore) SaveLocation(location string) error {
	return s.set(bucketSession, keyLocation, location)
}

// === Pages ===

// GetPage returns a cached page by its encoded query
func (s *BrowseStore) GetPage(key string) (domain.CachedPage, bool) {
	var page domain.CachedPage
	ok := s.get(bucketPages, key, &page)
	return page, ok
}

// SavePage stores a page with the time it was fetched
func (s *BrowseStore) SavePage(key string, cards []domain.Card, fetchedAt time.Time) error {
	if cards == nil {
		cards = []domain.Card{}
	}
	return s.set(bucketPages, key, domain.CachedPage{Cards: cards, FetchedAt: fetchedAt})
}

// DeletePage removes one cached page
func (s *BrowseStore) DeletePage(key string) error {
	return s.remove(bucketPages, key)
}

// PrunePages removes every page fetched before cutoff, from memory and disk
func (s *BrowseStore) PrunePages(cutoff time.Time) (int, error) {
	prefix := string(bucketPages) + ":"
	stale := make(map[string]bool)

	s.mu.Lock()
	for k, data := range s.cache {
		if strings.HasPrefix(k, prefix) && fetchedBefore(data, cutoff) {
			delete(s.cache, k)
			stale[strings.TrimPrefix(k, prefix)] = true
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return len(stale), nil
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketPages)
		var keys [][]byte
		err := b.ForEach(func(k, v []byte) error {
			if fetchedBefore(v, cutoff) {
				keys = append(keys, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}
		// Deleting inside ForEach is not allowed
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
			stale[string(k)] = true
		}
		return nil
	})
	return len(stale), err
}

// fetchedBefore reports whether an encoded page is older than cutoff.
// Entries that no longer decode count as stale.
func fetchedBefore(data []byte, cutoff time.Time) bool {
	var page domain.CachedPage
	if err := json.Unmarshal(data, &page); err != nil {
		return true
	}
	return page.FetchedAt.Before(cutoff)
}

// InvalidateAll drops every cached page. The saved location is kept.
func (s *BrowseStore) InvalidateAll() {
	s.mu.Lock()
	prefix := string(bucketPages) + ":"
	for k := range s.cache {
		if strings.HasPrefix(k, prefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return
	}

	s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketPages); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		_, err := tx.CreateBucket(bucketPages)
		return err
	})
}
