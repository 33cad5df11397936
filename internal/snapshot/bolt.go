package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pokerfloor/pokerfloor/internal/clock"
	"go.etcd.io/bbolt"
)

const snapshotBucket = "clock_snapshots"

// BoltStore implements Store on a local BoltDB file.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(dbPath string) (*BoltStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory %s: %w", dir, err)
	}

	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store at %s: %w", dbPath, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(snapshotBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(key string) (clock.Snapshot, bool, error) {
	var snap clock.Snapshot
	var found bool

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return nil
		}
		data := bucket.Get([]byte(key))
		if data == nil {
			return nil
		}
		found = true
		return json.Unmarshal(data, &snap)
	})
	if err != nil {
		return clock.Snapshot{}, false, fmt.Errorf("failed to get snapshot %s: %w", key, err)
	}
	return snap, found, nil
}

func (s *BoltStore) Put(key string, snap clock.Snapshot) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return fmt.Errorf("bucket %s does not exist", snapshotBucket)
		}
		data, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot: %w", err)
		}
		return bucket.Put([]byte(key), data)
	})
}

func (s *BoltStore) Delete(key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(snapshotBucket))
		if bucket == nil {
			return nil
		}
		return bucket.Delete([]byte(key))
	})
}

func (s *BoltStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
