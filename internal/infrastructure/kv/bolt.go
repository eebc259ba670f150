package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/doeshing/textpolish/internal/domain"
	"github.com/doeshing/textpolish/internal/ports"
)

var slotsBucket = []byte("slots")

// BoltStore keeps slots in a single bbolt bucket.
type BoltStore struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the bbolt file at path. A second process holding the
// file lock makes Open fail after one second instead of blocking.
func OpenBolt(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, err
	}
	db, err := bolt.Open(path, domain.SecureFilePermissions, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(slotsBucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

// Path returns the database file.
func (b *BoltStore) Path() string {
	return b.db.Path()
}

func (b *BoltStore) Get(key string) ([]byte, bool, error) {
	if err := validateKey(key); err != nil {
		return nil, false, err
	}
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		if raw := tx.Bucket(slotsBucket).Get([]byte(key)); raw != nil {
			// raw is only valid inside the transaction.
			value = append([]byte{}, raw...)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return value, value != nil, nil
}

func (b *BoltStore) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(slotsBucket).Put([]byte(key), value)
	})
}

func (b *BoltStore) Remove(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(slotsBucket).Delete([]byte(key))
	})
}

func (b *BoltStore) Close() error {
	return b.db.Close()
}

var _ ports.KeyValueStore = (*BoltStore)(nil)
