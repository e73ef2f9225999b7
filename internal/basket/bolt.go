package basket

import (
	"encoding/json"
	"time"

	bolt "github.com/boltdb/bolt"

	"storefront/internal/domain"
)

const basketBucket = "baskets"

// BoltStorage persists basket state in a local BoltDB file, keyed by
// session. It is the durable device-local store behind the basket; no
// server-side basket entity exists.
type BoltStorage struct {
	db  *bolt.DB
	key string
}

// OpenBolt opens (or creates) the basket database at path and scopes all
// reads and writes to sessionKey.
func OpenBolt(path, sessionKey string) (*BoltStorage, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(basketBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltStorage{db: db, key: sessionKey}, nil
}

// Close releases the database file lock.
func (b *BoltStorage) Close() error {
	return b.db.Close()
}

func (b *BoltStorage) Load() ([]domain.BasketLine, error) {
	var lines []domain.BasketLine
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(basketBucket)).Get([]byte(b.key))
		if v == nil {
			return nil
		}
		return json.Unmarshal(v, &lines)
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (b *BoltStorage) Save(lines []domain.BasketLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(basketBucket)).Put([]byte(b.key), data)
	})
}

func (b *BoltStorage) Clear() error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(basketBucket)).Delete([]byte(b.key))
	})
}
