package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/creatorstack/storefront/internal/domain"
)

var (
	bucketRecords = []byte("records")
	keyProducts   = []byte("userProducts")
)

// BoltStore persists records in a bbolt file under a single bucket and key.
// Writes are serialized so handlers cannot interleave encode and put; the
// load-modify-save sequences above it remain non-transactional.
type BoltStore struct {
	db *bolt.DB
}

var _ RecordStore = (*BoltStore)(nil)

// OpenBolt opens (or creates) the record store file at path.
func OpenBolt(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open record store %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRecords)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init record store bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Load() []domain.Product {
	var raw []byte
	_ = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketRecords)
		if b == nil {
			return nil
		}
		if v := b.Get(keyProducts); v != nil {
			raw = append(raw, v...)
		}
		return nil
	})
	return decodeRecords(raw)
}

func (s *BoltStore) Save(ps []domain.Product) error {
	if ps == nil {
		ps = []domain.Product{}
	}
	data, err := json.Marshal(ps)
	if err != nil {
		return fmt.Errorf("encode records: %w", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRecords).Put(keyProducts, data)
	})
	if err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	return nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
