// Package store owns the local persistence of creator-submitted product
// records: a single key holding a JSON-encoded array of products.
package store

import (
	"sync"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/creatorstack/storefront/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RecordStore holds the creator-submitted product records. It stores the whole
// sequence as one value; there is no partial update.
type RecordStore interface {
	// Load returns every stored record in insertion order. Missing or
	// unparseable data yields an empty sequence, never an error.
	Load() []domain.Product

	// Save overwrites the stored sequence with ps.
	Save(ps []domain.Product) error
}

// decodeRecords fails soft: a corrupt value is an empty catalog, not an error.
func decodeRecords(raw []byte) []domain.Product {
	if len(raw) == 0 {
		return nil
	}
	var ps []domain.Product
	if err := json.Unmarshal(raw, &ps); err != nil {
		zap.L().Warn("record store content unreadable, treating as empty", zap.Error(err))
		return nil
	}
	return ps
}

// MemStore is an in-memory RecordStore used in tests and when the service runs
// without a data directory.
type MemStore struct {
	mu      sync.Mutex
	records []domain.Product
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Load() []domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, len(s.records))
	copy(out, s.records)
	return out
}

func (s *MemStore) Save(ps []domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make([]domain.Product, len(ps))
	copy(s.records, ps)
	return nil
}
