package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bolt "go.etcd.io/bbolt"

	"github.com/creatorstack/storefront/internal/domain"
)

func testProducts() []domain.Product {
	return []domain.Product{
		{
			ID:        "prod_100_a",
			Title:     "Go Concurrency Patterns",
			Price:     29.99,
			CreatorID: "u1",
			CreatedAt: "2024-05-01T10:00:00Z",
			Category:  domain.CategoryEbook,
		},
		{
			ID:        "prod_101_b",
			Title:     "Figma Template Kit",
			Price:     19.5,
			CreatorID: "u2",
			CreatedAt: "2024-05-02T10:00:00Z",
			Category:  domain.CategoryTemplate,
			Featured:  true,
		},
	}
}

func TestBoltStore(t *testing.T) {
	openStore := func(t *testing.T) *BoltStore {
		t.Helper()
		s, err := OpenBolt(filepath.Join(t.TempDir(), "records.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close() })
		return s
	}

	t.Run("EmptyOnFreshFile", func(t *testing.T) {
		s := openStore(t)
		assert.Empty(t, s.Load())
	})

	t.Run("SaveThenLoad", func(t *testing.T) {
		s := openStore(t)
		want := testProducts()
		require.NoError(t, s.Save(want))
		assert.Equal(t, want, s.Load())
	})

	t.Run("SaveOverwritesWholeSequence", func(t *testing.T) {
		s := openStore(t)
		require.NoError(t, s.Save(testProducts()))
		require.NoError(t, s.Save(testProducts()[:1]))
		got := s.Load()
		require.Len(t, got, 1)
		assert.Equal(t, "prod_100_a", got[0].ID)
	})

	t.Run("RoundTripIsStable", func(t *testing.T) {
		s := openStore(t)
		require.NoError(t, s.Save(testProducts()))
		first := s.Load()
		require.NoError(t, s.Save(first))
		assert.Equal(t, first, s.Load())
	})

	t.Run("CorruptValueLoadsAsEmpty", func(t *testing.T) {
		s := openStore(t)
		require.NoError(t, s.Save(testProducts()))
		err := s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(bucketRecords).Put(keyProducts, []byte("{not json["))
		})
		require.NoError(t, err)
		assert.Empty(t, s.Load())
	})

	t.Run("SaveNilStoresEmptyArray", func(t *testing.T) {
		s := openStore(t)
		require.NoError(t, s.Save(nil))
		assert.Empty(t, s.Load())
	})
}

func TestMemStore(t *testing.T) {
	t.Run("LoadReturnsCopy", func(t *testing.T) {
		s := NewMemStore()
		require.NoError(t, s.Save(testProducts()))

		got := s.Load()
		got[0].Title = "mutated"
		assert.Equal(t, "Go Concurrency Patterns", s.Load()[0].Title)
	})

	t.Run("EmptyByDefault", func(t *testing.T) {
		assert.Empty(t, NewMemStore().Load())
	})
}
