// Package catalog merges the static seed catalog with the record store's
// creator-submitted products and answers the storefront's filter queries.
package catalog

import (
	"strings"

	"github.com/creatorstack/storefront/internal/domain"
	"github.com/creatorstack/storefront/internal/store"
)

// Service answers filter/search queries over the merged catalog.
type Service struct {
	seed  []domain.Product
	store store.RecordStore
}

func New(st store.RecordStore) *Service {
	return &Service{seed: SeedProducts(), store: st}
}

// All returns the merged working set: seed records first, then stored records,
// both in insertion order. A failed store read degrades to seed-only.
func (s *Service) All() []domain.Product {
	stored := s.store.Load()
	out := make([]domain.Product, 0, len(s.seed)+len(stored))
	out = append(out, s.seed...)
	out = append(out, stored...)
	return out
}

// Query filters the merged catalog. search matches case-insensitively against
// title or description (empty search matches everything); category must match
// exactly unless it is the "all" sentinel. Relative order is preserved, so
// result order is purely insertion order.
func (s *Service) Query(search, category string) []domain.Product {
	search = strings.ToLower(strings.TrimSpace(search))
	var out []domain.Product
	for _, p := range s.All() {
		if !matchesSearch(p, search) {
			continue
		}
		if category != domain.CategoryAll && category != "" && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// LookupStored finds a product among the stored creator records only. Seed
// records are deliberately excluded: the success view renders a generic
// confirmation for them.
func (s *Service) LookupStored(id string) (domain.Product, bool) {
	for _, p := range s.store.Load() {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Product{}, false
}

// Partition splits ps into featured and regular subsequences for the two-tier
// display, each preserving the relative order of ps.
func Partition(ps []domain.Product) (featured, regular []domain.Product) {
	for _, p := range ps {
		if p.Featured {
			featured = append(featured, p)
		} else {
			regular = append(regular, p)
		}
	}
	return featured, regular
}

func matchesSearch(p domain.Product, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Title), search) ||
		strings.Contains(strings.ToLower(p.Description), search)
}
