// Package dashboard serves the creator analytics view: the signed-in
// identity's own records, their deletion, and the revenue summary.
package dashboard

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"github.com/creatorstack/storefront/internal/domain"
	"github.com/creatorstack/storefront/internal/eventbus"
	"github.com/creatorstack/storefront/internal/store"
)

// Summary is the point-in-time aggregate the dashboard header renders.
type Summary struct {
	Products     int     `json:"products"`
	Featured     int     `json:"featured"`
	TotalRevenue float64 `json:"totalRevenue"`
	AveragePrice float64 `json:"averagePrice"`
}

type Service struct {
	store store.RecordStore
	bus   *eventbus.Bus
}

func New(st store.RecordStore, bus *eventbus.Bus) *Service {
	return &Service{store: st, bus: bus}
}

// ListOwn returns the stored records whose CreatorID matches creatorID, in
// insertion order. Seed records never appear here: ownership is enforced by
// this visibility filter only, with no further authorization check.
func (s *Service) ListOwn(creatorID string) []domain.Product {
	var out []domain.Product
	for _, p := range s.store.Load() {
		if p.CreatorID == creatorID {
			out = append(out, p)
		}
	}
	return out
}

// Delete removes productID from the record store and publishes the
// product.deleted topic. Deleting an absent id is a no-op, not an error, and
// publishes nothing.
func (s *Service) Delete(productID string) error {
	records := s.store.Load()
	kept := records[:0:0]
	removed := false
	for _, p := range records {
		if p.ID == productID {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return nil
	}
	if err := s.store.Save(kept); err != nil {
		return fmt.Errorf("persist record removal: %w", err)
	}
	s.bus.Publish(eventbus.TopicProductDeleted, productID)
	zap.L().Info("product deleted", zap.String("productId", productID))
	return nil
}

// Summarize aggregates the creator's records into the dashboard numbers:
// product and featured counts, total revenue (sum of prices, as the original
// dashboard reports it), and mean price.
func (s *Service) Summarize(creatorID string) Summary {
	own := s.ListOwn(creatorID)
	sum := Summary{Products: len(own)}
	if len(own) == 0 {
		return sum
	}

	prices := make([]float64, 0, len(own))
	for _, p := range own {
		prices = append(prices, p.Price)
		if p.Featured {
			sum.Featured++
		}
	}
	if total, err := stats.Sum(prices); err == nil {
		sum.TotalRevenue = total
	}
	if mean, err := stats.Mean(prices); err == nil {
		sum.AveragePrice = mean
	}
	return sum
}
