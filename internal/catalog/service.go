package catalog

import (
	"context"
	"fmt"

	"parkpass/internal/shared/constants"
	"parkpass/pkg/cache"
)

// Service interface defines the contract for the read-only price catalog.
// The checkout flow always loads the full catalog; there is no pagination.
type Service interface {
	ListPrices(ctx context.Context) ([]TicketPrice, error)
	UnitAmounts(ctx context.Context) (map[int]float64, error)
}

type service struct {
	repo  Repository
	cache cache.Service
}

// NewService creates a new catalog service instance.
// cacheService may be nil; the service then reads straight from the repository.
func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
	}
}

// ListPrices returns the full price catalog, cache-aside over Redis
func (s *service) ListPrices(ctx context.Context) ([]TicketPrice, error) {
	if s.cache == nil {
		prices, err := s.repo.GetAll()
		if err != nil {
			return nil, fmt.Errorf("failed to load price catalog: %w", err)
		}
		return prices, nil
	}

	var prices []TicketPrice
	err := s.cache.GetOrSet(ctx, constants.CACHE_KEY_PRICE_CATALOG, constants.TTL_PRICE_CATALOG,
		func() (interface{}, error) {
			return s.repo.GetAll()
		}, &prices)
	if err != nil {
		return nil, fmt.Errorf("failed to load price catalog: %w", err)
	}
	return prices, nil
}

// UnitAmounts returns the catalog as a ticket-type-ID to unit-amount lookup
func (s *service) UnitAmounts(ctx context.Context) (map[int]float64, error) {
	prices, err := s.ListPrices(ctx)
	if err != nil {
		return nil, err
	}

	amounts := make(map[int]float64, len(prices))
	for _, p := range prices {
		amounts[p.ID] = p.Amount
	}
	return amounts, nil
}
