// Package service contains the business logic for the Lucky API.
// Services enforce business rules and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/lucky/internal/domain"
	"github.com/pkordes/lucky/internal/repo"
)

// RestaurantService draws random restaurants and serves read-only lookups.
type RestaurantService struct {
	repo     repo.RestaurantRepo
	strategy domain.Strategy
	// intN returns a uniform int in [0, n). Tests replace it to pin the draw.
	intN func(n int) int
}

// Option customises a RestaurantService.
type Option func(*RestaurantService)

// WithStrategy selects the sampling strategy. The default is domain.StrategyIDs.
func WithStrategy(s domain.Strategy) Option {
	return func(svc *RestaurantService) { svc.strategy = s }
}

// WithIntN replaces the random source used by the ids strategy.
func WithIntN(intN func(n int) int) Option {
	return func(svc *RestaurantService) { svc.intN = intN }
}

// NewRestaurantService constructs a RestaurantService backed by the provided repo.
func NewRestaurantService(r repo.RestaurantRepo, opts ...Option) *RestaurantService {
	svc := &RestaurantService{
		repo:     r,
		strategy: domain.StrategyIDs,
		intN:     rand.IntN,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Strategy reports the sampling strategy in use.
func (s *RestaurantService) Strategy() domain.Strategy {
	return s.strategy
}

// Sample returns one restaurant chosen uniformly at random, or
// domain.ErrNotFound when there are none.
func (s *RestaurantService) Sample(ctx context.Context) (domain.Restaurant, error) {
	switch s.strategy {
	case domain.StrategyOrder:
		return s.sampleByOrder(ctx)
	case domain.StrategyIDs:
		return s.sampleByIDs(ctx)
	}
	return domain.Restaurant{}, fmt.Errorf("service.RestaurantService.Sample: %w: unknown strategy %q", domain.ErrValidation, s.strategy)
}

func (s *RestaurantService) sampleByOrder(ctx context.Context) (domain.Restaurant, error) {
	rest, err := s.repo.SampleByOrder(ctx)
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("service.RestaurantService.Sample: %w", err)
	}
	return rest, nil
}

// sampleByIDs lists ids, picks one in-process and fetches it. The two reads
// are not in a transaction: a row deleted in between surfaces as
// domain.ErrNotFound from GetByID, which is passed through unchanged in kind.
func (s *RestaurantService) sampleByIDs(ctx context.Context) (domain.Restaurant, error) {
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("service.RestaurantService.Sample: %w", err)
	}
	if len(ids) == 0 {
		return domain.Restaurant{}, fmt.Errorf("service.RestaurantService.Sample: %w", domain.ErrNotFound)
	}

	rest, err := s.repo.GetByID(ctx, ids[s.intN(len(ids))])
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("service.RestaurantService.Sample: %w", err)
	}
	return rest, nil
}

// GetByID returns a single restaurant by ID.
func (s *RestaurantService) GetByID(ctx context.Context, id uuid.UUID) (domain.Restaurant, error) {
	rest, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("service.RestaurantService.GetByID: %w", err)
	}
	return rest, nil
}

// ListPaged returns one page of restaurants and the total count.
func (s *RestaurantService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Restaurant, int64, error) {
	rests, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.RestaurantService.ListPaged: %w", err)
	}
	if rests == nil {
		rests = []domain.Restaurant{}
	}
	return rests, total, nil
}

// Create validates a name and inserts a restaurant. Used by the seed command.
// Surrounding whitespace is trimmed; an empty result is domain.ErrValidation.
func (s *RestaurantService) Create(ctx context.Context, name string) (domain.Restaurant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Restaurant{}, fmt.Errorf("service.RestaurantService.Create: %w: name is required", domain.ErrValidation)
	}

	rest, err := s.repo.Create(ctx, name)
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("service.RestaurantService.Create: %w", err)
	}
	return rest, nil
}

// Count returns the number of stored restaurants.
func (s *RestaurantService) Count(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("service.RestaurantService.Count: %w", err)
	}
	return n, nil
}
