package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkordes/lucky/internal/domain"
	"github.com/pkordes/lucky/internal/service"
	"github.com/pkordes/lucky/testutil"
)

// benchTableSize is large enough for the full random sort of the order
// strategy to show up against the id listing of the ids strategy.
const benchTableSize = 5000

func benchmarkSample(b *testing.B, strategy domain.Strategy) {
	db := testutil.NewSQLite(b)
	ctx := context.Background()
	svc := service.NewRestaurantService(db.Restaurants, service.WithStrategy(strategy))

	for i := range benchTableSize {
		if _, err := svc.Create(ctx, fmt.Sprintf("Restaurant %d", i)); err != nil {
			b.Fatalf("seed: %v", err)
		}
	}

	for b.Loop() {
		if _, err := svc.Sample(ctx); err != nil {
			b.Fatalf("sample: %v", err)
		}
	}
}

func BenchmarkSample_Order(b *testing.B) { benchmarkSample(b, domain.StrategyOrder) }

func BenchmarkSample_IDs(b *testing.B) { benchmarkSample(b, domain.StrategyIDs) }
