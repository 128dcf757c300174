package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pkordes/lucky/internal/domain"
	"github.com/pkordes/lucky/internal/repo"
	"github.com/pkordes/lucky/internal/service"
)

var benchRounds int

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time both sampling strategies against the configured store",
	Long: `Draw --rounds restaurants with each sampling strategy and report the
elapsed time, so the strategy for SAMPLING_STRATEGY can be chosen against
real data. Seed the store first.`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	rootCmd.AddCommand(benchCmd)
	benchCmd.Flags().IntVarP(&benchRounds, "rounds", "n", 100, "Samples to draw per strategy")
}

// benchResult is the timing of one strategy.
type benchResult struct {
	Strategy domain.Strategy
	Rounds   int
	Elapsed  time.Duration
}

// PerOp returns the mean duration of a single draw.
func (b benchResult) PerOp() time.Duration {
	if b.Rounds == 0 {
		return 0
	}
	return b.Elapsed / time.Duration(b.Rounds)
}

// benchStrategies draws rounds samples per strategy from r.
// An empty store is an error, since there is nothing to time.
func benchStrategies(ctx context.Context, r repo.RestaurantRepo, rounds int) ([]benchResult, error) {
	if rounds < 1 {
		return nil, fmt.Errorf("%w: rounds must be at least 1", domain.ErrValidation)
	}

	var results []benchResult
	for _, strategy := range []domain.Strategy{domain.StrategyOrder, domain.StrategyIDs} {
		svc := service.NewRestaurantService(r, service.WithStrategy(strategy))

		start := time.Now()
		for range rounds {
			if _, err := svc.Sample(ctx); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, errors.New("no restaurants stored; run lucky seed first")
				}
				return nil, err
			}
		}
		results = append(results, benchResult{Strategy: strategy, Rounds: rounds, Elapsed: time.Since(start)})
	}
	return results, nil
}

func printBench(w io.Writer, rows int64, results []benchResult) {
	fmt.Fprintf(w, "%d restaurants\n", rows)
	fmt.Fprintf(w, "%-8s %8s %14s %14s\n", "strategy", "rounds", "total", "per op")
	for _, r := range results {
		fmt.Fprintf(w, "%-8s %8d %14s %14s\n", r.Strategy, r.Rounds, r.Elapsed.Round(time.Microsecond), r.PerOp().Round(time.Microsecond))
	}
}

func runBench(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg.LogLevel)

	ctx := cmd.Context()
	db, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := db.Restaurants.Count(ctx)
	if err != nil {
		return err
	}

	results, err := benchStrategies(ctx, db.Restaurants, benchRounds)
	if err != nil {
		return err
	}
	printBench(cmd.OutOrStdout(), rows, results)
	return nil
}
