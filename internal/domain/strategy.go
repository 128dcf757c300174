package domain

import (
	"fmt"
	"strings"
)

// Strategy selects how a random restaurant is drawn from the store.
type Strategy string

const (
	// StrategyIDs lists every id, picks one in-process, then fetches that row.
	// It avoids a full random sort at the cost of transferring all ids.
	StrategyIDs Strategy = "ids"

	// StrategyOrder asks the store to ORDER BY random() and take the first row.
	// Uniform, but the store sorts the whole table on every call.
	StrategyOrder Strategy = "order"
)

// ParseStrategy converts a config value into a Strategy.
// Matching is case-insensitive; an empty string yields StrategyIDs.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyIDs:
		return StrategyIDs, nil
	case StrategyOrder:
		return StrategyOrder, nil
	}
	return "", fmt.Errorf("%w: unknown sampling strategy %q (want %q or %q)", ErrValidation, s, StrategyIDs, StrategyOrder)
}
