package criteria

import (
	"fmt"

	"github.com/jakechorley/team-matcher/pkg/core/matcher"
)

// Preference cost policies
const (
	CostPolicyLinear    = "linear"
	CostPolicyQuadratic = "quadratic"
	CostPolicyTable     = "table"
)

// LinearCost charges the rank itself
func LinearCost() matcher.CostFunc {
	return func(rank int) float64 {
		return float64(rank)
	}
}

// QuadraticCost charges the square of the rank, so low choices hurt more
func QuadraticCost() matcher.CostFunc {
	return func(rank int) float64 {
		return float64(rank * rank)
	}
}

// TableCost looks the rank up in a table of per-rank costs (index 0 is rank 1).
// Ranks past the end of the table cost unranked.
func TableCost(table []float64, unranked float64) (matcher.CostFunc, error) {
	for i := 1; i < len(table); i++ {
		if table[i] < table[i-1] {
			return nil, fmt.Errorf("cost table must not decrease: rank %d costs %v after %v", i+1, table[i], table[i-1])
		}
	}
	if len(table) > 0 && unranked < table[len(table)-1] {
		return nil, fmt.Errorf("unranked cost %v is lower than the last ranked cost %v", unranked, table[len(table)-1])
	}

	costs := append([]float64(nil), table...)
	return func(rank int) float64 {
		if rank >= 1 && rank <= len(costs) {
			return costs[rank-1]
		}
		return unranked
	}, nil
}

// WithUnrankedCost overrides the cost of ranks beyond the given number of
// rankings
func WithUnrankedCost(base matcher.CostFunc, rankings int, unranked float64) matcher.CostFunc {
	return func(rank int) float64 {
		if rank > rankings {
			return unranked
		}
		return base(rank)
	}
}

// NewCostFunc builds a cost function from a named policy.
// unranked, if non-nil, overrides the cost of projects a student did not rank.
func NewCostFunc(policy string, table []float64, rankings int, unranked *float64) (matcher.CostFunc, error) {
	var cost matcher.CostFunc

	switch policy {
	case "", CostPolicyLinear:
		cost = LinearCost()
	case CostPolicyQuadratic:
		cost = QuadraticCost()
	case CostPolicyTable:
		if len(table) != rankings {
			return nil, fmt.Errorf("cost table has %d entries but students submit %d rankings", len(table), rankings)
		}
		if unranked == nil {
			return nil, fmt.Errorf("table cost policy requires an unranked cost")
		}
		return TableCost(table, *unranked)
	default:
		return nil, fmt.Errorf("unknown preference cost policy %q", policy)
	}

	if unranked != nil {
		if *unranked < cost(rankings) {
			return nil, fmt.Errorf("unranked cost %v is lower than the cost of rank %d", *unranked, rankings)
		}
		cost = WithUnrankedCost(cost, rankings, *unranked)
	}

	return cost, nil
}
