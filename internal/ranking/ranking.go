// Package ranking orders a batch of pair analyses for presentation.
package ranking

import (
	"math"
	"sort"

	"solarfx/pkg/model"
)

// Criterion is one selectable sort criterion
type Criterion string

const (
	LargestMover Criterion = "largest-mover"
	FullyBullish Criterion = "fully-bullish"
	FullyBearish Criterion = "fully-bearish"
)

// ParseCriterion maps a user-facing name to a criterion
func ParseCriterion(s string) (Criterion, bool) {
	switch Criterion(s) {
	case LargestMover, FullyBullish, FullyBearish:
		return Criterion(s), true
	}
	return "", false
}

// Criteria is the set of selected criteria (zero or more)
type Criteria struct {
	LargestMover bool
	FullyBullish bool
	FullyBearish bool
}

// NewCriteria builds a set from a list of criteria
func NewCriteria(list []Criterion) Criteria {
	var c Criteria
	for _, crit := range list {
		switch crit {
		case LargestMover:
			c.LargestMover = true
		case FullyBullish:
			c.FullyBullish = true
		case FullyBearish:
			c.FullyBearish = true
		}
	}
	return c
}

// Sort orders results in place according to the selected criteria, evaluated
// as one combined decision. All orderings are stable with respect to the
// incoming batch order.
func Sort(results []model.PairAnalysis, criteria Criteria) {
	switch {
	case criteria.FullyBullish && criteria.FullyBearish:
		// Fully-bullish records first, then fully-bearish, then the rest;
		// absolute change magnitude breaks ties within each tier.
		sort.SliceStable(results, func(i, j int) bool {
			pi, pj := directionPriority(&results[i]), directionPriority(&results[j])
			if pi != pj {
				return pi > pj
			}
			return absChange(&results[i]) > absChange(&results[j])
		})

	case criteria.FullyBullish || criteria.FullyBearish:
		match := func(a *model.PairAnalysis) bool { return a.FullyBullish() }
		if criteria.FullyBearish {
			match = func(a *model.PairAnalysis) bool { return a.FullyBearish() }
		}
		if criteria.LargestMover {
			sort.SliceStable(results, func(i, j int) bool {
				mi, mj := match(&results[i]), match(&results[j])
				if mi != mj {
					return mi
				}
				return absChange(&results[i]) > absChange(&results[j])
			})
			return
		}
		sort.SliceStable(results, func(i, j int) bool {
			mi, mj := match(&results[i]), match(&results[j])
			return mi && !mj
		})

	default:
		// Largest mover (also the behavior when nothing is selected). When no
		// record carries a change metric, fall back to strength magnitude.
		if !anyChange(results) {
			sort.SliceStable(results, func(i, j int) bool {
				return abs(results[i].Strength) > abs(results[j].Strength)
			})
			return
		}
		sort.SliceStable(results, func(i, j int) bool {
			return absChange(&results[i]) > absChange(&results[j])
		})
	}
}

// directionPriority ranks fully-bullish above fully-bearish above the rest
func directionPriority(a *model.PairAnalysis) int {
	switch {
	case a.FullyBullish():
		return 2
	case a.FullyBearish():
		return 1
	default:
		return 0
	}
}

// absChange returns the magnitude of the first configured change metric,
// treating a missing or invalid metric as zero
func absChange(a *model.PairAnalysis) float64 {
	if len(a.Changes) == 0 || !a.Changes[0].Valid {
		return 0
	}
	return math.Abs(a.Changes[0].Pct)
}

func anyChange(results []model.PairAnalysis) bool {
	for i := range results {
		if len(results[i].Changes) > 0 && results[i].Changes[0].Valid {
			return true
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
