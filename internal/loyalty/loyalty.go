// Package loyalty defines the membership tier ladder and derives
// tier, discount and progress-to-next-tier from accumulated
// points. The server recomputes a user's stored level with
// TierFor whenever points change; clients trust that stored value
// but use Progress for display.
package loyalty

import "sort"

// Level names, lowest to highest.
const (
	LevelBronze  = "BRONZE"
	LevelSilver  = "SILVER"
	LevelGold    = "GOLD"
	LevelDiamond = "DIAMOND"
)

// Tier is one rung of the loyalty ladder: a minimum point
// threshold and the cart-level discount it grants.
type Tier struct {
	Level           string
	MinPoints       int64
	DiscountPercent int64
}

// DefaultTable is the store's ladder. Thresholds are strictly
// increasing; BRONZE is the floor every user starts on.
var DefaultTable = []Tier{
	{Level: LevelBronze, MinPoints: 0, DiscountPercent: 0},
	{Level: LevelSilver, MinPoints: 1000, DiscountPercent: 2},
	{Level: LevelGold, MinPoints: 5000, DiscountPercent: 5},
	{Level: LevelDiamond, MinPoints: 10000, DiscountPercent: 10},
}

// TierFor returns the highest tier whose threshold the given
// points reach. Negative points map to the floor tier.
func TierFor(points int64, table []Tier) Tier {
	sorted := sortedByThreshold(table)
	best := sorted[0]
	for _, t := range sorted {
		if points >= t.MinPoints {
			best = t
		}
	}
	return best
}

// DiscountFor looks up the discount percent for a level name.
// Unknown or empty levels (guests) get the floor tier's discount.
func DiscountFor(level string, table []Tier) int64 {
	for _, t := range table {
		if t.Level == level {
			return t.DiscountPercent
		}
	}
	return sortedByThreshold(table)[0].DiscountPercent
}

// Progress describes how far a user is toward the next tier.
//
// Fields:
//  Percent      – position within the current tier band, 0..100.
//  NextTier     – the tier to reach next, nil at the top.
//  PointsToNext – points still needed, 0 at the top.
type Progress struct {
	Percent      float64
	NextTier     *Tier
	PointsToNext int64
}

// ProgressFor computes tier progress for the given points. At the
// maximum tier the progress is pinned to 100 with no next tier.
func ProgressFor(points int64, table []Tier) Progress {
	sorted := sortedByThreshold(table)

	nextIdx := -1
	for i, t := range sorted {
		if t.MinPoints > points {
			nextIdx = i
			break
		}
	}
	if nextIdx == -1 {
		return Progress{Percent: 100}
	}

	next := sorted[nextIdx]
	var floor int64
	if nextIdx > 0 {
		floor = sorted[nextIdx-1].MinPoints
	}
	pct := float64(points-floor) / float64(next.MinPoints-floor) * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return Progress{
		Percent:      pct,
		NextTier:     &next,
		PointsToNext: next.MinPoints - points,
	}
}

func sortedByThreshold(table []Tier) []Tier {
	sorted := make([]Tier, len(table))
	copy(sorted, table)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].MinPoints < sorted[j].MinPoints })
	return sorted
}
