package loyalty

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTierFor(t *testing.T) {
	cases := []struct {
		points int64
		want   string
	}{
		{-5, LevelBronze},
		{0, LevelBronze},
		{999, LevelBronze},
		{1000, LevelSilver},
		{4999, LevelSilver},
		{5000, LevelGold},
		{10000, LevelDiamond},
		{1 << 30, LevelDiamond},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TierFor(tc.points, DefaultTable).Level, "points %d", tc.points)
	}
}

func TestDiscountFor(t *testing.T) {
	assert.Equal(t, int64(5), DiscountFor(LevelGold, DefaultTable))
	assert.Equal(t, int64(10), DiscountFor(LevelDiamond, DefaultTable))
	// guests and unknown levels fall back to the floor tier
	assert.Zero(t, DiscountFor("", DefaultTable))
	assert.Zero(t, DiscountFor("PLATINUM", DefaultTable))
}

func TestProgressBoundaries(t *testing.T) {
	// exactly at the SILVER threshold: 0% into the SILVER->GOLD band
	p := ProgressFor(1000, DefaultTable)
	require.NotNil(t, p.NextTier)
	assert.Equal(t, LevelGold, p.NextTier.Level)
	assert.Zero(t, p.Percent)
	assert.Equal(t, int64(4000), p.PointsToNext)

	// at the top tier threshold: done
	p = ProgressFor(10000, DefaultTable)
	assert.Nil(t, p.NextTier)
	assert.Equal(t, float64(100), p.Percent)
	assert.Zero(t, p.PointsToNext)
}

func TestProgressMidBand(t *testing.T) {
	// halfway from GOLD (5000) to DIAMOND (10000)
	p := ProgressFor(7500, DefaultTable)
	require.NotNil(t, p.NextTier)
	assert.Equal(t, LevelDiamond, p.NextTier.Level)
	assert.InDelta(t, 50, p.Percent, 0.001)
	assert.Equal(t, int64(2500), p.PointsToNext)
}

func TestProgressFreshUser(t *testing.T) {
	p := ProgressFor(0, DefaultTable)
	require.NotNil(t, p.NextTier)
	assert.Equal(t, LevelSilver, p.NextTier.Level)
	assert.Zero(t, p.Percent)
	assert.Equal(t, int64(1000), p.PointsToNext)
}

func TestProgressUnsortedTable(t *testing.T) {
	shuffled := []Tier{DefaultTable[2], DefaultTable[0], DefaultTable[3], DefaultTable[1]}
	p := ProgressFor(1000, shuffled)
	require.NotNil(t, p.NextTier)
	assert.Equal(t, LevelGold, p.NextTier.Level)
}
