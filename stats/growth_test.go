package stats

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGrowth(t *testing.T) {
	// Input order does not matter; the three earliest are dropped.
	g := BuildGrowth(createdAt(4900, 200, 1300, 100, 300), DefaultBootstrapAccounts)

	assert.Equal(t, uint64(1300), g.Start)
	require.Len(t, g.Points, 2)

	assert.InDelta(t, 1.0/3600, g.Points[0].Hours, 1e-9)
	assert.InDelta(t, 3601.0/3600, g.Points[1].Hours, 1e-9)
	assert.Equal(t, 1, g.Points[0].Users)
	assert.Equal(t, 2, g.Points[1].Users)
}

func TestBuildGrowth_Monotonic(t *testing.T) {
	g := BuildGrowth(createdAt(10, 10, 50, 20, 20, 7000, 30), 0)
	require.Len(t, g.Points, 7)
	for i := 1; i < len(g.Points); i++ {
		assert.GreaterOrEqual(t, g.Points[i].Hours, g.Points[i-1].Hours)
		assert.Equal(t, g.Points[i-1].Users+1, g.Points[i].Users)
	}
}

func TestBuildGrowth_NotEnoughRecords(t *testing.T) {
	assert.Empty(t, BuildGrowth(createdAt(1, 2, 3), DefaultBootstrapAccounts).Points)
	assert.Empty(t, BuildGrowth(nil, 0).Points)
	assert.Len(t, BuildGrowth(createdAt(1), -5).Points, 1)
}

func TestGrowth_Buckets(t *testing.T) {
	g := BuildGrowth(createdAt(0, 100, 3599, 3600, 10900), 0)

	buckets := g.Buckets(time.Hour)
	assert.Equal(t, []GrowthBucket{
		{Start: 0, Hours: 0, Joined: 3, Users: 3},
		{Start: 3600, Hours: 1, Joined: 1, Users: 4},
		{Start: 10800, Hours: 3, Joined: 1, Users: 5},
	}, buckets)

	assert.Nil(t, g.Buckets(0))
	assert.Nil(t, Growth{}.Buckets(time.Hour))
}

func TestGrowth_BucketsFarApart(t *testing.T) {
	g := BuildGrowth(createdAt(1_700_000_000, 1<<62), 0)

	var buckets []GrowthBucket
	require.NotPanics(t, func() { buckets = g.Buckets(time.Hour) })
	require.Len(t, buckets, 2)
	assert.Equal(t, uint64(1_700_000_000), buckets[0].Start)
	assert.Equal(t, 1, buckets[0].Users)
	assert.Equal(t, 2, buckets[1].Users)
	assert.Greater(t, buckets[1].Hours, buckets[0].Hours)
}

func TestBuildGrowth_FullRangeOffset(t *testing.T) {
	g := BuildGrowth(createdAt(0, math.MaxUint64), 0)
	require.Len(t, g.Points, 2)
	assert.InDelta(t, 1.0/3600, g.Points[0].Hours, 1e-12)
	assert.InEpsilon(t, float64(math.MaxUint64)/3600, g.Points[1].Hours, 1e-9)
}
