package stats

import (
	"cmp"
	"slices"

	"decalls-stats/decalls"
)

// DefaultGamesLimit caps the games axis of the histogram.
const DefaultGamesLimit = 30

type HistogramBucket struct {
	Games   uint64
	Users   int
	Percent float64
}

// Histogram is the share of users per number of games played. Percentages
// are of TotalUsers, which includes users above Ceiling.
type Histogram struct {
	Ceiling    uint64
	TotalUsers int
	Buckets    []HistogramBucket
}

func BuildHistogram(records []*decalls.UserStats, ceiling uint64) Histogram {
	h := Histogram{Ceiling: ceiling}

	counts := make(map[uint64]int)
	for _, rec := range records {
		if rec == nil {
			continue
		}
		h.TotalUsers++
		if rec.TotalGames <= ceiling {
			counts[rec.TotalGames]++
		}
	}
	if h.TotalUsers == 0 {
		return h
	}

	h.Buckets = make([]HistogramBucket, 0, len(counts))
	for games, users := range counts {
		h.Buckets = append(h.Buckets, HistogramBucket{
			Games:   games,
			Users:   users,
			Percent: float64(users) / float64(h.TotalUsers) * 100,
		})
	}
	slices.SortFunc(h.Buckets, func(a, b HistogramBucket) int {
		return cmp.Compare(a.Games, b.Games)
	})
	return h
}

// MaxPercent is the largest bucket share, for scaling bars.
func (h Histogram) MaxPercent() float64 {
	var m float64
	for _, b := range h.Buckets {
		m = max(m, b.Percent)
	}
	return m
}
