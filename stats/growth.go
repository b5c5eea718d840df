package stats

import (
	"cmp"
	"slices"
	"time"

	"decalls-stats/decalls"
)

// DefaultBootstrapAccounts is how many of the earliest accounts are seed
// accounts created at deployment rather than by users.
const DefaultBootstrapAccounts = 3

const secondsPerHour = 3600

// GrowthPoint is the user count after the user created at CreatedAt joined.
type GrowthPoint struct {
	CreatedAt uint64
	Hours     float64
	Users     int
}

// Growth is the cumulative unique-user series, measured from Start.
type Growth struct {
	Start  uint64
	Points []GrowthPoint
}

// BuildGrowth drops the bootstrap earliest records and places every remaining
// one on an elapsed-hours axis starting at the earliest remaining record.
// The offset is shifted by one second so the first sample is not at zero.
func BuildGrowth(records []*decalls.UserStats, bootstrap int) Growth {
	created := make([]uint64, 0, len(records))
	for _, rec := range records {
		if rec != nil {
			created = append(created, rec.CreatedAt)
		}
	}
	slices.SortStableFunc(created, cmp.Compare[uint64])

	bootstrap = max(bootstrap, 0)
	if len(created) <= bootstrap {
		return Growth{}
	}
	created = created[bootstrap:]

	g := Growth{
		Start:  created[0],
		Points: make([]GrowthPoint, len(created)),
	}
	for i, ts := range created {
		g.Points[i] = GrowthPoint{
			CreatedAt: ts,
			Hours:     (float64(ts-g.Start) + 1) / secondsPerHour,
			Users:     i + 1,
		}
	}
	return g
}

// GrowthBucket is the user count at the end of a fixed-width time window.
// Start is the window start in unix seconds, Hours its offset from the
// start of the series.
type GrowthBucket struct {
	Start  uint64
	Hours  float64
	Joined int
	Users  int
}

// Buckets groups the series into windows of the given width. Users is
// cumulative. Windows in which nobody joined are left out, so the result
// never has more entries than the series has points.
func (g Growth) Buckets(width time.Duration) []GrowthBucket {
	widthSec := uint64(width / time.Second)
	if widthSec == 0 || len(g.Points) == 0 {
		return nil
	}

	var (
		buckets []GrowthBucket
		current uint64
	)
	for _, p := range g.Points {
		index := (p.CreatedAt - g.Start) / widthSec
		if len(buckets) == 0 || index != current {
			current = index
			buckets = append(buckets, GrowthBucket{
				Start: g.Start + index*widthSec,
				Hours: float64(index) * float64(widthSec) / secondsPerHour,
				Users: p.Users - 1,
			})
		}
		last := &buckets[len(buckets)-1]
		last.Joined++
		last.Users++
	}
	return buckets
}
