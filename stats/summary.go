package stats

import (
	"math/big"
	"time"

	"decalls-stats/decalls"

	"github.com/shopspring/decimal"
)

const activeWindow = 24 * time.Hour

// Summary totals the whole record set. Counters stop at math.MaxUint64;
// amounts are summed exactly.
type Summary struct {
	Users         int
	Games         uint64
	MoonCalls     uint64
	DoomCalls     uint64
	CorrectMoon   uint64
	CorrectDoom   uint64
	Funds         decimal.Decimal
	Winnings      decimal.Decimal
	ActiveLastDay int
}

// BuildSummary aggregates records; ActiveLastDay counts users whose last
// activity is within 24 hours before now.
func BuildSummary(records []*decalls.UserStats, now time.Time) Summary {
	var (
		s               Summary
		funds, winnings = new(big.Int), new(big.Int)
		amount          = new(big.Int)
		activeSince     = now.Add(-activeWindow).Unix()
	)
	for _, rec := range records {
		if rec == nil {
			continue
		}
		s.Users++
		s.Games = addCapped(s.Games, rec.TotalGames)
		s.MoonCalls = addCapped(s.MoonCalls, rec.TotalMoon)
		s.DoomCalls = addCapped(s.DoomCalls, rec.TotalDoom)
		s.CorrectMoon = addCapped(s.CorrectMoon, rec.TotalCorrectMoon)
		s.CorrectDoom = addCapped(s.CorrectDoom, rec.TotalCorrectDoom)
		funds.Add(funds, amount.SetUint64(rec.TotalPredictionFunds))
		winnings.Add(winnings, amount.SetUint64(rec.TotalWinnings))
		if activeSince < 0 || rec.LastActive >= uint64(activeSince) {
			s.ActiveLastDay++
		}
	}
	s.Funds = bigLamportsToSOL(funds)
	s.Winnings = bigLamportsToSOL(winnings)
	return s
}

// Accuracy is the share of correct calls in percent, 0 with no calls.
func (s Summary) Accuracy() float64 {
	calls := float64(s.MoonCalls) + float64(s.DoomCalls)
	if calls == 0 {
		return 0
	}
	return (float64(s.CorrectMoon) + float64(s.CorrectDoom)) / calls * 100
}
