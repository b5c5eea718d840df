package stats

import (
	"cmp"
	"slices"

	"decalls-stats/decalls"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
)

// LeaderboardRow holds one user's standing. Amounts are in SOL.
// Ratio is invalid when the user has spent nothing.
type LeaderboardRow struct {
	Owner  solana.PublicKey
	Asset  solana.PublicKey
	Level  uint8
	Games  uint64
	Ratio  decimal.NullDecimal
	Result decimal.Decimal
	Volume decimal.Decimal
}

// RatioString renders the ratio, or "n/a" for users with no spend.
func (r LeaderboardRow) RatioString() string {
	if !r.Ratio.Valid {
		return "n/a"
	}
	return r.Ratio.Decimal.StringFixed(2)
}

type Leaderboard struct {
	Rows        []LeaderboardRow
	TotalVolume decimal.Decimal
	Fee         decimal.Decimal
}

// BuildLeaderboard ranks users by games played, most first. Users with the
// same number of games keep their input order.
func BuildLeaderboard(records []*decalls.UserStats) Leaderboard {
	lb := Leaderboard{
		Rows:        make([]LeaderboardRow, 0, len(records)),
		TotalVolume: decimal.Zero,
	}
	for _, rec := range records {
		if rec == nil {
			continue
		}
		spent := LamportsToSOL(rec.TotalPredictionFunds)
		winnings := LamportsToSOL(rec.TotalWinnings)

		row := LeaderboardRow{
			Owner:  rec.Owner,
			Asset:  rec.Asset,
			Level:  rec.Level,
			Games:  rec.TotalGames,
			Result: winnings.Sub(spent),
			Volume: spent,
		}
		if !spent.IsZero() {
			row.Ratio = decimal.NewNullDecimal(winnings.Div(spent))
		}
		lb.Rows = append(lb.Rows, row)
		lb.TotalVolume = lb.TotalVolume.Add(spent)
	}

	slices.SortStableFunc(lb.Rows, func(a, b LeaderboardRow) int {
		return cmp.Compare(b.Games, a.Games)
	})
	lb.Fee = lb.TotalVolume.Mul(FeeRate)
	return lb
}

// Top returns at most n rows; n <= 0 returns all of them.
func (lb Leaderboard) Top(n int) []LeaderboardRow {
	if n <= 0 || n >= len(lb.Rows) {
		return lb.Rows
	}
	return lb.Rows[:n]
}
