package stats

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// lamportsExp converts lamports to SOL: 1 SOL = 10^9 lamports.
const lamportsExp = -9

// FeeRate is the protocol fee taken from prediction volume.
var FeeRate = decimal.RequireFromString("0.025")

// LamportsToSOL converts an amount to SOL rounded to two decimal places.
func LamportsToSOL(lamports uint64) decimal.Decimal {
	return bigLamportsToSOL(new(big.Int).SetUint64(lamports))
}

func bigLamportsToSOL(lamports *big.Int) decimal.Decimal {
	return decimal.NewFromBigInt(lamports, lamportsExp).Round(2)
}

// addCapped adds counters, stopping at math.MaxUint64 instead of wrapping.
func addCapped(a, b uint64) uint64 {
	if sum := a + b; sum >= a {
		return sum
	}
	return math.MaxUint64
}
