package stats

import (
	"decalls-stats/decalls"

	"github.com/gagliardetto/solana-go"
)

func key(b byte) solana.PublicKey {
	var k solana.PublicKey
	k[0] = b
	return k
}

func record(owner byte, games uint64) *decalls.UserStats {
	return &decalls.UserStats{Owner: key(owner), TotalGames: games}
}

func createdAt(ts ...uint64) []*decalls.UserStats {
	out := make([]*decalls.UserStats, len(ts))
	for i, t := range ts {
		out[i] = &decalls.UserStats{Owner: key(byte(i + 1)), CreatedAt: t}
	}
	return out
}
