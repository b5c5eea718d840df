package decalls

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// PortableRecord is the interchange form of UserStats: keys in base58 and
// u64 counters as decimal strings so JSON consumers never lose precision.
type PortableRecord struct {
	Owner                string `json:"owner"`
	Asset                string `json:"asset"`
	Level                uint8  `json:"level"`
	CreatedAt            uint64 `json:"created_at,string"`
	LastActive           uint64 `json:"last_active,string"`
	TotalGames           uint64 `json:"total_games,string"`
	TotalMoon            uint64 `json:"total_moon,string"`
	TotalDoom            uint64 `json:"total_doom,string"`
	TotalCorrectMoon     uint64 `json:"total_correct_moon,string"`
	TotalCorrectDoom     uint64 `json:"total_correct_doom,string"`
	TotalPredictionFunds uint64 `json:"total_prediction_funds,string"`
	TotalWinnings        uint64 `json:"total_winnings,string"`
	Bump                 uint8  `json:"bump"`
}

// ToPortable converts the record to its interchange form.
func (obj *UserStats) ToPortable() PortableRecord {
	return PortableRecord{
		Owner:                obj.Owner.String(),
		Asset:                obj.Asset.String(),
		Level:                obj.Level,
		CreatedAt:            obj.CreatedAt,
		LastActive:           obj.LastActive,
		TotalGames:           obj.TotalGames,
		TotalMoon:            obj.TotalMoon,
		TotalDoom:            obj.TotalDoom,
		TotalCorrectMoon:     obj.TotalCorrectMoon,
		TotalCorrectDoom:     obj.TotalCorrectDoom,
		TotalPredictionFunds: obj.TotalPredictionFunds,
		TotalWinnings:        obj.TotalWinnings,
		Bump:                 obj.Bump,
	}
}

// FromPortable parses an interchange record back into UserStats.
func FromPortable(rec PortableRecord) (*UserStats, error) {
	owner, err := solana.PublicKeyFromBase58(rec.Owner)
	if err != nil {
		return nil, fmt.Errorf("invalid owner %q: %w", rec.Owner, err)
	}
	asset, err := solana.PublicKeyFromBase58(rec.Asset)
	if err != nil {
		return nil, fmt.Errorf("invalid asset %q: %w", rec.Asset, err)
	}
	return &UserStats{
		Owner:                owner,
		Asset:                asset,
		Level:                rec.Level,
		CreatedAt:            rec.CreatedAt,
		LastActive:           rec.LastActive,
		TotalGames:           rec.TotalGames,
		TotalMoon:            rec.TotalMoon,
		TotalDoom:            rec.TotalDoom,
		TotalCorrectMoon:     rec.TotalCorrectMoon,
		TotalCorrectDoom:     rec.TotalCorrectDoom,
		TotalPredictionFunds: rec.TotalPredictionFunds,
		TotalWinnings:        rec.TotalWinnings,
		Bump:                 rec.Bump,
	}, nil
}
