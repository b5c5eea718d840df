package decalls

import (
	"bytes"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// UserStats is the per-user, per-asset statistics account of the DeCalls program.
// Amounts are in lamports and timestamps in unix seconds.
type UserStats struct {
	Owner                solana.PublicKey
	Asset                solana.PublicKey
	Level                uint8
	CreatedAt            uint64
	LastActive           uint64
	TotalGames           uint64
	TotalMoon            uint64
	TotalDoom            uint64
	TotalCorrectMoon     uint64
	TotalCorrectDoom     uint64
	TotalPredictionFunds uint64
	TotalWinnings        uint64
	Bump                 uint8
}

// DecodeUserStats parses a full account blob: discriminator followed by the borsh payload.
// Bytes past the payload are ignored.
func DecodeUserStats(data []byte) (*UserStats, error) {
	if len(data) < DiscriminatorSize {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrTruncatedData, len(data), UserStatsAccountSize)
	}
	if !HasUserStatsDiscriminator(data) {
		return nil, ErrInvalidDiscriminator
	}
	if len(data) < UserStatsAccountSize {
		return nil, fmt.Errorf("%w: got %d bytes, need %d", ErrTruncatedData, len(data), UserStatsAccountSize)
	}

	var stats UserStats
	decoder := bin.NewBorshDecoder(data[DiscriminatorSize:UserStatsAccountSize])
	if err := stats.UnmarshalWithDecoder(decoder); err != nil {
		return nil, fmt.Errorf("failed to decode user stats: %w", err)
	}
	return &stats, nil
}

// HasUserStatsDiscriminator reports whether data starts with the UserStats discriminator.
func HasUserStatsDiscriminator(data []byte) bool {
	return len(data) >= DiscriminatorSize && bytes.Equal(data[:DiscriminatorSize], UserStatsDiscriminator[:])
}

// Encode serializes the payload without the discriminator.
func (obj *UserStats) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Grow(UserStatsPayloadSize)
	if err := obj.MarshalWithEncoder(bin.NewBorshEncoder(buf)); err != nil {
		return nil, fmt.Errorf("failed to encode user stats: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeAccount serializes the record the way it is stored on-chain,
// discriminator included.
func (obj *UserStats) EncodeAccount() ([]byte, error) {
	payload, err := obj.Encode()
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, UserStatsAccountSize)
	out = append(out, UserStatsDiscriminator[:]...)
	return append(out, payload...), nil
}

func (obj UserStats) MarshalWithEncoder(encoder *bin.Encoder) (err error) {
	if err = encoder.WriteBytes(obj.Owner[:], false); err != nil {
		return err
	}
	if err = encoder.WriteBytes(obj.Asset[:], false); err != nil {
		return err
	}
	if err = encoder.WriteUint8(obj.Level); err != nil {
		return err
	}
	for _, v := range obj.counters() {
		if err = encoder.WriteUint64(*v, bin.LE); err != nil {
			return err
		}
	}
	return encoder.WriteUint8(obj.Bump)
}

func (obj *UserStats) UnmarshalWithDecoder(decoder *bin.Decoder) (err error) {
	if err = readPublicKey(decoder, &obj.Owner); err != nil {
		return fmt.Errorf("owner: %w", err)
	}
	if err = readPublicKey(decoder, &obj.Asset); err != nil {
		return fmt.Errorf("asset: %w", err)
	}
	if obj.Level, err = decoder.ReadUint8(); err != nil {
		return fmt.Errorf("level: %w", err)
	}
	for i, v := range obj.counters() {
		if *v, err = decoder.ReadUint64(bin.LE); err != nil {
			return fmt.Errorf("counter %d: %w", i, err)
		}
	}
	if obj.Bump, err = decoder.ReadUint8(); err != nil {
		return fmt.Errorf("bump: %w", err)
	}
	return nil
}

// counters lists the u64 fields in layout order.
func (obj *UserStats) counters() []*uint64 {
	return []*uint64{
		&obj.CreatedAt,
		&obj.LastActive,
		&obj.TotalGames,
		&obj.TotalMoon,
		&obj.TotalDoom,
		&obj.TotalCorrectMoon,
		&obj.TotalCorrectDoom,
		&obj.TotalPredictionFunds,
		&obj.TotalWinnings,
	}
}

func readPublicKey(decoder *bin.Decoder, out *solana.PublicKey) error {
	b, err := decoder.ReadNBytes(solana.PublicKeyLength)
	if err != nil {
		return err
	}
	copy(out[:], b)
	return nil
}
