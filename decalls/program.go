package decalls

import (
	"github.com/gagliardetto/solana-go"
)

const (
	// DiscriminatorSize is the length of the account type prefix.
	DiscriminatorSize = 8

	// UserStatsTag is the leading byte of every UserStats account.
	UserStatsTag byte = 0xb0

	// UserStatsPayloadSize is the borsh size of UserStats without the discriminator:
	// two public keys, nine u64 counters and two u8 fields.
	UserStatsPayloadSize = 2*solana.PublicKeyLength + 9*8 + 2

	// UserStatsAccountSize is the minimum size of a UserStats account.
	UserStatsAccountSize = DiscriminatorSize + UserStatsPayloadSize
)

// UserStatsDiscriminator prefixes every UserStats account owned by the program.
var UserStatsDiscriminator = [DiscriminatorSize]byte{0xb0, 0xdf, 0x88, 0x1b, 0x7a, 0x4f, 0x20, 0xe3}

// userStatsSeed is the PDA seed prefix of UserStats accounts.
const userStatsSeed = "user_stats"
