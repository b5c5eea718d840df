package decalls

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"
)

var testProgramID = testKey(0xde)

func testKey(b byte) solana.PublicKey {
	var key solana.PublicKey
	for i := range key {
		key[i] = b
	}
	return key
}

func sampleUserStats() *UserStats {
	return &UserStats{
		Owner:                testKey(1),
		Asset:                testKey(2),
		Level:                3,
		CreatedAt:            1_700_000_000,
		LastActive:           1_700_086_400,
		TotalGames:           42,
		TotalMoon:            25,
		TotalDoom:            17,
		TotalCorrectMoon:     14,
		TotalCorrectDoom:     9,
		TotalPredictionFunds: 10_000_000_000,
		TotalWinnings:        15_000_000_000,
		Bump:                 254,
	}
}

func encodeAccount(t *testing.T, stats *UserStats) []byte {
	t.Helper()
	data, err := stats.EncodeAccount()
	require.NoError(t, err)
	return data
}

func userStatsAccount(t *testing.T, stats *UserStats) *RawAccount {
	return &RawAccount{
		Owner:    testProgramID,
		Lamports: 1_000_000,
		Data:     encodeAccount(t, stats),
	}
}

var errTransport = errors.New("connection reset by peer")

type fakeTransport struct {
	mu         sync.Mutex
	accounts   map[solana.PublicKey]*RawAccount
	program    []KeyedAccount
	programErr error
	// failing makes any batch containing the key fail.
	failing    map[solana.PublicKey]bool
	short      bool
	batchCalls [][]solana.PublicKey
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		accounts: make(map[solana.PublicKey]*RawAccount),
		failing:  make(map[solana.PublicKey]bool),
	}
}

func (f *fakeTransport) GetAccount(_ context.Context, address solana.PublicKey) (*RawAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing[address] {
		return nil, errTransport
	}
	return f.accounts[address], nil
}

func (f *fakeTransport) GetAccountsBatch(_ context.Context, addresses []solana.PublicKey) ([]*RawAccount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchCalls = append(f.batchCalls, append([]solana.PublicKey(nil), addresses...))

	out := make([]*RawAccount, 0, len(addresses))
	for _, address := range addresses {
		if f.failing[address] {
			return nil, errTransport
		}
		out = append(out, f.accounts[address])
	}
	if f.short && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (f *fakeTransport) GetProgramAccounts(_ context.Context, _ solana.PublicKey) ([]KeyedAccount, error) {
	if f.programErr != nil {
		return nil, f.programErr
	}
	return f.program, nil
}
