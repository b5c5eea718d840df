package decalls

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReadOnlyClient_Validation(t *testing.T) {
	_, err := NewReadOnlyClient(Config{ProgramID: testProgramID})
	assert.Error(t, err)

	_, err = NewReadOnlyClient(Config{RPCEndpoint: "http://localhost:8899"})
	assert.Error(t, err)

	client, err := NewReadOnlyClient(Config{
		RPCEndpoint: "http://localhost:8899",
		ProgramID:   testProgramID,
		BatchSize:   10,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, client.Fetcher().batchSize)
}

func TestClient_FetchUserStats(t *testing.T) {
	ctx := context.Background()
	stats := sampleUserStats()
	transport := newFakeTransport()
	transport.accounts[testKey(1)] = userStatsAccount(t, stats)
	transport.accounts[testKey(2)] = &RawAccount{Owner: testKey(0x77), Data: encodeAccount(t, stats)}
	transport.failing[testKey(3)] = true
	client := NewClientWithTransport(transport, testProgramID)

	got, err := client.FetchUserStats(ctx, testKey(1))
	require.NoError(t, err)
	assert.Equal(t, stats, got)

	got, err = client.FetchUserStats(ctx, testKey(4))
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = client.FetchUserStats(ctx, testKey(2))
	assert.ErrorIs(t, err, ErrUntrustedAccount)

	_, err = client.FetchUserStats(ctx, testKey(3))
	assert.ErrorIs(t, err, errTransport)
}

func TestClient_FetchMultipleUserStats(t *testing.T) {
	stats := sampleUserStats()
	transport := newFakeTransport()
	transport.accounts[testKey(1)] = userStatsAccount(t, stats)
	transport.accounts[testKey(3)] = &RawAccount{Owner: testKey(0x77), Data: encodeAccount(t, stats)}
	transport.accounts[testKey(4)] = userStatsAccount(t, stats)
	client := NewClientWithTransport(transport, testProgramID, WithBatchSize(2))

	got, err := client.FetchMultipleUserStats(context.Background(),
		[]solana.PublicKey{testKey(1), testKey(2), testKey(3), testKey(4)})
	require.Len(t, got, 4)
	assert.Equal(t, stats, got[0])
	assert.Nil(t, got[1])
	assert.Nil(t, got[2])
	assert.Equal(t, stats, got[3])

	assert.ErrorIs(t, err, ErrUntrustedAccount)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, testKey(3), vErr.Address)
}

func TestClient_FetchMultipleUserStatsFailedChunk(t *testing.T) {
	stats := sampleUserStats()
	transport := newFakeTransport()
	for i := byte(1); i <= 4; i++ {
		transport.accounts[testKey(i)] = userStatsAccount(t, stats)
	}
	transport.failing[testKey(3)] = true
	client := NewClientWithTransport(transport, testProgramID, WithBatchSize(2))

	got, err := client.FetchMultipleUserStats(context.Background(),
		[]solana.PublicKey{testKey(1), testKey(2), testKey(3), testKey(4)})
	require.Len(t, got, 4)
	assert.Equal(t, stats, got[0])
	assert.Equal(t, stats, got[1])
	assert.Nil(t, got[2])
	assert.Nil(t, got[3])

	var batchErr *BatchError
	require.True(t, errors.As(err, &batchErr))
	assert.Equal(t, []solana.PublicKey{testKey(3), testKey(4)}, batchErr.Addresses())
	assert.NotErrorIs(t, err, ErrInvalidDiscriminator)
}

func TestClient_FetchAllUserStats(t *testing.T) {
	transport := newFakeTransport()
	client := NewClientWithTransport(transport, testProgramID)

	_, err := client.FetchAllUserStats(context.Background())
	assert.ErrorIs(t, err, ErrNoRecords)

	transport.program = []KeyedAccount{{Address: testKey(1), Account: *userStatsAccount(t, sampleUserStats())}}
	records, err := client.FetchAllUserStats(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestClient_GetUserStatsPDA(t *testing.T) {
	client := NewClientWithTransport(newFakeTransport(), testProgramID)

	pda, bump, err := client.GetUserStatsPDA(testKey(1), testKey(2))
	require.NoError(t, err)

	again, againBump, err := client.GetUserStatsPDA(testKey(1), testKey(2))
	require.NoError(t, err)
	assert.Equal(t, pda, again)
	assert.Equal(t, bump, againBump)

	other, _, err := client.GetUserStatsPDA(testKey(2), testKey(1))
	require.NoError(t, err)
	assert.NotEqual(t, pda, other)
}
