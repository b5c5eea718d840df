package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"decalls-stats/decalls"
	"decalls-stats/stats"
	"decalls-stats/storage"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lamportsPerSOL = 1_000_000_000

func testRecords() []*decalls.UserStats {
	var a, b solana.PublicKey
	a[0], b[0] = 1, 2
	return []*decalls.UserStats{
		{Owner: a, TotalGames: 4, TotalPredictionFunds: 2 * lamportsPerSOL, TotalWinnings: 3 * lamportsPerSOL, CreatedAt: 1000},
		{Owner: b, TotalGames: 9, CreatedAt: 2000},
	}
}

func TestShortKey(t *testing.T) {
	assert.Equal(t, "1111…1111", shortKey(solana.PublicKey{}))
}

func TestRenderLeaderboard(t *testing.T) {
	out := renderLeaderboard(stats.BuildLeaderboard(testRecords()), 20)

	assert.Contains(t, out, "n/a")
	assert.Contains(t, out, "1.50")
	assert.Contains(t, out, "+1.00")
	assert.Contains(t, out, "Players: 2")
	assert.Contains(t, out, "Total volume: 2.00 SOL")
	assert.Contains(t, out, "Fee (2.5%): 0.05 SOL")
}

func TestRenderGrowth_NotEnoughUsers(t *testing.T) {
	out := renderGrowth(stats.BuildGrowth(testRecords(), 3), 0)
	assert.Contains(t, out, "Not enough users")
}

func TestRenderHistogram(t *testing.T) {
	out := renderHistogram(stats.BuildHistogram(testRecords(), 30))
	assert.Contains(t, out, "50.00%")
	assert.Contains(t, out, "Percent of 2 players")
}

func TestLoadRecords_FromSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	db, err := storage.Open(path)
	require.NoError(t, err)
	require.NoError(t, db.SaveSnapshot(storage.NewSnapshot("prog", time.Unix(0, 0), testRecords())))

	records, err := loadRecords(context.Background(), &Config{Snapshot: path})
	require.NoError(t, err)
	assert.Equal(t, testRecords(), records)
}

func TestLoadRecords_MissingSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")
	_, err := loadRecords(context.Background(), &Config{Snapshot: path})
	assert.ErrorIs(t, err, storage.ErrNoSnapshot)
}

func TestLoadRecords_EmptySnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	db, err := storage.Open(path)
	require.NoError(t, err)
	require.NoError(t, db.SaveSnapshot(storage.NewSnapshot("prog", time.Unix(0, 0), nil)))

	_, err = loadRecords(context.Background(), &Config{Snapshot: path})
	assert.ErrorIs(t, err, decalls.ErrNoRecords)
}

func TestRenderGrowth_Buckets(t *testing.T) {
	records := []*decalls.UserStats{{CreatedAt: 100}, {CreatedAt: 200}, {CreatedAt: 1 << 62}}
	out := renderGrowth(stats.BuildGrowth(records, 0), time.Hour)
	assert.Contains(t, out, "Joined")
	assert.Contains(t, out, "0.00")
}

func TestSummaryCommand_FromSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	db, err := storage.Open(path)
	require.NoError(t, err)
	require.NoError(t, db.SaveSnapshot(storage.NewSnapshot("prog", time.Unix(0, 0), testRecords())))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"summary", "--snapshot", path})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Players")
	assert.Contains(t, out.String(), "13")
}
