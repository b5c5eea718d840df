package cmd

import (
	"context"
	"fmt"

	"decalls-stats/decalls"
	"decalls-stats/logger"
	"decalls-stats/storage"
)

// newClient creates a read-only client from the resolved configuration.
func newClient(cfg *Config) (*decalls.Client, error) {
	clientCfg, err := cfg.ClientConfig()
	if err != nil {
		return nil, err
	}
	client, err := decalls.NewReadOnlyClient(clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Solana client: %w", err)
	}
	return client, nil
}

// loadRecords reads UserStats from the snapshot file when one is configured,
// and scans the program otherwise.
func loadRecords(ctx context.Context, cfg *Config) ([]*decalls.UserStats, error) {
	if cfg.Snapshot != "" {
		db, err := storage.Open(cfg.Snapshot)
		if err != nil {
			return nil, err
		}
		defer db.Close()

		snapshot, err := db.GetSnapshot()
		if err != nil {
			return nil, fmt.Errorf("failed to load snapshot %s: %w", db.Path(), err)
		}
		logger.Log.Infow("loaded snapshot",
			"path", db.Path(),
			"program", snapshot.ProgramID,
			"taken_at", snapshot.TakenAt,
			"records", len(snapshot.Records),
		)
		records, err := snapshot.UserStats()
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, fmt.Errorf("snapshot %s: %w", db.Path(), decalls.ErrNoRecords)
		}
		return records, nil
	}

	client, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	records, err := client.FetchAllUserStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user stats: %w", err)
	}
	return records, nil
}
