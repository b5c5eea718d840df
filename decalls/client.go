package decalls

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Config holds what the read-only client needs to reach the program.
type Config struct {
	RPCEndpoint      string
	ProgramID        solana.PublicKey
	Commitment       rpc.CommitmentType
	BatchSize        int
	FetchConcurrency int
	RetryAttempts    uint
	RetryInterval    time.Duration
}

// Client reads DeCalls accounts. It never signs or sends transactions.
type Client struct {
	Transport Transport
	ProgramID solana.PublicKey
	fetcher   *BatchFetcher
	scanner   *Scanner
}

// NewReadOnlyClient creates a client backed by a Solana RPC node.
func NewReadOnlyClient(cfg Config) (*Client, error) {
	if cfg.RPCEndpoint == "" {
		return nil, fmt.Errorf("rpc endpoint is required")
	}
	if cfg.ProgramID.IsZero() {
		return nil, fmt.Errorf("program id is required")
	}

	transportOpts := []TransportOption{WithRetry(cfg.RetryAttempts, cfg.RetryInterval)}
	if cfg.Commitment != "" {
		transportOpts = append(transportOpts, WithCommitment(cfg.Commitment))
	}
	transport := NewRPCTransport(cfg.RPCEndpoint, transportOpts...)

	return NewClientWithTransport(transport, cfg.ProgramID,
		WithBatchSize(cfg.BatchSize),
		WithConcurrency(cfg.FetchConcurrency),
	), nil
}

// NewClientWithTransport creates a client over any Transport.
func NewClientWithTransport(transport Transport, programID solana.PublicKey, opts ...FetcherOption) *Client {
	return &Client{
		Transport: transport,
		ProgramID: programID,
		fetcher:   NewBatchFetcher(transport, opts...),
		scanner:   NewScanner(transport),
	}
}

// GetUserStatsPDA returns the Program Derived Address of the stats account
// for an owner and asset.
func (c *Client) GetUserStatsPDA(owner, asset solana.PublicKey) (solana.PublicKey, uint8, error) {
	return solana.FindProgramAddress(
		[][]byte{
			[]byte(userStatsSeed),
			owner[:],
			asset[:],
		},
		c.ProgramID,
	)
}

// FetchUserStats loads one UserStats account. It returns nil, nil when the
// account does not exist.
func (c *Client) FetchUserStats(ctx context.Context, address solana.PublicKey) (*UserStats, error) {
	account, err := c.Transport.GetAccount(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats account: %w", err)
	}
	if account == nil {
		return nil, nil
	}
	return validateUserStatsAccount(address, *account, c.ProgramID)
}

// FetchMultipleUserStats loads many UserStats accounts. The result is aligned
// with addresses and holds nil where the account is absent or could not be
// fetched. Fetch and validation failures are joined into the returned error.
func (c *Client) FetchMultipleUserStats(ctx context.Context, addresses []solana.PublicKey) ([]*UserStats, error) {
	slots, fetchErr := c.fetcher.FetchMany(ctx, addresses)

	var errs []error
	if fetchErr != nil {
		errs = append(errs, fetchErr)
	}

	out := make([]*UserStats, len(slots))
	for i, slot := range slots {
		account, ok := slot.Account()
		if !ok || slot.IsFailed() {
			continue
		}
		stats, err := validateUserStatsAccount(addresses[i], account, c.ProgramID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out[i] = stats
	}
	return out, errors.Join(errs...)
}

// FetchAllUserStats scans the program for every UserStats account.
func (c *Client) FetchAllUserStats(ctx context.Context) ([]*UserStats, error) {
	records, err := c.scanner.Scan(ctx, c.ProgramID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

// Fetcher exposes the batch fetcher for callers that want raw slots.
func (c *Client) Fetcher() *BatchFetcher {
	return c.fetcher
}
