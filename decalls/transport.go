package decalls

import (
	"context"
	"errors"
	"fmt"
	"time"

	"decalls-stats/logger"

	"github.com/avast/retry-go/v4"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

const (
	defaultRetryAttempts = 3
	defaultRetryInterval = 500 * time.Millisecond
)

// RawAccount is an undecoded account together with its chain-level owner.
type RawAccount struct {
	Owner    solana.PublicKey
	Lamports uint64
	Data     []byte
}

// KeyedAccount is a RawAccount with its address.
type KeyedAccount struct {
	Address solana.PublicKey
	Account RawAccount
}

// Transport is the RPC surface the decoding pipeline needs.
type Transport interface {
	// GetAccount returns nil, nil when the account does not exist.
	GetAccount(ctx context.Context, address solana.PublicKey) (*RawAccount, error)
	// GetAccountsBatch returns one entry per address, nil where absent.
	GetAccountsBatch(ctx context.Context, addresses []solana.PublicKey) ([]*RawAccount, error)
	// GetProgramAccounts returns every account owned by programID.
	GetProgramAccounts(ctx context.Context, programID solana.PublicKey) ([]KeyedAccount, error)
}

// RPCTransport implements Transport over a Solana JSON-RPC node.
type RPCTransport struct {
	RpcClient     *rpc.Client
	commitment    rpc.CommitmentType
	retryAttempts uint
	retryInterval time.Duration
}

type TransportOption func(*RPCTransport)

func WithCommitment(commitment rpc.CommitmentType) TransportOption {
	return func(t *RPCTransport) {
		t.commitment = commitment
	}
}

// WithRetry sets how many times a failed RPC call is attempted in total.
func WithRetry(attempts uint, interval time.Duration) TransportOption {
	return func(t *RPCTransport) {
		if attempts > 0 {
			t.retryAttempts = attempts
		}
		if interval > 0 {
			t.retryInterval = interval
		}
	}
}

// NewRPCTransport creates a transport for the given RPC endpoint.
func NewRPCTransport(rpcEndpoint string, opts ...TransportOption) *RPCTransport {
	t := &RPCTransport{
		RpcClient:     rpc.New(rpcEndpoint),
		commitment:    rpc.CommitmentConfirmed,
		retryAttempts: defaultRetryAttempts,
		retryInterval: defaultRetryInterval,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *RPCTransport) GetAccount(ctx context.Context, address solana.PublicKey) (*RawAccount, error) {
	resp, err := callWithRetry(ctx, t, func() (*rpc.GetAccountInfoResult, error) {
		return t.RpcClient.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
			Encoding:   solana.EncodingBase64,
			Commitment: t.commitment,
		})
	})
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account info for %s: %w", address, err)
	}
	if resp == nil || resp.Value == nil {
		return nil, nil
	}
	return toRawAccount(resp.Value), nil
}

func (t *RPCTransport) GetAccountsBatch(ctx context.Context, addresses []solana.PublicKey) ([]*RawAccount, error) {
	resp, err := callWithRetry(ctx, t, func() (*rpc.GetMultipleAccountsResult, error) {
		return t.RpcClient.GetMultipleAccountsWithOpts(ctx, addresses, &rpc.GetMultipleAccountsOpts{
			Encoding:   solana.EncodingBase64,
			Commitment: t.commitment,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get multiple accounts: %w", err)
	}

	accounts := make([]*RawAccount, len(resp.Value))
	for i, account := range resp.Value {
		if account != nil {
			accounts[i] = toRawAccount(account)
		}
	}
	return accounts, nil
}

func (t *RPCTransport) GetProgramAccounts(ctx context.Context, programID solana.PublicKey) ([]KeyedAccount, error) {
	resp, err := callWithRetry(ctx, t, func() (rpc.GetProgramAccountsResult, error) {
		return t.RpcClient.GetProgramAccountsWithOpts(ctx, programID, &rpc.GetProgramAccountsOpts{
			Encoding:   solana.EncodingBase64,
			Commitment: t.commitment,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get program accounts: %w", err)
	}

	accounts := make([]KeyedAccount, 0, len(resp))
	for _, item := range resp {
		if item == nil || item.Account == nil {
			continue
		}
		accounts = append(accounts, KeyedAccount{
			Address: item.Pubkey,
			Account: *toRawAccount(item.Account),
		})
	}
	return accounts, nil
}

func toRawAccount(account *rpc.Account) *RawAccount {
	raw := &RawAccount{
		Owner:    account.Owner,
		Lamports: account.Lamports,
	}
	if account.Data != nil {
		raw.Data = account.Data.GetBinary()
	}
	return raw
}

func callWithRetry[T any](ctx context.Context, t *RPCTransport, call retry.RetryableFuncWithData[T]) (T, error) {
	return retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(t.retryAttempts),
		retry.Delay(t.retryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, rpc.ErrNotFound)
		}),
		retry.OnRetry(func(n uint, err error) {
			logger.Log.Debugw("rpc call failed, retrying",
				"attempt", n+1,
				"max_attempts", t.retryAttempts,
				"error", err,
			)
		}),
	)
}
