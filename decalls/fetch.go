package decalls

import (
	"context"
	"fmt"

	"decalls-stats/logger"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/sync/errgroup"
)

// DefaultBatchSize is the getMultipleAccounts limit of public Solana RPC nodes.
const DefaultBatchSize = 100

// Slot is one position of a batch fetch result: a present account, an absent
// one, or one whose chunk could not be fetched.
type Slot struct {
	account RawAccount
	present bool
	failed  bool
}

// Present wraps an existing account.
func Present(account RawAccount) Slot {
	return Slot{account: account, present: true}
}

// Absent marks an address with no account.
func Absent() Slot {
	return Slot{}
}

// Failed marks an address whose chunk failed, so nothing is known about it.
func Failed() Slot {
	return Slot{failed: true}
}

// Account returns the account and whether it exists.
func (s Slot) Account() (RawAccount, bool) {
	return s.account, s.present
}

func (s Slot) IsPresent() bool {
	return s.present
}

func (s Slot) IsFailed() bool {
	return s.failed
}

// BatchFetcher loads many accounts with as few getMultipleAccounts calls as the
// batch size allows.
type BatchFetcher struct {
	transport   Transport
	batchSize   int
	concurrency int
}

type FetcherOption func(*BatchFetcher)

// WithBatchSize caps the number of addresses per RPC call.
func WithBatchSize(size int) FetcherOption {
	return func(f *BatchFetcher) {
		if size > 0 {
			f.batchSize = size
		}
	}
}

// WithConcurrency sets how many chunks may be in flight at once.
func WithConcurrency(n int) FetcherOption {
	return func(f *BatchFetcher) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

func NewBatchFetcher(transport Transport, opts ...FetcherOption) *BatchFetcher {
	f := &BatchFetcher{
		transport:   transport,
		batchSize:   DefaultBatchSize,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type chunkRange struct {
	start, end int
}

func chunkRanges(n, size int) []chunkRange {
	var ranges []chunkRange
	for start := 0; start < n; start += size {
		ranges = append(ranges, chunkRange{start: start, end: min(start+size, n)})
	}
	return ranges
}

// FetchMany returns one Slot per address, in input order. Chunks that fail
// leave their slots Failed and are reported in a *BatchError; the other
// chunks are still filled in.
func (f *BatchFetcher) FetchMany(ctx context.Context, addresses []solana.PublicKey) ([]Slot, error) {
	slots := make([]Slot, len(addresses))
	ranges := chunkRanges(len(addresses), f.batchSize)
	failures := make([]*FetchError, len(ranges))

	var g errgroup.Group
	g.SetLimit(f.concurrency)
	for i, r := range ranges {
		i, r := i, r
		g.Go(func() error {
			failures[i] = f.fetchChunk(ctx, i, r, addresses, slots)
			return nil
		})
	}
	_ = g.Wait()

	batchErr := &BatchError{TotalChunks: len(ranges)}
	for _, failure := range failures {
		if failure != nil {
			batchErr.Chunks = append(batchErr.Chunks, failure)
		}
	}
	if len(batchErr.Chunks) > 0 {
		return slots, batchErr
	}
	return slots, nil
}

// fetchChunk fills slots[r.start:r.end]; each chunk writes a disjoint range.
func (f *BatchFetcher) fetchChunk(ctx context.Context, chunk int, r chunkRange, addresses []solana.PublicKey, slots []Slot) *FetchError {
	keys := addresses[r.start:r.end]
	fail := func(err error) *FetchError {
		logger.Log.Warnw("fetch chunk failed", "chunk", chunk, "start", r.start, "end", r.end, "error", err)
		for i := r.start; i < r.end; i++ {
			slots[i] = Failed()
		}
		return &FetchError{
			Chunk:     chunk,
			Start:     r.start,
			End:       r.end,
			Addresses: keys,
			Err:       err,
		}
	}

	accounts, err := f.transport.GetAccountsBatch(ctx, keys)
	if err != nil {
		return fail(err)
	}
	if len(accounts) != len(keys) {
		return fail(fmt.Errorf("transport returned %d accounts for %d addresses", len(accounts), len(keys)))
	}

	for j, account := range accounts {
		if account == nil {
			slots[r.start+j] = Absent()
			continue
		}
		slots[r.start+j] = Present(*account)
	}
	return nil
}
