package decalls

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
)

var (
	// ErrTruncatedData means the account holds fewer bytes than the layout needs.
	ErrTruncatedData = errors.New("truncated account data")
	// ErrInvalidDiscriminator means the account is not a UserStats account.
	ErrInvalidDiscriminator = errors.New("invalid account discriminator")
	// ErrUntrustedAccount means the account is owned by another program.
	ErrUntrustedAccount = errors.New("account does not belong to this program")
	// ErrMalformedPayload means the discriminator and owner matched but the fields did not decode.
	ErrMalformedPayload = errors.New("malformed account payload")
	// ErrNoRecords is returned when a scan yields no usable UserStats.
	ErrNoRecords = errors.New("scan produced zero usable records")
)

// ValidationError reports why a single account was rejected.
// Kind is one of ErrInvalidDiscriminator, ErrUntrustedAccount or ErrMalformedPayload.
type ValidationError struct {
	Address solana.PublicKey
	Kind    error
	Err     error
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	if !e.Address.IsZero() {
		fmt.Fprintf(&b, "account %s: ", e.Address)
	}
	b.WriteString(e.Kind.Error())
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// FetchError is a transport failure for one chunk of a batch fetch.
// Start and End index the caller's address list, End exclusive.
type FetchError struct {
	Chunk     int
	Start     int
	End       int
	Addresses []solana.PublicKey
	Err       error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch chunk %d (addresses %d-%d) failed: %v", e.Chunk, e.Start, e.End-1, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// BatchError collects the failed chunks of one FetchMany call.
type BatchError struct {
	Chunks      []*FetchError
	TotalChunks int
}

func (e *BatchError) Error() string {
	if len(e.Chunks) == 1 {
		return e.Chunks[0].Error()
	}
	return fmt.Sprintf("%d of %d fetch chunks failed, first: %v", len(e.Chunks), e.TotalChunks, e.Chunks[0])
}

func (e *BatchError) Unwrap() []error {
	errs := make([]error, len(e.Chunks))
	for i, c := range e.Chunks {
		errs[i] = c
	}
	return errs
}

// Addresses returns the addresses of every failed chunk, in input order,
// so a caller can retry just those.
func (e *BatchError) Addresses() []solana.PublicKey {
	var out []solana.PublicKey
	for _, c := range e.Chunks {
		out = append(out, c.Addresses...)
	}
	return out
}
