package decalls

import (
	"fmt"
)

// AccountKind is the closed set of account types this package understands.
type AccountKind uint8

const (
	KindUnknown AccountKind = iota
	KindUserStats
)

func (k AccountKind) String() string {
	switch k {
	case KindUserStats:
		return "UserStats"
	default:
		return "Unknown"
	}
}

// tagKinds maps the leading byte of an account to its kind.
var tagKinds = map[byte]AccountKind{
	UserStatsTag: KindUserStats,
}

// KindOf routes an account on its first byte only. It is a cheap filter;
// the full discriminator is still checked when decoding.
func KindOf(data []byte) AccountKind {
	if len(data) == 0 {
		return KindUnknown
	}
	if kind, ok := tagKinds[data[0]]; ok {
		return kind
	}
	return KindUnknown
}

// DecodedAccount is one of *UserStats or UnknownAccount.
type DecodedAccount interface {
	Kind() AccountKind
}

func (*UserStats) Kind() AccountKind { return KindUserStats }

// UnknownAccount is any program account whose discriminator is not registered.
type UnknownAccount struct {
	Tag           byte
	Discriminator [DiscriminatorSize]byte
}

func (UnknownAccount) Kind() AccountKind { return KindUnknown }

type decodeFunc func(data []byte) (DecodedAccount, error)

// accountDecoders maps discriminators to decoders.
var accountDecoders = map[[DiscriminatorSize]byte]decodeFunc{
	UserStatsDiscriminator: func(data []byte) (DecodedAccount, error) {
		stats, err := DecodeUserStats(data)
		if err != nil {
			return nil, err
		}
		return stats, nil
	},
}

// decoderFor looks up the decoder registered for the discriminator of data.
func decoderFor(data []byte) (decodeFunc, bool) {
	if len(data) < DiscriminatorSize {
		return nil, false
	}
	decode, ok := accountDecoders[[DiscriminatorSize]byte(data[:DiscriminatorSize])]
	return decode, ok
}

// DecodeAny decodes an account of any registered kind. Unregistered
// discriminators yield an UnknownAccount rather than an error.
func DecodeAny(data []byte) (DecodedAccount, error) {
	var unknown UnknownAccount
	if len(data) > 0 {
		unknown.Tag = data[0]
	}
	copy(unknown.Discriminator[:], data)

	decode, ok := decoderFor(data)
	if !ok {
		return unknown, nil
	}
	account, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %x account: %w", unknown.Discriminator, err)
	}
	return account, nil
}
