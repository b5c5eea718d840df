package decalls

import (
	"github.com/gagliardetto/solana-go"
)

// ValidateAccount checks an account blob of any registered kind before
// trusting it.
//
// The discriminator is checked first, then the chain-level owner, and only
// then is the payload decoded, so a foreign blob is never parsed and a
// corrupt blob from the program is told apart from a wrong-program one.
func ValidateAccount(data []byte, declaredOwner, programID solana.PublicKey) (DecodedAccount, error) {
	if _, ok := decoderFor(data); !ok {
		return nil, &ValidationError{Kind: ErrInvalidDiscriminator}
	}
	if !declaredOwner.Equals(programID) {
		return nil, &ValidationError{Kind: ErrUntrustedAccount}
	}
	account, err := DecodeAny(data)
	if err != nil {
		return nil, &ValidationError{Kind: ErrMalformedPayload, Err: err}
	}
	return account, nil
}

// ValidateUserStats is ValidateAccount restricted to UserStats accounts.
func ValidateUserStats(data []byte, declaredOwner, programID solana.PublicKey) (*UserStats, error) {
	if !HasUserStatsDiscriminator(data) {
		return nil, &ValidationError{Kind: ErrInvalidDiscriminator}
	}
	account, err := ValidateAccount(data, declaredOwner, programID)
	if err != nil {
		return nil, err
	}
	return account.(*UserStats), nil
}

// validateAccount runs ValidateAccount and tags any error with the account address.
func validateAccount(address solana.PublicKey, account RawAccount, programID solana.PublicKey) (DecodedAccount, error) {
	decoded, err := ValidateAccount(account.Data, account.Owner, programID)
	return decoded, withAddress(address, err)
}

// validateUserStatsAccount runs ValidateUserStats and tags any error with the account address.
func validateUserStatsAccount(address solana.PublicKey, account RawAccount, programID solana.PublicKey) (*UserStats, error) {
	stats, err := ValidateUserStats(account.Data, account.Owner, programID)
	return stats, withAddress(address, err)
}

func withAddress(address solana.PublicKey, err error) error {
	if vErr, ok := err.(*ValidationError); ok {
		vErr.Address = address
	}
	return err
}
