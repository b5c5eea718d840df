package decalls

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateUserStats(t *testing.T) {
	stats := sampleUserStats()
	valid := encodeAccount(t, stats)
	foreign := testKey(0x77)

	wrongDisc := append([]byte(nil), valid...)
	wrongDisc[3] = 0x00

	t.Run("valid account", func(t *testing.T) {
		got, err := ValidateUserStats(valid, testProgramID, testProgramID)
		require.NoError(t, err)
		assert.Equal(t, stats, got)
	})

	t.Run("foreign owner is untrusted even when payload decodes", func(t *testing.T) {
		_, err := ValidateUserStats(valid, foreign, testProgramID)
		assert.ErrorIs(t, err, ErrUntrustedAccount)
		assert.NotErrorIs(t, err, ErrMalformedPayload)
	})

	t.Run("discriminator is checked before owner", func(t *testing.T) {
		_, err := ValidateUserStats(wrongDisc, foreign, testProgramID)
		assert.ErrorIs(t, err, ErrInvalidDiscriminator)
		assert.NotErrorIs(t, err, ErrUntrustedAccount)
	})

	t.Run("short data fails the discriminator check", func(t *testing.T) {
		_, err := ValidateUserStats(valid[:4], testProgramID, testProgramID)
		assert.ErrorIs(t, err, ErrInvalidDiscriminator)
	})

	t.Run("corrupt payload from the program is malformed", func(t *testing.T) {
		_, err := ValidateUserStats(valid[:UserStatsAccountSize-10], testProgramID, testProgramID)
		assert.ErrorIs(t, err, ErrMalformedPayload)
		assert.ErrorIs(t, err, ErrTruncatedData)

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, ErrMalformedPayload, vErr.Kind)
	})

	t.Run("corrupt payload from another program is untrusted", func(t *testing.T) {
		_, err := ValidateUserStats(valid[:UserStatsAccountSize-10], foreign, testProgramID)
		assert.ErrorIs(t, err, ErrUntrustedAccount)
	})
}

func TestValidateAccount_TagsAddress(t *testing.T) {
	address := testKey(0x42)
	account := RawAccount{Owner: testKey(0x77), Data: encodeAccount(t, sampleUserStats())}

	_, err := validateAccount(address, account, testProgramID)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, address, vErr.Address)
	assert.Contains(t, err.Error(), address.String())
}

func TestValidateAccount(t *testing.T) {
	stats := sampleUserStats()

	account, err := ValidateAccount(encodeAccount(t, stats), testProgramID, testProgramID)
	require.NoError(t, err)
	assert.Equal(t, KindUserStats, account.Kind())
	assert.Equal(t, stats, account)

	unregistered := []byte{0x10, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	_, err = ValidateAccount(unregistered, testProgramID, testProgramID)
	assert.ErrorIs(t, err, ErrInvalidDiscriminator)

	_, err = ValidateAccount(unregistered[:3], testProgramID, testProgramID)
	assert.ErrorIs(t, err, ErrInvalidDiscriminator)
}
