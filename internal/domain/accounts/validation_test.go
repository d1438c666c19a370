package accounts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	require.NoError(t, validateName("Ann Lee"))
	require.NoError(t, validateName("Ann"))
	require.Error(t, validateName("Ann123"))
	require.Error(t, validateName("Ann-Lee"))
	require.Error(t, validateName("   ")) // spaces only
}

func TestValidatePasswordAccepts(t *testing.T) {
	require.NoError(t, validatePassword("Str0ng!pw"))
	require.NoError(t, validatePassword(`Aa1<longer>`))
}

func TestValidatePasswordFirstFailureWins(t *testing.T) {
	// Short and missing everything: length is reported first.
	err := validatePassword("a")
	require.EqualError(t, err, "Password must be at least 8 characters long")

	// Long enough but no uppercase and no digit: uppercase reported first.
	err = validatePassword("weakpass!")
	require.EqualError(t, err, "Password must contain at least one uppercase letter")
}

func TestValidatePasswordCountsCharactersNotBytes(t *testing.T) {
	// Seven characters spanning eleven bytes is still too short.
	err := validatePassword("A1!áááá")
	require.EqualError(t, err, "Password must be at least 8 characters long")

	// Eight characters in multibyte text clears the minimum.
	require.NoError(t, validatePassword("A1!ááááá"))
}
