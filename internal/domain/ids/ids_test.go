package ids

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewULID(t *testing.T) {
	id, err := NewULID()
	require.NoError(t, err)
	require.Len(t, id, 26)
	require.NoError(t, ValidateULID(id))
}

func TestValidateULIDRejectsGarbage(t *testing.T) {
	require.ErrorIs(t, ValidateULID(""), ErrInvalidULID)
	require.ErrorIs(t, ValidateULID("not-a-ulid"), ErrInvalidULID)
	require.ErrorIs(t, ValidateULID("01ARZ3NDEKTSV4RRFFQ69G5FA"), ErrInvalidULID) // 25 chars
}
