package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jargon-id/jargon/internal/errors"
)

func TestLookup(t *testing.T) {
	dt, ok := Lookup("nin")
	require.True(t, ok)
	assert.Equal(t, "National Identification Number", dt.FullLabel)

	dt, ok = Lookup("  BVN ")
	require.True(t, ok, "matching is case-insensitive")
	assert.Equal(t, "bvn", dt.Value)

	_, ok = Lookup("ssn")
	assert.False(t, ok)
}

func TestClampDuration(t *testing.T) {
	assert.Equal(t, MinDurationMinutes, ClampDuration(0))
	assert.Equal(t, MinDurationMinutes, ClampDuration(-10))
	assert.Equal(t, 30, ClampDuration(30))
	assert.Equal(t, MaxDurationMinutes, ClampDuration(100000))
}

func TestAskValidate(t *testing.T) {
	valid := Ask{
		DataTypes:   []string{"NIN", "passport"},
		Email:       " user@example.com ",
		Description: "KYC verification",
		Minutes:     30,
	}

	t.Run("valid ask is normalized", func(t *testing.T) {
		got, err := valid.Validate()
		require.NoError(t, err)
		assert.Equal(t, []string{"nin", "passport"}, got.DataTypes)
		assert.Equal(t, "user@example.com", got.Email)
		assert.Equal(t, 30, got.Minutes)
	})

	t.Run("no data types", func(t *testing.T) {
		a := valid
		a.DataTypes = nil
		_, err := a.Validate()
		assert.ErrorIs(t, err, apperrors.ErrNoDataTypes)
	})

	t.Run("unknown data type", func(t *testing.T) {
		a := valid
		a.DataTypes = []string{"nin", "dna"}
		_, err := a.Validate()
		assert.ErrorIs(t, err, apperrors.ErrUnknownDataType)
	})

	t.Run("bad email", func(t *testing.T) {
		a := valid
		a.Email = "not-an-email"
		_, err := a.Validate()
		assert.ErrorIs(t, err, apperrors.ErrInvalidEmail)
	})

	t.Run("missing reason", func(t *testing.T) {
		a := valid
		a.Description = "   "
		_, err := a.Validate()
		assert.ErrorIs(t, err, apperrors.ErrMissingReason)
	})

	t.Run("duration clamped", func(t *testing.T) {
		a := valid
		a.Minutes = 1
		got, err := a.Validate()
		require.NoError(t, err)
		assert.Equal(t, MinDurationMinutes, got.Minutes)
	})
}
