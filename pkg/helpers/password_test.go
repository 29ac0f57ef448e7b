package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("S3cure-pass")
	require.NoError(t, err)
	require.NotEqual(t, "S3cure-pass", hash)

	assert.True(t, CheckPassword(hash, "S3cure-pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
}

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"ok", "gr33n-leaf!", nil},
		{"too short", "ab1", ErrPasswordTooShort},
		{"all numeric", "1234567890", ErrPasswordAllNumeric},
		{"too common", "Password1", ErrPasswordTooCommon},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tt.password, 8)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
