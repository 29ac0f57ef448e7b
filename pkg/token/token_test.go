package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintAndCheck(t *testing.T) {
	m := NewMaker("secret", time.Hour)
	fp := Fingerprint("bcrypt-hash", false)

	tok, err := m.Mint(42, fp, PurposeVerify)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	assert.True(t, m.Check(42, fp, PurposeVerify, tok))
}

func TestCheckRejectsWrongPurpose(t *testing.T) {
	m := NewMaker("secret", time.Hour)
	fp := Fingerprint("bcrypt-hash", false)

	tok, err := m.Mint(42, fp, PurposeVerify)
	require.NoError(t, err)

	assert.False(t, m.Check(42, fp, PurposeReset, tok))
}

func TestCheckRejectsWrongUser(t *testing.T) {
	m := NewMaker("secret", time.Hour)
	fp := Fingerprint("bcrypt-hash", false)

	tok, err := m.Mint(42, fp, PurposeReset)
	require.NoError(t, err)

	assert.False(t, m.Check(43, fp, PurposeReset, tok))
}

func TestCheckRejectsStaleFingerprint(t *testing.T) {
	m := NewMaker("secret", time.Hour)
	before := Fingerprint("old-hash", false)

	tok, err := m.Mint(42, before, PurposeReset)
	require.NoError(t, err)

	// Password change rotates the fingerprint; the old token must die.
	after := Fingerprint("new-hash", false)
	assert.False(t, m.Check(42, after, PurposeReset, tok))

	// Verification flag flip also rotates it.
	verified := Fingerprint("old-hash", true)
	assert.False(t, m.Check(42, verified, PurposeReset, tok))
}

func TestCheckRejectsForeignSecret(t *testing.T) {
	fp := Fingerprint("hash", true)
	tok, err := NewMaker("secret-a", time.Hour).Mint(7, fp, PurposeVerify)
	require.NoError(t, err)

	assert.False(t, NewMaker("secret-b", time.Hour).Check(7, fp, PurposeVerify, tok))
}

func TestCheckRejectsExpiredResetToken(t *testing.T) {
	m := NewMaker("secret", -time.Minute)
	fp := Fingerprint("hash", true)

	tok, err := m.Mint(7, fp, PurposeReset)
	require.NoError(t, err)

	assert.False(t, m.Check(7, fp, PurposeReset, tok))
}

func TestCheckRejectsGarbage(t *testing.T) {
	m := NewMaker("secret", time.Hour)
	fp := Fingerprint("hash", true)

	assert.False(t, m.Check(7, fp, PurposeVerify, ""))
	assert.False(t, m.Check(7, fp, PurposeVerify, "not-a-token"))
}

func TestEncodeDecodeID(t *testing.T) {
	enc := EncodeID(12345)
	id, err := DecodeID(enc)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), id)
}

func TestDecodeIDMalformed(t *testing.T) {
	for _, s := range []string{"", "%%%", "bm90LWEtbnVtYmVy", EncodeID(-3)} {
		_, err := DecodeID(s)
		assert.ErrorIs(t, err, ErrMalformedIdentifier, "input %q", s)
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	assert.Equal(t, Fingerprint("h", true), Fingerprint("h", true))
	assert.NotEqual(t, Fingerprint("h", true), Fingerprint("h", false))
	assert.NotEqual(t, Fingerprint("h1", true), Fingerprint("h2", true))
}
