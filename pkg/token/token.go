package token

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Purpose names the action a token authorizes.
type Purpose string

const (
	PurposeVerify Purpose = "verify"
	PurposeReset  Purpose = "reset"
)

var (
	ErrInvalidToken        = errors.New("invalid token")
	ErrMalformedIdentifier = errors.New("malformed identifier")
)

// Maker mints and checks action tokens. A token is an HS256-signed claim set
// binding a user id, a purpose, and a fingerprint of the user's mutable
// security state. Nothing is stored server-side: validity is recomputed at
// check time, so any password or verification change invalidates all
// previously minted tokens for the user.
type Maker struct {
	secret   []byte
	resetTTL time.Duration
}

func NewMaker(secret string, resetTTL time.Duration) *Maker {
	return &Maker{secret: []byte(secret), resetTTL: resetTTL}
}

type claims struct {
	Purpose     string `json:"pur"`
	Fingerprint string `json:"fph"`
	jwt.RegisteredClaims
}

// Fingerprint hashes the security-relevant mutable state of a user. The
// password hash and verified flag are the fields whose change must revoke
// outstanding links.
func Fingerprint(passwordHash string, verified bool) string {
	h := sha256.New()
	h.Write([]byte(passwordHash))
	if verified {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Mint creates a token for the given user id and state fingerprint. Reset
// tokens carry an absolute expiry; verify tokens rely on the explicit
// verification_link_expiration stored with the user.
func (m *Maker) Mint(userID int64, fingerprint string, purpose Purpose) (string, error) {
	now := time.Now()
	c := claims{
		Purpose:     string(purpose),
		Fingerprint: fingerprint,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.FormatInt(userID, 10),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if purpose == PurposeReset && m.resetTTL > 0 {
		c.ExpiresAt = jwt.NewNumericDate(now.Add(m.resetTTL))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
}

// Check reports whether tok was minted for the given user id and purpose
// against a state fingerprint equal to the current one. It never returns an
// error: every failure mode (bad signature, expired, wrong purpose, stale
// fingerprint, wrong user) is simply "not valid".
func (m *Maker) Check(userID int64, fingerprint string, purpose Purpose, tok string) bool {
	c := &claims{}
	parsed, err := jwt.ParseWithClaims(tok, c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return false
	}
	if c.Purpose != string(purpose) {
		return false
	}
	if c.Subject != strconv.FormatInt(userID, 10) {
		return false
	}
	return c.Fingerprint == fingerprint
}

// EncodeID produces the reversible, non-secret user identifier carried in
// verification and reset links alongside the token.
func EncodeID(id int64) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

// DecodeID reverses EncodeID. Failures return ErrMalformedIdentifier so the
// caller can distinguish a broken link from a failed token check.
func DecodeID(s string) (int64, error) {
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return 0, ErrMalformedIdentifier
	}
	id, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrMalformedIdentifier
	}
	return id, nil
}
