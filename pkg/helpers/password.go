package helpers

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrPasswordAllNumeric = errors.New("password is entirely numeric")
	ErrPasswordTooCommon  = errors.New("password is too common")
)

// A short deny-list of passwords seen constantly in credential dumps.
var commonPasswords = map[string]struct{}{
	"password":  {},
	"password1": {},
	"12345678":  {},
	"qwerty123": {},
	"iloveyou":  {},
	"letmein1":  {},
}

// HashPassword hashes the plain text password using bcrypt.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword compares a bcrypt hash with a plain password.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// IsWeakPassword reports whether err came from ValidatePasswordStrength.
func IsWeakPassword(err error) bool {
	return errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrPasswordAllNumeric) ||
		errors.Is(err, ErrPasswordTooCommon)
}

// ValidatePasswordStrength applies the signup/reset password policy:
// minimum length, not entirely numeric, not on the common-password list.
func ValidatePasswordStrength(plain string, minLen int) error {
	if len(plain) < minLen {
		return ErrPasswordTooShort
	}
	allDigits := true
	for _, r := range plain {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return ErrPasswordAllNumeric
	}
	if _, ok := commonPasswords[strings.ToLower(plain)]; ok {
		return ErrPasswordTooCommon
	}
	return nil
}
