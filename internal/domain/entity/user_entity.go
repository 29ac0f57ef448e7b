package entity

import (
	"strings"
	"time"
)

// User is the aggregate root for the account domain.
// Password always holds a bcrypt hash, never plaintext.
type User struct {
	ID                         int64
	FirstName                  string
	LastName                   string
	Email                      string
	Password                   string
	Contact                    string
	Country                    string
	VerificationLinkExpiration *time.Time
	IsVerified                 bool
	IsActive                   bool
	IsStaff                    bool
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// FullName returns the first and last name with extra spaces removed.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// NormalizeEmail lower-cases the domain part of an email address. The local
// part is left untouched.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

// MaskEmail obscures the local part for display in token-probe responses,
// e.g. "someone@example.com" -> "s*****e@example.com".
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 2 {
		return email
	}
	local, domain := email[:at], email[at:]
	return local[:1] + strings.Repeat("*", len(local)-2) + local[len(local)-1:] + domain
}
