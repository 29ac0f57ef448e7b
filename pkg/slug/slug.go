package slug

import (
	"context"
	"crypto/rand"
	"strings"
	"unicode"
)

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Make turns a title into a URL slug: lower-cased, runs of non-alphanumeric
// characters collapsed to single hyphens.
func Make(title string) string {
	var b strings.Builder
	prevHyphen := true // swallow leading separators
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// ExistsFunc reports whether a candidate slug is already taken.
type ExistsFunc func(ctx context.Context, slug string) (bool, error)

// Unique returns base if free, otherwise retries with a random 4-character
// suffix until an unused slug is found.
func Unique(ctx context.Context, base string, exists ExistsFunc) (string, error) {
	candidate := base
	for {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		suffix, err := randomSuffix(4)
		if err != nil {
			return "", err
		}
		candidate = base + "-" + suffix
	}
}

func randomSuffix(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = suffixAlphabet[int(b[i])%len(suffixAlphabet)]
	}
	return string(b), nil
}
