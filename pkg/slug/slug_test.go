package slug

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"Ocimum tenuiflorum":  "ocimum-tenuiflorum",
		"  Aloe   Vera  ":     "aloe-vera",
		"Ginkgo (biloba)!":    "ginkgo-biloba",
		"UPPER_case--mixed":   "upper-case-mixed",
		"":                    "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Make(in), "input %q", in)
	}
}

func TestUniqueNoCollision(t *testing.T) {
	got, err := Unique(context.Background(), "lamiaceae", func(context.Context, string) (bool, error) {
		return false, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "lamiaceae", got)
}

func TestUniqueAppendsSuffixOnCollision(t *testing.T) {
	seen := map[string]bool{"lamiaceae": true}
	got, err := Unique(context.Background(), "lamiaceae", func(_ context.Context, s string) (bool, error) {
		return seen[s], nil
	})
	require.NoError(t, err)
	assert.NotEqual(t, "lamiaceae", got)
	assert.Regexp(t, `^lamiaceae-[a-z0-9]{4}$`, got)
}
