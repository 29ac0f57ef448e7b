package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderVerifyEmail(t *testing.T) {
	subject, html, err := Render(VerifyEmail, map[string]any{
		"Name": "Ana",
		"Link": "https://medileaf.example/verify/abc/def",
	})
	require.NoError(t, err)
	assert.Equal(t, "Verify your MediLeaf Account", subject)
	assert.Contains(t, html, "https://medileaf.example/verify/abc/def")
	assert.Contains(t, html, "Ana")
	assert.Contains(t, html, "cid:"+LogoCID)
}

func TestRenderEscapesHTMLInName(t *testing.T) {
	_, html, err := Render(ResetPassword, map[string]any{
		"Name": "<script>alert(1)</script>",
		"Link": "https://medileaf.example/reset/a/b",
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, _, err := Render("no_such_template", map[string]any{})
	assert.Error(t, err)
}

func TestRenderMissingRequiredKeys(t *testing.T) {
	for _, name := range []string{VerifyEmail, ResetPassword, ResetSuccess} {
		_, _, err := Render(name, map[string]any{"Name": "Ana"})
		assert.Error(t, err, "template %s must require Link", name)
	}
}
