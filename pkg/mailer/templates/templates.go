package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"strings"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// Template names.
const (
	VerifyEmail   = "verify_email"
	ResetPassword = "reset_password"
	ResetSuccess  = "reset_success"
)

// LogoCID is the content-id under which the site logo is attached inline;
// templates reference it as cid:LogoCID.
const LogoCID = "MediLeafLogo.png"

var subjects = map[string]string{
	VerifyEmail:   "Verify your MediLeaf Account",
	ResetPassword: "MediLeaf Account password reset instructions.",
	ResetSuccess:  "Your password has been successfully reset/set.",
}

// required lists the context keys a template cannot render without. A missing
// key is a hard render failure, not a silently empty email.
var required = map[string][]string{
	VerifyEmail:   {"Name", "Link"},
	ResetPassword: {"Name", "Link"},
	ResetSuccess:  {"Name", "Link"},
}

var funcMap = htmpl.FuncMap{
	"now":   func() time.Time { return time.Now().UTC() },
	"year":  func() int { return time.Now().UTC().Year() },
	"upper": strings.ToUpper,
}

// Render produces the subject and HTML body for the named template.
func Render(name string, data map[string]any) (subject, html string, err error) {
	subject, ok := subjects[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	for _, key := range required[name] {
		v, ok := data[key]
		if !ok || fmt.Sprintf("%v", v) == "" {
			return "", "", fmt.Errorf("template %q: missing required key %q", name, key)
		}
	}
	tpl, err := htmpl.New(name + ".tmpl").Funcs(funcMap).ParseFS(FS, name+".tmpl")
	if err != nil {
		return "", "", fmt.Errorf("parse %q: %w", name, err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("exec %q: %w", name, err)
	}
	return subject, buf.String(), nil
}
