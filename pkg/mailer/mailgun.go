package mailer

import (
	"bytes"
	"context"
	"io"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Asset is an image embedded in the HTML body, referenced as cid:<Name>.
type Asset struct {
	Name string
	Data []byte
}

// Mailgun wraps Mailgun client configuration.
type Mailgun struct {
	Domain string
	APIKey string
	Sender string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender}
}

// Send delivers an HTML email via Mailgun with the given inline assets.
func (m *Mailgun) Send(ctx context.Context, to, subject, html string, inline []Asset) error {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.Sender, subject, "", to)
	msg.SetHtml(html)
	for _, a := range inline {
		msg.AddReaderInline(a.Name, io.NopCloser(bytes.NewReader(a.Data)))
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}
