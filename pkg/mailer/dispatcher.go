package mailer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/surajkarki66/MediLeaf-backend/pkg/mailer/templates"
)

// ErrAssetMissing means the inline logo referenced by the email templates is
// not on disk. This is a server misconfiguration and fails the triggering
// action rather than sending a broken email.
var ErrAssetMissing = errors.New("inline email asset missing")

// Publisher hands a JSON message to the queue. Satisfied by
// helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Dispatcher enqueues email jobs for background delivery. The render and
// asset checks run synchronously so a broken template or a missing logo
// fails the request that asked for the email; the delivery itself is
// fire-and-forget via the queue.
type Dispatcher struct {
	pub      Publisher
	logoPath string
	enabled  bool
	logger   *logrus.Logger
}

func NewDispatcher(pub Publisher, logoPath string, enabled bool, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{pub: pub, logoPath: logoPath, enabled: enabled, logger: logger}
}

// Dispatch validates the job and publishes it. The caller never waits on
// delivery; failures after this point are only observable in worker logs.
func (d *Dispatcher) Dispatch(ctx context.Context, job EmailJob) error {
	if _, _, err := templates.Render(job.Template, job.Data); err != nil {
		return fmt.Errorf("render precheck: %w", err)
	}
	if _, err := os.Stat(d.logoPath); err != nil {
		return fmt.Errorf("%w: %s", ErrAssetMissing, d.logoPath)
	}
	if !d.enabled {
		if d.logger != nil {
			d.logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).
				Info("mail sending disabled, dropping job")
		}
		return nil
	}
	if err := d.pub.PublishJSON(ctx, job); err != nil {
		return fmt.Errorf("enqueue email: %w", err)
	}
	return nil
}
