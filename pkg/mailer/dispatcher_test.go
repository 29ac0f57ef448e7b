package mailer

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surajkarki66/MediLeaf-backend/pkg/mailer/templates"
)

type capturePublisher struct {
	jobs []any
	err  error
}

func (p *capturePublisher) PublishJSON(_ context.Context, body any) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body)
	return nil
}

func tempLogo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "MediLeafLogo.png")
	require.NoError(t, os.WriteFile(path, []byte("png"), 0o644))
	return path
}

func TestDispatchPublishesValidJob(t *testing.T) {
	pub := &capturePublisher{}
	d := NewDispatcher(pub, tempLogo(t), true, nil)

	job := EmailJob{
		To:       "a@example.com",
		Template: templates.VerifyEmail,
		Data:     map[string]any{"Name": "Ana", "Link": "https://medileaf.example/verify/x/y"},
	}
	require.NoError(t, d.Dispatch(context.Background(), job))
	require.Len(t, pub.jobs, 1)
	assert.Equal(t, job, pub.jobs[0])
}

func TestDispatchFailsOnMissingContextKey(t *testing.T) {
	pub := &capturePublisher{}
	d := NewDispatcher(pub, tempLogo(t), true, nil)

	job := EmailJob{
		To:       "a@example.com",
		Template: templates.VerifyEmail,
		Data:     map[string]any{"Name": "Ana"}, // no Link
	}
	err := d.Dispatch(context.Background(), job)
	require.Error(t, err)
	assert.Empty(t, pub.jobs, "invalid job must not reach the queue")
}

func TestDispatchFailsOnMissingLogo(t *testing.T) {
	pub := &capturePublisher{}
	d := NewDispatcher(pub, filepath.Join(t.TempDir(), "nope.png"), true, nil)

	job := EmailJob{
		To:       "a@example.com",
		Template: templates.ResetPassword,
		Data:     map[string]any{"Name": "Ana", "Link": "https://medileaf.example/reset/x/y"},
	}
	err := d.Dispatch(context.Background(), job)
	assert.ErrorIs(t, err, ErrAssetMissing)
	assert.Empty(t, pub.jobs)
}

func TestDispatchDisabledDropsJob(t *testing.T) {
	pub := &capturePublisher{}
	d := NewDispatcher(pub, tempLogo(t), false, nil)

	job := EmailJob{
		To:       "a@example.com",
		Template: templates.ResetSuccess,
		Data:     map[string]any{"Name": "Ana", "Link": "https://medileaf.example/login/"},
	}
	require.NoError(t, d.Dispatch(context.Background(), job))
	assert.Empty(t, pub.jobs)
}
