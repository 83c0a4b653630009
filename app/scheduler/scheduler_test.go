package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	e "nuclight.org/content-planner-bot/pkg/entities"
)

type mockSender struct {
	calls int
}

func (m *mockSender) SendDraft(_ context.Context, _ e.Platform, _ int, _ bool) error {
	m.calls++
	return nil
}

func TestJobSpecsParse(t *testing.T) {
	require.NotEmpty(t, jobSpecs)

	for platform, spec := range jobSpecs {
		_, err := cron.ParseStandard(spec)
		assert.NoError(t, err, "platform %s", platform)
	}
}

func TestStartRegistersAllJobs(t *testing.T) {
	s := &Schedule{
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Sender:   &mockSender{},
		Location: time.UTC,
	}

	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(s.Stop)

	assert.Len(t, s.cron.Entries(), len(jobSpecs))
}
