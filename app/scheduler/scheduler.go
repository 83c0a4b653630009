package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/robfig/cron/v3"

	e "nuclight.org/content-planner-bot/pkg/entities"
	"nuclight.org/content-planner-bot/pkg/logger"
)

// DraftSender is the part of the telegram client the cron jobs drive.
type DraftSender interface {
	SendDraft(ctx context.Context, platform e.Platform, day int, scheduled bool) error
}

// jobSpecs binds each platform to its daily draft time. The channel draft
// goes out in the morning, the instagram variant before noon.
var jobSpecs = map[e.Platform]string{
	e.PlatformTelegram:  "0 9 * * *",
	e.PlatformInstagram: "0 11 * * *",
}

// Schedule fires the daily draft jobs in the editorial timezone.
type Schedule struct {
	// Log is a logger
	Log logger.Logger

	// Sender delivers drafts to the admin
	Sender DraftSender

	// Location is the editorial timezone
	Location *time.Location

	cron *cron.Cron
}

func (s *Schedule) Start(ctx context.Context) error {
	s.cron = cron.New(cron.WithLocation(s.Location))

	for platform, spec := range jobSpecs {
		_, err := s.cron.AddFunc(spec, func() {
			s.Log.Info("scheduled draft triggered", "platform", platform)

			if err := s.Sender.SendDraft(ctx, platform, 0, true); err != nil {
				s.Log.Error("scheduled draft failed", "platform", platform, "error", err)
				sentry.CaptureException(err)
			}
		})
		if err != nil {
			return fmt.Errorf("adding %s job: %w", platform, err)
		}
	}

	s.cron.Start()
	s.Log.Info("scheduler started", "jobs", len(jobSpecs))

	return nil
}

// Stop halts the timers and waits for a running job to finish.
func (s *Schedule) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}
