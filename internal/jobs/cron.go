package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/BruksfildServices01/shift-scheduler/internal/config"
	"github.com/BruksfildServices01/shift-scheduler/internal/timezone"
)

const jobTimeout = 5 * time.Minute

// Scans is the work the scheduler triggers. The notification service
// implements it.
type Scans interface {
	SendBirthdayGreetings(ctx context.Context, today time.Time) (int, error)
	SendReminders(ctx context.Context, now time.Time) (int, error)
	NotifyNewShifts(ctx context.Context, now time.Time) (int, error)
}

// Start registers the periodic scans and starts the scheduler. An empty
// schedule leaves that job disabled.
func Start(cfg *config.Config, scans Scans) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(timezone.Location()))

	entries := []struct {
		name string
		spec string
		run  func(ctx context.Context, now time.Time) (int, error)
	}{
		{"birthday", cfg.BirthdayCron, scans.SendBirthdayGreetings},
		{"reminders", cfg.ReminderCron, scans.SendReminders},
		{"new_shifts", cfg.NewShiftsCron, scans.NotifyNewShifts},
	}

	for _, e := range entries {
		if e.spec == "" {
			slog.Info("cron job disabled", "job", e.name)
			continue
		}
		if _, err := c.AddFunc(e.spec, wrap(e.name, e.run)); err != nil {
			return nil, err
		}
		slog.Info("cron job registered", "job", e.name, "schedule", e.spec)
	}

	c.Start()
	return c, nil
}

func wrap(name string, run func(ctx context.Context, now time.Time) (int, error)) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		n, err := run(ctx, timezone.Now())
		if err != nil {
			slog.Error("cron job failed", "job", name, "error", err)
			return
		}
		slog.Info("cron job done", "job", name, "count", n)
	}
}
