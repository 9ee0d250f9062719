// Package scheduler runs the background session purge.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/mkrecek/todolist/internal/metrics"
	"github.com/mkrecek/todolist/internal/repo"
	"github.com/robfig/cron/v3"
)

// RunSessionPurge starts a cron job that deletes expired sessions on the
// given cron spec. Returns the cron so the caller can Stop it on shutdown.
func RunSessionPurge(sessions *repo.SessionRepo, cronSpec string) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(cronSpec, func() {
		purged, err := sessions.DeleteExpired(context.Background())
		if err != nil {
			slog.Error("session purge failed", "error", err)
			return
		}
		if purged > 0 {
			metrics.SessionsPurged.Add(float64(purged))
			slog.Info("purged expired sessions", "count", purged)
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
