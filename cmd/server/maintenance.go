package main

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	maintenanceTimeout = time.Minute
	limiterMaxIdle     = 30 * time.Minute
)

// startMaintenance schedules the periodic housekeeping jobs. An empty
// schedule disables them.
func (app *application) startMaintenance() error {
	spec := app.config.Maintenance.SessionPurgeSchedule
	if spec == "" {
		app.logger.Info("Maintenance jobs disabled")
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(spec, app.purgeSessions); err != nil {
		return fmt.Errorf("invalid session purge schedule %q: %w", spec, err)
	}
	if _, err := c.AddFunc(spec, app.cleanupLimiters); err != nil {
		return fmt.Errorf("invalid session purge schedule %q: %w", spec, err)
	}
	c.Start()

	app.scheduler = c
	app.logger.Info("Maintenance jobs scheduled", "schedule", spec)
	return nil
}

// purgeSessions removes expired sessions from the session store.
func (app *application) purgeSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), maintenanceTimeout)
	defer cancel()

	n, err := app.stores.sessions.PurgeExpired(ctx, time.Now().UTC())
	if err != nil {
		app.logger.Error("Failed to purge expired sessions", "error", err)
		return
	}
	app.metrics.ObserveSessionsPurged(n)
	app.logger.Debug("Expired sessions purged", "count", n)
}

// cleanupLimiters forgets rate limiter state of idle clients.
func (app *application) cleanupLimiters() {
	if n := app.authLimiter.Cleanup(limiterMaxIdle); n > 0 {
		app.logger.Debug("Idle rate limiter entries removed", "count", n)
	}
}
