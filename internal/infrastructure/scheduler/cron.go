package scheduler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"

	"NewsToChat/internal/ports"
)

// CronScheduler runs a job on a cron expression (robfig syntax, "@every 10m" included).
type CronScheduler struct {
	spec   string
	logger *slog.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

var _ ports.Scheduler = (*CronScheduler)(nil)

// NewCronScheduler builds a scheduler configured via cron expression string.
func NewCronScheduler(spec string, logger *slog.Logger) *CronScheduler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CronScheduler{spec: spec, logger: logger}
}

// Start registers job and begins ticking. Starting twice is a no-op.
func (c *CronScheduler) Start(ctx context.Context, job func(context.Context)) error {
	if job == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cron != nil {
		return nil
	}

	cr := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := cr.AddFunc(c.spec, func() {
		if ctx.Err() != nil {
			return
		}
		c.logger.Debug("scheduled job triggered", "schedule", c.spec)
		job(ctx)
	}); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", c.spec, err)
	}

	cr.Start()
	c.cron = cr
	c.logger.Info("scheduler started", "schedule", c.spec)
	return nil
}

// Stop halts the scheduler and waits for a running job, bounded by ctx.
func (c *CronScheduler) Stop(ctx context.Context) error {
	c.mu.Lock()
	cr := c.cron
	c.cron = nil
	c.mu.Unlock()

	if cr == nil {
		return nil
	}

	select {
	case <-cr.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
