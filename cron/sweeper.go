package cron

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"salonbot/utils"
)

// Sweeper is implemented by in-memory maps that need explicit expiry, such as
// the memory session store and the rate limiters.
type Sweeper interface {
	Sweep(idle time.Duration) int
}

// SweepTarget names one Sweeper and how long its entries may stay idle.
type SweepTarget struct {
	Name    string
	Sweeper Sweeper
	Idle    time.Duration
}

// StartSweeper runs every target's Sweep on the given cron schedule. The
// caller stops the returned scheduler on shutdown.
func StartSweeper(schedule string, logger *zap.Logger, targets ...SweepTarget) (*cron.Cron, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("sweeper needs at least one target")
	}
	for _, t := range targets {
		if t.Idle <= 0 {
			return nil, fmt.Errorf("sweep target %q needs a positive idle period, got %s", t.Name, t.Idle)
		}
	}

	c := cron.New()
	for _, t := range targets {
		if _, err := c.AddFunc(schedule, sweepJob(t, logger)); err != nil {
			return nil, fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
		}
	}
	c.Start()
	logger.Info("Sweeper started", zap.String("schedule", schedule), zap.Int("targets", len(targets)))
	return c, nil
}

func sweepJob(t SweepTarget, logger *zap.Logger) func() {
	return func() {
		removed := t.Sweeper.Sweep(t.Idle)
		if removed == 0 {
			return
		}
		utils.SweptEntries.WithLabelValues(t.Name).Add(float64(removed))
		logger.Debug("swept idle entries", zap.String("target", t.Name), zap.Int("removed", removed))
	}
}
