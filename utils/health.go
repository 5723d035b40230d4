package utils

import (
	"context"
	"sync"
	"time"
)

// HealthCheck pings one external dependency.
type HealthCheck func(ctx context.Context) error

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Dependencies map[string]bool `json:"dependencies"`
	CheckedAt    time.Time       `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// CheckHealth runs every check once and stores the snapshot.
func CheckHealth(ctx context.Context, checks map[string]HealthCheck) HealthStatus {
	status := HealthStatus{
		Dependencies: make(map[string]bool, len(checks)),
		CheckedAt:    time.Now(),
	}
	for name, check := range checks {
		checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		status.Dependencies[name] = check(checkCtx) == nil
		cancel()
	}

	mu.Lock()
	currentHealth = status
	mu.Unlock()
	return status
}

// StartHealthMonitor performs periodic health checks and updates in-memory state
// until ctx is cancelled.
func StartHealthMonitor(ctx context.Context, interval time.Duration, checks map[string]HealthCheck) {
	CheckHealth(ctx, checks)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				CheckHealth(ctx, checks)
			}
		}
	}()
}
