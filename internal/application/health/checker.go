package health

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Pinger is anything whose liveness can be verified with a single probe
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a plain function to the Pinger interface
type PingerFunc func(ctx context.Context) error

// Ping implements Pinger
func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// Status is one health snapshot across the bot's dependencies
type Status struct {
	MySQL     bool      `json:"mysql"`
	Redis     bool      `json:"redis"`
	Timestamp time.Time `json:"timestamp"`
}

// Healthy reports whether every dependency passed its probe
func (s Status) Healthy() bool {
	return s.MySQL && s.Redis
}

// Checker probes MySQL and Redis with a per-probe timeout. A failed probe
// is recorded as unhealthy, never returned as an error: callers decide
// what a degraded dependency means for them.
type Checker struct {
	mysql  Pinger
	redis  Pinger
	probe  time.Duration
	logger *zap.Logger
}

// NewChecker creates a Checker with the given per-probe timeout
func NewChecker(mysql, redis Pinger, probeTimeout time.Duration, logger *zap.Logger) *Checker {
	if probeTimeout <= 0 {
		probeTimeout = 5 * time.Second
	}
	return &Checker{
		mysql:  mysql,
		redis:  redis,
		probe:  probeTimeout,
		logger: logger,
	}
}

// Check probes all dependencies and returns the snapshot
func (c *Checker) Check(ctx context.Context) Status {
	status := Status{Timestamp: time.Now().UTC()}

	if err := c.ping(ctx, c.mysql); err != nil {
		c.logger.Error("MySQL health check failed", zap.Error(err))
	} else {
		status.MySQL = true
	}

	if err := c.ping(ctx, c.redis); err != nil {
		c.logger.Error("Redis health check failed", zap.Error(err))
	} else {
		status.Redis = true
	}

	return status
}

func (c *Checker) ping(ctx context.Context, p Pinger) error {
	ctx, cancel := context.WithTimeout(ctx, c.probe)
	defer cancel()
	return p.Ping(ctx)
}
