package ratelimit

import (
	"context"
	"fmt"
	"time"

	"respush/internal/domain/push"

	"golang.org/x/time/rate"
)

var _ push.Pacer = (*Pacer)(nil)

// Pacer pauses a fixed interval between outbound messages. Every Wait starts
// from an empty single-token bucket, so the pause is measured from the call and
// does not shrink when the preceding send was slow.
type Pacer struct {
	limit    rate.Limit
	interval time.Duration
}

// NewPacer creates a pacer. A zero interval never blocks.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{
		limit:    rate.Every(interval),
		interval: interval,
	}
}

// Wait blocks for one full interval, or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.interval <= 0 {
		return ctx.Err()
	}

	limiter := rate.NewLimiter(p.limit, 1)
	limiter.Allow()

	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("pacing wait: %w", err)
	}
	return nil
}

// Interval returns the configured pause.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}
