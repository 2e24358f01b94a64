package fetcher

import (
	"context"
	"time"
)

// Pacer schedules the pause between consecutive pull request fetches in
// a batch. It exists so the batch loop stays testable without real
// waiting.
type Pacer interface {
	Wait(ctx context.Context) error
}

// sleepPacer pauses for a fixed duration
type sleepPacer struct {
	delay time.Duration
}

// NewSleepPacer returns a Pacer that sleeps for the given number of
// seconds. Fractional seconds are allowed.
func NewSleepPacer(seconds float64) Pacer {
	return &sleepPacer{delay: time.Duration(seconds * float64(time.Second))}
}

// Wait sleeps for the configured delay or until the context is done
func (p *sleepPacer) Wait(ctx context.Context) error {
	if p.delay <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.delay):
		return nil
	}
}
