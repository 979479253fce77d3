// Package sweep removes expired cache entries in the background.
package sweep

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweeper deletes expired entries and reports how many were removed.
type Sweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// Start sweeps once immediately and then every interval until ctx is
// cancelled. It blocks, so callers run it in a goroutine.
func Start(ctx context.Context, s Sweeper, interval time.Duration, log zerolog.Logger) {
	run := func() {
		n, err := s.SweepExpired(ctx)
		switch {
		case err != nil && ctx.Err() == nil:
			log.Debug().Err(err).Msg("cache sweep failed")
		case n > 0:
			log.Debug().Int64("removed", n).Msg("expired cache entries swept")
		}
	}

	run()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			run()
		}
	}
}

// Go runs Start in its own goroutine. The returned stop cancels it and
// waits until any sweep in progress has returned.
func Go(ctx context.Context, s Sweeper, interval time.Duration, log zerolog.Logger) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		Start(ctx, s, interval, log)
	}()
	return func() {
		cancel()
		<-done
	}
}
