package storage

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	// DefaultWaitTimeout bounds WaitUntilObjectExists when no timeout is given.
	DefaultWaitTimeout = 60 * time.Second
	// DefaultPollInterval is the delay between existence probes.
	DefaultPollInterval = 2 * time.Second
)

// ExistsFunc reports whether an object exists. A non-nil error means the
// probe itself failed; absence must be reported as (false, nil).
type ExistsFunc func(ctx context.Context) (bool, error)

// PollUntilExists calls probe immediately and then every interval until it
// reports true or timeout elapses.
//
// A probe error stops the wait and is returned. Running out of time returns an
// error matching ErrWaitTimeout.
func PollUntilExists(ctx context.Context, probe ExistsFunc, timeout, interval time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultWaitTimeout
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	attempts := 0
	for {
		attempts++
		exists, err := probe(ctx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() != nil {
				return fmt.Errorf("%w after %s (%d probes)", ErrWaitTimeout, timeout, attempts)
			}
			return fmt.Errorf("existence probe failed: %w", err)
		}
		if exists {
			return nil
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("%w after %s (%d probes)", ErrWaitTimeout, timeout, attempts)
			}
			return fmt.Errorf("wait cancelled: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}
