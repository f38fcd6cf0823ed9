package cache

import (
	"context"
	"time"

	"github.com/matzehuels/stepwall/pkg/errors"
)

const pingAttempts = 3

// pingBackoff is the wait after the first failed ping. It doubles after
// each further failure.
var pingBackoff = 500 * time.Millisecond

// pingUntilUp calls ping until it succeeds or pingAttempts calls have failed.
// Each call gets its own timeout unless ctx already has a deadline. The final
// failure is reported as CACHE_UNAVAILABLE.
func pingUntilUp(ctx context.Context, backend string, timeout time.Duration, ping func(context.Context) error) error {
	wait := pingBackoff
	var err error
	for attempt := 1; ; attempt++ {
		if err = pingOnce(ctx, timeout, ping); err == nil {
			return nil
		}
		if attempt == pingAttempts {
			break
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
		wait *= 2
	}
	return errors.Wrap(errors.ErrCodeCacheUnavailable, err, "%s did not answer after %d attempts", backend, pingAttempts)
}

func pingOnce(ctx context.Context, timeout time.Duration, ping func(context.Context) error) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return ping(ctx)
}
