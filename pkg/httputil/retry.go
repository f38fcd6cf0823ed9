package httputil

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Backoff retries an operation with a doubling delay between attempts.
type Backoff struct {
	Attempts int           // total calls, at least one
	Initial  time.Duration // wait after the first failure
}

// Do calls fn until it succeeds, returns an error not marked [Transient], or
// b.Attempts calls have failed.
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	wait := b.Initial
	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil || !IsTransient(err) || attempt >= b.Attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}
}

type transientError struct{ err error }

func (e transientError) Error() string { return e.err.Error() }
func (e transientError) Unwrap() error { return e.err }

// Transient marks err as worth retrying. Transient(nil) is nil.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return transientError{err}
}

// IsTransient reports whether err was marked with [Transient].
func IsTransient(err error) bool {
	var t transientError
	return errors.As(err, &t)
}

// StatusError is a non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

// CheckStatus returns nil for 2xx responses. Other statuses yield a
// *StatusError, marked transient for 429 and 5xx.
func CheckStatus(resp *http.Response) error {
	code := resp.StatusCode
	if code/100 == 2 {
		return nil
	}
	err := &StatusError{StatusCode: code, Status: resp.Status}
	if code == http.StatusTooManyRequests || code >= 500 {
		return Transient(err)
	}
	return err
}
