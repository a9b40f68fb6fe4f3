package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matzehuels/apinav/pkg/httputil"
)

// ErrNetwork is returned when a remote backend cannot be reached.
var ErrNetwork = errors.New("network error")

// Connection check settings for the remote tiers.
var (
	pingAttempts = 3
	pingDelay    = time.Second
)

// ping runs check until it succeeds, retrying with backoff. Failures are
// reported as ErrNetwork naming the backend.
func ping(ctx context.Context, backend string, check func(context.Context) error) error {
	return httputil.Retry(ctx, pingAttempts, pingDelay, func() error {
		if err := check(ctx); err != nil {
			return &httputil.RetryableError{Err: fmt.Errorf("%w: ping %s: %v", ErrNetwork, backend, err)}
		}
		return nil
	})
}
