package gocbqueryx

import (
	"context"
	"errors"
	"time"

	"github.com/couchbase/gocbqueryx/cbqueryx"
)

type RetryController interface {
	ShouldRetry(ctx context.Context, err error) (time.Duration, bool, error)
}

type RetryManager interface {
	NewRetryController() RetryController
}

// OrchestrateQueryRetries calls fn until it succeeds or rs declines to retry.
// fn must always return a response.  The returned response carries the
// number of retries, the reasons for them and the final error in its Ctx.
func OrchestrateQueryRetries(
	ctx context.Context,
	rs RetryManager,
	fn func() (*cbqueryx.RawResponse, error),
) (*cbqueryx.RawResponse, error) {
	var opRetryController RetryController
	var lastErr error
	var retryAttempts int
	var retryReasons []cbqueryx.RetryReason

	finish := func(resp *cbqueryx.RawResponse, err error) (*cbqueryx.RawResponse, error) {
		if resp == nil {
			resp = &cbqueryx.RawResponse{}
		}
		resp.Ctx.Err = err
		resp.Ctx.RetryAttempts = retryAttempts
		resp.Ctx.RetryReasons = retryReasons
		return resp, err
	}

	for {
		resp, err := fn()
		if err == nil {
			return finish(resp, nil)
		}

		if errors.Is(err, context.DeadlineExceeded) {
			if lastErr != nil {
				return finish(resp, retrierDeadlineError{err, lastErr})
			}
			return finish(resp, err)
		}

		if opRetryController == nil {
			opRetryController = rs.NewRetryController()
		}

		retryTime, shouldRetry, retryErr := opRetryController.ShouldRetry(ctx, err)
		if retryErr != nil {
			return finish(resp, retryErr)
		}
		if !shouldRetry {
			return finish(resp, err)
		}

		select {
		case <-time.After(retryTime):
		case <-ctx.Done():
			ctxErr := ctx.Err()
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				return finish(resp, retrierDeadlineError{backoffTimeoutError{ctxErr}, err})
			}
			return finish(resp, err)
		}

		retryAttempts++
		if reason, ok := queryRetryReason(err); ok {
			retryReasons = append(retryReasons, reason)
		}
		lastErr = err
	}
}
