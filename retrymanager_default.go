package gocbqueryx

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/couchbase/gocbqueryx/cberrorsx"
	"github.com/couchbase/gocbqueryx/cbqueryx"
)

// BackoffCalculator returns how long to wait before the given retry attempt.
type BackoffCalculator func(retryAttempts uint32) time.Duration

// ExponentialBackoff calculates a backoff time duration from the retry
// attempts on a given request.  Zero arguments fall back to 1ms, 500ms and a
// factor of 2.
func ExponentialBackoff(min, max time.Duration, backoffFactor float64) BackoffCalculator {
	var minBackoff float64 = 1000000   // 1 Millisecond
	var maxBackoff float64 = 500000000 // 500 Milliseconds
	var factor float64 = 2

	if min > 0 {
		minBackoff = float64(min)
	}
	if max > 0 {
		maxBackoff = float64(max)
	}
	if backoffFactor > 0 {
		factor = backoffFactor
	}

	return func(retryAttempts uint32) time.Duration {
		backoff := minBackoff * (math.Pow(factor, float64(retryAttempts)))

		if backoff > maxBackoff {
			backoff = maxBackoff
		}
		if backoff < minBackoff {
			backoff = minBackoff
		}

		return time.Duration(backoff)
	}
}

type RetryManagerDefault struct {
	calc BackoffCalculator
}

var _ RetryManager = (*RetryManagerDefault)(nil)

func NewRetryManagerDefault() *RetryManagerDefault {
	return &RetryManagerDefault{
		calc: ExponentialBackoff(10*time.Millisecond, 500*time.Millisecond, 2),
	}
}

func (m *RetryManagerDefault) NewRetryController() RetryController {
	return &retryControllerDefault{
		parent: m,
	}
}

type retryControllerDefault struct {
	parent     *RetryManagerDefault
	retryCount uint32
}

func (rc *retryControllerDefault) ShouldRetry(ctx context.Context, err error) (time.Duration, bool, error) {
	if _, ok := queryRetryReason(err); !ok {
		return 0, false, nil
	}

	calc := rc.parent.calc

	// calculate the retry time for this attempt
	retryTime := calc(rc.retryCount)

	// increment the retry count
	rc.retryCount++

	return retryTime, true, nil
}

// queryRetryReason classifies err as a retriable query failure.
func queryRetryReason(err error) (cbqueryx.RetryReason, bool) {
	var serverErrs *cbqueryx.ServerErrors
	if errors.As(err, &serverErrs) {
		for _, serverErr := range serverErrs.Errors {
			switch {
			case serverErr.Code == 4040 || serverErr.Code == 4050 || serverErr.Code == 4070:
				return cbqueryx.RetryReasonQueryPreparedStatementFailure, true
			case serverErr.Code == 5000 && strings.Contains(serverErr.Msg, "queryport.indexNotFound"):
				return cbqueryx.RetryReasonQueryIndexNotFound, true
			case serverErr.Retry:
				return cbqueryx.RetryReasonServiceResponseCodeIndicated, true
			}
		}
		return "", false
	}

	if errors.Is(err, cberrorsx.CommonServiceNotAvailable) {
		return cbqueryx.RetryReasonServiceNotAvailable, true
	}

	return "", false
}
