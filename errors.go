package gocbqueryx

import (
	"fmt"

	"github.com/couchbase/gocbqueryx/cberrorsx"
)

// ErrServiceNotAvailable is returned when no query endpoint is configured.
var ErrServiceNotAvailable error = cberrorsx.CommonServiceNotAvailable

type retrierDeadlineError struct {
	Cause      error
	RetryCause error
}

func (e retrierDeadlineError) Error() string {
	if e.RetryCause != nil {
		return fmt.Sprintf("timed out during retrying: %s (retry cause: %s)", e.Cause, e.RetryCause)
	} else {
		return fmt.Sprintf("timed out during retrying: %s", e.Cause)
	}
}

func (e retrierDeadlineError) Unwrap() error {
	return e.Cause
}

// backoffTimeoutError is a deadline that expired while waiting to retry.
// Nothing was in flight at the time, so the timeout is unambiguous.
type backoffTimeoutError struct {
	Cause error
}

func (e backoffTimeoutError) Error() string {
	return fmt.Sprintf("%s: %s", cberrorsx.CommonUnambiguousTimeout, e.Cause)
}

func (e backoffTimeoutError) Unwrap() []error {
	return []error{cberrorsx.CommonUnambiguousTimeout, e.Cause}
}
