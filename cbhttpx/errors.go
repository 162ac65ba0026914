package cbhttpx

import (
	"errors"
	"fmt"
)

// ErrConnectError matches any ConnectError.
var ErrConnectError = errors.New("http connect failed")

// ConnectError is returned when no connection to Endpoint could be made, so
// the request was never sent.
type ConnectError struct {
	Endpoint string
	Cause    error
}

func (e ConnectError) Error() string {
	return fmt.Sprintf("%s to %s: %s", ErrConnectError, e.Endpoint, e.Cause)
}

func (e ConnectError) Is(target error) bool {
	return target == ErrConnectError
}

func (e ConnectError) Unwrap() error {
	return e.Cause
}
