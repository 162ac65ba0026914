package cbqueryx

import (
	"fmt"

	"github.com/couchbase/gocbqueryx/cberrorsx"
)

var (
	ErrParsingFailure           error = cberrorsx.CommonParsingFailure
	ErrInternalServerError      error = cberrorsx.CommonInternalServerFailure
	ErrAuthenticationFailure    error = cberrorsx.CommonAuthenticationFailure
	ErrCasMismatch              error = cberrorsx.CommonCasMismatch
	ErrIndexExists              error = cberrorsx.CommonIndexExists
	ErrIndexNotFound            error = cberrorsx.CommonIndexNotFound
	ErrBucketNotFound           error = cberrorsx.CommonBucketNotFound
	ErrScopeNotFound            error = cberrorsx.CommonScopeNotFound
	ErrCollectionNotFound       error = cberrorsx.CommonCollectionNotFound
	ErrRateLimited              error = cberrorsx.CommonRateLimited
	ErrFeatureNotAvailable      error = cberrorsx.CommonFeatureNotAvailable
	ErrPlanningFailure          error = cberrorsx.QueryPlanningFailure
	ErrIndexFailure             error = cberrorsx.QueryIndexFailure
	ErrPreparedStatementFailure error = cberrorsx.QueryPreparedStatementFailure
	ErrDmlFailure               error = cberrorsx.QueryDmlFailure
)

// ServerError is a single error entry reported by the query service.
type ServerError struct {
	InnerError error
	Code       uint32
	Msg        string
	Retry      bool
	Reason     map[string]interface{}
}

func (e ServerError) Error() string {
	return fmt.Sprintf("query error: %s (code: %d, msg: %s)",
		e.InnerError.Error(),
		e.Code, e.Msg)
}

func (e ServerError) Unwrap() error {
	return e.InnerError
}

// ServerErrors holds every error entry of a failed response.  It unwraps to
// the first entry.
type ServerErrors struct {
	Errors []*ServerError
}

func (e ServerErrors) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%s (+ %d other errors)", e.Errors[0].Error(), len(e.Errors)-1)
}

func (e ServerErrors) Unwrap() error {
	return e.Errors[0]
}

// ResourceError carries the names of the resource a server error referred
// to, when they could be recovered from the message.
type ResourceError struct {
	Cause          error
	BucketName     string
	ScopeName      string
	CollectionName string
	IndexName      string
}

func (e ResourceError) Error() string {
	return fmt.Sprintf("resource error: %s (bucket: %s, scope: %s, collection: %s, index: %s)",
		e.Cause, e.BucketName, e.ScopeName, e.CollectionName, e.IndexName)
}

func (e ResourceError) Unwrap() error {
	return e.Cause
}

// QueryError is returned by entry points that surface a failed query as an
// error.  Context holds the full diagnostics for the failed request.
type QueryError struct {
	Cause   error
	Context QueryErrorContext
}

func (e QueryError) Error() string {
	return fmt.Sprintf("query failed: %s (statement: %q, client context id: %s, endpoint: %s)",
		e.Cause, e.Context.Statement, e.Context.ClientContextID, e.Context.LastDispatchedTo)
}

func (e QueryError) Unwrap() error {
	return e.Cause
}
