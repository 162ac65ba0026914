package cbqueryx

import "encoding/json"

// QueryErrorContext captures what was sent, where it went and why it failed,
// for reporting alongside (or instead of) a QueryResult.
type QueryErrorContext struct {
	Err                error
	LastDispatchedTo   string
	LastDispatchedFrom string
	RetryAttempts      int
	RetryReasons       []RetryReason
	FirstErrorCode     uint32
	FirstErrorMessage  string
	ClientContextID    string
	Statement          string
	Parameters         json.RawMessage
	Method             string
	Path               string
	HTTPStatus         int
	HTTPBody           string
	Hostname           string
	Port               int
}

// BuildErrorContext takes the diagnostic fields of resp.Ctx verbatim.  It
// records whatever the transport observed, including success.
func BuildErrorContext(resp *RawResponse) QueryErrorContext {
	ctx := QueryErrorContext{
		Err:                resp.Ctx.Err,
		LastDispatchedTo:   resp.Ctx.LastDispatchedTo,
		LastDispatchedFrom: resp.Ctx.LastDispatchedFrom,
		RetryAttempts:      resp.Ctx.RetryAttempts,
		RetryReasons:       resp.Ctx.RetryReasons,
		FirstErrorCode:     resp.Ctx.FirstErrorCode,
		FirstErrorMessage:  resp.Ctx.FirstErrorMessage,
		ClientContextID:    resp.Ctx.ClientContextID,
		Statement:          resp.Ctx.Statement,
		Parameters:         resp.Ctx.Parameters,
		Method:             resp.Ctx.Method,
		Path:               resp.Ctx.Path,
		HTTPStatus:         resp.Ctx.HTTPStatus,
		HTTPBody:           resp.Ctx.HTTPBody,
		Hostname:           resp.Ctx.Hostname,
		Port:               resp.Ctx.Port,
	}

	resp.Ctx.RetryReasons = nil
	resp.Ctx.Parameters = nil

	return ctx
}
