package cbqueryx

import (
	"encoding/json"
	"time"
)

// RetryReason names why a query request was dispatched again.
type RetryReason string

const (
	RetryReasonQueryPreparedStatementFailure RetryReason = "query_prepared_statement_failure"
	RetryReasonQueryIndexNotFound            RetryReason = "query_index_not_found"
	RetryReasonServiceResponseCodeIndicated  RetryReason = "service_response_code_indicated"
	RetryReasonServiceNotAvailable           RetryReason = "service_not_available"
)

// RawResponse is a query response exactly as the transport observed it.  A
// RawResponse is handed to a single builder, which takes its fields; it must
// not be reused afterwards.
type RawResponse struct {
	Meta RawMetaData
	Ctx  RawErrorContext
	Rows []json.RawMessage
}

type RawMetaData struct {
	RequestID       string
	ClientContextID string
	Status          string
	Prepared        string

	// Warnings is nil when the service did not report a warnings field.
	Warnings []RawWarning

	// Metrics, Signature and Profile are nil when absent from the response.
	Metrics   *RawMetrics
	Signature json.RawMessage
	Profile   json.RawMessage
}

type RawWarning struct {
	Code    uint32
	Message string
	Reason  *string
	Retry   bool
}

type RawMetrics struct {
	ElapsedTime   time.Duration
	ExecutionTime time.Duration
	ResultCount   uint64
	ResultSize    uint64
	SortCount     uint64
	MutationCount uint64
	ErrorCount    uint64
	WarningCount  uint64
}

// RawErrorContext is the diagnostic state recorded by the transport while
// dispatching a request.  Err is nil when the request succeeded.
type RawErrorContext struct {
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
