package cbqueryx

import (
	"encoding/json"
	"time"

	"go.opentelemetry.io/otel/trace"
)

type ScanConsistency string

const (
	QueryScanConsistencyUnset       ScanConsistency = ""
	QueryScanConsistencyNotBounded  ScanConsistency = "not_bounded"
	QueryScanConsistencyRequestPlus ScanConsistency = "request_plus"
)

type ProfileMode string

const (
	QueryProfileModeUnset   ProfileMode = ""
	QueryProfileModeOff     ProfileMode = "off"
	QueryProfileModePhases  ProfileMode = "phases"
	QueryProfileModeTimings ProfileMode = "timings"
)

// UseReplicaLevel controls whether the query service may read documents from
// replicas when the active copy is unavailable.
type UseReplicaLevel string

const (
	QueryUseReplicaUnset UseReplicaLevel = ""
	QueryUseReplicaOn    UseReplicaLevel = "on"
	QueryUseReplicaOff   UseReplicaLevel = "off"
)

// MutationToken identifies the position of a single write, used to ask the
// query service to observe at least that write.
type MutationToken struct {
	BucketName string
	VbID       uint16
	VbUuid     uint64
	SeqNo      uint64
}

// NamedValue is a name paired with an already encoded JSON value.
type NamedValue struct {
	Name  string
	Value json.RawMessage
}

// BuiltQueryOptions is a validated set of options with defaults applied.
// Values are taken as they are; no validation happens past this point.
type BuiltQueryOptions struct {
	Adhoc           bool
	Metrics         bool
	ReadOnly        bool
	FlexIndex       bool
	PreserveExpiry  bool
	UseReplica      UseReplicaLevel
	MaxParallelism  uint32
	ScanCap         uint32
	ScanWait        time.Duration
	PipelineBatch   uint32
	PipelineCap     uint32
	ScanConsistency ScanConsistency
	MutationState   []MutationToken
	ClientContextID string
	Timeout         time.Duration
	Profile         ProfileMode
	ParentSpan      trace.Span

	// Raw holds extra top-level request fields.  A later entry replaces an
	// earlier one with the same name.
	Raw                  []NamedValue
	PositionalParameters []json.RawMessage
	NamedParameters      []NamedValue
}

// DefaultBuiltQueryOptions returns the options an unconfigured query runs with.
func DefaultBuiltQueryOptions() BuiltQueryOptions {
	return BuiltQueryOptions{
		Adhoc:   true,
		Metrics: true,
	}
}

// QueryRequest is a wire-ready query request.  It is built for one call and
// consumed by the transport.
type QueryRequest struct {
	Statement       string
	Adhoc           bool
	Metrics         bool
	ReadOnly        bool
	FlexIndex       bool
	PreserveExpiry  bool
	UseReplica      UseReplicaLevel
	MaxParallelism  uint32
	ScanCap         uint32
	ScanWait        time.Duration
	PipelineBatch   uint32
	PipelineCap     uint32
	ScanConsistency ScanConsistency
	MutationState   []MutationToken
	QueryContext    string
	ClientContextID string
	Timeout         time.Duration
	Profile         ProfileMode
	ParentSpan      trace.Span

	Raw                  map[string]json.RawMessage
	PositionalParameters []json.RawMessage
	NamedParameters      map[string]json.RawMessage

	// Transaction state, set only for statements run inside a transaction.
	TxID       string
	TxData     json.RawMessage
	TxImplicit bool
	TxStmtNum  uint32
	TxTimeout  time.Duration

	// set on copies of the request by PreparedQuery
	preparedName string
	autoExecute  bool
}

// BuildQueryRequest maps statement, an optional query context ("" for none)
// and opts into a QueryRequest.
func BuildQueryRequest(statement string, queryContext string, opts BuiltQueryOptions) *QueryRequest {
	req := &QueryRequest{
		Statement:       statement,
		Adhoc:           opts.Adhoc,
		Metrics:         opts.Metrics,
		ReadOnly:        opts.ReadOnly,
		FlexIndex:       opts.FlexIndex,
		PreserveExpiry:  opts.PreserveExpiry,
		UseReplica:      opts.UseReplica,
		MaxParallelism:  opts.MaxParallelism,
		ScanCap:         opts.ScanCap,
		ScanWait:        opts.ScanWait,
		PipelineBatch:   opts.PipelineBatch,
		PipelineCap:     opts.PipelineCap,
		ScanConsistency: opts.ScanConsistency,
		MutationState:   opts.MutationState,
		QueryContext:    queryContext,
		ClientContextID: opts.ClientContextID,
		Timeout:         opts.Timeout,
		Profile:         opts.Profile,
		ParentSpan:      opts.ParentSpan,
	}

	if len(opts.Raw) > 0 {
		req.Raw = make(map[string]json.RawMessage, len(opts.Raw))
		for _, raw := range opts.Raw {
			req.Raw[raw.Name] = raw.Value
		}
	}

	if len(opts.PositionalParameters) > 0 {
		req.PositionalParameters = make([]json.RawMessage, 0, len(opts.PositionalParameters))
		req.PositionalParameters = append(req.PositionalParameters, opts.PositionalParameters...)
	}

	if len(opts.NamedParameters) > 0 {
		req.NamedParameters = make(map[string]json.RawMessage, len(opts.NamedParameters))
		for _, param := range opts.NamedParameters {
			req.NamedParameters[param.Name] = param.Value
		}
	}

	return req
}
