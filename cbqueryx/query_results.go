package cbqueryx

import "time"

// QueryWarning encapsulates any warnings returned by a query.  Reason is nil
// when the service sent no reason, which differs from an empty one.
type QueryWarning struct {
	Code    uint32
	Message string
	Reason  *string
	Retry   bool
}

// QueryMetrics encapsulates various metrics gathered during a queries execution.
type QueryMetrics struct {
	ElapsedTime   time.Duration
	ExecutionTime time.Duration
	ResultCount   uint64
	ResultSize    uint64
	SortCount     uint64
	MutationCount uint64
	ErrorCount    uint64
	WarningCount  uint64
}

// QueryMetaData provides access to the meta-data properties of a query result.
//
// Warnings is always non-nil; an empty slice means the service reported no
// warnings.  Metrics, Signature and Profile are nil when the service did not
// return them.
type QueryMetaData struct {
	RequestID       string
	ClientContextID string
	Status          QueryStatus
	Warnings        []QueryWarning
	Metrics         *QueryMetrics
	Signature       []byte
	Profile         []byte
}

// QueryResult holds the meta-data and the rows of a completed query.  Rows
// are opaque encoded values in the order the service delivered them.
type QueryResult struct {
	Meta QueryMetaData
	Rows [][]byte
}
