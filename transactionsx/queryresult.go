// Package transactionsx maps query responses produced inside a transaction
// onto transaction-domain results.
package transactionsx

import (
	"encoding/json"
	"time"

	"github.com/couchbase/gocbqueryx/cbqueryx"
)

// TransactionOpErrorContext pairs the transaction_op code an operation
// finished with with the context of the query that ran it.  Err is nil when
// the operation succeeded.
type TransactionOpErrorContext struct {
	Err          error
	QueryContext cbqueryx.QueryErrorContext
}

type TransactionQueryResult struct {
	Context TransactionOpErrorContext
	Result  cbqueryx.QueryResult
}

// BuildTransactionQueryResult maps resp into a result for a transaction.  The
// transaction_op code is derived from resp.Ctx.Err and txnOverride, which may
// be nil.  Like cbqueryx.BuildResult, it takes the fields of resp.
func BuildTransactionQueryResult(resp *cbqueryx.RawResponse, txnOverride error) TransactionQueryResult {
	txnErr := translateQueryError(resp.Ctx.Err, txnOverride)

	return TransactionQueryResult{
		Context: TransactionOpErrorContext{
			Err:          txnErr,
			QueryContext: cbqueryx.BuildErrorContext(resp),
		},
		Result: cbqueryx.BuildResult(resp),
	}
}

// TransactionQueryOptions describes a statement run as part of a
// transaction, along with the transaction state the service needs to attach
// it to.
type TransactionQueryOptions struct {
	Statement    string
	QueryContext string
	Options      cbqueryx.BuiltQueryOptions

	TxID       string
	TxData     json.RawMessage
	TxImplicit bool
	TxStmtNum  uint32
	TxTimeout  time.Duration
}

// BuildTransactionQueryRequest maps opts into a request without a statement
// or query context.  Every option is carried over as it is.
func BuildTransactionQueryRequest(opts cbqueryx.BuiltQueryOptions) *cbqueryx.QueryRequest {
	return cbqueryx.BuildQueryRequest("", "", opts)
}

// Request builds the wire request for o.  The transaction governs the
// lifetime and consistency of its statements, so the request timeout and
// mutation state of o.Options are not sent.
func (o TransactionQueryOptions) Request() *cbqueryx.QueryRequest {
	req := BuildTransactionQueryRequest(o.Options)
	req.Timeout = 0
	req.MutationState = nil
	req.Statement = o.Statement
	req.QueryContext = o.QueryContext
	req.TxID = o.TxID
	req.TxData = o.TxData
	req.TxImplicit = o.TxImplicit
	req.TxStmtNum = o.TxStmtNum
	req.TxTimeout = o.TxTimeout
	return req
}
