package transactionsx

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/couchbase/gocbqueryx/cberrorsx"
	"github.com/couchbase/gocbqueryx/cbqueryx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestResponse(err error) *cbqueryx.RawResponse {
	return &cbqueryx.RawResponse{
		Meta: cbqueryx.RawMetaData{
			RequestID: "req-1",
			Status:    "success",
		},
		Ctx: cbqueryx.RawErrorContext{
			Err:            err,
			Statement:      "SELECT 1",
			FirstErrorCode: 3000,
		},
		Rows: []json.RawMessage{json.RawMessage(`1`)},
	}
}

func TestBuildTransactionQueryResult(t *testing.T) {
	t.Run("NoErrorNoOverride", func(t *testing.T) {
		res := BuildTransactionQueryResult(makeTestResponse(nil), nil)

		assert.NoError(t, res.Context.Err)
		assert.NoError(t, res.Context.QueryContext.Err)
		assert.Equal(t, "SELECT 1", res.Context.QueryContext.Statement)
		assert.Equal(t, cbqueryx.QueryStatusSuccess, res.Result.Meta.Status)
		assert.Equal(t, [][]byte{[]byte(`1`)}, res.Result.Rows)
	})

	t.Run("NoErrorKeepsOverride", func(t *testing.T) {
		res := BuildTransactionQueryResult(makeTestResponse(nil), cberrorsx.TransactionOpDocumentNotFound)

		assert.Equal(t, cberrorsx.TransactionOpDocumentNotFound, res.Context.Err)
	})

	t.Run("ParsingFailureOverridesCaller", func(t *testing.T) {
		res := BuildTransactionQueryResult(makeTestResponse(cberrorsx.CommonParsingFailure), cberrorsx.TransactionOpGeneric)

		assert.Equal(t, cberrorsx.TransactionOpParsingFailure, res.Context.Err)
		assert.Equal(t, cberrorsx.CommonParsingFailure, res.Context.QueryContext.Err)
	})

	t.Run("WrappedParsingFailure", func(t *testing.T) {
		queryErr := &cbqueryx.ServerErrors{
			Errors: []*cbqueryx.ServerError{
				{InnerError: cbqueryx.ErrParsingFailure, Code: 3000, Msg: "syntax error"},
			},
		}

		res := BuildTransactionQueryResult(makeTestResponse(queryErr), nil)

		assert.Equal(t, cberrorsx.TransactionOpParsingFailure, res.Context.Err)
	})

	t.Run("OtherErrorWithoutOverride", func(t *testing.T) {
		res := BuildTransactionQueryResult(makeTestResponse(cberrorsx.CommonInternalServerFailure), nil)

		assert.Equal(t, cberrorsx.TransactionOpGeneric, res.Context.Err)
	})

	t.Run("OtherErrorKeepsOverride", func(t *testing.T) {
		res := BuildTransactionQueryResult(makeTestResponse(errors.New("boom")), cberrorsx.TransactionOpDocumentExists)

		assert.Equal(t, cberrorsx.TransactionOpDocumentExists, res.Context.Err)
	})
}

func TestBuildTransactionQueryRequest(t *testing.T) {
	opts := cbqueryx.DefaultBuiltQueryOptions()
	opts.Timeout = 10 * time.Second
	opts.ReadOnly = true
	opts.MutationState = []cbqueryx.MutationToken{{BucketName: "default", VbID: 1, SeqNo: 2}}
	opts.PositionalParameters = []json.RawMessage{json.RawMessage(`1`)}

	req := BuildTransactionQueryRequest(opts)

	assert.Equal(t, cbqueryx.BuildQueryRequest("", "", opts), req)
	assert.Empty(t, req.Statement)
	assert.Empty(t, req.QueryContext)
	assert.Equal(t, 10*time.Second, req.Timeout)
	assert.Equal(t, opts.MutationState, req.MutationState)
	assert.True(t, req.ReadOnly)
	assert.True(t, req.Adhoc)
	assert.Equal(t, []json.RawMessage{json.RawMessage(`1`)}, req.PositionalParameters)
}

func TestTransactionQueryOptionsRequestDropsTimeoutAndMutationState(t *testing.T) {
	opts := cbqueryx.DefaultBuiltQueryOptions()
	opts.Timeout = 10 * time.Second
	opts.MutationState = []cbqueryx.MutationToken{{BucketName: "default", VbID: 1, SeqNo: 2}}

	req := TransactionQueryOptions{
		Statement: "SELECT 1",
		Options:   opts,
		TxID:      "txn-1",
	}.Request()

	assert.Zero(t, req.Timeout)
	assert.Nil(t, req.MutationState)
	assert.Equal(t, "txn-1", req.TxID)
}

func TestTransactionQueryOptionsRequest(t *testing.T) {
	req := TransactionQueryOptions{
		Statement:    "INSERT INTO x VALUES ('k', {})",
		QueryContext: "default:`b`.`s`",
		Options:      cbqueryx.DefaultBuiltQueryOptions(),
		TxID:         "txn-1",
		TxStmtNum:    2,
		TxTimeout:    15 * time.Second,
	}.Request()

	require.NotNil(t, req)
	assert.Equal(t, "INSERT INTO x VALUES ('k', {})", req.Statement)
	assert.Equal(t, "default:`b`.`s`", req.QueryContext)
	assert.Equal(t, "txn-1", req.TxID)
	assert.Equal(t, uint32(2), req.TxStmtNum)
	assert.Equal(t, 15*time.Second, req.TxTimeout)
	assert.False(t, req.TxImplicit)
}
