package cbqueryx

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToBinary(t *testing.T) {
	assert.Nil(t, ToBinary(nil))

	empty := ToBinary(json.RawMessage{})
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	raw := json.RawMessage(`{"a":1}`)
	bin := ToBinary(raw)
	assert.Equal(t, []byte(`{"a":1}`), bin)
	assert.Same(t, &raw[0], &bin[0])
}

func TestBuildResult(t *testing.T) {
	t.Run("Full", func(t *testing.T) {
		resp := &RawResponse{
			Meta: RawMetaData{
				RequestID:       "req-1",
				ClientContextID: "ctx-1",
				Status:          "SUCCESS",
				Warnings: []RawWarning{
					{Code: 1, Message: "first"},
					{Code: 2, Message: "second", Reason: stringPtr("because"), Retry: true},
				},
				Metrics: &RawMetrics{
					ElapsedTime:   5 * time.Millisecond,
					ExecutionTime: 4 * time.Millisecond,
					ResultCount:   2,
					ResultSize:    14,
					SortCount:     3,
					MutationCount: 4,
					ErrorCount:    5,
					WarningCount:  2,
				},
				Signature: json.RawMessage(`{"*":"*"}`),
				Profile:   json.RawMessage(`{"phaseTimes":{}}`),
			},
			Rows: []json.RawMessage{
				json.RawMessage(`{"a":1}`),
				json.RawMessage(`{"b":2}`),
			},
		}

		res := BuildResult(resp)

		assert.Equal(t, "req-1", res.Meta.RequestID)
		assert.Equal(t, "ctx-1", res.Meta.ClientContextID)
		assert.Equal(t, QueryStatusSuccess, res.Meta.Status)
		assert.Equal(t, []QueryWarning{
			{Code: 1, Message: "first"},
			{Code: 2, Message: "second", Reason: stringPtr("because"), Retry: true},
		}, res.Meta.Warnings)
		require.NotNil(t, res.Meta.Metrics)
		assert.Equal(t, QueryMetrics{
			ElapsedTime:   5 * time.Millisecond,
			ExecutionTime: 4 * time.Millisecond,
			ResultCount:   2,
			ResultSize:    14,
			SortCount:     3,
			MutationCount: 4,
			ErrorCount:    5,
			WarningCount:  2,
		}, *res.Meta.Metrics)
		assert.Equal(t, []byte(`{"*":"*"}`), res.Meta.Signature)
		assert.Equal(t, []byte(`{"phaseTimes":{}}`), res.Meta.Profile)
		assert.Equal(t, [][]byte{[]byte(`{"a":1}`), []byte(`{"b":2}`)}, res.Rows)

		// the builder takes ownership of the response fields
		assert.Nil(t, resp.Rows)
		assert.Nil(t, resp.Meta.Warnings)
		assert.Nil(t, resp.Meta.Metrics)
		assert.Nil(t, resp.Meta.Signature)
		assert.Nil(t, resp.Meta.Profile)
	})

	t.Run("Minimal", func(t *testing.T) {
		resp := &RawResponse{
			Meta: RawMetaData{
				RequestID: "req-2",
				Status:    "success",
			},
		}

		res := BuildResult(resp)

		assert.Equal(t, QueryStatusSuccess, res.Meta.Status)
		assert.NotNil(t, res.Meta.Warnings)
		assert.Empty(t, res.Meta.Warnings)
		assert.Nil(t, res.Meta.Metrics)
		assert.Nil(t, res.Meta.Signature)
		assert.Nil(t, res.Meta.Profile)
		assert.NotNil(t, res.Rows)
		assert.Empty(t, res.Rows)
	})

	t.Run("UnknownStatus", func(t *testing.T) {
		res := BuildResult(&RawResponse{Meta: RawMetaData{Status: "weird"}})
		assert.Equal(t, QueryStatusUnknown, res.Meta.Status)
	})

	t.Run("RowOrderAndCardinality", func(t *testing.T) {
		resp := &RawResponse{}
		for i := 0; i < 100; i++ {
			row, err := json.Marshal(i)
			require.NoError(t, err)
			resp.Rows = append(resp.Rows, row)
		}

		res := BuildResult(resp)

		require.Len(t, res.Rows, 100)
		for i, row := range res.Rows {
			var v int
			require.NoError(t, json.Unmarshal(row, &v))
			assert.Equal(t, i, v)
		}
	})

	t.Run("EmptyRowIsKept", func(t *testing.T) {
		resp := &RawResponse{
			Rows: []json.RawMessage{{}, json.RawMessage(`1`)},
		}

		res := BuildResult(resp)

		require.Len(t, res.Rows, 2)
		assert.Empty(t, res.Rows[0])
		assert.Equal(t, []byte(`1`), res.Rows[1])
	})
}

func TestBuildErrorContext(t *testing.T) {
	t.Run("AllFields", func(t *testing.T) {
		resp := &RawResponse{
			Ctx: RawErrorContext{
				Err:                ErrPlanningFailure,
				LastDispatchedTo:   "http://10.0.0.1:8093",
				LastDispatchedFrom: "10.0.0.9:51234",
				RetryAttempts:      2,
				RetryReasons: []RetryReason{
					RetryReasonQueryPreparedStatementFailure,
					RetryReasonQueryIndexNotFound,
				},
				FirstErrorCode:    4000,
				FirstErrorMessage: "No index available",
				ClientContextID:   "ctx-1",
				Statement:         "SELECT * FROM x",
				Parameters:        json.RawMessage(`{"statement":"SELECT * FROM x"}`),
				Method:            "POST",
				Path:              "/query/service",
				HTTPStatus:        404,
				HTTPBody:          `{"errors":[]}`,
				Hostname:          "10.0.0.1",
				Port:              8093,
			},
		}

		ctx := BuildErrorContext(resp)

		assert.Equal(t, QueryErrorContext{
			Err:                ErrPlanningFailure,
			LastDispatchedTo:   "http://10.0.0.1:8093",
			LastDispatchedFrom: "10.0.0.9:51234",
			RetryAttempts:      2,
			RetryReasons: []RetryReason{
				RetryReasonQueryPreparedStatementFailure,
				RetryReasonQueryIndexNotFound,
			},
			FirstErrorCode:    4000,
			FirstErrorMessage: "No index available",
			ClientContextID:   "ctx-1",
			Statement:         "SELECT * FROM x",
			Parameters:        json.RawMessage(`{"statement":"SELECT * FROM x"}`),
			Method:            "POST",
			Path:              "/query/service",
			HTTPStatus:        404,
			HTTPBody:          `{"errors":[]}`,
			Hostname:          "10.0.0.1",
			Port:              8093,
		}, ctx)

		assert.Nil(t, resp.Ctx.RetryReasons)
		assert.Nil(t, resp.Ctx.Parameters)
	})

	t.Run("Success", func(t *testing.T) {
		ctx := BuildErrorContext(&RawResponse{
			Ctx: RawErrorContext{
				Method:     "POST",
				HTTPStatus: 200,
			},
		})

		assert.NoError(t, ctx.Err)
		assert.Empty(t, ctx.LastDispatchedTo)
		assert.Empty(t, ctx.LastDispatchedFrom)
		assert.Zero(t, ctx.RetryAttempts)
		assert.Empty(t, ctx.RetryReasons)
		assert.Equal(t, 200, ctx.HTTPStatus)
	})
}
