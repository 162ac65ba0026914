package cbqueryx

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Note that the ordering of this struct matters, it needs to match the query JSON ordering.
type testQueryResult struct {
	RequestID       string `json:"requestID"`
	ClientContextID string `json:"clientContextID"`
	Signature       struct {
		I        string `json:"i"`
		TestName string `json:"testName"`
	} `json:"signature"`
	Results  json.RawMessage    `json:"results"`
	Status   string             `json:"status"`
	Warnings []queryWarningJson `json:"warnings,omitempty"`
	Errors   []queryErrorJson   `json:"errors,omitempty"`
	Metrics  struct {
		ElapsedTime   string `json:"elapsedTime"`
		ExecutionTime string `json:"executionTime"`
		ResultCount   uint64 `json:"resultCount"`
		ResultSize    uint64 `json:"resultSize"`
		ServiceLoad   int    `json:"serviceLoad"`
		ErrorCount    int    `json:"errorCount"`
	} `json:"metrics"`
	Prepared string `json:"prepared,omitempty"`
}

func makeSuccessQueryResult(rows []string, prepared string) testQueryResult {
	qr := testQueryResult{
		Results:         json.RawMessage("[" + strings.Join(rows, ",") + "]"),
		RequestID:       "941e33f4-15d8-44d0-a5a8-422e3e84039f",
		ClientContextID: "12345",
		Status:          "success",
		Prepared:        prepared,
	}
	qr.Signature.I = "json"
	qr.Signature.TestName = "json"
	qr.Metrics.ElapsedTime = "129.569043ms"
	qr.Metrics.ExecutionTime = "129.521515ms"
	qr.Metrics.ResultCount = uint64(len(rows))
	qr.Metrics.ResultSize = 20
	qr.Metrics.ServiceLoad = 2

	return qr
}

func makeErrorQueryResult(errors []queryErrorJson) testQueryResult {
	qr := testQueryResult{
		Results:         json.RawMessage("[]"),
		RequestID:       "941e33f4-15d8-44d0-a5a8-422e3e84039f",
		ClientContextID: "12345",
		Status:          "errors",
		Errors:          errors,
	}
	qr.Metrics.ElapsedTime = "129.569043ms"
	qr.Metrics.ExecutionTime = "129.521515ms"
	qr.Metrics.ServiceLoad = 2
	qr.Metrics.ErrorCount = len(errors)

	return qr
}

func marshalTestResult(t *testing.T, qr testQueryResult) []byte {
	body, err := json.Marshal(qr)
	require.NoError(t, err)
	return body
}

func assertRawRows(t *testing.T, expectedRows []string, resp *RawResponse) {
	t.Helper()

	if assert.Len(t, resp.Rows, len(expectedRows)) {
		for i, row := range resp.Rows {
			assert.Equal(t, expectedRows[i], string(row))
		}
	}
}

func TestEncodeIdentifier(t *testing.T) {
	assert.Equal(t, "`bucket`", EncodeIdentifier("bucket"))
	assert.Equal(t, "`we\\`ird`", EncodeIdentifier("we`ird"))
}

func TestQueryContextFor(t *testing.T) {
	assert.Equal(t, "default:`travel-sample`.`inventory`", QueryContextFor("travel-sample", "inventory"))
}

func TestEncodePositionalParameters(t *testing.T) {
	params, err := EncodePositionalParameters("a", 1, true, nil)
	require.NoError(t, err)

	require.Len(t, params, 4)
	assert.Equal(t, `"a"`, string(params[0]))
	assert.Equal(t, `1`, string(params[1]))
	assert.Equal(t, `true`, string(params[2]))
	assert.Equal(t, `null`, string(params[3]))

	_, err = EncodePositionalParameters(make(chan int))
	assert.Error(t, err)
}

func stringPtr(s string) *string {
	return &s
}
