package cbqueryx

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

func durationToQueryString(d time.Duration) string {
	return fmt.Sprintf("%dms", d.Milliseconds())
}

// encodeToJson produces the body for POST /query/service.  The second
// return value is the client context id actually sent, which is generated
// when the request did not carry one.
func (r *QueryRequest) encodeToJson() (json.RawMessage, string, error) {
	var anyErr error

	m := make(map[string]json.RawMessage)

	encodeField := func(val interface{}) json.RawMessage {
		// if any previous error occured, just skip this encoding
		if anyErr != nil {
			return nil
		}

		bytes, err := json.Marshal(val)
		if err != nil {
			anyErr = err
			return nil
		}

		return bytes
	}

	clientContextID := r.ClientContextID
	if clientContextID == "" {
		clientContextID = uuid.NewString()
	}
	m["client_context_id"] = encodeField(clientContextID)

	if r.preparedName != "" {
		m["prepared"] = encodeField(r.preparedName)
	} else if r.Statement != "" {
		m["statement"] = encodeField(r.Statement)
	}
	if r.autoExecute {
		m["auto_execute"] = encodeField(true)
	}

	if r.Timeout > 0 {
		m["timeout"] = encodeField(durationToQueryString(r.Timeout))
	}
	// the service collects metrics unless told otherwise
	m["metrics"] = encodeField(r.Metrics)
	if r.ReadOnly {
		m["readonly"] = encodeField(true)
	}
	if r.FlexIndex {
		m["use_fts"] = encodeField(true)
	}
	if r.PreserveExpiry {
		m["preserve_expiry"] = encodeField(true)
	}
	if r.UseReplica != QueryUseReplicaUnset {
		m["use_replica"] = encodeField(r.UseReplica)
	}
	if r.MaxParallelism > 0 {
		m["max_parallelism"] = encodeField(strconv.FormatUint(uint64(r.MaxParallelism), 10))
	}
	if r.ScanCap > 0 {
		m["scan_cap"] = encodeField(strconv.FormatUint(uint64(r.ScanCap), 10))
	}
	if r.PipelineBatch > 0 {
		m["pipeline_batch"] = encodeField(strconv.FormatUint(uint64(r.PipelineBatch), 10))
	}
	if r.PipelineCap > 0 {
		m["pipeline_cap"] = encodeField(strconv.FormatUint(uint64(r.PipelineCap), 10))
	}
	if r.Profile != QueryProfileModeUnset {
		m["profile"] = encodeField(r.Profile)
	}
	if r.QueryContext != "" {
		m["query_context"] = encodeField(r.QueryContext)
	}

	scanConsistency := r.ScanConsistency
	if len(r.MutationState) > 0 {
		scanConsistency = "at_plus"
		m["scan_vectors"] = encodeField(scanVectorsFromMutationState(r.MutationState))
	}
	if scanConsistency != QueryScanConsistencyUnset {
		m["scan_consistency"] = encodeField(scanConsistency)
	}

	// scan_wait only has meaning for the consistent scan actually requested
	if r.ScanWait > 0 &&
		scanConsistency != QueryScanConsistencyUnset &&
		scanConsistency != QueryScanConsistencyNotBounded {
		m["scan_wait"] = encodeField(durationToQueryString(r.ScanWait))
	}

	if len(r.TxData) > 0 {
		m["txdata"] = encodeField(r.TxData)
	}
	if r.TxID != "" {
		m["txid"] = encodeField(r.TxID)
	}
	if r.TxImplicit {
		m["tximplicit"] = encodeField(true)
	}
	if r.TxStmtNum > 0 {
		m["txstmtnum"] = encodeField(r.TxStmtNum)
	}
	if r.TxTimeout > 0 {
		m["txtimeout"] = encodeField(durationToQueryString(r.TxTimeout))
	}

	if len(r.PositionalParameters) > 0 {
		m["args"] = encodeField(r.PositionalParameters)
	}

	for k, v := range r.NamedParameters {
		if !strings.HasPrefix(k, "$") {
			k = "$" + k
		}
		m[k] = v
	}

	for k, v := range r.Raw {
		m[k] = v
	}

	if anyErr != nil {
		return nil, "", anyErr
	}

	body, err := json.Marshal(m)
	if err != nil {
		return nil, "", err
	}

	return body, clientContextID, nil
}
