package cbqueryx

// The map* helpers each take one field out of a RawResponse, leaving the
// source field cleared.

func mapRows(resp *RawResponse) [][]byte {
	rows := make([][]byte, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		rows = append(rows, ToBinary(row))
	}
	resp.Rows = nil
	return rows
}

func mapWarnings(resp *RawResponse) []QueryWarning {
	warnings := make([]QueryWarning, 0, len(resp.Meta.Warnings))
	for _, warning := range resp.Meta.Warnings {
		warnings = append(warnings, QueryWarning{
			Code:    warning.Code,
			Message: warning.Message,
			Reason:  warning.Reason,
			Retry:   warning.Retry,
		})
	}
	resp.Meta.Warnings = nil
	return warnings
}

func mapMetrics(resp *RawResponse) *QueryMetrics {
	metrics := resp.Meta.Metrics
	if metrics == nil {
		return nil
	}
	resp.Meta.Metrics = nil

	return &QueryMetrics{
		ElapsedTime:   metrics.ElapsedTime,
		ExecutionTime: metrics.ExecutionTime,
		ResultCount:   metrics.ResultCount,
		ResultSize:    metrics.ResultSize,
		SortCount:     metrics.SortCount,
		MutationCount: metrics.MutationCount,
		ErrorCount:    metrics.ErrorCount,
		WarningCount:  metrics.WarningCount,
	}
}

func mapSignature(resp *RawResponse) []byte {
	signature := ToBinary(resp.Meta.Signature)
	resp.Meta.Signature = nil
	return signature
}

func mapProfile(resp *RawResponse) []byte {
	profile := ToBinary(resp.Meta.Profile)
	resp.Meta.Profile = nil
	return profile
}

func mapMetaData(resp *RawResponse) QueryMetaData {
	meta := QueryMetaData{
		RequestID:       resp.Meta.RequestID,
		ClientContextID: resp.Meta.ClientContextID,
		Status:          ParseQueryStatus(resp.Meta.Status),
		Warnings:        mapWarnings(resp),
		Metrics:         mapMetrics(resp),
		Signature:       mapSignature(resp),
		Profile:         mapProfile(resp),
	}
	resp.Meta.RequestID = ""
	resp.Meta.ClientContextID = ""
	return meta
}

// BuildResult composes the meta-data and rows of resp into a QueryResult.
// It cannot fail; any transport error is left in resp.Ctx for
// BuildErrorContext.  resp must not be reused for another result.
func BuildResult(resp *RawResponse) QueryResult {
	return QueryResult{
		Meta: mapMetaData(resp),
		Rows: mapRows(resp),
	}
}
