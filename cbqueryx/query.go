package cbqueryx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"time"

	"github.com/couchbase/gocbqueryx/cberrorsx"
	"github.com/couchbase/gocbqueryx/cbhttpx"
	"github.com/couchbase/gocbqueryx/zaputils"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const queryServicePath = "/query/service"

// tracer is looked up per request so that a provider installed after
// package initialization is honoured.
func tracer() trace.Tracer {
	return otel.GetTracerProvider().Tracer("github.com/couchbase/gocbqueryx/cbqueryx")
}

// Query dispatches requests to a single query endpoint.
type Query struct {
	Logger        *zap.Logger
	Transport     http.RoundTripper
	UserAgent     string
	Endpoint      string
	Username      string
	Password      string
	OnBehalfOf    string
	ServerVersion string
}

// dispatchError pairs the category code a failure maps to with whatever
// caused it, so that both can be matched with errors.Is.
type dispatchError struct {
	Code  error
	Cause error
}

func (e dispatchError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Cause)
}

func (e dispatchError) Unwrap() []error {
	return []error{e.Code, e.Cause}
}

// Query sends req and reads the whole response.  The returned RawResponse is
// never nil: its Ctx describes the dispatch even when it failed, in which
// case Ctx.Err is also returned as the error.
func (h Query) Query(ctx context.Context, req *QueryRequest) (*RawResponse, error) {
	logger := loggerOrNop(h.Logger)

	resp := &RawResponse{
		Ctx: RawErrorContext{
			Statement:        req.Statement,
			Method:           http.MethodPost,
			Path:             queryServicePath,
			LastDispatchedTo: h.Endpoint,
		},
	}
	if host, port, err := cbhttpx.SplitEndpoint(h.Endpoint); err == nil {
		resp.Ctx.Hostname = host
		resp.Ctx.Port = port
	}

	fail := func(err error) (*RawResponse, error) {
		resp.Ctx.Err = err
		return resp, err
	}

	if err := CheckRequestFeatures(req, h.ServerVersion); err != nil {
		resp.Ctx.ClientContextID = req.ClientContextID
		return fail(err)
	}

	reqBody, clientContextID, err := req.encodeToJson()
	if err != nil {
		resp.Ctx.ClientContextID = req.ClientContextID
		return fail(dispatchError{
			Code:  cberrorsx.CommonEncodingFailure,
			Cause: errors.Wrap(err, "failed to encode query request"),
		})
	}
	resp.Ctx.ClientContextID = clientContextID
	resp.Ctx.Parameters = reqBody

	if req.ParentSpan != nil {
		ctx = trace.ContextWithSpan(ctx, req.ParentSpan)
	}
	ctx, span := tracer().Start(ctx, "query",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.DBSystemCouchbase,
			semconv.ServerAddress(resp.Ctx.Hostname),
			semconv.ServerPort(resp.Ctx.Port),
			attribute.String("db.query.text", req.Statement),
			attribute.String("db.couchbase.client_context_id", clientContextID),
		))
	defer span.End()

	logger.Debug("dispatching query",
		zaputils.Statement("statement", req.Statement),
		zaputils.ClientContextID("clientContextId", clientContextID),
		zaputils.Endpoint("endpoint", h.Endpoint))

	err = h.dispatch(ctx, req, reqBody, resp, logger)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fail(err)
	}

	return resp, nil
}

func (h Query) dispatch(
	ctx context.Context,
	req *QueryRequest,
	reqBody []byte,
	resp *RawResponse,
	logger *zap.Logger,
) error {
	httpReq, err := cbhttpx.RequestBuilder{
		UserAgent:     h.UserAgent,
		Endpoint:      h.Endpoint,
		BasicAuthUser: h.Username,
		BasicAuthPass: h.Password,
		CbOnBehalfOf:  h.OnBehalfOf,
	}.NewJsonRequest(ctx, http.MethodPost, queryServicePath, reqBody)
	if err != nil {
		return dispatchError{
			Code:  cberrorsx.CommonInvalidArgument,
			Cause: errors.Wrap(err, "failed to create query http request"),
		}
	}

	var localAddr atomic.String
	httpReq = httpReq.WithContext(httptrace.WithClientTrace(ctx, &httptrace.ClientTrace{
		GotConn: func(info httptrace.GotConnInfo) {
			if info.Conn != nil && info.Conn.LocalAddr() != nil {
				localAddr.Store(info.Conn.LocalAddr().String())
			}
		},
	}))

	httpResp, err := cbhttpx.Client{
		Transport: h.Transport,
	}.Do(httpReq)
	resp.Ctx.LastDispatchedFrom = localAddr.Load()
	if err != nil {
		return translateDispatchError(ctx, req, err)
	}
	resp.Ctx.HTTPStatus = httpResp.StatusCode

	respBody, err := io.ReadAll(httpResp.Body)
	_ = httpResp.Body.Close()
	if err != nil {
		return translateDispatchError(ctx, req, errors.Wrap(err, "failed to read query response body"))
	}

	errsJson, decodeErr := readResponseBody(resp, respBody, logger)
	if decodeErr == nil && len(errsJson) == 0 && httpResp.StatusCode == 200 {
		return nil
	}

	resp.Ctx.HTTPBody = string(respBody)

	if len(errsJson) > 0 {
		logger.Debug("parsing errors from query response",
			zap.Any("errors", errsJson))

		resp.Ctx.FirstErrorCode = errsJson[0].Code
		resp.Ctx.FirstErrorMessage = errsJson[0].Msg

		return parseErrors(errsJson, req.ReadOnly)
	}

	if httpResp.StatusCode != 200 {
		cause := errors.Errorf("query service responded with status code %d", httpResp.StatusCode)
		if decodeErr != nil {
			cause = errors.Wrap(decodeErr, cause.Error())
		}
		return dispatchError{
			Code:  cberrorsx.CommonInternalServerFailure,
			Cause: cause,
		}
	}

	return dispatchError{
		Code:  cberrorsx.CommonDecodingFailure,
		Cause: decodeErr,
	}
}

func translateDispatchError(ctx context.Context, req *QueryRequest, err error) error {
	ctxErr := ctx.Err()
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctxErr, context.DeadlineExceeded):
		// a read-only statement cannot have changed anything
		if req.ReadOnly {
			return dispatchError{Code: cberrorsx.CommonUnambiguousTimeout, Cause: err}
		}
		return dispatchError{Code: cberrorsx.CommonAmbiguousTimeout, Cause: err}
	case errors.Is(err, context.Canceled) || errors.Is(ctxErr, context.Canceled):
		return dispatchError{Code: cberrorsx.CommonRequestCanceled, Cause: err}
	case errors.Is(err, cbhttpx.ErrConnectError):
		return dispatchError{Code: cberrorsx.CommonServiceNotAvailable, Cause: err}
	}

	return errors.Wrap(err, "query request failed")
}

// readResponseBody fills resp from a complete response body and returns the
// errors the service reported.  The error result is only for bodies that
// could not be decoded.
func readResponseBody(resp *RawResponse, body []byte, logger *zap.Logger) ([]*queryErrorJson, error) {
	streamer := cbhttpx.RawJsonRowStreamer{
		Decoder:    json.NewDecoder(bytes.NewReader(body)),
		RowsAttrib: "results",
	}

	if _, err := streamer.ReadPrelude(); err != nil {
		return nil, errors.Wrap(err, "failed to read query response prelude")
	}

	for streamer.HasMoreRows() {
		row, err := streamer.ReadRow()
		if err != nil {
			return nil, errors.Wrap(err, "failed to read query response row")
		}
		resp.Rows = append(resp.Rows, row)
	}

	epilogBytes, err := streamer.ReadEpilog()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read query response epilog")
	}

	var metaDataJson queryMetaDataJson
	err = json.Unmarshal(epilogBytes, &metaDataJson)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse query response meta-data")
	}

	resp.Meta = parseMetaData(&metaDataJson, logger)

	return metaDataJson.Errors, nil
}

func parseMetaData(metaDataJson *queryMetaDataJson, logger *zap.Logger) RawMetaData {
	meta := RawMetaData{
		RequestID:       metaDataJson.RequestID,
		ClientContextID: metaDataJson.ClientContextID,
		Status:          metaDataJson.Status,
		Prepared:        metaDataJson.Prepared,
		Signature:       metaDataJson.Signature,
		Profile:         metaDataJson.Profile,
	}

	if metaDataJson.Warnings != nil {
		meta.Warnings = make([]RawWarning, 0, len(metaDataJson.Warnings))
		for _, warnJson := range metaDataJson.Warnings {
			meta.Warnings = append(meta.Warnings, RawWarning{
				Code:    warnJson.Code,
				Message: warnJson.Message,
				Reason:  reasonToString(warnJson.Reason),
				Retry:   warnJson.Retry,
			})
		}
	}

	if metaDataJson.Metrics != nil {
		meta.Metrics = parseMetrics(metaDataJson.Metrics, logger)
	}

	return meta
}

func parseMetrics(metricsJson *queryMetricsJson, logger *zap.Logger) *RawMetrics {
	elapsedTime, err := time.ParseDuration(metricsJson.ElapsedTime)
	if err != nil {
		logger.Debug("failed to parse query metrics elapsed time",
			zap.Error(err))
	}

	executionTime, err := time.ParseDuration(metricsJson.ExecutionTime)
	if err != nil {
		logger.Debug("failed to parse query metrics execution time",
			zap.Error(err))
	}

	return &RawMetrics{
		ElapsedTime:   elapsedTime,
		ExecutionTime: executionTime,
		ResultCount:   metricsJson.ResultCount,
		ResultSize:    metricsJson.ResultSize,
		SortCount:     metricsJson.SortCount,
		MutationCount: metricsJson.MutationCount,
		ErrorCount:    metricsJson.ErrorCount,
		WarningCount:  metricsJson.WarningCount,
	}
}

// reasonToString unquotes a string reason and keeps any other JSON value as
// its text.  A missing or null reason gives nil.
func reasonToString(reason json.RawMessage) *string {
	if len(reason) == 0 || string(reason) == "null" {
		return nil
	}

	var str string
	if err := json.Unmarshal(reason, &str); err == nil {
		return &str
	}

	raw := string(reason)
	return &raw
}
