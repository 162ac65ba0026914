package gocbqueryx

import (
	"context"
	"net/http"
	"time"

	"github.com/couchbase/gocbqueryx/cbqueryx"
	"github.com/couchbase/gocbqueryx/transactionsx"
	"github.com/couchbase/gocbqueryx/zaputils"
	"github.com/google/uuid"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

const defaultQueryTimeout = 75 * time.Second

type QueryResult = cbqueryx.QueryResult
type QueryErrorContext = cbqueryx.QueryErrorContext
type PreparedStatementCache = cbqueryx.PreparedStatementCache

type QueryComponent struct {
	baseHttpComponent

	logger         *zap.Logger
	retries        RetryManager
	preparedCache  *PreparedStatementCache
	defaultTimeout time.Duration
	inFlight       atomic.Int64
}

type QueryComponentConfig struct {
	HttpRoundTripper http.RoundTripper
	Endpoints        []string
	Authenticator    Authenticator

	// ServerVersion gates request features.  Empty means unknown, in which
	// case nothing is gated.
	ServerVersion string
}

type QueryComponentOptions struct {
	Logger         *zap.Logger
	UserAgent      string
	DefaultTimeout time.Duration
}

func OrchestrateQueryEndpoint(
	ctx context.Context,
	w *QueryComponent,
	fn func(target baseHttpTarget) (*cbqueryx.RawResponse, error),
) (*cbqueryx.RawResponse, error) {
	target, err := w.SelectEndpoint(nil)
	if err != nil {
		return &cbqueryx.RawResponse{}, err
	}

	if target.Endpoint == "" {
		return &cbqueryx.RawResponse{}, ErrServiceNotAvailable
	}

	return fn(target)
}

func NewQueryComponent(retries RetryManager, config *QueryComponentConfig, opts *QueryComponentOptions) *QueryComponent {
	if opts == nil {
		opts = &QueryComponentOptions{}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "gocbqueryx/" + buildVersion
	}

	defaultTimeout := opts.DefaultTimeout
	if defaultTimeout <= 0 {
		defaultTimeout = defaultQueryTimeout
	}

	if retries == nil {
		retries = NewRetryManagerDefault()
	}

	return &QueryComponent{
		baseHttpComponent: baseHttpComponent{
			serviceType: QueryService,
			userAgent:   userAgent,
			state: &baseHttpComponentState{
				httpRoundTripper: config.HttpRoundTripper,
				endpoints:        config.Endpoints,
				authenticator:    config.Authenticator,
				serverVersion:    config.ServerVersion,
			},
		},
		logger:         componentLogger(opts.Logger, QueryService.String()),
		retries:        retries,
		preparedCache:  cbqueryx.NewPreparedStatementCache(),
		defaultTimeout: defaultTimeout,
	}
}

func (w *QueryComponent) Reconfigure(config *QueryComponentConfig) error {
	w.updateState(baseHttpComponentState{
		httpRoundTripper: config.HttpRoundTripper,
		endpoints:        config.Endpoints,
		authenticator:    config.Authenticator,
		serverVersion:    config.ServerVersion,
	})
	return nil
}

// InFlight returns the number of operations currently executing.
func (w *QueryComponent) InFlight() int64 {
	return w.inFlight.Load()
}

// PreparedCache exposes the cache used for non-adhoc statements.
func (w *QueryComponent) PreparedCache() *PreparedStatementCache {
	return w.preparedCache
}

// Query runs statement and maps the response.  The error context is always
// populated; on failure the returned error is a *cbqueryx.QueryError holding
// the same context.
func (w *QueryComponent) Query(
	ctx context.Context,
	statement string,
	queryContext string,
	opts cbqueryx.BuiltQueryOptions,
) (QueryResult, QueryErrorContext, error) {
	req := cbqueryx.BuildQueryRequest(statement, queryContext, opts)

	resp := w.execute(ctx, "query", req)

	errCtx := cbqueryx.BuildErrorContext(resp)
	result := cbqueryx.BuildResult(resp)
	if errCtx.Err != nil {
		return result, errCtx, &cbqueryx.QueryError{
			Cause:   errCtx.Err,
			Context: errCtx,
		}
	}

	return result, errCtx, nil
}

// TransactionQuery runs a statement belonging to a transaction.  Failures are
// reported through the transaction_op code of the result, with txnOverride
// applied as described by transactionsx.BuildTransactionQueryResult.
func (w *QueryComponent) TransactionQuery(
	ctx context.Context,
	opts transactionsx.TransactionQueryOptions,
	txnOverride error,
) transactionsx.TransactionQueryResult {
	resp := w.execute(ctx, "transaction_query", opts.Request())
	return transactionsx.BuildTransactionQueryResult(resp, txnOverride)
}

func (w *QueryComponent) execute(ctx context.Context, opName string, req *cbqueryx.QueryRequest) *cbqueryx.RawResponse {
	w.inFlight.Inc()
	defer w.inFlight.Dec()

	start := time.Now()

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.defaultTimeout)
		defer cancel()
	}

	// every attempt shares one client context id so that retries can be
	// correlated on the server
	if req.ClientContextID == "" {
		req.ClientContextID = uuid.NewString()
	}

	resp, err := OrchestrateQueryRetries(ctx, w.retries, func() (*cbqueryx.RawResponse, error) {
		return OrchestrateQueryEndpoint(ctx, w,
			func(target baseHttpTarget) (*cbqueryx.RawResponse, error) {
				executor := cbqueryx.Query{
					Logger:        w.logger,
					UserAgent:     w.userAgent,
					Transport:     target.RoundTripper,
					Endpoint:      target.Endpoint,
					Username:      target.Username,
					Password:      target.Password,
					ServerVersion: target.ServerVersion,
				}

				if req.Adhoc {
					return executor.Query(ctx, req)
				}

				return cbqueryx.PreparedQuery{
					Executor: executor,
					Cache:    w.preparedCache,
				}.Query(ctx, req)
			})
	})
	if resp.Ctx.Statement == "" {
		resp.Ctx.Statement = req.Statement
	}
	if resp.Ctx.ClientContextID == "" {
		resp.Ctx.ClientContextID = req.ClientContextID
	}

	recordQueryOperation(ctx, opName, start, err)

	if err != nil {
		w.logger.Debug("query operation failed",
			zap.String("operation", opName),
			zaputils.ClientContextID("clientContextId", req.ClientContextID),
			zap.Int("retryAttempts", resp.Ctx.RetryAttempts),
			zap.Error(err))
	}

	return resp
}
