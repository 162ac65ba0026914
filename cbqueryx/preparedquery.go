package cbqueryx

import (
	"context"
	"errors"
)

type QueryExecutor interface {
	Query(ctx context.Context, req *QueryRequest) (*RawResponse, error)
}

var _ QueryExecutor = Query{}

// PreparedQuery runs non-adhoc requests through a prepared plan, preparing
// the statement on first use and executing the cached plan afterwards.
type PreparedQuery struct {
	Executor QueryExecutor
	Cache    *PreparedStatementCache
}

func (p PreparedQuery) Query(ctx context.Context, req *QueryRequest) (*RawResponse, error) {
	// if this is already marked as auto-execute, we just pass it through
	if req.autoExecute || req.preparedName != "" {
		return p.Executor.Query(ctx, req)
	}

	newReq := *req

	cachedName, ok := p.Cache.Get(req.Statement)
	if ok {
		// Attempt to execute our cached query plan
		newReq.preparedName = cachedName

		resp, err := p.Executor.Query(ctx, &newReq)
		if err == nil {
			return resp, nil
		}

		// anything other than a rejected plan is the caller's problem
		if !errors.Is(err, ErrPreparedStatementFailure) {
			return resp, err
		}

		p.Cache.Evict(req.Statement)
		newReq.preparedName = ""
	}

	newReq.Statement = "PREPARE " + req.Statement
	newReq.autoExecute = true

	resp, err := p.Executor.Query(ctx, &newReq)
	if err != nil {
		return resp, err
	}

	// the error context should describe the statement the caller ran
	resp.Ctx.Statement = req.Statement

	if resp.Meta.Prepared != "" {
		p.Cache.Put(req.Statement, resp.Meta.Prepared)
	}

	return resp, nil
}
