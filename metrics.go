package gocbqueryx

import (
	"context"
	"strings"
	"time"

	"github.com/couchbase/gocbqueryx/cberrorsx"
	"github.com/couchbase/gocbqueryx/contrib/atomiccowcache"
	"github.com/couchbase/gocbqueryx/contrib/buildversion"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var buildVersion string = buildversion.GetVersion("github.com/couchbase/gocbqueryx")

const (
	outcomeSuccess        = "Success"
	outcomeCouchbaseError = "CouchbaseError"
)

var (
	meter = otel.Meter("github.com/couchbase/gocbqueryx",
		metric.WithInstrumentationVersion(buildVersion))
)

var (
	// operationDurations tracks how long each query operation took end to end,
	// retries included, in seconds.
	operationDurations, _ = meter.Float64Histogram("db.couchbase.operations",
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 75))
)

type operationKey struct {
	opName  string
	outcome string
}

var operationAttribs = atomiccowcache.NewCache(func(k operationKey) attribute.Set {
	return attribute.NewSet(
		attribute.String("db.couchbase.service", QueryService.String()),
		attribute.String("db.operation", k.opName),
		attribute.String("outcome", k.outcome),
	)
})

// outcomeName names the result of an operation for metrics.  Errors from the
// common, query and view categories are named after their message, so
// parsing_failure becomes ParsingFailure.  Transaction codes and errors
// without a category code are all reported as CouchbaseError.
func outcomeName(err error) string {
	if err == nil {
		return outcomeSuccess
	}

	code, ok := cberrorsx.AsCode(err)
	if !ok || code.Value() >= 1000 {
		return outcomeCouchbaseError
	}

	msg := code.Error()
	if idx := strings.IndexByte(msg, ' '); idx >= 0 {
		msg = msg[:idx]
	}

	var sb strings.Builder
	capitalize := true
	for _, r := range msg {
		if r == '_' {
			capitalize = true
			continue
		}
		if capitalize && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		capitalize = false
		sb.WriteRune(r)
	}
	return sb.String()
}

func recordQueryOperation(ctx context.Context, opName string, start time.Time, err error) {
	attribs := operationAttribs.Get(operationKey{
		opName:  opName,
		outcome: outcomeName(err),
	})
	operationDurations.Record(ctx, time.Since(start).Seconds(), metric.WithAttributeSet(attribs))
}
