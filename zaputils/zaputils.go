package zaputils

import (
	"go.uber.org/zap"
)

const maxLoggedStatementLen = 256

type LoggableStatement string

func (s LoggableStatement) String() string {
	if len(s) <= maxLoggedStatementLen {
		return string(s)
	}
	return string(s[:maxLoggedStatementLen]) + "..."
}

// Statement logs a query statement, truncated so that large inline
// documents do not flood the log.
func Statement(key string, val string) zap.Field {
	return zap.Stringer(key, LoggableStatement(val))
}

func ClientContextID(key string, val string) zap.Field {
	return zap.String(key, val)
}

func Endpoint(key string, val string) zap.Field {
	return zap.String(key, val)
}
