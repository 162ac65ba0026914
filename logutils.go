package gocbqueryx

import "go.uber.org/zap"

// componentLogger names logger after a component of the client.  A nil
// logger discards everything.
func componentLogger(logger *zap.Logger, component string) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger.Named(component)
}
