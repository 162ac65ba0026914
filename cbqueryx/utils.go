package cbqueryx

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
)

func EncodeIdentifier(identifier string) string {
	return "`" + strings.ReplaceAll(identifier, "`", "\\`") + "`"
}

func EncodeValue(value interface{}) (string, error) {
	bytes, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// EncodePositionalParameters encodes each value for use as a positional
// parameter, keeping their order.
func EncodePositionalParameters(values ...interface{}) ([]json.RawMessage, error) {
	params := make([]json.RawMessage, 0, len(values))
	for _, value := range values {
		bytes, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		params = append(params, bytes)
	}
	return params, nil
}

// QueryContextFor builds the query_context value naming a bucket and scope.
func QueryContextFor(bucketName, scopeName string) string {
	return "default:" + EncodeIdentifier(bucketName) + "." + EncodeIdentifier(scopeName)
}

func loggerOrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
