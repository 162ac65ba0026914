package cbqueryx

import "encoding/json"

// ToBinary turns a raw JSON payload into a binary blob owned by the caller.
// The payload's backing array is handed over rather than copied, so the
// source must not be used afterwards.  A nil payload stays nil.
func ToBinary(raw json.RawMessage) []byte {
	if raw == nil {
		return nil
	}
	return []byte(raw)
}
