package cbqueryx

import (
	"encoding/json"
	"strconv"
)

type ScanVectorEntry struct {
	SeqNo  uint64
	VbUuid string
}

func (e ScanVectorEntry) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{e.SeqNo, e.VbUuid})
}

var _ json.Marshaler = (*ScanVectorEntry)(nil)

type SparseScanVectors map[uint16]ScanVectorEntry

// scanVectorsFromMutationState groups tokens by bucket.  When several tokens
// name the same vbucket, the one with the highest sequence number wins.
func scanVectorsFromMutationState(tokens []MutationToken) map[string]SparseScanVectors {
	if len(tokens) == 0 {
		return nil
	}

	vectors := make(map[string]SparseScanVectors)
	for _, token := range tokens {
		bucketVectors, ok := vectors[token.BucketName]
		if !ok {
			bucketVectors = make(SparseScanVectors)
			vectors[token.BucketName] = bucketVectors
		}

		if existing, ok := bucketVectors[token.VbID]; ok && existing.SeqNo >= token.SeqNo {
			continue
		}

		bucketVectors[token.VbID] = ScanVectorEntry{
			SeqNo:  token.SeqNo,
			VbUuid: strconv.FormatUint(token.VbUuid, 10),
		}
	}

	return vectors
}
