package gocbqueryx

// ServiceType specifies a particular Couchbase service type.
type ServiceType int

const (
	// QueryService represents a N1QL service (typically for query).
	QueryService = ServiceType(4)
)

func (s ServiceType) String() string {
	switch s {
	case QueryService:
		return "query"
	}
	return "unknown"
}
