package gocbqueryx

import (
	"fmt"

	"github.com/couchbaselabs/gocbconnstr/v2"
	"github.com/pkg/errors"
)

const (
	defaultQueryPort    = 8093
	defaultQueryTLSPort = 18093
)

// ConnStrConfig is the part of a connection string the query component uses.
type ConnStrConfig struct {
	Endpoints  []string
	UseTLS     bool
	BucketName string
}

// ParseConnStr resolves a couchbase:// or couchbases:// connection string
// into query service endpoints.  Only the hosts are taken from the
// connection string; the query port is always the service default.
func ParseConnStr(connStr string) (*ConnStrConfig, error) {
	baseSpec, err := gocbconnstr.Parse(connStr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse connection string")
	}

	spec, err := gocbconnstr.Resolve(baseSpec)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve connection string")
	}

	scheme, port := "http", defaultQueryPort
	if spec.UseSsl {
		scheme, port = "https", defaultQueryTLSPort
	}

	endpoints := make([]string, 0, len(spec.HttpHosts))
	for _, host := range spec.HttpHosts {
		endpoints = append(endpoints, fmt.Sprintf("%s://%s:%d", scheme, host.Host, port))
	}

	return &ConnStrConfig{
		Endpoints:  endpoints,
		UseTLS:     spec.UseSsl,
		BucketName: spec.Bucket,
	}, nil
}
