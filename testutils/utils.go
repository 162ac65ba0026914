package testutils

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"testing"

	"github.com/couchbase/gocbqueryx/contrib/leakcheck"
	"github.com/couchbaselabs/gocbconnstr/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var TestOpts TestOptions

type TestOptions struct {
	QueryEndpoints []string
	LongTest       bool
	Username       string
	Password       string
}

func envFlagString(envName, name, value, usage string) *string {
	envValue := os.Getenv(envName)
	if envValue != "" {
		value = envValue
	}
	return flag.String(name, value, usage)
}

var connStr = envFlagString("GCBCONNSTR", "connstr", "",
	"Connection string to run tests with")
var user = envFlagString("GOCBUSER", "user", "",
	"The username to use to authenticate when using a real server")
var password = envFlagString("GOCBPASS", "pass", "",
	"The password to use to authenticate when using a real server")

func SetupTests(m *testing.M) {
	flag.Parse()

	if *connStr != "" && !testing.Short() {
		TestOpts.LongTest = true
		err := parseConnStr(*connStr)
		if err != nil {
			panic("failed to parse connection string")
		}

		TestOpts.Username = *user
		if TestOpts.Username == "" {
			TestOpts.Username = "Administrator"
		}

		TestOpts.Password = *password
		if TestOpts.Password == "" {
			TestOpts.Password = "password"
		}
	}

	leakcheck.EnableHttpResponseTracking()

	result := m.Run()

	http.DefaultClient.CloseIdleConnections()

	if !leakcheck.ReportLeakedHttpResponses(os.Stderr) && result == 0 {
		result = 1
	}

	os.Exit(result)
}

func parseConnStr(connStr string) error {
	baseSpec, err := gocbconnstr.Parse(connStr)
	if err != nil {
		return err
	}

	spec, err := gocbconnstr.Resolve(baseSpec)
	if err != nil {
		return err
	}

	scheme, port := "http", 8093
	if spec.UseSsl {
		scheme, port = "https", 18093
	}

	var endpoints []string
	for _, specHost := range spec.HttpHosts {
		endpoints = append(endpoints, fmt.Sprintf("%s://%s:%d", scheme, specHost.Host, port))
	}
	TestOpts.QueryEndpoints = endpoints

	return nil
}

func SkipIfShortTest(t *testing.T) {
	if !TestOpts.LongTest {
		t.Skipf("skipping long test")
	}
}

func MakeTestLogger(t *testing.T) *zap.Logger {
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	return logger
}
