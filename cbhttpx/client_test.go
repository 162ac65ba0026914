package cbhttpx

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestNewJsonRequest(t *testing.T) {
	req, err := RequestBuilder{
		UserAgent:     "useragent",
		Endpoint:      "http://10.112.1.1:8093",
		BasicAuthUser: "username",
		BasicAuthPass: "password",
		CbOnBehalfOf:  "someone",
	}.NewJsonRequest(context.Background(), http.MethodPost, "/query/service", []byte(`{"statement":"SELECT 1"}`))
	require.NoError(t, err)

	assert.Equal(t, "http://10.112.1.1:8093/query/service", req.URL.String())
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "useragent", req.Header.Get("User-Agent"))
	assert.Equal(t, "someone", req.Header.Get("cb-on-behalf-of"))
	assert.Equal(t, int64(24), req.ContentLength)

	user, pass, ok := req.BasicAuth()
	require.True(t, ok)
	assert.Equal(t, "username", user)
	assert.Equal(t, "password", pass)
}

func TestClientDialFailure(t *testing.T) {
	dialErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

	req, err := RequestBuilder{
		Endpoint: "http://10.112.1.1:8093",
	}.NewJsonRequest(context.Background(), http.MethodPost, "/query/service", nil)
	require.NoError(t, err)

	_, err = Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			return nil, dialErr
		}),
	}.Do(req)

	require.ErrorIs(t, err, ErrConnectError)
	assert.ErrorContains(t, err, "10.112.1.1:8093")

	var opErr *net.OpError
	assert.ErrorAs(t, err, &opErr)
}

func TestClientForwardsAuthOnRedirect(t *testing.T) {
	var redirectedAuth string
	transport := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Host == "10.112.1.1:8093" {
			return &http.Response{
				StatusCode: http.StatusTemporaryRedirect,
				Header:     http.Header{"Location": []string{"http://10.112.1.2:8093/query/service"}},
				Body:       io.NopCloser(strings.NewReader("")),
				Request:    req,
			}, nil
		}

		redirectedAuth = req.Header.Get("Authorization")
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     make(http.Header),
			Body:       io.NopCloser(strings.NewReader(`{}`)),
			Request:    req,
		}, nil
	})

	req, err := RequestBuilder{
		Endpoint:      "http://10.112.1.1:8093",
		BasicAuthUser: "username",
		BasicAuthPass: "password",
	}.NewJsonRequest(context.Background(), http.MethodPost, "/query/service", []byte(`{}`))
	require.NoError(t, err)

	resp, err := Client{Transport: transport}.Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, req.Header.Get("Authorization"), redirectedAuth)
	assert.NotEmpty(t, redirectedAuth)
}
