package cbhttpx

import (
	"errors"
	"net"
	"net/http"

	"github.com/couchbase/gocbqueryx/contrib/leakcheck"
)

const maxRedirects = 10

type Client struct {
	Transport http.RoundTripper
}

// forwardAuthOnRedirect copies the credentials of the first request onto
// each redirect, which net/http drops when the host changes.
func forwardAuthOnRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return errors.New("stopped after 10 redirects")
	}

	if auth := via[0].Header.Get("Authorization"); auth != "" {
		req.Header.Set("Authorization", auth)
	}
	return nil
}

func (c Client) httpClient() *http.Client {
	return &http.Client{
		Transport:     c.Transport,
		CheckRedirect: forwardAuthOnRedirect,
	}
}

// Do sends req.  Failures to reach the endpoint at all are reported as
// ConnectError so callers can tell them apart from failed responses.
func (c Client) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient().Do(req)
	if err != nil {
		var opErr *net.OpError
		if errors.As(err, &opErr) && opErr.Op == "dial" {
			return nil, &ConnectError{
				Endpoint: req.URL.Host,
				Cause:    err,
			}
		}
		return nil, err
	}

	return leakcheck.WrapHttpResponse(resp), nil
}
