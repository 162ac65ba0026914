package cbhttpx

import (
	"bytes"
	"context"
	"net/http"
)

// RequestBuilder creates requests against a single service endpoint.
type RequestBuilder struct {
	UserAgent     string
	Endpoint      string
	BasicAuthUser string
	BasicAuthPass string
	CbOnBehalfOf  string
}

// NewJsonRequest creates a request carrying a JSON body.  The body is held in
// memory so that the client can resend it when following a redirect.
func (h RequestBuilder) NewJsonRequest(
	ctx context.Context,
	method, path string,
	body []byte,
) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, h.Endpoint+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}
	if h.CbOnBehalfOf != "" {
		req.Header.Set("cb-on-behalf-of", h.CbOnBehalfOf)
	}
	if h.BasicAuthUser != "" || h.BasicAuthPass != "" {
		req.SetBasicAuth(h.BasicAuthUser, h.BasicAuthPass)
	}

	return req, nil
}
