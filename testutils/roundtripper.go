package testutils

import (
	"bytes"
	"io"
	"net/http"
	"sync"
)

// RoundTripResult is one canned answer for a RoundTripper.
type RoundTripResult struct {
	Response *http.Response
	Err      error
}

// RoundTripper replays Results in order and records every request it is
// given.  Request bodies are read eagerly so that tests can inspect them
// after the client has closed them.
type RoundTripper struct {
	Results []RoundTripResult

	lock             sync.Mutex
	receivedRequests []*http.Request
	receivedBodies   [][]byte
}

func (rt *RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		_ = req.Body.Close()
	}

	rt.lock.Lock()
	defer rt.lock.Unlock()

	c := len(rt.receivedRequests)
	rt.receivedRequests = append(rt.receivedRequests, req)
	rt.receivedBodies = append(rt.receivedBodies, body)

	if c >= len(rt.Results) {
		c = len(rt.Results) - 1
	}
	result := rt.Results[c]
	if result.Response != nil {
		result.Response.Request = req
	}
	return result.Response, result.Err
}

func (rt *RoundTripper) ReceivedRequests() []*http.Request {
	rt.lock.Lock()
	defer rt.lock.Unlock()
	return rt.receivedRequests
}

func (rt *RoundTripper) ReceivedBodies() [][]byte {
	rt.lock.Lock()
	defer rt.lock.Unlock()
	return rt.receivedBodies
}

func NewSingleRoundTripper(resp *http.Response, err error) *RoundTripper {
	return &RoundTripper{
		Results: []RoundTripResult{
			{
				Response: resp,
				Err:      err,
			},
		},
	}
}

// NewResponse builds a response with statusCode and body.  Each call gets
// its own reader, so one RoundTripper should not share a response between
// results.
func NewResponse(statusCode int, body []byte) *http.Response {
	return &http.Response{
		Status:        http.StatusText(statusCode),
		StatusCode:    statusCode,
		Header:        make(http.Header),
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
	}
}
