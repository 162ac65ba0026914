// Package leakcheck finds http response bodies that were never closed or
// drained.  Tracking is off until EnableHttpResponseTracking is called,
// which test mains do before running.
package leakcheck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"sync"

	"go.uber.org/atomic"
)

var trackingEnabled atomic.Bool

var (
	openBodiesLock sync.Mutex
	openBodies     = make(map[*trackedBody]struct{})
)

func EnableHttpResponseTracking() {
	trackingEnabled.Store(true)
}

// WrapHttpResponse registers the body of resp as open until it is closed or
// read to the end.  resp may be nil.
func WrapHttpResponse(resp *http.Response) *http.Response {
	if resp == nil || resp.Body == nil || !trackingEnabled.Load() {
		return resp
	}

	body := &trackedBody{
		parent:     resp.Body,
		stackTrace: debug.Stack(),
	}

	openBodiesLock.Lock()
	openBodies[body] = struct{}{}
	openBodiesLock.Unlock()

	resp.Body = body
	return resp
}

// OpenHttpResponses returns the number of tracked bodies still open.
func OpenHttpResponses() int {
	openBodiesLock.Lock()
	defer openBodiesLock.Unlock()
	return len(openBodies)
}

// ReportLeakedHttpResponses writes the allocation stack of every open body
// to w and reports whether there were none.
func ReportLeakedHttpResponses(w io.Writer) bool {
	openBodiesLock.Lock()
	defer openBodiesLock.Unlock()

	if len(openBodies) == 0 {
		return true
	}

	fmt.Fprintf(w, "found %d leaked http responses\n", len(openBodies))
	for body := range openBodies {
		fmt.Fprintf(w, "leaked http response stack: %s\n", body.stackTrace)
	}
	return false
}

type trackedBody struct {
	parent     io.ReadCloser
	stackTrace []byte
}

var _ io.ReadCloser = (*trackedBody)(nil)

func (b *trackedBody) untrack() {
	openBodiesLock.Lock()
	delete(openBodies, b)
	openBodiesLock.Unlock()
}

func (b *trackedBody) Read(p []byte) (int, error) {
	n, err := b.parent.Read(p)
	if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
		b.untrack()
	}
	return n, err
}

func (b *trackedBody) Close() error {
	b.untrack()
	return b.parent.Close()
}
