package pipeline

import (
	"bytes"
	"net/http"
)

// A Chain is an ordered sequence of filters.
//
// Order:
//   - NewChain(a, b, c).Handler(h): a sees requests first and responses last.
type Chain []Filter

// NewChain creates a chain from the provided filters.
//
// Nil filters are ignored.
func NewChain(filters ...Filter) Chain {
	out := appendNonNil(nil, filters)
	if len(out) == 0 {
		return nil
	}
	return out
}

// With returns a new chain by appending more filters to the current chain.
//
// Nil filters are ignored.
// With never mutates the receiver, and the returned chain does not share
// the underlying array with the receiver.
func (c Chain) With(more ...Filter) Chain {
	out := make([]Filter, 0, len(c)+len(more))
	out = appendNonNil(out, c)
	out = appendNonNil(out, more)
	if len(out) == 0 {
		return nil
	}
	return out
}

// Handler builds and returns an http.Handler that runs requests through
// the chain, with endpoint as the final handler.
//
// The returned handler is built from a snapshot of the chain; mutating c
// afterwards has no effect on it.
//
// Handler panics if endpoint is nil (a configuration/assembly error).
func (c Chain) Handler(endpoint http.Handler) http.Handler {
	if endpoint == nil {
		panic("pipeline: nil endpoint handler")
	}
	h := run(endpoint)
	for i := len(c) - 1; i >= 0; i-- {
		h = layer(c[i], h)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, h(r))
	})
}

// Wrap runs requests through the filters (in order) and then endpoint.
//
// Nil filters are ignored.
// Wrap panics if endpoint is nil.
func Wrap(endpoint http.Handler, filters ...Filter) http.Handler {
	return NewChain(filters...).Handler(endpoint)
}

// A handler is one resolved stage of a pipeline: everything from some
// filter (inclusive) down to the endpoint.
type handler func(*http.Request) *Response

func layer(f Filter, inner handler) handler {
	return func(req *http.Request) *Response {
		if resp := f.ProcessRequest(req); resp != nil {
			return resp
		}
		return f.ProcessResponse(inner(req))
	}
}

// run executes endpoint against a buffering ResponseWriter and captures
// the outcome. The captured response carries the request that elicited it.
func run(endpoint http.Handler) handler {
	return func(req *http.Request) *Response {
		rec := recorder{header: make(http.Header)}
		endpoint.ServeHTTP(&rec, req)
		status := rec.status
		if status == 0 {
			status = http.StatusOK
		}
		return &Response{
			StatusCode: status,
			Header:     rec.header,
			Body:       rec.body.Bytes(),
			Request:    req,
		}
	}
}

func writeResponse(w http.ResponseWriter, resp *Response) {
	hdrs := w.Header()
	for k, vs := range resp.Header {
		hdrs[k] = vs
	}
	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if len(resp.Body) > 0 {
		w.Write(resp.Body)
	}
}

// recorder is a minimal buffering ResponseWriter.
// Only the first call to WriteHeader takes effect, as with net/http.
type recorder struct {
	status int
	header http.Header
	body   bytes.Buffer
}

func (rec *recorder) Header() http.Header {
	return rec.header
}

func (rec *recorder) WriteHeader(statusCode int) {
	if rec.status == 0 {
		rec.status = statusCode
	}
}

func (rec *recorder) Write(p []byte) (int, error) {
	if rec.status == 0 {
		rec.status = http.StatusOK
	}
	return rec.body.Write(p)
}

func appendNonNil(dst []Filter, src []Filter) []Filter {
	for _, f := range src {
		if f == nil {
			continue
		}
		dst = append(dst, f)
	}
	return dst
}
