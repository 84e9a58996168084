/*
Package pipeline models a request-processing pipeline: an ordered chain of
two-phase filters around an [http.Handler] endpoint.

Each filter sees requests on their way in (before the endpoint) and
responses on their way out (after the endpoint). A filter may short-circuit
the pipeline by answering a request itself, in which case neither the
endpoint nor the filters downstream of it run.

Responses travel back up the chain as [*Response] values: buffered status,
headers, and body. The chain handler replays the final response onto the
underlying [http.ResponseWriter]; streaming interfaces such as
[http.Flusher] and [http.Hijacker] are not supported.
*/
package pipeline

import "net/http"

// A Filter processes requests on their way into a pipeline and responses
// on their way out.
type Filter interface {
	// ProcessRequest inspects req before the endpoint runs.
	// A nil result lets req continue down the chain. A non-nil result
	// terminates the pipeline: the remaining filters, the endpoint, and
	// this filter's own ProcessResponse are all skipped, and the result
	// travels back up through the filters upstream of this one.
	ProcessRequest(req *http.Request) *Response

	// ProcessResponse may mutate resp or replace it altogether.
	// It must return a non-nil response, typically resp itself.
	ProcessResponse(resp *Response) *Response
}

// A Response is a buffered HTTP response traveling back up a pipeline.
type Response struct {
	// StatusCode is the HTTP status code of the response.
	// A zero StatusCode is written out as 200 OK.
	StatusCode int

	// Header holds the header fields of the response.
	Header http.Header

	// Body holds the body of the response.
	Body []byte

	// Request is the request that elicited this response, or nil for
	// responses synthesized by filters out of band of any capture.
	Request *http.Request
}

// NewResponse returns an empty response with the given status code and
// no associated request.
func NewResponse(statusCode int) *Response {
	return &Response{
		StatusCode: statusCode,
		Header:     make(http.Header),
	}
}
