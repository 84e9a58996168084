package cors

import (
	"maps"
	"net/http"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/restfilter/cors/internal/headers"
	"github.com/restfilter/cors/pipeline"
)

// A Middleware is a CORS middleware: a [pipeline.Filter] that polices
// cross-origin requests on their way in and decorates responses with
// Access-Control-* headers on their way out.
// Apply it to a pipeline via [pipeline.NewChain] (possibly among other
// filters), or to a bare [http.Handler] via its [*Middleware.Wrap] method.
//
// The zero value is ready to use but is a mere "passthrough" middleware,
// i.e. a middleware whose two phases leave requests and responses
// untouched. To obtain a proper CORS middleware, call [NewMiddleware].
//
// Middleware have a debug mode, which can be toggled by calling their
// [*Middleware.SetDebug] method and queried by calling their
// [*Middleware.Debug] method. When debug mode is on, the middleware logs
// its decisions (rejections, preflight hijacks, header injections) to the
// logger configured via [*Middleware.SetLogger]; when it is off, or when
// no logger is configured, the middleware logs nothing. Debug mode has no
// bearing on the responses the middleware produces.
//
// A Middleware must not be copied after first use.
//
// Middleware are safe for concurrent use by multiple goroutines.
// Therefore, you are free to expose some or all of their methods
// so you can exercise them without having to restart your server;
// however, if you do expose those methods, you should only do so on some
// internal or authorized endpoints, for security reasons.
type Middleware struct {
	policy atomic.Pointer[policy]
	logger atomic.Pointer[zerolog.Logger]
	debug  atomic.Bool
}

var nopLogger = zerolog.Nop()

// NewMiddleware creates a CORS middleware that behaves in accordance with
// opts; options absent from opts take their documented default values, and
// NewMiddleware(nil) yields a middleware configured entirely by those
// defaults. Construction never fails: unrecognized option names are
// ignored and recognized ones are taken at face value. To surface likely
// configuration mistakes instead, run opts through [CheckOptions].
//
// The debug mode of the resulting middleware is off.
//
// Mutating opts after NewMiddleware has returned does not alter the
// middleware's behavior. However, you can reconfigure a [Middleware] via
// its [*Middleware.Reconfigure] method.
func NewMiddleware(opts Options) *Middleware {
	var m Middleware
	m.policy.Store(newPolicy(opts))
	return &m
}

// Reconfigure reconfigures m in accordance with opts, leaving m's debug
// mode and logger unchanged. Like [NewMiddleware], it never fails.
// The following statement is guaranteed to be a no-op (albeit a relatively
// expensive one):
//
//	m.Reconfigure(m.Options())
//
// You can safely reconfigure a middleware even as it's concurrently
// processing requests: in-flight requests observe either the previous
// configuration or the new one, never a mixture of the two.
//
// Mutating opts after Reconfigure has returned does not alter m's behavior.
func (m *Middleware) Reconfigure(opts Options) {
	// Rather than attempt to diff the new options against the current ones,
	// we simply start from scratch; for common configurations, doing so
	// indeed is performant enough.
	m.policy.Store(newPolicy(opts))
}

// ProcessRequest inspects req ahead of the wrapped endpoint.
//
// Requests that carry no Origin header (or an empty one) are not
// cross-origin requests; they continue down the pipeline untouched, and
// ProcessRequest returns nil.
//
// Cross-origin requests whose origin or method is not allowed terminate
// the pipeline with an empty 401 (Unauthorized) response.
//
// Allowed cross-origin OPTIONS requests, when option "hijack_options" is
// enabled, terminate the pipeline with an empty 200 (OK) response
// decorated with the Access-Control-* headers; the wrapped endpoint never
// sees them.
//
// All other requests continue down the pipeline, and ProcessRequest
// returns nil.
func (m *Middleware) ProcessRequest(req *http.Request) *pipeline.Response {
	p := m.policy.Load()
	if p == nil { // passthrough middleware
		return nil
	}
	origin, _ := headers.First(req.Header, headers.Origin)
	if origin == "" {
		// not a cross-origin request
		return nil
	}
	debug := m.debug.Load()
	if !p.allowedOrigins.Contains(origin) &&
		!p.allowedOrigins.Contains(headers.ValueWildcard) {
		if debug {
			m.log().Debug().
				Str("origin", origin).
				Msg("origin not allowed")
		}
		return pipeline.NewResponse(rejectStatus)
	}
	// The method is matched as received against the uppercased allow list;
	// a method token that isn't uppercase therefore never matches.
	if !p.allowedMethods.Contains(req.Method) {
		if debug {
			m.log().Debug().
				Str("origin", origin).
				Str("method", req.Method).
				Msg("method not allowed")
		}
		return pipeline.NewResponse(rejectStatus)
	}
	if p.hijackOptions && req.Method == http.MethodOptions {
		if debug {
			m.log().Debug().
				Str("origin", origin).
				Msg("hijacking preflight request")
		}
		return m.ProcessResponse(pipeline.NewResponse(preflightStatus))
	}
	return nil
}

// ProcessResponse decorates resp with the Access-Control-* headers
// prescribed by m's current options and returns it.
//
// Decoration applies when resp carries no originating request (as is the
// case for responses synthesized by pipeline filters) or when its
// originating request carries an Origin header, even an empty one.
// All other responses are returned untouched.
//
// Each of the following headers is set, displacing any value the endpoint
// may have produced under the same name:
//
//	Access-Control-Allow-Origin
//	Access-Control-Max-Age
//	Access-Control-Allow-Methods
//	Access-Control-Allow-Headers
//	Access-Control-Expose-Headers
//	Access-Control-Allow-Credentials
//
// ProcessResponse never fails and is idempotent.
func (m *Middleware) ProcessResponse(resp *pipeline.Response) *pipeline.Response {
	p := m.policy.Load()
	if p == nil { // passthrough middleware
		return resp
	}
	if resp.Request != nil {
		if _, found := headers.First(resp.Request.Header, headers.Origin); !found {
			return resp
		}
	}
	if resp.Header == nil {
		resp.Header = make(http.Header)
	}
	for _, hdr := range p.resHdrs {
		resp.Header.Set(hdr.name, hdr.value)
	}
	if m.debug.Load() {
		m.log().Debug().
			Int("status", resp.StatusCode).
			Msg("injected response headers")
	}
	return resp
}

// Wrap applies the CORS middleware to the specified handler.
// It is shorthand for building a single-filter pipeline around h.
func (m *Middleware) Wrap(h http.Handler) http.Handler {
	return pipeline.Wrap(h, m)
}

// SetDebug turns debug mode on (if b is true) or off (otherwise).
func (m *Middleware) SetDebug(b bool) {
	m.debug.Store(b)
}

// Debug reports whether m's debug mode is on.
func (m *Middleware) Debug() bool {
	return m.debug.Load()
}

// SetLogger sets the logger to which m, when its debug mode is on,
// logs its decisions.
func (m *Middleware) SetLogger(logger zerolog.Logger) {
	m.logger.Store(&logger)
}

func (m *Middleware) log() *zerolog.Logger {
	if l := m.logger.Load(); l != nil {
		return l
	}
	return &nopLogger
}

// Options returns a copy of the merged options currently in force;
// if m is a passthrough middleware, it simply returns nil.
// The result may differ from the Options with which m was created or last
// reconfigured (it also carries the defaulted options), but the following
// statement is guaranteed to be a no-op (albeit a relatively expensive
// one):
//
//	m.Reconfigure(m.Options())
//
// Mutating the result does not alter m's behavior.
func (m *Middleware) Options() Options {
	p := m.policy.Load()
	if p == nil {
		return nil
	}
	return maps.Clone(p.options)
}
