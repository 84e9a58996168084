package cors

import (
	"maps"
	"net/http"
	"strings"

	"github.com/restfilter/cors/internal/headers"
	"github.com/restfilter/cors/internal/util"
	"github.com/restfilter/cors/strutil"
)

// The option names recognized by [NewMiddleware], [*Middleware.Reconfigure],
// and [CheckOptions]. The mechanics of each option are explained below.
//
// # allow_origins
//
// A whitespace-separated list of the [Web origins] allowed to access the
// resource, e.g.
//
//	"https://example.com https://staging.example.com"
//
// Origins are matched by exact string comparison against the request's
// Origin header; no pattern matching of any kind is performed. A single
// asterisk denotes all origins:
//
//	"*"
//
// # allow_methods
//
// A comma-separated list of the HTTP methods allowed in cross-origin
// requests, e.g.
//
//	"GET, POST, PUT, DELETE, OPTIONS"
//
// Elements of the list are trimmed of surrounding whitespace and
// uppercased before use.
//
// # allow_headers
//
// A comma-separated list of request-header names, advertised verbatim in
// the Access-Control-Allow-Headers response header. Requests are not
// policed against this list.
//
// # expose_headers
//
// A comma-separated list of response-header names, advertised verbatim in
// the Access-Control-Expose-Headers response header.
//
// # allow_credentials
//
// Advertised verbatim in the Access-Control-Allow-Credentials response
// header.
//
// # hijack_options
//
// Whether the middleware answers allowed cross-origin OPTIONS requests
// itself rather than passing them on to the wrapped handler. The value is
// interpreted per [github.com/restfilter/cors/strutil.BoolFromString].
//
// # max_age
//
// Advertised verbatim in the Access-Control-Max-Age response header.
//
// [Web origins]: https://developer.mozilla.org/en-US/docs/Glossary/Origin
const (
	AllowOrigins     = "allow_origins"
	AllowMethods     = "allow_methods"
	AllowHeaders     = "allow_headers"
	ExposeHeaders    = "expose_headers"
	AllowCredentials = "allow_credentials"
	HijackOptions    = "hijack_options"
	MaxAge           = "max_age"
)

// Options configures a [Middleware]. Any option left unspecified takes its
// default value; option names other than the constants documented above
// are ignored (but see [CheckOptions]).
type Options map[string]string

// defaultOptions is the configuration in force when an option is left
// unspecified.
var defaultOptions = Options{
	AllowOrigins:     "*",
	AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
	AllowHeaders:     "Origin, Content-type, Accept, X-Auth-Token",
	ExposeHeaders:    "etag, x-timestamp, x-trans-id, vary",
	AllowCredentials: "false",
	HijackOptions:    "true",
	MaxAge:           "3600",
}

const (
	rejectStatus    = http.StatusUnauthorized // disallowed origin or method
	preflightStatus = http.StatusOK           // hijacked OPTIONS request
)

// A policy is the resolved form of some Options. It is immutable once
// built and is shared, read-only, by all in-flight requests.
type policy struct {
	allowedOrigins util.Set // may contain the wildcard
	allowedMethods util.Set // uppercase tokens
	hijackOptions  bool
	resHdrs        [6]headerPair // in injection order
	options        Options       // merged options, for readback
}

type headerPair struct {
	name  string // in canonical format
	value string
}

// newPolicy resolves opts, merged over the defaults, into a policy.
// It never fails: unrecognized options are ignored and recognized ones are
// taken at face value.
func newPolicy(opts Options) *policy {
	merged := maps.Clone(defaultOptions)
	maps.Copy(merged, opts)

	origins := splitOrigins(merged[AllowOrigins])
	p := policy{
		allowedOrigins: util.NewSet(origins...),
		allowedMethods: splitMethods(merged[AllowMethods]),
		hijackOptions:  strutil.BoolFromString(merged[HijackOptions]),
		options:        merged,
	}
	p.resHdrs = [...]headerPair{
		{headers.ACAO, strings.Join(origins, " ")},
		{headers.ACMA, merged[MaxAge]},
		{headers.ACAM, merged[AllowMethods]},
		{headers.ACAH, merged[AllowHeaders]},
		{headers.ACEH, merged[ExposeHeaders]},
		{headers.ACAC, merged[AllowCredentials]},
	}
	return &p
}

// splitOrigins splits a whitespace-separated list of origins into the
// distinct origins, in order of first occurrence.
func splitOrigins(list string) []string {
	var (
		origins []string
		seen    = make(util.Set)
	)
	for _, origin := range strings.Fields(list) {
		if seen.Contains(origin) {
			continue
		}
		seen.Add(origin)
		origins = append(origins, origin)
	}
	return origins
}

// splitMethods splits a comma-separated list of methods into a set of
// uppercase tokens, each trimmed of surrounding whitespace.
func splitMethods(list string) util.Set {
	set := make(util.Set)
	for _, method := range strings.Split(list, ",") {
		set.Add(strings.ToUpper(strings.TrimSpace(method)))
	}
	return set
}
