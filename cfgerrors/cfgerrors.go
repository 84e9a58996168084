/*
Package cfgerrors provides functionalities for programmatically handling
configuration problems reported by
[github.com/restfilter/cors.CheckOptions].

Most users of package [github.com/restfilter/cors] have no use for this
package. However, services that accept CORS options from some external
source (a deployment manifest, a Web portal, a command-line interface) may
find this package useful: it indeed allows such services to inform their
operators about configuration mistakes via custom, human-friendly error
messages, perhaps even ones written in a natural language other than
English and/or generated on the client side.
*/
package cfgerrors

import (
	"fmt"
	"iter"
)

// An UnknownOptionError indicates an option name that the middleware does
// not recognize, most often the result of a typo.
type UnknownOptionError struct {
	Name string // the unrecognized option name
}

func (err *UnknownOptionError) Error() string {
	return fmt.Sprintf("cors: unknown option %q", err.Name)
}

// An UnacceptableMethodError indicates an invalid method token in option
// "allow_methods".
//
// Note that method tokens are not checked against any list of known HTTP
// methods; only tokens that are syntactically invalid ([per the Fetch
// standard]) are reported.
//
// [per the Fetch standard]: https://fetch.spec.whatwg.org/#concept-method
type UnacceptableMethodError struct {
	Value string // the unacceptable value that was specified
}

func (err *UnacceptableMethodError) Error() string {
	return fmt.Sprintf("cors: invalid method %q", err.Value)
}

// An UnacceptableHeaderNameError indicates an invalid header name
// ([per the Fetch standard]) in option "allow_headers" or
// "expose_headers".
//
// [per the Fetch standard]: https://fetch.spec.whatwg.org/#header-name
type UnacceptableHeaderNameError struct {
	Value  string // the unacceptable value that was specified
	Option string // allow_headers | expose_headers
}

func (err *UnacceptableHeaderNameError) Error() string {
	const tmpl = "cors: invalid header name %q in option %q"
	return fmt.Sprintf(tmpl, err.Value, err.Option)
}

// An UnacceptableMaxAgeError indicates a max_age value that is not a
// non-negative integer.
type UnacceptableMaxAgeError struct {
	Value string // the unacceptable value that was specified
}

func (err *UnacceptableMaxAgeError) Error() string {
	return fmt.Sprintf("cors: invalid max-age value %q", err.Value)
}

// An UnacceptableBoolValueError indicates an option value that cannot be
// interpreted as a boolean under the strict interpretation rule
// (see [github.com/restfilter/cors/strutil.StrictBoolFromString]).
type UnacceptableBoolValueError struct {
	Value  string // the unacceptable value that was specified
	Option string // allow_credentials | hijack_options
}

func (err *UnacceptableBoolValueError) Error() string {
	const tmpl = "cors: unrecognized boolean value %q for option %q"
	return fmt.Sprintf(tmpl, err.Value, err.Option)
}

// An IncompatibleWildcardOriginError indicates a configuration that both
// allows all origins and enables credentialed access.
type IncompatibleWildcardOriginError struct{}

func (*IncompatibleWildcardOriginError) Error() string {
	return "cors: for security reasons, you cannot both allow all origins and enable credentialed access"
}

// All returns an iterator over the configuration errors contained in err's
// error tree. The order is unspecified and may change from one release to
// the next. All only supports error values returned by
// [github.com/restfilter/cors.CheckOptions]; it should not be called on
// any other error value.
func All(err error) iter.Seq[error] {
	return func(yield func(error) bool) {
		every(err, yield)
	}
}

func every(err error, f func(error) bool) bool {
	switch err := err.(type) {
	// Note that there's no need for any "interface { Unwrap() error }" case
	// because nowhere do we "wrap" errors; we only ever "join" them.
	case interface{ Unwrap() []error }:
		for _, err := range err.Unwrap() {
			if !every(err, f) {
				return false
			}
		}
		return true
	default:
		return f(err)
	}
}
