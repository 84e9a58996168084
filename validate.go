package cors

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/restfilter/cors/cfgerrors"
	"github.com/restfilter/cors/internal/headers"
	"github.com/restfilter/cors/internal/methods"
	"github.com/restfilter/cors/strutil"
)

// CheckOptions reports likely mistakes in opts.
//
// [NewMiddleware] and [*Middleware.Reconfigure] never fail: they ignore
// option names they don't recognize and take recognized option values at
// face value, however nonsensical. CheckOptions is for surfacing such
// mistakes at a time of your choosing (in tests, at startup, on a config
// admin endpoint) rather than as silent runtime behavior. It flags
//
//   - option names that the middleware does not recognize,
//   - invalid method tokens in allow_methods,
//   - invalid header names in allow_headers and expose_headers,
//   - a max_age value that is not a non-negative integer,
//   - allow_credentials and hijack_options values that are not boolean
//     under the strict interpretation rule
//     (see [github.com/restfilter/cors/strutil.StrictBoolFromString]),
//   - the insecure conjunction of allowing all origins and enabling
//     credentialed access.
//
// A nil result means opts passed all of the checks. A non-nil result is
// composed of one error per finding; if you need to handle findings
// programmatically, rely on package
// [github.com/restfilter/cors/cfgerrors].
//
// Origin values are deliberately not checked: origins are matched by exact
// string comparison, so any whitespace-delimited value is admissible.
func CheckOptions(opts Options) error {
	// Accumulate errors in a slice so as to call errors.Join at most once.
	var errs []error
	for _, name := range slices.Sorted(maps.Keys(opts)) {
		if _, known := defaultOptions[name]; !known {
			errs = append(errs, &cfgerrors.UnknownOptionError{Name: name})
		}
	}
	if list, found := opts[AllowMethods]; found {
		errs = checkMethods(errs, list)
	}
	for _, name := range []string{AllowHeaders, ExposeHeaders} {
		if list, found := opts[name]; found {
			errs = checkHeaderNames(errs, name, list)
		}
	}
	if v, found := opts[MaxAge]; found && !isDeltaSeconds(v) {
		errs = append(errs, &cfgerrors.UnacceptableMaxAgeError{Value: v})
	}
	for _, name := range []string{AllowCredentials, HijackOptions} {
		if v, found := opts[name]; found {
			if _, err := strutil.StrictBoolFromString(v); err != nil {
				err := &cfgerrors.UnacceptableBoolValueError{
					Value:  v,
					Option: name,
				}
				errs = append(errs, err)
			}
		}
	}

	merged := maps.Clone(defaultOptions)
	maps.Copy(merged, opts)
	if strings.TrimSpace(merged[AllowCredentials]) == "true" &&
		slices.Contains(strings.Fields(merged[AllowOrigins]), headers.ValueWildcard) {
		errs = append(errs, new(cfgerrors.IncompatibleWildcardOriginError))
	}

	return errors.Join(errs...)
}

func checkMethods(errs []error, list string) []error {
	for _, method := range strings.Split(list, ",") {
		method = strings.TrimSpace(method)
		if !methods.IsValid(method) {
			errs = append(errs, &cfgerrors.UnacceptableMethodError{Value: method})
		}
	}
	return errs
}

func checkHeaderNames(errs []error, option, list string) []error {
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if !headers.IsValid(name) {
			err := &cfgerrors.UnacceptableHeaderNameError{
				Value:  name,
				Option: option,
			}
			errs = append(errs, err)
		}
	}
	return errs
}

// isDeltaSeconds reports whether s is a valid delta-seconds value,
// i.e. a non-empty sequence of ASCII digits; see [RFC 9111, section 1.2.2].
//
// [RFC 9111, section 1.2.2]: https://httpwg.org/specs/rfc9111.html#delta-seconds
func isDeltaSeconds(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
