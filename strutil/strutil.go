/*
Package strutil provides coercion helpers for string-typed configuration
values, most notably the boolean-interpretation rule applied to options like
"hijack_options" (see [github.com/restfilter/cors.NewMiddleware]).
*/
package strutil

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

var (
	trueStrings  = []string{"1", "t", "true", "on", "y", "yes"}
	falseStrings = []string{"0", "f", "false", "off", "n", "no"}
)

// BoolFromString interprets s as a boolean value.
// The comparison is case-insensitive and ignores leading and trailing
// whitespace. The following values (and their uppercase variants)
// are interpreted as true:
//
//	1, t, true, on, y, yes
//
// and the following as false:
//
//	0, f, false, off, n, no
//
// Any other value, including the empty string, yields false.
func BoolFromString(s string) bool {
	b, err := StrictBoolFromString(s)
	if err != nil {
		return false
	}
	return b
}

// StrictBoolFromString is like [BoolFromString], but instead of silently
// falling back to false, it results in a [*UnrecognizedBoolError] when s
// matches neither the true values nor the false values.
func StrictBoolFromString(s string) (bool, error) {
	lowered := strings.ToLower(strings.TrimSpace(s))
	switch {
	case slices.Contains(trueStrings, lowered):
		return true, nil
	case slices.Contains(falseStrings, lowered):
		return false, nil
	default:
		return false, &UnrecognizedBoolError{Value: s}
	}
}

// An UnrecognizedBoolError indicates a string that could not be interpreted
// as a boolean value.
type UnrecognizedBoolError struct {
	Value string // the unacceptable value that was specified
}

func (err *UnrecognizedBoolError) Error() string {
	all := slices.Concat(trueStrings, falseStrings)
	slices.Sort(all)
	for i, s := range all {
		all[i] = strconv.Quote(s)
	}
	const tmpl = "strutil: unrecognized boolean value %q, acceptable values are: %s"
	return fmt.Sprintf(tmpl, err.Value, strings.Join(all, ", "))
}
