// Package take parses take specifications such as "+5", "-3" or "10" and
// resolves them against the length of a source.
package take

import (
	"errors"
	"math"
	"regexp"
	"strconv"
)

var ErrInvalidSpec = errors.New("invalid take specification")

// SpecError reports a string that is not a valid take specification.
type SpecError struct {
	Spec string
}

// Error returns the offending string, so callers can format messages like
// "illegal line count -- foo".
func (e *SpecError) Error() string {
	if e == nil {
		return ""
	}
	return e.Spec
}

func (e *SpecError) Unwrap() error { return ErrInvalidSpec }

var specRegexp = regexp.MustCompile(`^([+-])?([0-9]+)$`)

// Value is either FromStart or Count(n).
//
// A positive n selects from the n-th element (1-based) to the end.
// A negative n selects the last |n| elements.
type Value struct {
	fromStart bool
	n         int64
}

// FromStart returns the value produced by the literal "+0".
func FromStart() Value {
	return Value{fromStart: true}
}

// Count returns Count(n).
func Count(n int64) Value {
	return Value{n: n}
}

// IsFromStart reports whether v is FromStart.
func (v Value) IsFromStart() bool {
	return v.fromStart
}

// N returns the signed count. It is 0 for FromStart.
func (v Value) N() int64 {
	return v.n
}

func (v Value) String() string {
	switch {
	case v.fromStart:
		return "+0"
	case v.n > 0:
		return "+" + strconv.FormatInt(v.n, 10)
	default:
		return strconv.FormatInt(v.n, 10)
	}
}

// Parse parses a take specification.
//
// A leading '+' counts from the front. A leading '-', or no sign at all,
// counts back from the end: "3" and "-3" are both Count(-3).
func Parse(s string) (Value, error) {
	if s == "+0" {
		return FromStart(), nil
	}
	m := specRegexp.FindStringSubmatch(s)
	if m == nil {
		return Value{}, &SpecError{Spec: s}
	}
	mag, err := strconv.ParseUint(m[2], 10, 64)
	if err != nil {
		return Value{}, &SpecError{Spec: s}
	}
	if m[1] == "+" {
		if mag > math.MaxInt64 {
			return Value{}, &SpecError{Spec: s}
		}
		return Count(int64(mag)), nil
	}
	// -MinInt64 does not fit in an int64.
	switch {
	case mag == math.MaxInt64+1:
		return Count(math.MinInt64), nil
	case mag > math.MaxInt64:
		return Value{}, &SpecError{Spec: s}
	}
	return Count(-int64(mag)), nil
}

// MustParse is like Parse but panics on error. It is meant for constants.
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Resolve maps v onto a source of total elements and returns the 0-based
// index of the first element to emit. ok is false when nothing should be
// emitted. The same rules apply to lines and bytes.
func (v Value) Resolve(total int64) (offset int64, ok bool) {
	if total <= 0 {
		return 0, false
	}
	if v.fromStart {
		return 0, true
	}
	switch n := v.n; {
	case n == 0:
		return 0, false
	case n > 0:
		if n > total {
			return 0, false
		}
		return n - 1, true
	default:
		// total > 0 and n < 0, so this cannot overflow.
		k := total + n
		if k < 0 {
			return 0, true
		}
		return k, true
	}
}
