// Package params parses raw request parameters. Malformed filter input is
// never an error here: each parse reports the fallback path it took so the
// caller (and tests) can tell recovery apart from success.
package params

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the accepted format for date-range bounds.
const DateLayout = "2006-01-02"

// CSV splits a comma-separated parameter into trimmed, upper-cased tokens,
// dropping empty ones. A nil result means "field not filtered", which is
// distinct from a field filtered to values that match nothing.
func CSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		out = append(out, strings.ToUpper(tok))
	}
	return out
}

// Fallback identifies why a parsed numeric value was replaced.
type Fallback string

// Fallback reasons.
const (
	FallbackNone        Fallback = ""
	FallbackMissing     Fallback = "missing"
	FallbackUnparsable  Fallback = "unparsable"
	FallbackNonPositive Fallback = "non_positive"
	FallbackOverMax     Fallback = "over_max"
)

// Number is the outcome of parsing a numeric parameter: the value actually
// used and the fallback path taken, if any.
type Number struct {
	Value    int
	Fallback Fallback
}

// Int coerces a possibly-fractional numeric string, truncating toward zero.
func Int(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

// Page parses a 1-based page number, defaulting to 1. The result is not
// clamped to the page range; out-of-range pages are the caller's concern.
func Page(s string) Number {
	if s == "" {
		return Number{Value: 1, Fallback: FallbackMissing}
	}
	n, ok := Int(s)
	if !ok {
		return Number{Value: 1, Fallback: FallbackUnparsable}
	}
	return Number{Value: n}
}

// PageSize parses a page size, defaulting to def, re-defaulting on a
// non-positive value and clamping to max.
func PageSize(s string, def, max int) Number {
	if s == "" {
		return Number{Value: def, Fallback: FallbackMissing}
	}
	n, ok := Int(s)
	if !ok {
		return Number{Value: def, Fallback: FallbackUnparsable}
	}
	if n > max {
		return Number{Value: max, Fallback: FallbackOverMax}
	}
	if n <= 0 {
		return Number{Value: def, Fallback: FallbackNonPositive}
	}
	return Number{Value: n}
}

// Sample parses an optional sample size. Any fallback means the unsampled
// "return everything" path.
func Sample(s string) Number {
	if s == "" {
		return Number{Fallback: FallbackMissing}
	}
	n, ok := Int(s)
	if !ok {
		return Number{Fallback: FallbackUnparsable}
	}
	if n <= 0 {
		return Number{Fallback: FallbackNonPositive}
	}
	return Number{Value: n}
}

// Date parses a YYYY-MM-DD date.
func Date(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DateRange parses a closed date range. Both bounds must be present and
// parseable; otherwise the range is absent.
func DateRange(start, end string) (from, to time.Time, ok bool) {
	if start == "" || end == "" {
		return time.Time{}, time.Time{}, false
	}
	from, okFrom := Date(start)
	to, okTo := Date(end)
	if !okFrom || !okTo {
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}
