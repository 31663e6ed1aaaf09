package args

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrCoercion is returned by the strict getters when a value can't be converted.
var ErrCoercion = errors.New("could not convert value")

// ParseBool accepts "true" or "false" in any case.
func (a *Argument) ParseBool() (bool, error) {
	switch {
	case strings.EqualFold(a.value, "true"):
		return true, nil
	case strings.EqualFold(a.value, "false"):
		return false, nil
	}
	return false, fmt.Errorf("%w: %q to a boolean", ErrCoercion, a.value)
}

// ParseInt parses a 32-bit integer. Values that only parse as a general decimal
// ("3.7", "1e+3") are truncated toward zero and saturated to the int32 range.
func (a *Argument) ParseInt() (int32, error) {
	if v, err := strconv.ParseInt(a.value, 10, 32); err == nil {
		return int32(v), nil
	}
	f, err := parseGeneral(a.value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q to an integer", ErrCoercion, a.value)
	}
	return int32(narrow(f, math.MinInt32, math.MaxInt32)), nil
}

// ParseLong parses a 64-bit integer with the same decimal fallback as ParseInt.
func (a *Argument) ParseLong() (int64, error) {
	if v, err := strconv.ParseInt(a.value, 10, 64); err == nil {
		return v, nil
	}
	f, err := parseGeneral(a.value)
	if err != nil {
		return 0, fmt.Errorf("%w: %q to a long", ErrCoercion, a.value)
	}
	return narrow(f, math.MinInt64, math.MaxInt64), nil
}

// ParseDouble parses a 64-bit float. Out-of-range values become ±Inf.
func (a *Argument) ParseDouble() (float64, error) {
	f, err := parseFloat(strings.TrimSpace(a.value), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q to a double", ErrCoercion, a.value)
	}
	return f, nil
}

// ParseFloat parses a 32-bit float. Out-of-range values become ±Inf.
func (a *Argument) ParseFloat() (float32, error) {
	f, err := parseFloat(strings.TrimSpace(a.value), 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q to a float", ErrCoercion, a.value)
	}
	return float32(f), nil
}

// AsBool is true only for "true" in any case. It never reports a diagnostic.
func (a *Argument) AsBool() bool {
	return strings.EqualFold(a.value, "true")
}

// AsInt is ParseInt that reports failures to the diagnostic sink and returns 0.
func (a *Argument) AsInt() int32 {
	v, err := a.ParseInt()
	if err != nil {
		a.reportFailure("an integer")
		return 0
	}
	return v
}

// AsLong is ParseLong that reports failures to the diagnostic sink and returns 0.
func (a *Argument) AsLong() int64 {
	v, err := a.ParseLong()
	if err != nil {
		a.reportFailure("a long")
		return 0
	}
	return v
}

// AsDouble is ParseDouble that reports failures to the diagnostic sink and returns 0.
func (a *Argument) AsDouble() float64 {
	v, err := a.ParseDouble()
	if err != nil {
		a.reportFailure("a double")
		return 0
	}
	return v
}

// AsFloat is ParseFloat that reports failures to the diagnostic sink and returns 0.
func (a *Argument) AsFloat() float32 {
	v, err := a.ParseFloat()
	if err != nil {
		a.reportFailure("a float")
		return 0
	}
	return v
}

func (a *Argument) reportFailure(target string) {
	a.sink().Error(fmt.Sprintf("Could not successfully convert %q to %s! Returning 0.", a.value, target))
}

// BoolFrom is the lenient boolean getter for a raw "prefix:value" token.
func BoolFrom(raw string) bool { return New(raw).AsBool() }

// IntFrom is the lenient integer getter for a raw "prefix:value" token.
func IntFrom(raw string) int32 { return New(raw).AsInt() }

// LongFrom is the lenient long getter for a raw "prefix:value" token.
func LongFrom(raw string) int64 { return New(raw).AsLong() }

// DoubleFrom is the lenient double getter for a raw "prefix:value" token.
func DoubleFrom(raw string) float64 { return New(raw).AsDouble() }

// FloatFrom is the lenient float getter for a raw "prefix:value" token.
func FloatFrom(raw string) float32 { return New(raw).AsFloat() }

func parseGeneral(s string) (float64, error) {
	return parseFloat(strings.TrimSpace(s), 64)
}

var errNonFinite = errors.New("non-finite spelling")

// parseFloat parses a decimal number. Out-of-range values saturate to ±Inf.
// The only accepted non-finite literals are "NaN" and "[+-]Infinity", spelled exactly.
func parseFloat(s string, bits int) (float64, error) {
	f, err := strconv.ParseFloat(s, bits)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return f, nil
		}
		return 0, err
	}
	if (math.IsNaN(f) || math.IsInf(f, 0)) && !exactNonFinite(s) {
		return 0, errNonFinite
	}
	return f, nil
}

func exactNonFinite(s string) bool {
	if s == "NaN" {
		return true
	}
	if s != "" && isSign(s[0]) {
		s = s[1:]
	}
	return s == "Infinity"
}

// narrow truncates f toward zero, clamping to [lo, hi]. NaN becomes 0.
func narrow(f float64, lo, hi int64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= float64(hi):
		return hi
	case f <= float64(lo):
		return lo
	}
	return int64(f)
}
