// Package parsers provides the validators used by the settings catalog.
//
// Every parser accepts raw values as they arrive from code, YAML or the
// command line: native Go numbers and booleans, or their string forms.
// Booleans are never accepted where a number is expected.
package parsers

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/cast"
)

// MinMemory is the smallest memory allocation Memory accepts, in bytes.
const MinMemory = 262144

var (
	ErrNotANumber     = errors.New("not a number")
	ErrNotAnInteger   = errors.New("not an integer")
	ErrNotAString     = errors.New("not a string")
	ErrNotPositive    = errors.New("must be positive")
	ErrOutOfRange     = errors.New("out of range")
	ErrMemoryTooSmall = errors.New("memory allocation too small")
	ErrMemoryFormat   = errors.New("invalid memory specification")
	ErrSphCart        = errors.New("expected spherical or cartesian")
)

var memoryPattern = regexp.MustCompile(`(?i)^\s*(\d*\.?\d+)\s*([kmgt]i?b|b)\s*$`)

var memoryUnits = map[string]float64{
	"b":   1,
	"kb":  1e3,
	"mb":  1e6,
	"gb":  1e9,
	"tb":  1e12,
	"kib": 1 << 10,
	"mib": 1 << 20,
	"gib": 1 << 30,
	"tib": 1 << 40,
}

// Memory parses a memory allocation such as 2000000000, "700 mb" or
// "1.5 GiB" into bytes.
func Memory(raw any) (int64, error) {
	var amount float64
	switch v := raw.(type) {
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return 0, oops.Wrapf(ErrNotANumber, "%q is not finite", v)
			}
			amount = f
			break
		}
		m := memoryPattern.FindStringSubmatch(v)
		if m == nil {
			return 0, oops.Wrapf(ErrMemoryFormat, "%q", v)
		}
		f, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, oops.Wrapf(ErrMemoryFormat, "%q", v)
		}
		amount = f * memoryUnits[strings.ToLower(m[2])]
	default:
		f, err := number(raw)
		if err != nil {
			return 0, err
		}
		amount = f
	}

	// float64(math.MaxInt64) rounds up to 2^63, which int64 cannot hold.
	if amount >= math.MaxInt64 {
		return 0, oops.Wrapf(ErrOutOfRange, "%v bytes exceeds the maximum of %d", amount, int64(math.MaxInt64))
	}
	bytes := int64(amount)
	if bytes < MinMemory {
		return 0, oops.Wrapf(ErrMemoryTooSmall, "%d bytes is below the minimum of %d", bytes, MinMemory)
	}
	return bytes, nil
}

// Convergence accepts a positive float as is, or a positive integer n as 10^-n.
func Convergence(raw any) (float64, error) {
	if n, ok := integral(raw); ok {
		if n <= 0 {
			return 0, oops.Wrapf(ErrNotPositive, "convergence exponent %d", n)
		}
		return math.Pow10(-int(n)), nil
	}
	f, err := number(raw)
	if err != nil {
		return 0, err
	}
	if f <= 0 {
		return 0, oops.Wrapf(ErrNotPositive, "convergence %v", f)
	}
	return f, nil
}

// PositiveInteger accepts whole numbers greater than zero.
func PositiveInteger(raw any) (int, error) {
	f, err := number(raw)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, oops.Wrapf(ErrNotAnInteger, "%v", raw)
	}
	if f <= 0 {
		return 0, oops.Wrapf(ErrNotPositive, "%v", raw)
	}
	if f > math.MaxInt32 {
		return 0, oops.Wrapf(ErrOutOfRange, "%v exceeds the maximum of %d", raw, math.MaxInt32)
	}
	return int(f), nil
}

// Percentage accepts numbers between 0 and 100 inclusive.
func Percentage(raw any) (float64, error) {
	f, err := number(raw)
	if err != nil {
		return 0, err
	}
	if f < 0 || f > 100 {
		return 0, oops.Wrapf(ErrOutOfRange, "percentage %v not in [0, 100]", f)
	}
	return f, nil
}

// SphCart maps "spherical" to true and "cartesian" to false. Booleans pass through.
func SphCart(raw any) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToUpper(strings.TrimSpace(v)) {
		case "SPHERICAL":
			return true, nil
		case "CARTESIAN":
			return false, nil
		}
	}
	return false, oops.Wrapf(ErrSphCart, "%v", raw)
}

// Upper accepts strings and returns them upper-cased.
func Upper(raw any) (string, error) {
	s, ok := raw.(string)
	if !ok {
		return "", oops.Wrapf(ErrNotAString, "%T", raw)
	}
	return strings.ToUpper(s), nil
}

// Boolean accepts booleans and the usual string spellings of them.
func Boolean(raw any) (bool, error) {
	switch raw.(type) {
	case bool, string:
		return cast.ToBoolE(raw)
	}
	return false, oops.Errorf("not a boolean: %T", raw)
}

// number converts numeric kinds and numeric strings to a finite float64.
func number(raw any) (float64, error) {
	var f float64
	var err error
	switch v := raw.(type) {
	case bool, nil:
		return 0, oops.Wrapf(ErrNotANumber, "%T", raw)
	case string:
		f, err = cast.ToFloat64E(strings.TrimSpace(v))
		if err != nil {
			return 0, oops.Wrapf(ErrNotANumber, "%q", v)
		}
	default:
		f, err = cast.ToFloat64E(raw)
		if err != nil {
			return 0, oops.Wrapf(ErrNotANumber, "%T", raw)
		}
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, oops.Wrapf(ErrNotANumber, "%v is not finite", raw)
	}
	return f, nil
}

// integral reports whether raw is an integer kind or a base-10 integer string.
func integral(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		n, err := cast.ToInt64E(raw)
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return n, err == nil
	}
	return 0, false
}
