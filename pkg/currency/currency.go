// Package currency converts between whole-rupee amounts and the shorthand
// strings used on auction sheets ("₹15Cr", "₹80L"). All stored amounts are
// int64 rupees; formatting happens only at the presentation edge.
package currency

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	Lakh  int64 = 100_000
	Crore int64 = 10_000_000
)

// ParseINR parses an amount like "₹15Cr", "80L", "2.5Cr" or a plain number
// into whole rupees. "Cr" multiplies by 1,00,00,000 and "L" by 1,00,000;
// anything else must parse as a plain number.
func ParseINR(s string) (int64, error) {
	raw := strings.TrimSpace(s)
	raw = strings.TrimPrefix(raw, "₹")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("empty amount")
	}

	multiplier := int64(1)
	upper := strings.ToUpper(raw)
	switch {
	case strings.HasSuffix(upper, "CR"):
		multiplier = Crore
		raw = raw[:len(raw)-2]
	case strings.HasSuffix(upper, "L"):
		multiplier = Lakh
		raw = raw[:len(raw)-1]
	}

	raw = strings.TrimSpace(raw)
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	return int64(math.Round(value * float64(multiplier))), nil
}

// FormatINR renders whole rupees in the crore/lakh shorthand the dashboard
// shows: amounts of a crore or more as "₹XCr", a lakh or more as "₹XL",
// smaller amounts as plain rupees. Fractions are rounded to two decimals.
func FormatINR(v int64) string {
	neg := v < 0
	abs := v
	if neg {
		abs = -v
	}

	var out string
	switch {
	case abs >= Crore:
		out = trimmed(float64(abs)/float64(Crore)) + "Cr"
	case abs >= Lakh:
		out = trimmed(float64(abs)/float64(Lakh)) + "L"
	default:
		out = strconv.FormatInt(abs, 10)
	}

	if neg {
		return "-₹" + out
	}
	return "₹" + out
}

func trimmed(f float64) string {
	rounded := math.Round(f*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}
