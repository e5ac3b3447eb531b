// Package money parses localized Korean price text into KRW integers and
// selects the most credible reading among redundant candidates. All
// functions are pure.
package money

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// One 억 is 100,000,000 won; one 만 is 10,000 won.
const (
	eokWon = 100_000_000
	manWon = 10_000
)

// minPlausibleWon is the floor below which a pre-parsed numeric value is
// treated as unreliable (a count, an index, a truncated figure) and dropped.
const minPlausibleWon = 10_000

var (
	// Text with a distance marker near the number is a mileage reading,
	// never a price.
	distanceRx = regexp.MustCompile(`(?i)\bkm\b|㎞|주행|mileage|연식`)

	millionWonRx = regexp.MustCompile(`([\d.]+)\s*(?:m|million)\s*won\b`)
	symbolRx     = regexp.MustCompile(`[₩￦]\s*([\d.]+)`)
	wonRx        = regexp.MustCompile(`(\d[\d.]*)\s*(?:won\b|원)`)
	eokManRx     = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*억(?:\s*(\d+(?:\.\d+)?)\s*만)?`)
	manRx        = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*만\s*원?`)

	// Any of these tokens marks a string as price text rather than a bare
	// number.
	currencyTokenRx = regexp.MustCompile(`(?i)[₩￦]|won|원|억|만원|만`)

	numericJunkRx = regexp.MustCompile(`[^0-9.\-+eE]`)
	floatShapeRx  = regexp.MustCompile(`^-?\d+(\.\d+)?([eE][+-]?\d+)?$`)
)

// ParseKRW converts free-form localized price text into KRW. Recognized, in
// priority order: "<n> million won", ₩-symbol amounts, "<n> won/원",
// the 억+만 compound, and bare 만 amounts. Returns 0 for empty input,
// unrecognized formats, and anything carrying a distance marker.
func ParseKRW(text string) int64 {
	if text == "" {
		return 0
	}
	if distanceRx.MatchString(text) {
		return 0
	}
	t := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(text, ",", "")))

	if m := millionWonRx.FindStringSubmatch(t); m != nil {
		if f, err := strconv.ParseFloat(m[1], 64); err == nil {
			return int64(math.Round(f * 1_000_000))
		}
		return 0
	}

	if m := symbolRx.FindStringSubmatch(t); m != nil {
		// Dots after the symbol are thousands separators (₩45.000.000).
		if f, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ".", ""), 64); err == nil {
			return int64(f)
		}
		return 0
	}

	if m := wonRx.FindStringSubmatch(t); m != nil {
		if f, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ".", ""), 64); err == nil {
			return int64(f)
		}
		return 0
	}

	if m := eokManRx.FindStringSubmatch(t); m != nil {
		eok, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0
		}
		man := 0.0
		if m[2] != "" {
			if man, err = strconv.ParseFloat(m[2], 64); err != nil {
				return 0
			}
		}
		return int64(math.Round(eok*eokWon + man*manWon))
	}

	if m := manRx.FindStringSubmatch(t); m != nil {
		if f, err := strconv.ParseFloat(m[1], 64); err == nil {
			return int64(math.Round(f * manWon))
		}
	}

	return 0
}

// NormalizeAmount applies the plausibility floor to a pre-parsed numeric
// price. Values below the floor are discarded; everything at or above it is
// accepted verbatim.
func NormalizeAmount(v float64) int64 {
	if v >= minPlausibleWon {
		return int64(math.Round(v))
	}
	return 0
}

// NormalizeAny accepts a raw price value of unknown shape, as found in a
// data tree: a number, a numeric string, or price text with currency tokens.
func NormalizeAny(v any) int64 {
	switch t := v.(type) {
	case nil:
		return 0
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		if currencyTokenRx.MatchString(s) {
			return ParseKRW(s)
		}
		f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		if err != nil {
			return 0
		}
		return NormalizeAmount(f)
	case float64:
		return NormalizeAmount(t)
	case int:
		return NormalizeAmount(float64(t))
	case int64:
		return NormalizeAmount(float64(t))
	default:
		return 0
	}
}

// CoerceFloat extracts a float from a loosely formatted numeric value.
// Multiple dots are collapsed into a single decimal point the way the
// source emits them.
func CoerceFloat(v any) (float64, bool) {
	var s string
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		s = t
	default:
		return 0, false
	}
	s = numericJunkRx.ReplaceAllString(strings.TrimSpace(s), "")
	if parts := strings.Split(s, "."); len(parts) > 2 {
		joined := parts[0] + "." + strings.Join(parts[1:], "")
		if floatShapeRx.MatchString(joined) {
			s = joined
		} else {
			s = strings.Join(parts, "")
		}
	}
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ToEUR converts a KRW amount with the caller-supplied rate.
func ToEUR(krw int64, rate float64) int64 {
	if krw <= 0 || rate <= 0 {
		return 0
	}
	return int64(math.Round(float64(krw) * rate))
}

// RoundDown10 floors an amount to the nearest unit of 10. Negative input
// clamps to zero.
func RoundDown10(n int64) int64 {
	if n < 0 {
		return 0
	}
	return (n / 10) * 10
}
