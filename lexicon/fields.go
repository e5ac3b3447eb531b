package lexicon

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	nonAlnumRx  = regexp.MustCompile(`[^A-Za-z0-9]`)
	digitRunRx  = regexp.MustCompile(`\d+`)
	seatNumRx   = regexp.MustCompile(`(?i)(\d{1,2})\s*(?:명|인|석|인승|seats?|seater)`)
	bareNumRx   = regexp.MustCompile(`\b(\d{1,2})\b`)
	yearMonthRx = regexp.MustCompile(`^\d{6}$`)
)

// VIN strips a raw chassis number to uppercase alphanumerics. Anything
// shorter than 11 characters after stripping is not a usable VIN and
// collapses to the sentinel.
func VIN(raw string) string {
	v := strings.ToUpper(nonAlnumRx.ReplaceAllString(strings.TrimSpace(raw), ""))
	if len(v) < 11 {
		return VINSentinel
	}
	return v
}

// Seats extracts a seat count from a raw value of any shape. Only values in
// [1,9] are real passenger-car capacities; everything else is 0 (unknown).
func Seats(v any) int {
	var s string
	switch t := v.(type) {
	case nil:
		return 0
	case int:
		s = strconv.Itoa(t)
	case float64:
		s = strconv.FormatFloat(t, 'f', -1, 64)
	case string:
		s = t
	default:
		return 0
	}
	m := seatNumRx.FindStringSubmatch(s)
	if m == nil {
		m = bareNumRx.FindStringSubmatch(s)
	}
	if m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n >= 1 && n <= 9 {
			return n
		}
		return 0
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		if n := int(f); n >= 1 && n <= 9 {
			return n
		}
	}
	return 0
}

// Year resolves the model year: an explicit form year wins, otherwise the
// first four digits of a YYYYMM registration stamp.
func Year(formYear, yearMonth string) string {
	if formYear != "" {
		return formYear
	}
	if yearMonthRx.MatchString(yearMonth) {
		return yearMonth[:4]
	}
	return ""
}

// Digits concatenates every digit run in the text into one integer:
// "81,234 km" becomes 81234. Returns 0 when no digits are present.
func Digits(text string) int64 {
	runs := digitRunRx.FindAllString(text, -1)
	if runs == nil {
		return 0
	}
	joined := strings.Join(runs, "")
	// Guard against absurdly long concatenations overflowing int64.
	if len(joined) > 18 {
		joined = joined[:18]
	}
	n, err := strconv.ParseInt(joined, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
