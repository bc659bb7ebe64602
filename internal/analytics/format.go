package analytics

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateStyle selects how FormatDate renders a date.
type DateStyle string

const (
	DateStyleShort DateStyle = "short" // "Jan 5"
	DateStyleLong  DateStyle = "long"  // "January 5, 2025"
	DateStyleMonth DateStyle = "month" // "Jan 2025"
	DateStyleISO   DateStyle = "iso"   // "2025-01-05"
)

// Placeholder is returned for values that cannot be rendered.
const Placeholder = "—"

// CompactCurrency renders a monetary value with a k/M/B suffix, one
// decimal place, trailing ".0" trimmed: 950 -> "950", 1500 -> "1.5k",
// 2000000 -> "2M". Non-finite input renders as the placeholder.
func CompactCurrency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Placeholder
	}
	if v == 0 {
		return "0"
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	switch {
	case v >= 1e9:
		return sign + trimZero(v/1e9) + "B"
	case v >= 1e6:
		return sign + trimZero(v/1e6) + "M"
	case v >= 1e3:
		return sign + trimZero(v/1e3) + "k"
	default:
		return sign + trimZero(v)
	}
}

func trimZero(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

// FormatDate renders t in the requested style. The zero time renders as
// the placeholder.
func FormatDate(t time.Time, style DateStyle) string {
	if t.IsZero() {
		return Placeholder
	}
	switch style {
	case DateStyleLong:
		return fmt.Sprintf("%s %d, %d", t.Month().String(), t.Day(), t.Year())
	case DateStyleMonth:
		return t.Format("Jan 2006")
	case DateStyleISO:
		return t.Format("2006-01-02")
	default:
		return t.Format("Jan 2")
	}
}
