// Package analytics contains the pure computation behind the dashboard:
// calendar bucketing of raw observations, axis scaling for charts,
// category aggregation, and display formatting. Everything here is a
// synchronous transform with no database or network access.
package analytics

import (
	"time"
)

// Granularity selects the calendar unit used for bucketing.
type Granularity string

const (
	GranularityAuto  Granularity = "auto"
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// DailyWindowMaxDays is the widest window that still buckets per day.
// Wider windows fall back to monthly buckets unless the caller asks
// for weeks explicitly.
const DailyWindowMaxDays = 45

// Observation is a single dated value, typically one transaction or one
// daily tally row pulled from the database.
type Observation struct {
	Date     time.Time
	Value    float64
	Category string
}

// Bucket is one calendar-aligned slot in a series. A series always covers
// its window contiguously; slots nothing mapped to hold a zero value.
type Bucket struct {
	Label       string    `json:"label"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	Value       float64   `json:"value"`
}

// Bucketize assigns observations to calendar buckets covering
// [windowStart, windowEnd] inclusive. Observations outside the window are
// dropped silently and values landing in the same bucket are summed.
// The returned slice always has one bucket per calendar unit in the
// window, zero-filled where no observation mapped.
func Bucketize(observations []Observation, windowStart, windowEnd time.Time, granularity Granularity) []Bucket {
	start := truncateDay(windowStart)
	end := truncateDay(windowEnd)
	if end.Before(start) {
		return nil
	}

	g := resolveGranularity(granularity, start, end)

	var buckets []Bucket
	switch g {
	case GranularityDay:
		buckets = dayBuckets(start, end)
	case GranularityWeek:
		buckets = weekBuckets(start, end)
	default:
		buckets = monthBuckets(start, end)
	}

	for _, obs := range observations {
		d := truncateDay(obs.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		idx := bucketIndex(g, start, d)
		if idx < 0 || idx >= len(buckets) {
			continue
		}
		buckets[idx].Value += obs.Value
	}

	return buckets
}

// ResolveGranularity reports the calendar unit Bucketize would use for
// the given window when the caller passes GranularityAuto.
func ResolveGranularity(windowStart, windowEnd time.Time) Granularity {
	return resolveGranularity(GranularityAuto, truncateDay(windowStart), truncateDay(windowEnd))
}

func resolveGranularity(g Granularity, start, end time.Time) Granularity {
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return g
	}
	if daysBetween(start, end) < DailyWindowMaxDays {
		return GranularityDay
	}
	return GranularityMonth
}

func dayBuckets(start, end time.Time) []Bucket {
	n := daysBetween(start, end) + 1
	buckets := make([]Bucket, 0, n)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		buckets = append(buckets, Bucket{
			Label:       FormatDate(d, DateStyleShort),
			PeriodStart: d,
			PeriodEnd:   d,
			Value:       0,
		})
	}
	return buckets
}

func weekBuckets(start, end time.Time) []Bucket {
	var buckets []Bucket
	for ws := start; !ws.After(end); ws = nextWeekStart(ws) {
		we := nextWeekStart(ws).AddDate(0, 0, -1)
		if we.After(end) {
			we = end
		}
		buckets = append(buckets, Bucket{
			Label:       FormatDate(ws, DateStyleShort),
			PeriodStart: ws,
			PeriodEnd:   we,
			Value:       0,
		})
	}
	return buckets
}

func monthBuckets(start, end time.Time) []Bucket {
	var buckets []Bucket
	for ms := start; !ms.After(end); ms = nextMonthStart(ms) {
		me := nextMonthStart(ms).AddDate(0, 0, -1)
		if me.After(end) {
			me = end
		}
		buckets = append(buckets, Bucket{
			Label:       FormatDate(ms, DateStyleMonth),
			PeriodStart: ms,
			PeriodEnd:   me,
			Value:       0,
		})
	}
	return buckets
}

func bucketIndex(g Granularity, start, d time.Time) int {
	switch g {
	case GranularityDay:
		return daysBetween(start, d)
	case GranularityWeek:
		// First bucket may be a partial week ending before the first
		// Monday after the window start.
		firstFull := nextWeekStart(start)
		if d.Before(firstFull) {
			return 0
		}
		return 1 + daysBetween(firstFull, d)/7
	default:
		return (d.Year()-start.Year())*12 + int(d.Month()) - int(start.Month())
	}
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

// nextWeekStart returns the Monday strictly after t's week start. For a
// t that is itself a Monday this is t+7d.
func nextWeekStart(t time.Time) time.Time {
	offset := (int(time.Monday) - int(t.Weekday()) + 7) % 7
	if offset == 0 {
		offset = 7
	}
	return t.AddDate(0, 0, offset)
}

func nextMonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}
