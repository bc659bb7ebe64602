package analytics

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBucketizeDailyWindow(t *testing.T) {
	start := date(2025, time.January, 1)
	end := date(2025, time.January, 31)

	obs := []Observation{
		{Date: date(2025, time.January, 5), Value: 100},
		{Date: date(2025, time.January, 5), Value: 50},
	}

	buckets := Bucketize(obs, start, end, GranularityAuto)

	if len(buckets) != 31 {
		t.Fatalf("Expected 31 daily buckets for January, got %d", len(buckets))
	}
	if buckets[4].Value != 150 {
		t.Errorf("Expected Jan 5 bucket to sum to 150, got %v", buckets[4].Value)
	}
	for i, b := range buckets {
		if i == 4 {
			continue
		}
		if b.Value != 0 {
			t.Errorf("Bucket %d (%s) should be zero, got %v", i, b.Label, b.Value)
		}
	}
}

func TestBucketizeContiguousCoverage(t *testing.T) {
	start := date(2025, time.March, 10)
	end := date(2025, time.April, 2)

	buckets := Bucketize(nil, start, end, GranularityAuto)

	want := int(end.Sub(start).Hours()/24) + 1
	if len(buckets) != want {
		t.Fatalf("Expected %d daily buckets, got %d", want, len(buckets))
	}
	if !buckets[0].PeriodStart.Equal(start) {
		t.Errorf("First bucket should start at window start, got %v", buckets[0].PeriodStart)
	}
	if !buckets[len(buckets)-1].PeriodEnd.Equal(end) {
		t.Errorf("Last bucket should end at window end, got %v", buckets[len(buckets)-1].PeriodEnd)
	}
	for i := 1; i < len(buckets); i++ {
		wantStart := buckets[i-1].PeriodEnd.AddDate(0, 0, 1)
		if !buckets[i].PeriodStart.Equal(wantStart) {
			t.Errorf("Gap between bucket %d and %d: %v vs %v", i-1, i, buckets[i-1].PeriodEnd, buckets[i].PeriodStart)
		}
	}
}

func TestBucketizeDropsOutOfWindow(t *testing.T) {
	start := date(2025, time.January, 1)
	end := date(2025, time.January, 31)

	obs := []Observation{
		{Date: date(2024, time.December, 31), Value: 500},
		{Date: date(2025, time.February, 1), Value: 700},
	}

	buckets := Bucketize(obs, start, end, GranularityAuto)
	for i, b := range buckets {
		if b.Value != 0 {
			t.Errorf("Out-of-window observation leaked into bucket %d: %v", i, b.Value)
		}
	}
}

func TestBucketizeMonthlyForWideWindow(t *testing.T) {
	start := date(2025, time.January, 1)
	end := date(2025, time.June, 30)

	obs := []Observation{
		{Date: date(2025, time.January, 15), Value: 100},
		{Date: date(2025, time.March, 3), Value: 40},
		{Date: date(2025, time.March, 28), Value: 60},
	}

	buckets := Bucketize(obs, start, end, GranularityAuto)

	if len(buckets) != 6 {
		t.Fatalf("Expected 6 monthly buckets Jan-Jun, got %d", len(buckets))
	}
	if buckets[0].Value != 100 {
		t.Errorf("January should hold 100, got %v", buckets[0].Value)
	}
	if buckets[2].Value != 100 {
		t.Errorf("March should sum to 100, got %v", buckets[2].Value)
	}
	if buckets[0].Label != "Jan 2025" {
		t.Errorf("Monthly label should be 'Jan 2025', got %q", buckets[0].Label)
	}
}

func TestBucketizeMonthlyClampsToWindow(t *testing.T) {
	start := date(2025, time.January, 15)
	end := date(2025, time.March, 10)

	buckets := Bucketize(nil, start, end, GranularityMonth)

	if len(buckets) != 3 {
		t.Fatalf("Expected 3 monthly buckets, got %d", len(buckets))
	}
	if !buckets[0].PeriodStart.Equal(start) {
		t.Errorf("First bucket should clamp to window start, got %v", buckets[0].PeriodStart)
	}
	if !buckets[0].PeriodEnd.Equal(date(2025, time.January, 31)) {
		t.Errorf("First bucket should end Jan 31, got %v", buckets[0].PeriodEnd)
	}
	if !buckets[2].PeriodEnd.Equal(end) {
		t.Errorf("Last bucket should clamp to window end, got %v", buckets[2].PeriodEnd)
	}
}

func TestBucketizeWeekly(t *testing.T) {
	// Wed Jan 1 2025 through Tue Jan 14: partial week + full week + partial.
	start := date(2025, time.January, 1)
	end := date(2025, time.January, 14)

	obs := []Observation{
		{Date: date(2025, time.January, 3), Value: 10},  // Fri, first partial week
		{Date: date(2025, time.January, 6), Value: 20},  // Mon, second week
		{Date: date(2025, time.January, 13), Value: 30}, // Mon, third week
	}

	buckets := Bucketize(obs, start, end, GranularityWeek)

	if len(buckets) != 3 {
		t.Fatalf("Expected 3 weekly buckets, got %d", len(buckets))
	}
	if buckets[0].Value != 10 {
		t.Errorf("First week should hold 10, got %v", buckets[0].Value)
	}
	if buckets[1].Value != 20 {
		t.Errorf("Second week should hold 20, got %v", buckets[1].Value)
	}
	if buckets[2].Value != 30 {
		t.Errorf("Third week should hold 30, got %v", buckets[2].Value)
	}
}

func TestBucketizeInvertedWindow(t *testing.T) {
	buckets := Bucketize(nil, date(2025, time.May, 10), date(2025, time.May, 1), GranularityAuto)
	if buckets != nil {
		t.Errorf("Inverted window should return nil, got %d buckets", len(buckets))
	}
}

func TestResolveGranularity(t *testing.T) {
	start := date(2025, time.January, 1)

	if g := ResolveGranularity(start, date(2025, time.February, 14)); g != GranularityDay {
		t.Errorf("44-day window should bucket daily, got %s", g)
	}
	if g := ResolveGranularity(start, date(2025, time.April, 30)); g != GranularityMonth {
		t.Errorf("Wide window should bucket monthly, got %s", g)
	}
}
