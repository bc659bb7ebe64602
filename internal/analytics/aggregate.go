package analytics

import "sort"

// CategorySeries is one category's bucketed values for a single period.
// ID is the stable grouping key (department code, provider code, expense
// category); Name is the display name.
type CategorySeries struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Buckets []Bucket `json:"buckets"`
}

// CategoryMetric is the per-category output of Aggregate.
type CategoryMetric struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Total      float64  `json:"total"`
	Percentage float64  `json:"percentage"`
	Growth     float64  `json:"growth"`
	Series     []Bucket `json:"series"`
	BestBucket *Bucket  `json:"best_bucket"`
}

// Aggregate computes per-category totals, shares of the grand total, and
// growth versus the previous period. Results are sorted by total
// descending (ties broken by name so output is deterministic).
//
// Growth for a category absent from the previous period is reported as a
// flat +100% whenever it has any current spend. That matches how the
// dashboard has always labelled brand-new categories; callers relying on
// it should not "fix" it here.
func Aggregate(current, previous []CategorySeries) []CategoryMetric {
	prevTotals := make(map[string]float64, len(previous))
	for _, s := range previous {
		prevTotals[s.ID] += sumBuckets(s.Buckets)
	}

	var grandTotal float64
	metrics := make([]CategoryMetric, 0, len(current))
	for _, s := range current {
		total := sumBuckets(s.Buckets)
		grandTotal += total
		metrics = append(metrics, CategoryMetric{
			ID:         s.ID,
			Name:       s.Name,
			Total:      total,
			Growth:     growthPercent(total, prevTotals[s.ID]),
			Series:     s.Buckets,
			BestBucket: bestBucket(s.Buckets),
		})
	}

	for i := range metrics {
		if grandTotal > 0 {
			metrics[i].Percentage = metrics[i].Total / grandTotal * 100
		}
	}

	sort.SliceStable(metrics, func(i, j int) bool {
		if metrics[i].Total != metrics[j].Total {
			return metrics[i].Total > metrics[j].Total
		}
		return metrics[i].Name < metrics[j].Name
	})

	return metrics
}

func growthPercent(total, prevTotal float64) float64 {
	switch {
	case prevTotal > 0:
		return (total - prevTotal) / prevTotal * 100
	case total > 0:
		return 100
	default:
		return 0
	}
}

// bestBucket returns the bucket with the highest value; the first
// occurrence wins ties. Nil for an empty series.
func bestBucket(buckets []Bucket) *Bucket {
	if len(buckets) == 0 {
		return nil
	}
	best := 0
	for i := 1; i < len(buckets); i++ {
		if buckets[i].Value > buckets[best].Value {
			best = i
		}
	}
	b := buckets[best]
	return &b
}

func sumBuckets(buckets []Bucket) float64 {
	var total float64
	for _, b := range buckets {
		total += b.Value
	}
	return total
}
