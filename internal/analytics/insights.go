package analytics

import (
	"fmt"
	"math"
)

// Insight thresholds. Product-chosen constants, not derived statistics;
// kept in one place so they can be tuned without touching the logic.
const (
	// ConcentrationThreshold is the combined share (percent) of the top
	// three categories above which spending is called concentrated.
	ConcentrationThreshold = 50.0
	// SurgeThreshold is the period-over-period growth (percent) above
	// which a category is flagged as surging.
	SurgeThreshold = 50.0
	// DeclineThreshold mirrors SurgeThreshold on the way down.
	DeclineThreshold = -50.0
	// DominanceThreshold is the share (percent) above which the leading
	// category is called dominant.
	DominanceThreshold = 20.0
	// StableVariationThreshold is the coefficient of variation (percent)
	// below which the combined series is called stable.
	StableVariationThreshold = 15.0
	// MaxInsights caps the number of generated insight strings.
	MaxInsights = 5
)

// Insights derives short human-readable observations from aggregated
// category metrics. At most MaxInsights strings are returned, in a fixed
// priority order: concentration, surge, dominance, decline, stability.
func Insights(metrics []CategoryMetric) []string {
	var insights []string

	if s, ok := concentrationInsight(metrics); ok {
		insights = append(insights, s)
	}
	for _, m := range metrics {
		if m.Growth > SurgeThreshold && m.Total > 0 {
			insights = append(insights, fmt.Sprintf("%s surged %.0f%% compared to the previous period", m.Name, m.Growth))
			break
		}
	}
	if len(metrics) > 0 && metrics[0].Percentage >= DominanceThreshold {
		insights = append(insights, fmt.Sprintf("%s leads with %.0f%% of the total", metrics[0].Name, metrics[0].Percentage))
	}
	for _, m := range metrics {
		if m.Growth < DeclineThreshold {
			insights = append(insights, fmt.Sprintf("%s dropped %.0f%% compared to the previous period", m.Name, -m.Growth))
			break
		}
	}
	if s, ok := stabilityInsight(metrics); ok {
		insights = append(insights, s)
	}

	if len(insights) > MaxInsights {
		insights = insights[:MaxInsights]
	}
	return insights
}

func concentrationInsight(metrics []CategoryMetric) (string, bool) {
	if len(metrics) < 3 {
		return "", false
	}
	topShare := metrics[0].Percentage + metrics[1].Percentage + metrics[2].Percentage
	if topShare < ConcentrationThreshold {
		return "", false
	}
	return fmt.Sprintf("Top 3 categories account for %.0f%% of the total", topShare), true
}

// stabilityInsight looks at the combined per-bucket totals across all
// categories and reports stability when their coefficient of variation
// stays under the threshold.
func stabilityInsight(metrics []CategoryMetric) (string, bool) {
	combined := combinedSeries(metrics)
	cv, ok := coefficientOfVariation(combined)
	if !ok || cv >= StableVariationThreshold {
		return "", false
	}
	return fmt.Sprintf("Totals are stable across the period (%.0f%% variation)", cv), true
}

func combinedSeries(metrics []CategoryMetric) []float64 {
	var n int
	for _, m := range metrics {
		if len(m.Series) > n {
			n = len(m.Series)
		}
	}
	if n == 0 {
		return nil
	}
	combined := make([]float64, n)
	for _, m := range metrics {
		for i, b := range m.Series {
			combined[i] += b.Value
		}
	}
	return combined
}

// coefficientOfVariation returns stddev/mean as a percentage. The second
// return is false when the series is too short or its mean is zero.
func coefficientOfVariation(values []float64) (float64, bool) {
	if len(values) < 2 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0, false
	}
	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	stddev := math.Sqrt(sumSq / float64(len(values)))
	return stddev / mean * 100, true
}
