package analytics

import "math"

// AxisScale is a chart-ready Y axis: a rounded ceiling and five evenly
// spaced tick values from zero up to that ceiling.
type AxisScale struct {
	Max   float64    `json:"max"`
	Ticks [5]float64 `json:"ticks"`
}

// niceMultiples are the accepted leading digits for a tick step, applied
// at every power of ten.
var niceMultiples = [...]float64{1, 2, 2.5, 5, 10}

// Scale computes the axis for a series whose largest value is dataMax.
// A positive preferredMax is used as the ceiling whenever the data fits
// under it, so charts with a caller-chosen baseline don't rescale on
// every refresh. Non-positive dataMax falls back to a fixed 0..4 axis.
func Scale(dataMax, preferredMax float64) AxisScale {
	if dataMax <= 0 || math.IsNaN(dataMax) || math.IsInf(dataMax, 0) {
		return AxisScale{Max: 4, Ticks: [5]float64{0, 1, 2, 3, 4}}
	}

	var step float64
	if preferredMax > 0 && dataMax <= preferredMax {
		step = preferredMax / 4
	} else {
		step = niceStep(dataMax / 4)
	}

	scale := AxisScale{Max: 4 * step}
	for i := range scale.Ticks {
		scale.Ticks[i] = step * float64(i)
	}
	return scale
}

// niceStep returns the smallest value of the form m×10ⁿ, m in
// niceMultiples, that is >= raw.
func niceStep(raw float64) float64 {
	exp := math.Floor(math.Log10(raw))
	mag := math.Pow(10, exp)
	for _, m := range niceMultiples {
		if m*mag >= raw || nearlyEqual(m*mag, raw) {
			return m * mag
		}
	}
	// Unreachable: 10×mag is always >= raw for raw in [mag, 10×mag).
	return 10 * mag
}

// nearlyEqual absorbs float error from the Log10/Pow round trip so an
// exact boundary like raw=25 picks 25, not 50.
func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}
