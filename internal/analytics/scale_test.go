package analytics

import "testing"

func TestScaleZeroAndNegative(t *testing.T) {
	for _, v := range []float64{0, -5, -0.01} {
		s := Scale(v, 0)
		if s.Max != 4 {
			t.Errorf("Scale(%v) max should be 4, got %v", v, s.Max)
		}
		want := [5]float64{0, 1, 2, 3, 4}
		if s.Ticks != want {
			t.Errorf("Scale(%v) ticks should be %v, got %v", v, want, s.Ticks)
		}
	}
}

func TestScalePreferredMax(t *testing.T) {
	s := Scale(750, 1000)
	if s.Max != 1000 {
		t.Errorf("Preferred max should win when data fits, got %v", s.Max)
	}
	if s.Ticks[2] != 500 {
		t.Errorf("Middle tick should be 500, got %v", s.Ticks[2])
	}
}

func TestScalePreferredMaxExceeded(t *testing.T) {
	s := Scale(1200, 1000)
	if s.Max < 1200 {
		t.Errorf("Ceiling %v should cover data max 1200", s.Max)
	}
	if s.Max == 1000 {
		t.Error("Preferred max should be ignored when data exceeds it")
	}
}

func TestScaleNiceCeilings(t *testing.T) {
	cases := []struct {
		dataMax float64
		wantMax float64
	}{
		{1, 1},
		{4, 4},
		{5, 8},
		{9, 10},
		{10, 10},
		{35, 40},
		{90, 100},
		{100, 100},
		{380, 400},
		{850, 1000},
		{3200, 4000},
		{987654, 1000000},
	}

	for _, tc := range cases {
		s := Scale(tc.dataMax, 0)
		if s.Max != tc.wantMax {
			t.Errorf("Scale(%v) max = %v, want %v", tc.dataMax, s.Max, tc.wantMax)
		}
	}
}

func TestScaleTickSpacing(t *testing.T) {
	for _, dataMax := range []float64{0.3, 1, 7, 42, 199, 1234, 55555, 9.87e8} {
		s := Scale(dataMax, 0)

		if s.Ticks[0] != 0 {
			t.Errorf("Scale(%v): first tick should be 0, got %v", dataMax, s.Ticks[0])
		}
		if s.Ticks[4] != s.Max {
			t.Errorf("Scale(%v): last tick %v should equal max %v", dataMax, s.Ticks[4], s.Max)
		}
		if s.Max < dataMax {
			t.Errorf("Scale(%v): max %v does not cover data", dataMax, s.Max)
		}
		step := s.Ticks[1] - s.Ticks[0]
		for i := 1; i < 5; i++ {
			diff := s.Ticks[i] - s.Ticks[i-1]
			if diff < step*0.999999 || diff > step*1.000001 {
				t.Errorf("Scale(%v): uneven tick spacing %v vs %v", dataMax, diff, step)
			}
		}
	}
}
