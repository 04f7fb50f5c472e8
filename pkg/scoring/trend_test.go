package scoring

import "testing"

func TestEstimateTrend(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		history []float64
		want    Trend
	}{
		{"no history", 80, nil, TrendUnknown},
		{"empty history", 80, []float64{}, TrendUnknown},
		{"within band up", 72, []float64{70}, TrendStable},
		{"within band down", 68, []float64{70}, TrendStable},
		{"boundary 2.9 is stable", 72.9, []float64{70}, TrendStable},
		{"boundary 3 is improving", 73, []float64{70}, TrendImproving},
		{"boundary -3 is declining", 67, []float64{70}, TrendDeclining},
		{"prior 70 new 74 improving", 74, []float64{70}, TrendImproving},
		{"declining past band", 60, []float64{70}, TrendDeclining},
		{"only newest prior used", 74, []float64{70, 95}, TrendImproving},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := EstimateTrend(tc.current, tc.history); got != tc.want {
				t.Errorf("EstimateTrend(%v, %v) = %s, want %s", tc.current, tc.history, got, tc.want)
			}
		})
	}
}
