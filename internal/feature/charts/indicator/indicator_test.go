package indicator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func assertSeries(t *testing.T, want, got []float64) {
	t.Helper()
	if !assert.Len(t, got, len(want)) {
		return
	}
	for i := range want {
		if math.IsNaN(want[i]) {
			assert.True(t, math.IsNaN(got[i]), "index %d: want NaN, got %v", i, got[i])
			continue
		}
		assert.InDelta(t, want[i], got[i], eps, "index %d", i)
	}
}

var nan = math.NaN()

func TestSMA(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		period int
		want   []float64
	}{
		{"period 3", []float64{1, 2, 3, 4, 5}, 3, []float64{nan, nan, 2, 3, 4}},
		{"period 1 is identity", []float64{5, 6}, 1, []float64{5, 6}},
		{"too short", []float64{1, 2}, 3, []float64{nan, nan}},
		{"invalid period", []float64{1, 2}, 0, []float64{nan, nan}},
		{"empty", nil, 3, []float64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertSeries(t, tt.want, SMA(tt.values, tt.period))
		})
	}
}

func TestEMA(t *testing.T) {
	// alpha = 2/(3+1) = 0.5, seed = mean(2,4,6) = 4
	got := EMA([]float64{2, 4, 6, 8, 10}, 3)
	assertSeries(t, []float64{nan, nan, 4, 6, 8}, got)
}

func TestEMA_ConstantSeries(t *testing.T) {
	values := make([]float64, 250)
	for i := range values {
		values[i] = 42
	}
	for _, p := range []int{12, 26, 200} {
		got := EMA(values, p)
		assert.True(t, math.IsNaN(got[p-2]))
		assert.InDelta(t, 42.0, got[p-1], eps)
		assert.InDelta(t, 42.0, got[len(got)-1], eps)
	}
}

func TestEMA_TooShort(t *testing.T) {
	assertSeries(t, []float64{nan, nan}, EMA([]float64{1, 2}, 12))
}

func TestBollinger(t *testing.T) {
	// window {1,2,3}: mean 2, sample sd 1
	b := Bollinger([]float64{1, 2, 3, 5}, 3, 2)

	assertSeries(t, []float64{nan, nan, 2, 10.0 / 3}, b.Middle)
	assertSeries(t, []float64{nan, nan, 4, 10.0/3 + 2*math.Sqrt(7.0/3)}, b.Upper)
	assertSeries(t, []float64{nan, nan, 0, 10.0/3 - 2*math.Sqrt(7.0/3)}, b.Lower)
}

func TestBollinger_FlatSeriesHasZeroWidth(t *testing.T) {
	values := []float64{7, 7, 7, 7, 7}
	b := Bollinger(values, 2, 2)
	for i := 1; i < len(values); i++ {
		assert.InDelta(t, 7.0, b.Upper[i], eps)
		assert.InDelta(t, 7.0, b.Lower[i], eps)
	}
}
