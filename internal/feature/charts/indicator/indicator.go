// Package indicator computes the moving-average overlays drawn on price charts.
// Each function returns a slice aligned with its input; positions inside the
// warm-up window are NaN.
package indicator

import "math"

func nans(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// SMA is the simple moving average over period values.
func SMA(values []float64, period int) []float64 {
	out := nans(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMA is the exponential moving average with smoothing 2/(period+1), seeded
// with the SMA of the first period values.
func EMA(values []float64, period int) []float64 {
	out := nans(len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	alpha := 2.0 / float64(period+1)

	seed := 0.0
	for _, v := range values[:period] {
		seed += v
	}
	prev := seed / float64(period)
	out[period-1] = prev
	for i := period; i < len(values); i++ {
		prev = alpha*values[i] + (1-alpha)*prev
		out[i] = prev
	}
	return out
}

// Bands holds Bollinger band lines.
type Bands struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// Bollinger returns the period SMA and the bands k sample standard deviations
// above and below it.
func Bollinger(values []float64, period int, k float64) Bands {
	mid := SMA(values, period)
	b := Bands{Upper: nans(len(values)), Middle: mid, Lower: nans(len(values))}
	if period < 2 || len(values) < period {
		return b
	}
	for i := period - 1; i < len(values); i++ {
		m := mid[i]
		ss := 0.0
		for _, v := range values[i-period+1 : i+1] {
			d := v - m
			ss += d * d
		}
		sd := math.Sqrt(ss / float64(period-1))
		b.Upper[i] = m + k*sd
		b.Lower[i] = m - k*sd
	}
	return b
}
