// Package model fits a multiplicative-seasonality time-series model to daily
// closes:
//
//	y = trend(t) * (1 + yearly(t) + weekly(t)) + e
//
// Prices are scaled by their maximum. The trend is piecewise linear in that
// price scale with changepoints spread over the first part of the history, and
// the seasonalities are Fourier series. Every coefficient has a Gaussian prior
// (ridge), so each step is a linear least-squares problem solved with a
// Cholesky factorisation. Trend and seasonality are fitted alternately because
// the product is not linear in both at once.
package model

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"crypto_dashboard/internal/feature/candles/domain"
	"crypto_dashboard/internal/feature/forecast/domain/entity"
)

const (
	day = 24 * time.Hour

	yearLength = 365.25
	weekLength = 7.0

	// z score of the central 80% interval
	z80 = 1.2815515655446004

	// alternating trend / seasonality passes
	fitPasses = 4

	// (sigma/tau)^2 with a nominal noise sigma of 0.05 in scaled units
	lambdaBase        = 1e-8
	lambdaChangepoint = 1.0    // tau 0.05
	lambdaSeasonality = 2.5e-5 // tau 10
)

// ErrSingular is returned when the normal equations cannot be factorised.
var ErrSingular = errors.New("forecast model: normal equations not positive definite")

// Options configure Fit.
type Options struct {
	Changepoints     int     // maximum number of trend changepoints
	ChangepointRange float64 // fraction of the history that may hold changepoints
	YearlyOrder      int
	YearlyMinDays    int // yearly seasonality needs at least this much history
	WeeklyOrder      int
	WeeklyMinDays    int
}

// DefaultOptions mirror the usual defaults of additive forecasting tools.
func DefaultOptions() Options {
	return Options{
		Changepoints:     25,
		ChangepointRange: 0.8,
		YearlyOrder:      10,
		YearlyMinDays:    730,
		WeeklyOrder:      3,
		WeeklyMinDays:    14,
	}
}

// Model is a fitted forecaster.
type Model struct {
	start    time.Time // first ds
	spanDays float64   // last ds - first ds, in days
	history  []time.Time

	changepoints []float64 // in scaled time
	yearly       int       // Fourier orders actually used
	weekly       int

	yScale     float64   // max y
	trendBeta  []float64 // intercept, slope, changepoint deltas
	seasonBeta []float64 // yearly then weekly sin/cos pairs
	residualSD float64   // in price units
	slopeVar   float64   // variance added to the daily price slope per day
}

// Fit trains a model on (ds, y). Rows must be daily, ascending and positive;
// at least two distinct days are required.
func Fit(ds []time.Time, y []float64, opts Options) (*Model, error) {
	if len(ds) != len(y) {
		return nil, fmt.Errorf("forecast model: %d dates for %d values", len(ds), len(y))
	}
	n := len(ds)
	if n < 2 {
		return nil, fmt.Errorf("forecast model: %d rows: %w", n, domain.ErrInsufficientData)
	}
	span := ds[n-1].Sub(ds[0]).Hours() / 24
	if span <= 0 {
		return nil, fmt.Errorf("forecast model: zero time span: %w", domain.ErrInsufficientData)
	}

	m := &Model{
		start:    ds[0],
		spanDays: span,
		history:  append([]time.Time(nil), ds...),
	}
	if span >= float64(opts.YearlyMinDays) {
		m.yearly = opts.YearlyOrder
	}
	if span >= float64(opts.WeeklyMinDays) {
		m.weekly = opts.WeeklyOrder
	}

	for i, v := range y {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("forecast model: non-positive value %v at %s", v, ds[i].Format("2006-01-02"))
		}
		m.yScale = math.Max(m.yScale, v)
	}
	s := make([]float64, n)
	for i, v := range y {
		s[i] = v / m.yScale
	}

	// changepoints at evenly spaced rows of the first part of the history
	histSize := int(math.Floor(float64(n) * opts.ChangepointRange))
	ncp := opts.Changepoints
	if ncp > histSize-1 {
		ncp = histSize - 1
	}
	for j := 1; j <= ncp; j++ {
		idx := int(math.Round(float64(j) * float64(histSize-1) / float64(ncp)))
		m.changepoints = append(m.changepoints, m.scaledTime(ds[idx]))
	}

	nt, ns := m.numTrend(), m.numSeason()
	trendX := mat.NewDense(n, nt, nil)
	var seasonX *mat.Dense
	if ns > 0 {
		seasonX = mat.NewDense(n, ns, nil)
	}
	for i, t := range ds {
		m.trendFeatures(t, trendX.RawRowView(i))
		if ns > 0 {
			m.seasonFeatures(t, seasonX.RawRowView(i))
		}
	}
	trendPen := m.trendPenalties()
	seasonPen := constant(ns, lambdaSeasonality)

	trend := make([]float64, n)
	season := make([]float64, n)
	target := make([]float64, n)
	m.seasonBeta = make([]float64, ns)

	for pass := 0; pass < fitPasses; pass++ {
		// s ≈ trend * (1 + season) with season fixed: rows scaled by (1 + season)
		w := mat.NewDense(n, nt, nil)
		for i := 0; i < n; i++ {
			row := w.RawRowView(i)
			for j, x := range trendX.RawRowView(i) {
				row[j] = x * (1 + season[i])
			}
		}
		beta, err := ridge(w, s, trendPen)
		if err != nil {
			return nil, err
		}
		m.trendBeta = beta
		for i := 0; i < n; i++ {
			trend[i] = dot(trendX.RawRowView(i), m.trendBeta)
		}
		if ns == 0 {
			break
		}

		// s - trend ≈ trend * season with trend fixed: rows scaled by trend
		w = mat.NewDense(n, ns, nil)
		for i := 0; i < n; i++ {
			row := w.RawRowView(i)
			for j, x := range seasonX.RawRowView(i) {
				row[j] = x * trend[i]
			}
			target[i] = s[i] - trend[i]
		}
		beta, err = ridge(w, target, seasonPen)
		if err != nil {
			return nil, err
		}
		m.seasonBeta = beta
		for i := 0; i < n; i++ {
			season[i] = dot(seasonX.RawRowView(i), m.seasonBeta)
		}
	}

	ss := 0.0
	for i := range s {
		r := s[i] - trend[i]*(1+season[i])
		ss += r * r
	}
	m.residualSD = math.Sqrt(ss/float64(n)) * m.yScale

	// future slope changes arrive at the historical changepoint rate, each
	// Laplace distributed with the mean absolute historical delta as scale
	if ncp > 0 {
		meanAbs := 0.0
		for _, d := range m.trendBeta[2:] {
			meanAbs += math.Abs(d)
		}
		b := meanAbs / float64(ncp) * m.yScale / m.spanDays // price per day
		rate := float64(ncp) / m.spanDays
		m.slopeVar = rate * 2 * b * b
	}

	return m, nil
}

// Predict returns the fitted history followed by periods future days.
func (m *Model) Predict(periods int) []entity.Point {
	if periods < 0 {
		periods = 0
	}
	last := m.history[len(m.history)-1]
	out := make([]entity.Point, 0, len(m.history)+periods)
	for _, t := range m.history {
		out = append(out, m.point(t, 0))
	}
	for h := 1; h <= periods; h++ {
		out = append(out, m.point(last.Add(time.Duration(h)*day), float64(h)))
	}
	return out
}

// ResidualSD is the in-sample spread of the residuals in price units.
func (m *Model) ResidualSD() float64 { return m.residualSD }

func (m *Model) changepointDates() []time.Time {
	out := make([]time.Time, len(m.changepoints))
	for i, c := range m.changepoints {
		out[i] = m.start.Add(time.Duration(c * m.spanDays * float64(day)))
	}
	return out
}

func (m *Model) point(t time.Time, h float64) entity.Point {
	trendRow := make([]float64, m.numTrend())
	m.trendFeatures(t, trendRow)
	trend := dot(trendRow, m.trendBeta) * m.yScale

	yearly, weekly := 0.0, 0.0
	if ns := m.numSeason(); ns > 0 {
		row := make([]float64, ns)
		m.seasonFeatures(t, row)
		for j, x := range row {
			if j < 2*m.yearly {
				yearly += x * m.seasonBeta[j]
			} else {
				weekly += x * m.seasonBeta[j]
			}
		}
	}
	yhat := trend * (1 + yearly + weekly)

	// observation noise plus a random walk on the slope for future days
	variance := m.residualSD * m.residualSD
	if h > 0 {
		variance += m.slopeVar * h * h * h / 3
	}
	width := z80 * math.Sqrt(variance)

	return entity.Point{
		Ds:        t,
		Yhat:      yhat,
		YhatLower: yhat - width,
		YhatUpper: yhat + width,
		Trend:     trend,
		Yearly:    yearly,
		Weekly:    weekly,
	}
}

func (m *Model) scaledTime(t time.Time) float64 {
	return t.Sub(m.start).Hours() / 24 / m.spanDays
}

func (m *Model) numTrend() int  { return 2 + len(m.changepoints) }
func (m *Model) numSeason() int { return 2*m.yearly + 2*m.weekly }

// trendFeatures fills row with [1, t, (t-c_j)+...].
func (m *Model) trendFeatures(t time.Time, row []float64) {
	st := m.scaledTime(t)
	row[0] = 1
	row[1] = st
	for j, c := range m.changepoints {
		row[2+j] = math.Max(0, st-c)
	}
}

// seasonFeatures fills row with [yearly sin/cos..., weekly sin/cos...].
func (m *Model) seasonFeatures(t time.Time, row []float64) {
	days := float64(t.Unix()) / 86400
	k := fourier(row, 0, days, yearLength, m.yearly)
	fourier(row, k, days, weekLength, m.weekly)
}

func fourier(row []float64, k int, days, period float64, order int) int {
	for i := 1; i <= order; i++ {
		a := 2 * math.Pi * float64(i) * days / period
		row[k] = math.Sin(a)
		row[k+1] = math.Cos(a)
		k += 2
	}
	return k
}

func (m *Model) trendPenalties() []float64 {
	out := constant(m.numTrend(), lambdaChangepoint)
	out[0], out[1] = lambdaBase, lambdaBase
	return out
}

// ridge solves (X'X + diag(pen)) beta = X'y.
func ridge(X *mat.Dense, y []float64, pen []float64) ([]float64, error) {
	n, p := X.Dims()
	var xtx mat.SymDense
	xtx.SymOuterK(1, X.T())
	for j, l := range pen {
		xtx.SetSym(j, j, xtx.At(j, j)+l)
	}
	var xty mat.VecDense
	xty.MulVec(X.T(), mat.NewVecDense(n, y))

	var chol mat.Cholesky
	if ok := chol.Factorize(&xtx); !ok {
		return nil, ErrSingular
	}
	var beta mat.VecDense
	if err := chol.SolveVecTo(&beta, &xty); err != nil {
		return nil, fmt.Errorf("forecast model: solve: %w", err)
	}
	out := make([]float64, p)
	for j := range out {
		out[j] = beta.AtVec(j)
	}
	return out, nil
}

func dot(a, b []float64) float64 {
	v := 0.0
	for i := range a {
		v += a[i] * b[i]
	}
	return v
}

func constant(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
