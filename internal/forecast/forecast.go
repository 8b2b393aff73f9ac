// Package forecast fits a linear trend to historical cumulative expense
// and projects it forward. The regression is unweighted ordinary least
// squares over (elapsed days, cumulative spend) pairs; it is sensitive
// to outliers, which is accepted.
package forecast

import (
	"errors"
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"pennywise/internal/model"
)

// DefaultHorizonDays is the default projection window.
const DefaultHorizonDays = 30

// ErrInsufficientData is returned when fewer than two qualifying expense
// records exist, or all of them fall on the same day.
var ErrInsufficientData = errors.New("not enough expense data to fit a trend")

const day = 24 * time.Hour

// Model is a fitted cumulative-expense trend for one user.
type Model struct {
	// Slope and Intercept define the fitted line
	// cumulative ≈ Slope·day + Intercept.
	Slope     float64
	Intercept float64
	// Days and Cumulative are the historical observations the line was
	// fitted over, in chronological order.
	Days       []float64
	Cumulative []float64
	// First is the timestamp of the first qualifying record; all day
	// offsets are measured from it.
	First time.Time
}

// LastDay returns the day offset of the most recent observation.
func (m *Model) LastDay() float64 {
	return m.Days[len(m.Days)-1]
}

// At evaluates the fitted line at the given day offset.
func (m *Model) At(dayOffset float64) float64 {
	return m.Slope*dayOffset + m.Intercept
}

// Fit builds a trend model from a user's transaction records. Only
// Expense and Recurring Expense rows qualify; they are sorted by
// timestamp and reduced to (elapsed whole days, running total) pairs.
func Fit(records []model.TransactionRecord) (*Model, error) {
	var expenses []model.TransactionRecord
	for _, rec := range records {
		if rec.Type.IsExpense() {
			expenses = append(expenses, rec)
		}
	}
	if len(expenses) < 2 {
		return nil, ErrInsufficientData
	}

	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Timestamp.Before(expenses[j].Timestamp)
	})

	first := expenses[0].Timestamp
	days := make([]float64, len(expenses))
	cumulative := make([]float64, len(expenses))
	running := 0.0
	distinct := make(map[float64]struct{}, len(expenses))
	for i, rec := range expenses {
		d := float64(int(rec.Timestamp.Sub(first) / day))
		amt, _ := rec.Amount.Float64()
		running += amt
		days[i] = d
		cumulative[i] = running
		distinct[d] = struct{}{}
	}
	if len(distinct) < 2 {
		return nil, ErrInsufficientData
	}

	intercept, slope := stat.LinearRegression(days, cumulative, nil, false)
	return &Model{
		Slope:      slope,
		Intercept:  intercept,
		Days:       days,
		Cumulative: cumulative,
		First:      first,
	}, nil
}

// Projection is a forward cumulative-expense curve.
type Projection struct {
	Days       []float64
	Cumulative []float64
}

// Project evaluates the fitted line over the horizonDays days following
// the last observation. Cumulative expense cannot be negative, so
// projected values are clamped at zero.
func (m *Model) Project(horizonDays int) Projection {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	last := m.LastDay()
	p := Projection{
		Days:       make([]float64, horizonDays),
		Cumulative: make([]float64, horizonDays),
	}
	for i := 0; i < horizonDays; i++ {
		d := last + float64(i+1)
		p.Days[i] = d
		p.Cumulative[i] = math.Max(0, m.At(d))
	}
	return p
}

// NextMonthTotal predicts total expense for the calendar month after
// now. The line is evaluated at the day offsets of that month's first
// and last day, both clamped to be no earlier than the last observed
// day so the model never extrapolates backward; the prediction is the
// difference, floored at zero.
func (m *Model) NextMonthTotal(now time.Time) (float64, time.Month) {
	firstOfNext := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, now.Location())
	lastOfNext := firstOfNext.AddDate(0, 1, -1)

	startDay := float64(int(firstOfNext.Sub(m.First) / day))
	endDay := float64(int(lastOfNext.Sub(m.First) / day))

	last := m.LastDay()
	startDay = math.Max(startDay, last)
	endDay = math.Max(endDay, last)

	predicted := m.At(endDay) - m.At(startDay)
	return math.Max(0, predicted), firstOfNext.Month()
}
