package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jask/moneylens/internal/ledger"
)

// trendDamping softens the single-step prediction so one volatile month does
// not swing the estimate.
var trendDamping = decimal.NewFromFloat(0.3)

// ForecastPoint is one month in a forecast series. Historical months carry
// Forecast=false, extrapolated months Forecast=true.
type ForecastPoint struct {
	Month    time.Time
	Amount   decimal.Decimal
	Forecast bool
}

// monthlyExpenseTotal sums expenses inside [start, end).
func monthlyExpenseTotal(txns []ledger.Transaction, start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if t.Type != ledger.TypeExpense {
			continue
		}
		if t.Date.Before(start) || !t.Date.Before(end) {
			continue
		}
		total = total.Add(t.Amount)
	}
	return total
}

// PredictNextPeriod estimates next month's spending from the three full
// calendar months before now: the mean of their totals plus a damped trend
// (most recent minus oldest, scaled by 0.3), floored at zero.
func PredictNextPeriod(txns []ledger.Transaction, now time.Time, loc *time.Location) decimal.Decimal {
	if loc == nil {
		loc = time.Local
	}
	totals := make([]decimal.Decimal, 0, 3)
	for i := 1; i <= 3; i++ {
		start := startOfMonth(now, loc).AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)
		totals = append(totals, monthlyExpenseTotal(txns, start, end))
	}
	if len(totals) == 0 {
		return decimal.Zero
	}

	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t)
	}
	average := sum.Div(decimal.NewFromInt(int64(len(totals))))

	if len(totals) >= 2 {
		trend := totals[0].Sub(totals[len(totals)-1])
		return floorZero(average.Add(trend.Mul(trendDamping)))
	}
	return average
}

// ForecastSeries produces a chart series: the current month and the two
// before it as historical points, then months future months extrapolated with
// a per-step linear trend of (mostRecent-oldest)/pointCount. This per-step
// formula intentionally differs from PredictNextPeriod's damped one; the two
// feed different views. Sorted ascending by month; every amount is >= 0.
func ForecastSeries(txns []ledger.Transaction, months int, now time.Time, loc *time.Location) []ForecastPoint {
	if loc == nil {
		loc = time.Local
	}
	if months < 0 {
		months = 0
	}

	var points []ForecastPoint
	for i := 0; i < 3; i++ {
		start := startOfMonth(now, loc).AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)
		points = append(points, ForecastPoint{
			Month:  start,
			Amount: monthlyExpenseTotal(txns, start, end),
		})
	}

	sum := decimal.Zero
	for _, p := range points {
		sum = sum.Add(p.Amount)
	}
	count := decimal.NewFromInt(int64(len(points)))
	average := sum.Div(count)
	trend := points[0].Amount.Sub(points[len(points)-1].Amount).Div(count)

	for i := 1; i <= months; i++ {
		month := startOfMonth(now, loc).AddDate(0, i, 0)
		step := decimal.NewFromInt(int64(i))
		points = append(points, ForecastPoint{
			Month:    month,
			Amount:   floorZero(average.Add(trend.Mul(step))),
			Forecast: true,
		})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Month.Before(points[j].Month) })
	return points
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
