package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/ppanchal5698/expense-tracker/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Trend bucket intervals.
const (
	IntervalDaily   = "daily"
	IntervalWeekly  = "weekly"
	IntervalMonthly = "monthly"
)

var oneHundred = decimal.NewFromInt(100)

// CategoryTotal is one row of a category breakdown.
type CategoryTotal struct {
	CategoryID uint            `json:"category_id"`
	Name       string          `json:"name"`
	Color      string          `json:"color"`
	Icon       string          `json:"icon"`
	Amount     decimal.Decimal `json:"amount"`
	Count      int64           `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Breakdown is a grouped aggregation of one owner's expenses in a window,
// sorted by summed amount descending.
type Breakdown struct {
	StartDate   time.Time       `json:"start_date"`
	EndDate     time.Time       `json:"end_date"`
	Total       decimal.Decimal `json:"total"`
	Count       int64           `json:"count"`
	Categories  []CategoryTotal `json:"categories"`
	TopCategory string          `json:"top_category"`
}

// Summary is a period summary: totals, means and the embedded breakdown.
type Summary struct {
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	Total        decimal.Decimal `json:"total"`
	Count        int64           `json:"count"`
	Average      decimal.Decimal `json:"average"`
	DailyAverage decimal.Decimal `json:"daily_average"`
	Breakdown    Breakdown       `json:"breakdown"`
}

// MonthSummary is one month's slice of a yearly summary.
type MonthSummary struct {
	Year    int             `json:"year"`
	Month   time.Month      `json:"month"`
	Total   decimal.Decimal `json:"total"`
	Count   int64           `json:"count"`
	Average decimal.Decimal `json:"average"`
}

// YearSummary aggregates all twelve calendar months of a year. MonthlyAverage
// always divides by twelve, so months without expenses pull the average down.
type YearSummary struct {
	Year           int             `json:"year"`
	Total          decimal.Decimal `json:"total"`
	Count          int64           `json:"count"`
	MonthlyAverage decimal.Decimal `json:"monthly_average"`
	Months         []MonthSummary  `json:"months"`
}

// TrendPoint is one bucket of a spending trend. Buckets with no expenses are
// never emitted.
type TrendPoint struct {
	BucketStart time.Time       `json:"bucket_start"`
	Label       string          `json:"label"`
	Amount      decimal.Decimal `json:"amount"`
	Count       int64           `json:"count"`
}

func checkWindow(start, end time.Time) error {
	if start.After(end) {
		return fmt.Errorf("%w: start date is after end date", ErrValidation)
	}
	return nil
}

// windowExpenses loads the owner's expenses with dates in [start, end].
func (s *Store) windowExpenses(owner uint, start, end time.Time) ([]models.Expense, error) {
	var rows []models.Expense
	if err := s.DB.
		Where("user_id = ? AND expense_date >= ? AND expense_date < ?",
			owner, start, end.AddDate(0, 0, 1)).
		Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return rows, nil
}

// CategoryBreakdown groups the window's expenses by category with exact
// decimal sums. Percentages are derived by exact division and the largest
// category absorbs the rounding remainder, so the column always sums to
// exactly 100. Ties on summed amount are broken by category name ascending.
func (s *Store) CategoryBreakdown(owner uint, start, end time.Time) (*Breakdown, error) {
	if err := checkWindow(start, end); err != nil {
		return nil, err
	}

	rows, err := s.windowExpenses(owner, start, end)
	if err != nil {
		return nil, err
	}

	totals := make(map[uint]*CategoryTotal)
	total := decimal.Zero
	var count int64
	for i := range rows {
		e := &rows[i]
		ct, ok := totals[e.CategoryID]
		if !ok {
			ct = &CategoryTotal{CategoryID: e.CategoryID}
			totals[e.CategoryID] = ct
		}
		ct.Amount = ct.Amount.Add(e.Amount)
		ct.Count++
		total = total.Add(e.Amount)
		count++
	}

	// resolve category names/colors in one query
	if len(totals) > 0 {
		ids := make([]uint, 0, len(totals))
		for id := range totals {
			ids = append(ids, id)
		}
		var cats []models.Category
		if err := s.DB.Where("user_id = ? AND id IN ?", owner, ids).Find(&cats).Error; err != nil {
			return nil, translate(err)
		}
		for i := range cats {
			if ct, ok := totals[cats[i].ID]; ok {
				ct.Name = cats[i].Name
				ct.Color = cats[i].Color
				ct.Icon = cats[i].Icon
			}
		}
	}

	list := make([]CategoryTotal, 0, len(totals))
	for _, ct := range totals {
		list = append(list, *ct)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Amount.Equal(list[j].Amount) {
			return list[i].Amount.GreaterThan(list[j].Amount)
		}
		return list[i].Name < list[j].Name
	})

	if total.IsPositive() {
		rest := decimal.Zero
		for i := len(list) - 1; i >= 1; i-- {
			pct := list[i].Amount.Mul(oneHundred).Div(total).Round(2)
			list[i].Percentage = pct
			rest = rest.Add(pct)
		}
		// largest category takes the remainder so percentages sum to 100
		list[0].Percentage = oneHundred.Sub(rest)
	}

	b := &Breakdown{
		StartDate:  start,
		EndDate:    end,
		Total:      total,
		Count:      count,
		Categories: list,
	}
	if len(list) > 0 {
		b.TopCategory = list[0].Name
	}
	return b, nil
}

// PeriodSummary computes totals, the mean expense and the mean daily spend for
// an inclusive date range, with the category breakdown for the same window.
// Empty windows yield zero averages, never a division fault.
func (s *Store) PeriodSummary(owner uint, start, end time.Time) (*Summary, error) {
	breakdown, err := s.CategoryBreakdown(owner, start, end)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		StartDate: start,
		EndDate:   end,
		Total:     breakdown.Total,
		Count:     breakdown.Count,
		Breakdown: *breakdown,
	}
	if breakdown.Count > 0 {
		sum.Average = breakdown.Total.Div(decimal.NewFromInt(breakdown.Count)).Round(2)
	}
	days := int64(end.Sub(start).Hours()/24) + 1
	if days > 0 && breakdown.Count > 0 {
		sum.DailyAverage = breakdown.Total.Div(decimal.NewFromInt(days)).Round(2)
	}
	return sum, nil
}

// MonthBounds returns the first and last calendar day of a month, UTC.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// MonthlySummary is the period summary of one calendar month.
func (s *Store) MonthlySummary(owner uint, year int, month time.Month) (*Summary, error) {
	start, end := MonthBounds(year, month)
	return s.PeriodSummary(owner, start, end)
}

// monthTotals computes one month's total, count and mean without a breakdown.
func (s *Store) monthTotals(owner uint, year int, month time.Month) (MonthSummary, error) {
	start, end := MonthBounds(year, month)
	rows, err := s.windowExpenses(owner, start, end)
	if err != nil {
		return MonthSummary{}, err
	}
	ms := MonthSummary{Year: year, Month: month}
	for i := range rows {
		ms.Total = ms.Total.Add(rows[i].Amount)
		ms.Count++
	}
	if ms.Count > 0 {
		ms.Average = ms.Total.Div(decimal.NewFromInt(ms.Count)).Round(2)
	}
	return ms, nil
}

// YearlySummary computes each of the twelve months independently and an
// aggregate for the year. The month queries are read-only and independent, so
// they run in parallel.
func (s *Store) YearlySummary(owner uint, year int) (*YearSummary, error) {
	months := make([]MonthSummary, 12)

	var g errgroup.Group
	for m := 1; m <= 12; m++ {
		m := m
		g.Go(func() error {
			ms, err := s.monthTotals(owner, year, time.Month(m))
			if err != nil {
				return err
			}
			months[m-1] = ms
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ys := &YearSummary{Year: year, Months: months}
	for i := range months {
		ys.Total = ys.Total.Add(months[i].Total)
		ys.Count += months[i].Count
	}
	// fixed divisor of twelve: average monthly spend including zero months
	ys.MonthlyAverage = ys.Total.Div(decimal.NewFromInt(12)).Round(2)
	return ys, nil
}

// bucketStart maps a date onto the start of its bucket. Weekly buckets start
// on Monday.
func bucketStart(t time.Time, interval string) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	switch interval {
	case IntervalWeekly:
		return d.AddDate(0, 0, -((int(d.Weekday()) + 6) % 7))
	case IntervalMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default: // daily
		return d
	}
}

func bucketLabel(start time.Time, interval string) string {
	if interval == IntervalMonthly {
		return start.Format("2006-01")
	}
	return start.Format("2006-01-02")
}

// SpendingTrend groups the window's expenses into daily, weekly or monthly
// buckets with exact decimal sums, in ascending chronological order. Buckets
// with no expenses are absent from the result, not zero-valued.
func (s *Store) SpendingTrend(owner uint, start, end time.Time, interval string) ([]TrendPoint, error) {
	switch interval {
	case IntervalDaily, IntervalWeekly, IntervalMonthly:
	default:
		return nil, fmt.Errorf("%w: interval must be daily, weekly or monthly", ErrValidation)
	}
	if err := checkWindow(start, end); err != nil {
		return nil, err
	}

	rows, err := s.windowExpenses(owner, start, end)
	if err != nil {
		return nil, err
	}

	buckets := make(map[time.Time]*TrendPoint)
	for i := range rows {
		key := bucketStart(rows[i].ExpenseDate, interval)
		tp, ok := buckets[key]
		if !ok {
			tp = &TrendPoint{BucketStart: key, Label: bucketLabel(key, interval)}
			buckets[key] = tp
		}
		tp.Amount = tp.Amount.Add(rows[i].Amount)
		tp.Count++
	}

	points := make([]TrendPoint, 0, len(buckets))
	for _, tp := range buckets {
		points = append(points, *tp)
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].BucketStart.Before(points[j].BucketStart)
	})
	return points, nil
}
