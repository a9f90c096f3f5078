package store

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryBreakdown(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s)
	food := customCategory(t, s, user.ID, "Food")
	travel := customCategory(t, s, user.ID, "Travel")

	addExpense(t, s, user.ID, food.ID, "30.00", "2024-01-05")
	addExpense(t, s, user.ID, food.ID, "45.00", "2024-01-12")
	addExpense(t, s, user.ID, travel.ID, "25.00", "2024-01-20")
	// outside the window
	addExpense(t, s, user.ID, food.ID, "100.00", "2024-02-01")

	b, err := s.CategoryBreakdown(user.ID, day(t, "2024-01-01"), day(t, "2024-01-31"))
	require.NoError(t, err)

	assert.True(t, b.Total.Equal(d(t, "100.00")))
	assert.Equal(t, int64(3), b.Count)
	require.Len(t, b.Categories, 2)

	assert.Equal(t, "Food", b.Categories[0].Name)
	assert.True(t, b.Categories[0].Amount.Equal(d(t, "75.00")))
	assert.Equal(t, int64(2), b.Categories[0].Count)
	assert.True(t, b.Categories[0].Percentage.Equal(d(t, "75")))

	assert.Equal(t, "Travel", b.Categories[1].Name)
	assert.True(t, b.Categories[1].Percentage.Equal(d(t, "25")))

	assert.Equal(t, "Food", b.TopCategory)
}

func TestBreakdownPercentagesSumToExactlyOneHundred(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s)
	// three equal thirds: naive per-row rounding would give 33.33 * 3 = 99.99
	a := customCategory(t, s, user.ID, "A")
	b := customCategory(t, s, user.ID, "B")
	c := customCategory(t, s, user.ID, "C")
	addExpense(t, s, user.ID, a.ID, "10.00", "2024-01-05")
	addExpense(t, s, user.ID, b.ID, "10.00", "2024-01-06")
	addExpense(t, s, user.ID, c.ID, "10.00", "2024-01-07")

	breakdown, err := s.CategoryBreakdown(user.ID, day(t, "2024-01-01"), day(t, "2024-01-31"))
	require.NoError(t, err)
	require.Len(t, breakdown.Categories, 3)

	sum := decimal.Zero
	for _, ct := range breakdown.Categories {
		sum = sum.Add(ct.Percentage)
	}
	assert.True(t, sum.Equal(d(t, "100")), "percentages sum to %s", sum)

	// equal amounts: ties broken by name ascending, top is first
	assert.Equal(t, "A", breakdown.TopCategory)
}

func TestBreakdownEmptyWindow(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s)

	b, err := s.CategoryBreakdown(user.ID, day(t, "2024-01-01"), day(t, "2024-01-31"))
	require.NoError(t, err)
	assert.True(t, b.Total.IsZero())
	assert.Zero(t, b.Count)
	assert.Empty(t, b.Categories)
	assert.Empty(t, b.TopCategory)
}

func TestBreakdownRejectsInvertedWindow(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s)

	_, err := s.CategoryBreakdown(user.ID, day(t, "2024-02-01"), day(t, "2024-01-01"))
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPeriodSummary(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s)
	cat := customCategory(t, s, user.ID, "Food")

	addExpense(t, s, user.ID, cat.ID, "10.00", "2024-01-01")
	addExpense(t, s, user.ID, cat.ID, "30.00", "2024-01-10")

	sum, err := s.PeriodSummary(user.ID, day(t, "2024-01-01"), day(t, "2024-01-10"))
	require.NoError(t, err)

	assert.True(t, sum.Total.Equal(d(t, "40.00")))
	assert.Equal(t, int64(2), sum.Count)
	assert.True(t, sum.Average.Equal(d(t, "20.00")))
	// ten inclusive days
	assert.True(t, sum.DailyAverage.Equal(d(t, "4.00")))
	assert.Equal(t, "Food", sum.Breakdown.TopCategory)
}

func TestPeriodSummaryEmptyWindowHasZeroAverages(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s)

	sum, err := s.PeriodSummary(user.ID, day(t, "2024-01-01"), day(t, "2024-01-31"))
	require.NoError(t, err)
	assert.True(t, sum.Total.IsZero())
	assert.True(t, sum.Average.IsZero())
	assert.True(t, sum.DailyAverage.IsZero())
}

func TestMonthlySummaryCoversWholeMonth(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s)
	cat := customCategory(t, s, user.ID, "Food")

	addExpense(t, s, user.ID, cat.ID, "10.00", "2024-02-01")
	addExpense(t, s, user.ID, cat.ID, "20.00", "2024-02-29") // leap day
	addExpense(t, s, user.ID, cat.ID, "99.00", "2024-03-01")

	sum, err := s.MonthlySummary(user.ID, 2024, time.February)
	require.NoError(t, err)
	assert.True(t, sum.Total.Equal(d(t, "30.00")))
	assert.Equal(t, int64(2), sum.Count)
}

func TestYearlySummaryDividesByTwelve(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s)
	cat := customCategory(t, s, user.ID, "Food")

	// expenses in two months only
	addExpense(t, s, user.ID, cat.ID, "60.00", "2024-01-15")
	addExpense(t, s, user.ID, cat.ID, "60.00", "2024-07-15")

	ys, err := s.YearlySummary(user.ID, 2024)
	require.NoError(t, err)

	assert.True(t, ys.Total.Equal(d(t, "120.00")))
	assert.Equal(t, int64(2), ys.Count)
	// fixed divisor of 12 regardless of active months
	assert.True(t, ys.MonthlyAverage.Equal(d(t, "10.00")))

	require.Len(t, ys.Months, 12)
	assert.True(t, ys.Months[0].Total.Equal(d(t, "60.00")))
	assert.True(t, ys.Months[1].Total.IsZero())
	assert.True(t, ys.Months[6].Total.Equal(d(t, "60.00")))
}

func TestSpendingTrendMonthlySkipsEmptyBuckets(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s)
	cat := customCategory(t, s, user.ID, "Food")

	// months 1 and 3 of a three-month window; month 2 stays empty
	addExpense(t, s, user.ID, cat.ID, "10.00", "2024-01-05")
	addExpense(t, s, user.ID, cat.ID, "20.00", "2024-01-25")
	addExpense(t, s, user.ID, cat.ID, "15.00", "2024-03-10")

	points, err := s.SpendingTrend(user.ID, day(t, "2024-01-01"), day(t, "2024-03-31"), IntervalMonthly)
	require.NoError(t, err)

	require.Len(t, points, 2, "empty month must be absent, not zero-valued")
	assert.Equal(t, "2024-01", points[0].Label)
	assert.True(t, points[0].Amount.Equal(d(t, "30.00")))
	assert.Equal(t, int64(2), points[0].Count)
	assert.Equal(t, "2024-03", points[1].Label)
}

func TestSpendingTrendWeeklyBucketsStartMonday(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s)
	cat := customCategory(t, s, user.ID, "Food")

	// 2024-01-03 is a Wednesday, 2024-01-07 the following Sunday: same week.
	// 2024-01-08 is the next Monday: new bucket.
	addExpense(t, s, user.ID, cat.ID, "10.00", "2024-01-03")
	addExpense(t, s, user.ID, cat.ID, "20.00", "2024-01-07")
	addExpense(t, s, user.ID, cat.ID, "5.00", "2024-01-08")

	points, err := s.SpendingTrend(user.ID, day(t, "2024-01-01"), day(t, "2024-01-14"), IntervalWeekly)
	require.NoError(t, err)

	require.Len(t, points, 2)
	assert.Equal(t, day(t, "2024-01-01"), points[0].BucketStart)
	assert.True(t, points[0].Amount.Equal(d(t, "30.00")))
	assert.Equal(t, day(t, "2024-01-08"), points[1].BucketStart)
	assert.True(t, points[1].Amount.Equal(d(t, "5.00")))
}

func TestSpendingTrendDaily(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s)
	cat := customCategory(t, s, user.ID, "Food")

	addExpense(t, s, user.ID, cat.ID, "10.00", "2024-01-05")
	addExpense(t, s, user.ID, cat.ID, "20.00", "2024-01-05")
	addExpense(t, s, user.ID, cat.ID, "5.00", "2024-01-07")

	points, err := s.SpendingTrend(user.ID, day(t, "2024-01-01"), day(t, "2024-01-31"), IntervalDaily)
	require.NoError(t, err)

	require.Len(t, points, 2)
	// ascending chronological order
	assert.Equal(t, "2024-01-05", points[0].Label)
	assert.True(t, points[0].Amount.Equal(d(t, "30.00")))
	assert.Equal(t, "2024-01-07", points[1].Label)
}

func TestSpendingTrendInvalidInterval(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s)

	_, err := s.SpendingTrend(user.ID, day(t, "2024-01-01"), day(t, "2024-01-31"), "hourly")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAnalyticsScopedToOwner(t *testing.T) {
	s := newTestStore(t)
	alice := newTestUser(t, s)
	bob := newTestUser(t, s)
	aliceCat := customCategory(t, s, alice.ID, "Food")
	bobCat := customCategory(t, s, bob.ID, "Food")

	addExpense(t, s, alice.ID, aliceCat.ID, "10.00", "2024-01-05")
	addExpense(t, s, bob.ID, bobCat.ID, "500.00", "2024-01-05")

	b, err := s.CategoryBreakdown(alice.ID, day(t, "2024-01-01"), day(t, "2024-01-31"))
	require.NoError(t, err)
	assert.True(t, b.Total.Equal(d(t, "10.00")))
}
