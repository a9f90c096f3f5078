package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ppanchal5698/expense-tracker/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// page size bounds for expense listings
const (
	MinPageSize        = 1
	DefaultMaxPageSize = 100
)

// ExpenseFilter is the optional-predicate set of the expense query engine.
// Nil fields are omitted from the query entirely. Date and amount bounds are
// inclusive; Tags uses contains-all semantics (the expense's tag list must be
// a superset of the filter's).
type ExpenseFilter struct {
	StartDate     *time.Time
	EndDate       *time.Time
	CategoryID    *uint
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
	PaymentMethod *string
	Tags          []string
}

// apply adds every supplied predicate to the query as a conjunction.
func (f ExpenseFilter) apply(q *gorm.DB) *gorm.DB {
	if f.StartDate != nil {
		q = q.Where("expense_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		// inclusive upper bound: before the start of the next day
		q = q.Where("expense_date < ?", f.EndDate.AddDate(0, 0, 1))
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.MinAmount != nil {
		q = q.Where("amount >= ?", *f.MinAmount)
	}
	if f.MaxAmount != nil {
		q = q.Where("amount <= ?", *f.MaxAmount)
	}
	if f.PaymentMethod != nil {
		q = q.Where("payment_method = ?", *f.PaymentMethod)
	}
	// tags are stored as a JSON array; one LIKE per tag gives contains-all
	for _, tag := range f.Tags {
		q = q.Where(`tags LIKE ? ESCAPE '\'`, tagPattern(tag))
	}
	return q
}

// tagPattern builds the LIKE pattern for one tag. The tag is JSON-encoded
// first, matching the stored form exactly (quotes included, so only whole
// tags match), then LIKE metacharacters are escaped so a tag such as
// "50%_off" reads as literal text rather than wildcards.
func tagPattern(tag string) string {
	enc, _ := json.Marshal(tag)
	s := string(enc)
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return "%" + s + "%"
}

// ExpensePage is one page of a filtered listing plus pagination metadata.
type ExpensePage struct {
	Items      []models.Expense
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// ListExpenses runs the filter for owner and returns the requested page.
// Ordering is expense date descending, ties broken by creation order, so the
// listing is stable across identical calls. A page past the end yields an
// empty page, not an error; an out-of-bounds page size is rejected.
func (s *Store) ListExpenses(owner uint, filter ExpenseFilter, page, pageSize int) (*ExpensePage, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1", ErrValidation)
	}
	maxSize := s.MaxPageSize
	if maxSize <= 0 {
		maxSize = DefaultMaxPageSize
	}
	if pageSize < MinPageSize || pageSize > maxSize {
		return nil, fmt.Errorf("%w: page_size must be between %d and %d",
			ErrValidation, MinPageSize, maxSize)
	}

	base := filter.apply(s.DB.Model(&models.Expense{}).Where("user_id = ?", owner))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, translate(err)
	}

	var items []models.Expense
	if err := base.Session(&gorm.Session{}).
		Order("expense_date DESC, created_at DESC, id DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&items).Error; err != nil {
		return nil, translate(err)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &ExpensePage{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// FilteredExpenses returns every matching expense without pagination, in the
// same order as ListExpenses. Used by the exporters.
func (s *Store) FilteredExpenses(owner uint, filter ExpenseFilter) ([]models.Expense, error) {
	var items []models.Expense
	q := filter.apply(s.DB.Model(&models.Expense{}).Where("user_id = ?", owner))
	if err := q.Order("expense_date DESC, created_at DESC, id DESC").Find(&items).Error; err != nil {
		return nil, translate(err)
	}
	return items, nil
}
