package store

import (
	"fmt"
	"time"

	"github.com/ppanchal5698/expense-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// BudgetStatus is a budget with the month's spending measured against it.
type BudgetStatus struct {
	Budget       models.Budget   `json:"budget"`
	CategoryName string          `json:"category_name,omitempty"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	PercentUsed  decimal.Decimal `json:"percent_used"`
	OverBudget   bool            `json:"over_budget"`
}

// ParseMonth parses a YYYY-MM month identifier.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.ParseInLocation("2006-01", s, time.UTC)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: invalid month %q, want YYYY-MM", ErrValidation, s)
	}
	return t.Year(), t.Month(), nil
}

// CreateBudget persists a monthly limit. One budget per (category, month);
// duplicates surface as ErrConflict.
func (s *Store) CreateBudget(owner uint, b *models.Budget) error {
	if !b.Amount.IsPositive() {
		return fmt.Errorf("%w: budget amount must be greater than zero", ErrValidation)
	}
	if _, _, err := ParseMonth(b.Month); err != nil {
		return err
	}
	if b.CategoryID != nil {
		if err := s.checkCategoryOwned(owner, *b.CategoryID); err != nil {
			return err
		}
	}
	b.UserID = owner
	return Create(s.DB, b)
}

// ListBudgets returns the owner's budgets, optionally narrowed to one month.
func (s *Store) ListBudgets(owner uint, month string) ([]models.Budget, error) {
	q := s.DB.Where("user_id = ?", owner)
	if month != "" {
		if _, _, err := ParseMonth(month); err != nil {
			return nil, err
		}
		q = q.Where("month = ?", month)
	}
	var budgets []models.Budget
	if err := q.Order("month DESC, id ASC").Find(&budgets).Error; err != nil {
		return nil, translate(err)
	}
	return budgets, nil
}

// UpdateBudgetAmount changes the limit of an owned budget.
func (s *Store) UpdateBudgetAmount(owner, id uint, amount decimal.Decimal) (*models.Budget, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: budget amount must be greater than zero", ErrValidation)
	}
	return UpdateOwned[models.Budget](s.DB, id, owner, map[string]interface{}{"amount": amount})
}

// DeleteBudget removes an owned budget.
func (s *Store) DeleteBudget(owner, id uint) error {
	return DeleteOwned[models.Budget](s.DB, id, owner)
}

// BudgetStatuses measures each of the month's budgets against the month's
// actual spending. A budget without a category covers all expenses.
func (s *Store) BudgetStatuses(owner uint, month string) ([]BudgetStatus, error) {
	year, m, err := ParseMonth(month)
	if err != nil {
		return nil, err
	}

	budgets, err := s.ListBudgets(owner, month)
	if err != nil {
		return nil, err
	}

	start, end := MonthBounds(year, m)
	rows, err := s.windowExpenses(owner, start, end)
	if err != nil {
		return nil, err
	}

	overall := decimal.Zero
	byCategory := make(map[uint]decimal.Decimal)
	for i := range rows {
		overall = overall.Add(rows[i].Amount)
		byCategory[rows[i].CategoryID] = byCategory[rows[i].CategoryID].Add(rows[i].Amount)
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := overall
		name := ""
		if b.CategoryID != nil {
			spent = byCategory[*b.CategoryID]
			if cat, err := s.GetCategory(owner, *b.CategoryID); err == nil {
				name = cat.Name
			}
		}
		st := BudgetStatus{
			Budget:       b,
			CategoryName: name,
			Spent:        spent,
			Remaining:    b.Amount.Sub(spent),
			OverBudget:   spent.GreaterThan(b.Amount),
		}
		if b.Amount.IsPositive() {
			st.PercentUsed = spent.Mul(oneHundred).Div(b.Amount).Round(2)
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}
