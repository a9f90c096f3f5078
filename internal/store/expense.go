package store

import (
	"fmt"
	"time"

	"github.com/ppanchal5698/expense-tracker/internal/models"

	"github.com/shopspring/decimal"
)

// ExpenseUpdate carries the fields a caller wants to change on an expense.
// A nil pointer means "leave untouched".
type ExpenseUpdate struct {
	CategoryID    *uint
	Amount        *decimal.Decimal
	ExpenseDate   *time.Time
	Description   *string
	PaymentMethod *string
	Tags          *models.StringList
	Notes         *string
	ReceiptURL    *string
}

func (u ExpenseUpdate) fields() map[string]interface{} {
	f := map[string]interface{}{}
	if u.CategoryID != nil {
		f["category_id"] = *u.CategoryID
	}
	if u.Amount != nil {
		f["amount"] = *u.Amount
	}
	if u.ExpenseDate != nil {
		f["expense_date"] = *u.ExpenseDate
	}
	if u.Description != nil {
		f["description"] = *u.Description
	}
	if u.PaymentMethod != nil {
		f["payment_method"] = *u.PaymentMethod
	}
	if u.Tags != nil {
		f["tags"] = *u.Tags
	}
	if u.Notes != nil {
		f["notes"] = *u.Notes
	}
	if u.ReceiptURL != nil {
		f["receipt_url"] = *u.ReceiptURL
	}
	return f
}

func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be greater than zero", ErrValidation)
	}
	return nil
}

func validatePaymentMethod(method string) error {
	if method != "" && !models.ValidPaymentMethod(method) {
		return fmt.Errorf("%w: unknown payment method %q", ErrValidation, method)
	}
	return nil
}

// checkCategoryOwned verifies the category exists under the same owner.
// A foreign category is indistinguishable from a missing one.
func (s *Store) checkCategoryOwned(owner, categoryID uint) error {
	_, err := GetOwned[models.Category](s.DB, categoryID, owner)
	if err != nil {
		return fmt.Errorf("category %d: %w", categoryID, err)
	}
	return nil
}

// CreateExpense validates and persists a new expense for owner. Validation
// runs before any row is written.
func (s *Store) CreateExpense(owner uint, exp *models.Expense) error {
	if err := validateAmount(exp.Amount); err != nil {
		return err
	}
	if err := validatePaymentMethod(exp.PaymentMethod); err != nil {
		return err
	}
	if err := s.checkCategoryOwned(owner, exp.CategoryID); err != nil {
		return err
	}
	exp.UserID = owner
	return Create(s.DB, exp)
}

// GetExpense returns the owned expense or ErrNotFound.
func (s *Store) GetExpense(owner, id uint) (*models.Expense, error) {
	return GetOwned[models.Expense](s.DB, id, owner)
}

// UpdateExpense applies a partial update with the same validation rules as
// creation for every field that is present.
func (s *Store) UpdateExpense(owner, id uint, upd ExpenseUpdate) (*models.Expense, error) {
	if upd.Amount != nil {
		if err := validateAmount(*upd.Amount); err != nil {
			return nil, err
		}
	}
	if upd.PaymentMethod != nil {
		if err := validatePaymentMethod(*upd.PaymentMethod); err != nil {
			return nil, err
		}
	}
	if upd.CategoryID != nil {
		if err := s.checkCategoryOwned(owner, *upd.CategoryID); err != nil {
			return nil, err
		}
	}
	return UpdateOwned[models.Expense](s.DB, id, owner, upd.fields())
}

// DeleteExpense removes the owned expense unconditionally.
func (s *Store) DeleteExpense(owner, id uint) error {
	return DeleteOwned[models.Expense](s.DB, id, owner)
}
