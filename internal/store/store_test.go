package store

import (
	"testing"

	"github.com/ppanchal5698/expense-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUserSeedsDefaultCategories(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s)

	cats, err := s.ListCategories(user.ID)
	require.NoError(t, err)
	require.Len(t, cats, len(defaultCategories))
	for _, cat := range cats {
		assert.True(t, cat.IsDefault)
		assert.Equal(t, user.ID, cat.UserID)
	}
}

func TestRegisterUserDuplicateIsConflict(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s)

	dup := &models.User{
		Email:        user.Email,
		Username:     "someoneelse",
		PasswordHash: "x",
	}
	err := s.RegisterUser(dup)
	assert.ErrorIs(t, err, ErrConflict)

	// failed registration must not leave orphan seed categories behind
	var count int64
	require.NoError(t, s.DB.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(len(defaultCategories)), count)
}

func TestOwnershipIsEnforcedAsNotFound(t *testing.T) {
	s := newTestStore(t)
	alice := newTestUser(t, s)
	bob := newTestUser(t, s)

	cat := customCategory(t, s, alice.ID, "Hobbies")
	exp := addExpense(t, s, alice.ID, cat.ID, "12.50", "2024-03-01")

	// a foreign record reads exactly like a missing one
	_, err := s.GetExpense(bob.ID, exp.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetExpense(alice.ID, exp.ID+100)
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.DeleteExpense(bob.ID, exp.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// the owner still sees the record untouched
	got, err := s.GetExpense(alice.ID, exp.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(d(t, "12.50")))
}

func TestCreateExpenseValidation(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s)
	cat := customCategory(t, s, user.ID, "Food")

	tests := []struct {
		name   string
		mutate func(*models.Expense)
	}{
		{"zero amount", func(e *models.Expense) { e.Amount = d(t, "0") }},
		{"negative amount", func(e *models.Expense) { e.Amount = d(t, "-5.00") }},
		{"bad payment method", func(e *models.Expense) { e.PaymentMethod = "barter" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exp := &models.Expense{
				CategoryID:  cat.ID,
				Amount:      d(t, "10.00"),
				ExpenseDate: day(t, "2024-01-01"),
			}
			tt.mutate(exp)
			err := s.CreateExpense(user.ID, exp)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	// nothing was written
	var count int64
	require.NoError(t, s.DB.Model(&models.Expense{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateExpenseForeignCategoryIsNotFound(t *testing.T) {
	s := newTestStore(t)
	alice := newTestUser(t, s)
	bob := newTestUser(t, s)
	bobCat := customCategory(t, s, bob.ID, "Travel")

	exp := &models.Expense{
		CategoryID:  bobCat.ID,
		Amount:      d(t, "10.00"),
		ExpenseDate: day(t, "2024-01-01"),
	}
	err := s.CreateExpense(alice.ID, exp)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPartialUpdateLeavesAbsentFieldsUntouched(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s)
	cat := customCategory(t, s, user.ID, "Food")
	exp := addExpense(t, s, user.ID, cat.ID, "25.00", "2024-02-10", func(e *models.Expense) {
		e.Description = "team lunch"
		e.Notes = "reimbursable"
	})

	newAmount := d(t, "30.00")
	empty := ""
	got, err := s.UpdateExpense(user.ID, exp.ID, ExpenseUpdate{
		Amount: &newAmount,
		Notes:  &empty, // explicit clear
	})
	require.NoError(t, err)

	assert.True(t, got.Amount.Equal(newAmount))
	assert.Equal(t, "team lunch", got.Description) // absent from payload
	assert.Equal(t, "", got.Notes)                 // explicitly cleared
}

func TestCategoryNameUniquePerOwner(t *testing.T) {
	s := newTestStore(t)
	alice := newTestUser(t, s)
	bob := newTestUser(t, s)

	customCategory(t, s, alice.ID, "Hobbies")

	err := s.CreateCategory(alice.ID, &models.Category{Name: "Hobbies"})
	assert.ErrorIs(t, err, ErrConflict)

	// same name under a different owner is fine
	err = s.CreateCategory(bob.ID, &models.Category{Name: "Hobbies"})
	assert.NoError(t, err)
}

func TestDefaultCategoryImmutable(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s)

	cats, err := s.ListCategories(user.ID)
	require.NoError(t, err)
	def := cats[0]
	require.True(t, def.IsDefault)

	name := "Renamed"
	_, err = s.UpdateCategory(user.ID, def.ID, CategoryUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrPrecondition)

	// undeletable even with zero dependent expenses
	err = s.DeleteCategory(user.ID, def.ID)
	assert.ErrorIs(t, err, ErrPrecondition)
}

func TestDeleteCategoryRestrictedByExpenses(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s)
	cat := customCategory(t, s, user.ID, "Food")
	exp := addExpense(t, s, user.ID, cat.ID, "10.00", "2024-01-05")

	err := s.DeleteCategory(user.ID, cat.ID)
	assert.ErrorIs(t, err, ErrPrecondition)

	// after removing the dependent expense the delete succeeds
	require.NoError(t, s.DeleteExpense(user.ID, exp.ID))
	assert.NoError(t, s.DeleteCategory(user.ID, cat.ID))
}

func TestCategoryRenameToExistingIsConflict(t *testing.T) {
	s := newTestStore(t)
	user := newTestUser(t, s)
	customCategory(t, s, user.ID, "Books")
	other := customCategory(t, s, user.ID, "Games")

	name := "Books"
	_, err := s.UpdateCategory(user.ID, other.ID, CategoryUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrConflict)
}
