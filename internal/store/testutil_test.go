package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/ppanchal5698/expense-tracker/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestStore opens an isolated in-memory database with the full schema.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second pooled connection would see an empty :memory: database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Expense{},
		&models.Budget{},
		&models.AuditLog{},
	))

	return New(db)
}

var testUserSeq int

// newTestUser registers a user (including default category seed).
func newTestUser(t *testing.T, s *Store) *models.User {
	t.Helper()
	testUserSeq++
	user := &models.User{
		Email:        fmt.Sprintf("user%d@example.com", testUserSeq),
		Username:     fmt.Sprintf("user%d", testUserSeq),
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, s.RegisterUser(user))
	return user
}

// customCategory creates a non-default category for owner.
func customCategory(t *testing.T, s *Store, owner uint, name string) *models.Category {
	t.Helper()
	cat := &models.Category{Name: name}
	require.NoError(t, s.CreateCategory(owner, cat))
	return cat
}

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return v
}

func day(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	require.NoError(t, err)
	return v
}

// addExpense creates an expense with the given amount and date.
func addExpense(t *testing.T, s *Store, owner, catID uint, amount, date string, mutate ...func(*models.Expense)) *models.Expense {
	t.Helper()
	exp := &models.Expense{
		CategoryID:  catID,
		Amount:      d(t, amount),
		ExpenseDate: day(t, date),
	}
	for _, m := range mutate {
		m(exp)
	}
	require.NoError(t, s.CreateExpense(owner, exp))
	return exp
}
