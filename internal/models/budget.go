package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a monthly spending limit, either for one category or overall
// (CategoryID nil). One budget per (user, category, month).
type Budget struct {
	ID         uint            `gorm:"primaryKey"`
	UserID     uint            `gorm:"uniqueIndex:idx_user_budget;not null"`
	CategoryID *uint           `gorm:"uniqueIndex:idx_user_budget"`
	Month      string          `gorm:"size:7;uniqueIndex:idx_user_budget;not null"` // YYYY-MM
	Amount     decimal.Decimal `gorm:"type:decimal(12,2);not null;check:amount > 0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
