package models

import "time"

// Category groups expenses for one user. Names are unique per owner.
// Default categories are seeded at registration and cannot be renamed,
// re-colored or deleted by the owner.
type Category struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"uniqueIndex:idx_user_category_name;not null"`
	Name        string `gorm:"size:64;uniqueIndex:idx_user_category_name;not null"`
	Description string `gorm:"size:255"`
	Color       string `gorm:"size:16"`
	Icon        string `gorm:"size:32"`
	IsDefault   bool   `gorm:"default:false;not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
