package models

import "time"

// User represents an application account. Deactivation is soft: IsActive is
// flipped to false and the owned data is retained.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"size:128;uniqueIndex;not null"`
	Username     string `gorm:"size:64;uniqueIndex;not null"`
	FullName     string `gorm:"size:128"`
	PasswordHash string `gorm:"size:255;not null"`
	IsActive     bool   `gorm:"default:true;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	FailedLoginAttempts int        `gorm:"default:0"`
	LockedUntil         *time.Time `gorm:"index"`
	LastLoginAt         *time.Time
}
