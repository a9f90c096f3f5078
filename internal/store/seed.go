package store

import (
	"fmt"

	"github.com/ppanchal5698/expense-tracker/internal/models"

	"gorm.io/gorm"
)

// defaultCategories is the fixed seed set created for every new account.
var defaultCategories = []models.Category{
	{Name: "Food & Dining", Color: "#FF5733", Icon: "utensils"},
	{Name: "Transportation", Color: "#33A1FF", Icon: "car"},
	{Name: "Shopping", Color: "#FF33A8", Icon: "shopping-bag"},
	{Name: "Entertainment", Color: "#9B59B6", Icon: "film"},
	{Name: "Bills & Utilities", Color: "#F1C40F", Icon: "file-invoice"},
	{Name: "Healthcare", Color: "#2ECC71", Icon: "heartbeat"},
	{Name: "Other", Color: "#95A5A6", Icon: "ellipsis-h"},
}

// RegisterUser inserts the user and seeds the default categories in a single
// transaction, so a partial failure never leaves an account without them.
func (s *Store) RegisterUser(user *models.User) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		for _, c := range defaultCategories {
			cat := models.Category{
				UserID:    user.ID,
				Name:      c.Name,
				Color:     c.Color,
				Icon:      c.Icon,
				IsDefault: true,
			}
			if err := tx.Create(&cat).Error; err != nil {
				return fmt.Errorf("seed category %q: %w", c.Name, err)
			}
		}
		return nil
	})
	return translate(err)
}
