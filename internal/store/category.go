package store

import (
	"fmt"
	"strings"

	"github.com/ppanchal5698/expense-tracker/internal/models"
)

// CategoryUpdate carries the fields a caller wants to change. A nil pointer
// means "leave untouched"; a pointer to the zero value clears the field.
type CategoryUpdate struct {
	Name        *string
	Description *string
	Color       *string
	Icon        *string
}

func (u CategoryUpdate) fields() map[string]interface{} {
	f := map[string]interface{}{}
	if u.Name != nil {
		f["name"] = strings.TrimSpace(*u.Name)
	}
	if u.Description != nil {
		f["description"] = *u.Description
	}
	if u.Color != nil {
		f["color"] = *u.Color
	}
	if u.Icon != nil {
		f["icon"] = *u.Icon
	}
	return f
}

// CreateCategory persists a custom category for owner. Duplicate names within
// the owner's scope surface as ErrConflict. Callers cannot create default
// categories; those are seeded at registration only.
func (s *Store) CreateCategory(owner uint, cat *models.Category) error {
	cat.UserID = owner
	cat.IsDefault = false
	cat.Name = strings.TrimSpace(cat.Name)
	if cat.Name == "" {
		return fmt.Errorf("%w: category name is required", ErrValidation)
	}
	return Create(s.DB, cat)
}

// GetCategory returns the owned category or ErrNotFound.
func (s *Store) GetCategory(owner, id uint) (*models.Category, error) {
	return GetOwned[models.Category](s.DB, id, owner)
}

// ListCategories returns every category of the owner, defaults first, then by name.
func (s *Store) ListCategories(owner uint) ([]models.Category, error) {
	var cats []models.Category
	if err := s.DB.Where("user_id = ?", owner).
		Order("is_default DESC, name ASC").
		Find(&cats).Error; err != nil {
		return nil, translate(err)
	}
	return cats, nil
}

// UpdateCategory applies a partial update. Default categories are immutable.
func (s *Store) UpdateCategory(owner, id uint, upd CategoryUpdate) (*models.Category, error) {
	cat, err := GetOwned[models.Category](s.DB, id, owner)
	if err != nil {
		return nil, err
	}
	if cat.IsDefault {
		return nil, fmt.Errorf("%w: default categories cannot be modified", ErrPrecondition)
	}
	f := upd.fields()
	if name, ok := f["name"].(string); ok && name == "" {
		return nil, fmt.Errorf("%w: category name cannot be empty", ErrValidation)
	}
	return UpdateOwned[models.Category](s.DB, id, owner, f)
}

// DeleteCategory removes an owned category. It refuses to delete default
// categories, and any category that still has dependent expenses.
func (s *Store) DeleteCategory(owner, id uint) error {
	cat, err := GetOwned[models.Category](s.DB, id, owner)
	if err != nil {
		return err
	}
	if cat.IsDefault {
		return fmt.Errorf("%w: default categories cannot be deleted", ErrPrecondition)
	}

	var dependents int64
	if err := s.DB.Model(&models.Expense{}).
		Where("category_id = ?", id).
		Count(&dependents).Error; err != nil {
		return translate(err)
	}
	if dependents > 0 {
		return fmt.Errorf("%w: category has %d expenses, reassign or delete them first",
			ErrPrecondition, dependents)
	}

	return DeleteOwned[models.Category](s.DB, id, owner)
}
