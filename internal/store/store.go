// Package store implements the ownership-scoped persistence layer: generic
// CRUD primitives where every read, update and delete is keyed by both record
// id and owning user id, plus the expense query engine and the analytics
// aggregator built on top of the same filtering primitives.
package store

import (
	"errors"

	"gorm.io/gorm"
)

// Store wraps the gorm handle with the domain operations of the service.
type Store struct {
	DB *gorm.DB

	// MaxPageSize caps the page size of listings. New sets the default;
	// the router overrides it from configuration.
	MaxPageSize int
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db, MaxPageSize: DefaultMaxPageSize}
}

// translate converts gorm errors into domain error kinds.
func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrNotFound
	}
	return err
}

// Create persists a new record, surfacing constraint violations as domain errors.
func Create[T any](db *gorm.DB, rec *T) error {
	if err := db.Create(rec).Error; err != nil {
		return translate(err)
	}
	return nil
}

// GetOwned loads the record with the given id if it belongs to owner.
// Absent and not-owned are both ErrNotFound.
func GetOwned[T any](db *gorm.DB, id, owner uint) (*T, error) {
	var rec T
	if err := db.Where("id = ? AND user_id = ?", id, owner).First(&rec).Error; err != nil {
		return nil, translate(err)
	}
	return &rec, nil
}

// UpdateOwned applies only the given fields to the owned record and returns
// the fresh row. Fields absent from the map are left untouched.
func UpdateOwned[T any](db *gorm.DB, id, owner uint, fields map[string]interface{}) (*T, error) {
	rec, err := GetOwned[T](db, id, owner)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return rec, nil
	}
	if err := db.Model(rec).Updates(fields).Error; err != nil {
		return nil, translate(err)
	}
	return GetOwned[T](db, id, owner)
}

// DeleteOwned removes the owned record. ErrNotFound if absent or not owned.
func DeleteOwned[T any](db *gorm.DB, id, owner uint) error {
	res := db.Where("id = ? AND user_id = ?", id, owner).Delete(new(T))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
