// Package scope holds reusable GORM query scopes for record visibility.
package scope

import "gorm.io/gorm"

// ActiveOnly filters rows where is_active is true.
func ActiveOnly(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// Visibility returns a scope that includes archived (soft-deleted) rows only
// when asked to. Soft-deleted rows are invisible by default.
func Visibility(includeArchived bool) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if includeArchived {
			return db.Unscoped()
		}
		return db
	}
}

// Paginate applies offset/limit windowing. Non-positive values leave the
// query unbounded.
func Paginate(offset, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if offset > 0 {
			db = db.Offset(offset)
		}
		if limit > 0 {
			db = db.Limit(limit)
		}
		return db
	}
}
