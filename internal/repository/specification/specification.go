package specification

import "gorm.io/gorm"

// Specification narrows a gorm query. Repositories accept any number of them.
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// ApplyAll applies specs in order. Nil entries are skipped so callers can
// build optional filters inline.
func ApplyAll(db *gorm.DB, specs ...Specification) *gorm.DB {
	for _, s := range specs {
		if s == nil {
			continue
		}
		db = s.Apply(db)
	}
	return db
}
