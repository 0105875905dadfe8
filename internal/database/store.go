package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Postgres error codes
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// ErrConflict is returned by Insert when a row with the same unique key already exist
var ErrConflict = errors.New("record already exists")

// Put insert value, or overwrite the existing row with the same primary key.
// When columns is given only those columns are overwritten on conflict,
// otherwise every column is. Associations are never written.
func Put(db *gorm.DB, value any, columns ...string) error {
	conflict := clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
	}
	if len(columns) > 0 {
		conflict.DoUpdates = clause.AssignmentColumns(columns)
	} else {
		conflict.UpdateAll = true
	}
	return db.Omit(clause.Associations).Clauses(conflict).Create(value).Error
}

// Insert create value and never overwrite. A unique violation is reported as ErrConflict.
func Insert(db *gorm.DB, value any) error {
	err := db.Omit(clause.Associations).Create(value).Error
	if IsUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrConflict, err.Error())
	}
	return err
}

// IsUniqueViolation reports whether err come from a violated unique constraint
func IsUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

// IsForeignKeyViolation reports whether err come from a violated foreign key constraint
func IsForeignKeyViolation(err error) bool {
	return pgCode(err) == pgForeignKeyViolation
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
