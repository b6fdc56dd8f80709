// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"labook/internal/observability"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// isUniqueConstraintError checks if a DB error is a unique constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "23505")
}

// toggle flips the presence of row inside one transaction. It deletes rows of
// model matching keys; when none was deleted it inserts row, treating a
// concurrent insert of the same key as already present. It returns whether
// the row exists afterwards.
func toggle(ctx context.Context, db *gorm.DB, table string, model interface{}, keys map[string]interface{}, row interface{}) (bool, error) {
	span, ctx := observability.NewRepositorySpan(ctx, "toggle", table)
	defer span.End()

	present := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where(keys).Delete(model)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(row).Error; err != nil {
			return err
		}
		present = true
		return nil
	})
	if err != nil {
		span.SetError(err)
		return false, err
	}
	return present, nil
}
