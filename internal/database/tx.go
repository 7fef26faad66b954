package database

import (
	"context"

	"it-inventory/internal/apperrors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InTx выполняет fn в одной транзакции. Любая ошибка или паника откатывает всё.
// Нетипизированные ошибки превращаются в DATABASE_ERROR.
func InTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	err := db.WithContext(ctx).Transaction(fn)
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}
	return apperrors.Internal(apperrors.CodeDatabase, "database transaction failed", err)
}

// ForUpdate блокирует читаемые строки до конца транзакции (только postgres).
func ForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == DriverPostgres {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
