package database

import (
	"fmt"

	"it-inventory/internal/apperrors"
	"it-inventory/internal/models"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
)

type Target string

const (
	TargetAsset Target = "asset"
	TargetStaff Target = "staff"
)

// Recorder дописывает запись в журнал сущности внутри транзакции вызывающего.
type Recorder interface {
	Append(tx *gorm.DB, target Target, key string, entry models.ChangeLogEntry) error
}

type ChangeLogRecorder struct{}

func NewChangeLogRecorder() *ChangeLogRecorder {
	return &ChangeLogRecorder{}
}

// Append: актив ищется по id, сотрудник по email.
// Существование уже проверено вызывающим, поэтому пропавшая строка означает
// несогласованность хранилища, а не not found.
func (r *ChangeLogRecorder) Append(tx *gorm.DB, target Target, key string, entry models.ChangeLogEntry) error {
	switch target {
	case TargetAsset:
		var asset models.Asset
		res := ForUpdate(tx).Select("id", "change_log").Where("id = ?", key).Limit(1).Find(&asset)
		if res.Error != nil {
			return errors.Wrap(res.Error, "load asset changelog")
		}
		if res.RowsAffected == 0 {
			return inconsistency(target, key)
		}
		return r.store(tx, &models.Asset{}, "id", target, key, append(asset.ChangeLog, entry))

	case TargetStaff:
		var staff models.Staff
		res := ForUpdate(tx).Select("id", "email", "change_log").Where("email = ?", key).Limit(1).Find(&staff)
		if res.Error != nil {
			return errors.Wrap(res.Error, "load staff changelog")
		}
		if res.RowsAffected == 0 {
			return inconsistency(target, key)
		}
		return r.store(tx, &models.Staff{}, "email", target, key, append(staff.ChangeLog, entry))
	}
	return apperrors.Internal(apperrors.CodeDatabase, fmt.Sprintf("unknown changelog target %q", target), nil)
}

func (r *ChangeLogRecorder) store(tx *gorm.DB, model any, column string, target Target, key string, log any) error {
	res := tx.Model(model).Where(column+" = ?", key).Update("change_log", log)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "save %s changelog", target)
	}
	if res.RowsAffected == 0 {
		return inconsistency(target, key)
	}
	return nil
}

func inconsistency(target Target, key string) error {
	return apperrors.Internal(
		apperrors.CodeStorageInconsistency,
		fmt.Sprintf("%s %s disappeared inside the transaction", target, key),
		nil,
	)
}
