package services

import (
	"it-inventory/internal/apperrors"
	"it-inventory/internal/database"
	"it-inventory/internal/models"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func findOne[T any](q *gorm.DB, notFound error) (T, error) {
	var out T
	res := q.Limit(1).Find(&out)
	if res.Error != nil {
		return out, errors.Wrap(res.Error, "lookup")
	}
	if res.RowsAffected == 0 {
		return out, notFound
	}
	return out, nil
}

func assetNotFound(id string) error {
	return apperrors.NotFound(apperrors.CodeAssetNotFound, "asset not found", "id", id)
}

func staffNotFound(field, value string) error {
	return apperrors.NotFound(apperrors.CodeStaffNotFound, "staff not found", field, value)
}

func findStaff(tx *gorm.DB, email string) (models.Staff, error) {
	return findOne[models.Staff](tx.Where("email = ?", email), staffNotFound("email", email))
}

func lockStaff(tx *gorm.DB, email string) (models.Staff, error) {
	return findOne[models.Staff](database.ForUpdate(tx).Where("email = ?", email), staffNotFound("email", email))
}

func lockAsset(tx *gorm.DB, id string) (models.Asset, error) {
	return findOne[models.Asset](database.ForUpdate(tx).Where("id = ?", id), assetNotFound(id))
}

// stillThere: строка, существование которой уже проверено в этой транзакции,
// пропасть не может; если пропала, хранилище несогласовано.
func stillThere(err error, what, key string) error {
	if apperrors.KindOf(err) == apperrors.KindNotFound {
		return apperrors.Internal(apperrors.CodeStorageInconsistency, what+" "+key+" disappeared inside the transaction", err)
	}
	return err
}

func validID(field, value string) error {
	if err := required(field, value); err != nil {
		return err
	}
	if _, err := uuid.Parse(value); err != nil {
		return apperrors.Validation(apperrors.CodeValidation, field+" must be a UUID", field)
	}
	return nil
}
