package services

import (
	"errors"
	"strings"

	"it-inventory/internal/apperrors"

	"gorm.io/gorm"
)

// Result: ответ мутирующих операций.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func ok(message string) Result {
	return Result{Success: true, Message: message}
}

// DetailsParams: смена статуса и заметки у актива или сотрудника.
type DetailsParams struct {
	ID        string
	Status    string
	Note      *string
	UpdatedBy string
}

func (p DetailsParams) validate() error {
	if err := required("id", p.ID); err != nil {
		return err
	}
	if err := required("status", p.Status); err != nil {
		return err
	}
	return required("updatedBy", p.UpdatedBy)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.Validation(apperrors.CodeValidation, field+" is required", field)
	}
	return nil
}

func duplicate(err error, code apperrors.Code, message, field, value string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Conflict(apperrors.ReasonDuplicate, code, message, field, value)
	}
	return err
}

func noteValue(note *string) any {
	if note == nil {
		return nil
	}
	return *note
}
