package services

import (
	"context"
	"strings"
	"time"

	"it-inventory/internal/apperrors"
	"it-inventory/internal/database"
	"it-inventory/internal/models"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AssetService struct {
	db       *gorm.DB
	recorder database.Recorder
	clock    Clock
	log      *logrus.Logger
}

func NewAssetService(db *gorm.DB, recorder database.Recorder, clock Clock, log *logrus.Logger) *AssetService {
	return &AssetService{
		db:       db,
		recorder: recorder,
		clock:    clock,
		log:      log,
	}
}

type CreateAssetParams struct {
	SerialNumber  string
	Name          string
	Type          string
	Maker         string
	AssignedTo    *string
	DatePurchased time.Time
	AssetNumber   string
	CreatedBy     string
}

func (p CreateAssetParams) validate() error {
	for _, f := range [][2]string{
		{"serialNumber", p.SerialNumber},
		{"name", p.Name},
		{"type", p.Type},
		{"maker", p.Maker},
		{"assetNumber", p.AssetNumber},
		{"createdBy", p.CreatedBy},
	} {
		if err := required(f[0], f[1]); err != nil {
			return err
		}
	}
	if p.DatePurchased.IsZero() {
		return apperrors.Validation(apperrors.CodeValidation, "datePurchased is required", "datePurchased")
	}
	if p.AssignedTo != nil {
		return required("assignedTo", *p.AssignedTo)
	}
	return nil
}

type AssignParams struct {
	StaffEmail    string
	AssetID       string
	UpdatedBy     string
	UserConfirmed bool
}

type UnassignParams struct {
	AssetID       string
	UpdatedBy     string
	UserConfirmed bool
}

type AssetFilter struct {
	AssignedTo string
}

// Create регистрирует актив; если задан assignedTo, сразу выдаёт его сотруднику
// с записью в историю и журналы обеих сторон.
func (s *AssetService) Create(ctx context.Context, p CreateAssetParams) (created models.Asset, err error) {
	defer func(start time.Time) { observe("create_asset", start, err) }(time.Now())
	if err := p.validate(); err != nil {
		return models.Asset{}, err
	}

	err = database.InTx(ctx, s.db, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Asset{}).Where("serial_number = ?", p.SerialNumber).Count(&count).Error; err != nil {
			return errors.Wrap(err, "check serial number")
		}
		if count > 0 {
			return assetExists(p.SerialNumber)
		}

		var staff models.Staff
		if p.AssignedTo != nil {
			found, err := lockStaff(tx, *p.AssignedTo)
			if err != nil {
				return err
			}
			staff = found
		}

		now := s.clock.Now()
		asset := models.Asset{
			SerialNumber:  p.SerialNumber,
			Name:          p.Name,
			Type:          p.Type,
			Maker:         p.Maker,
			DatePurchased: p.DatePurchased,
			AssetNumber:   p.AssetNumber,
			Status:        models.DefaultStatus,
			CreatedAt:     now,
			CreatedBy:     p.CreatedBy,
			ChangeLog:     datatypes.JSONSlice[models.ChangeLogEntry]{},
		}
		if p.AssignedTo != nil {
			asset.AssignedTo = &staff.Email
			asset.DateAssigned = &now
		}
		if err := tx.Create(&asset).Error; err != nil {
			return duplicate(err, apperrors.CodeAssetAlreadyExists, "asset already exists", "serialNumber", p.SerialNumber)
		}

		if p.AssignedTo != nil {
			if err := s.recordAssignment(tx, staff, asset.ID, nil, p.CreatedBy, now); err != nil {
				return err
			}
		}

		stored, err := findOne[models.Asset](tx.Where("id = ?", asset.ID), assetNotFound(asset.ID))
		if err != nil {
			return stillThere(err, "asset", asset.ID)
		}
		created = stored
		return nil
	})
	if err != nil {
		return models.Asset{}, err
	}

	s.log.WithFields(logrus.Fields{
		"asset_id":      created.ID,
		"serial_number": created.SerialNumber,
		"assigned_to":   p.AssignedTo,
	}).Info("asset created")
	return created, nil
}

func assetExists(serial string) error {
	return apperrors.Conflict(apperrors.ReasonDuplicate, apperrors.CodeAssetAlreadyExists, "asset already exists", "serialNumber", serial)
}

// Assign выдаёт актив сотруднику.
//   - уже выдан этому же сотруднику -> Conflict ALREADY_ASSIGNED (флаг подтверждения не помогает)
//   - выдан другому и нет подтверждения -> Conflict NEEDS_CONFIRMATION, ничего не меняется
//   - свободен или подтверждено -> переназначение + две записи в журналах
func (s *AssetService) Assign(ctx context.Context, p AssignParams) (res Result, err error) {
	defer func(start time.Time) { observe("assign_asset", start, err) }(time.Now())
	if err := validID("assetId", p.AssetID); err != nil {
		return Result{}, err
	}
	if err := required("staffEmail", p.StaffEmail); err != nil {
		return Result{}, err
	}
	if err := required("updatedBy", p.UpdatedBy); err != nil {
		return Result{}, err
	}

	var previous *string
	err = database.InTx(ctx, s.db, func(tx *gorm.DB) error {
		if _, err := findStaff(tx, p.StaffEmail); err != nil {
			return err
		}
		asset, err := lockAsset(tx, p.AssetID)
		if err != nil {
			return err
		}

		previous = asset.AssignedTo
		if previous != nil && *previous == p.StaffEmail {
			return apperrors.Conflict(apperrors.ReasonAlreadyAssigned, apperrors.CodeConflictingAssignment,
				"asset is already assigned to this staff", "staffEmail", p.StaffEmail)
		}
		if previous != nil && !p.UserConfirmed {
			return apperrors.Conflict(apperrors.ReasonNeedsConfirmation, apperrors.CodeConflictingAssignment,
				"asset is assigned to another staff, confirm to reassign", "assignedTo", *previous)
		}

		staff, err := lockStaff(tx, p.StaffEmail)
		if err != nil {
			return stillThere(err, "staff", p.StaffEmail)
		}

		now := s.clock.Now()
		upd := tx.Model(&models.Asset{}).Where("id = ?", asset.ID).Updates(map[string]any{
			"assigned_to":   staff.Email,
			"date_assigned": now,
		})
		if upd.Error != nil {
			return errors.Wrap(upd.Error, "assign asset")
		}
		return s.recordAssignment(tx, staff, asset.ID, previous, p.UpdatedBy, now)
	})

	fields := logrus.Fields{"asset_id": p.AssetID, "staff_email": p.StaffEmail, "confirmed": p.UserConfirmed}
	if err != nil {
		fields["kind"] = apperrors.KindOf(err).String()
		s.log.WithFields(fields).WithError(err).Warn("asset assignment rejected")
		return Result{}, err
	}
	if previous != nil {
		fields["previous"] = *previous
	}
	s.log.WithFields(fields).Info("asset assigned")
	return ok("Asset assigned successfully"), nil
}

// recordAssignment дописывает актив в историю сотрудника и пишет по записи
// в журнал сотрудника и актива. Вызывается только внутри транзакции.
func (s *AssetService) recordAssignment(tx *gorm.DB, staff models.Staff, assetID string, previous *string, updatedBy string, at time.Time) error {
	history := staff.WithAsset(assetID)
	upd := tx.Model(&models.Staff{}).Where("id = ?", staff.ID).
		Update("asset_history_list", datatypes.JSONSlice[string](history))
	if upd.Error != nil {
		return errors.Wrap(upd.Error, "update asset history")
	}

	staffEntry := models.NewChangeLogEntry(updatedBy, at, models.FieldAssetHistoryList, staff.AssetHistory, history)
	if err := s.recorder.Append(tx, database.TargetStaff, staff.Email, staffEntry); err != nil {
		return err
	}

	assetEntry := models.NewChangeLogEntry(updatedBy, at, models.FieldAssignedTo,
		models.AssigneeSnapshot(previous), []string{staff.Email})
	return s.recorder.Append(tx, database.TargetAsset, assetID, assetEntry)
}

// Unassign снимает назначение. Подтверждение нужно всегда.
// История сотрудника не чистится, снятие видно только в журналах.
func (s *AssetService) Unassign(ctx context.Context, p UnassignParams) (res Result, err error) {
	defer func(start time.Time) { observe("unassign_asset", start, err) }(time.Now())
	if err := validID("assetId", p.AssetID); err != nil {
		return Result{}, err
	}
	if err := required("updatedBy", p.UpdatedBy); err != nil {
		return Result{}, err
	}

	var previous string
	err = database.InTx(ctx, s.db, func(tx *gorm.DB) error {
		asset, err := lockAsset(tx, p.AssetID)
		if err != nil {
			return err
		}
		// отдельный код, чтобы не путать со STAFF_NOT_FOUND
		if !asset.IsAssigned() {
			return apperrors.NotFound(apperrors.CodeNotAssigned, "asset has no active assignment", "id", asset.ID)
		}
		if !p.UserConfirmed {
			return apperrors.Validation(apperrors.CodeConfirmationRequired,
				"removing an assignment must be confirmed", "userConfirmed")
		}

		previous = *asset.AssignedTo
		staff, err := lockStaff(tx, previous)
		if err != nil {
			return stillThere(err, "staff", previous)
		}

		upd := tx.Model(&models.Asset{}).
			Where("id = ? AND assigned_to = ?", asset.ID, previous).
			Updates(map[string]any{"assigned_to": nil, "date_assigned": nil})
		if upd.Error != nil {
			return errors.Wrap(upd.Error, "clear assignment")
		}
		if upd.RowsAffected == 0 {
			return apperrors.Internal(apperrors.CodeAssetRemovalFailed, "asset removal failed", nil)
		}

		now := s.clock.Now()
		assetEntry := models.NewChangeLogEntry(p.UpdatedBy, now, models.FieldAssignedTo,
			[]string{previous}, []string{models.AssignmentClearedMarker})
		if err := s.recorder.Append(tx, database.TargetAsset, asset.ID, assetEntry); err != nil {
			return err
		}

		annotated := append(append([]string{}, staff.AssetHistory...), models.AssetRemovedPrefix+asset.ID)
		staffEntry := models.NewChangeLogEntry(p.UpdatedBy, now, models.FieldAssetHistoryList,
			staff.AssetHistory, annotated)
		return s.recorder.Append(tx, database.TargetStaff, staff.Email, staffEntry)
	})

	fields := logrus.Fields{"asset_id": p.AssetID, "confirmed": p.UserConfirmed}
	if err != nil {
		fields["kind"] = apperrors.KindOf(err).String()
		s.log.WithFields(fields).WithError(err).Warn("asset unassignment rejected")
		return Result{}, err
	}
	fields["previous"] = previous
	s.log.WithFields(fields).Info("asset unassigned")
	return ok("Asset removed successfully"), nil
}

func (s *AssetService) UpdateDetails(ctx context.Context, p DetailsParams) (res Result, err error) {
	defer func(start time.Time) { observe("update_asset_details", start, err) }(time.Now())
	if err := p.validate(); err != nil {
		return Result{}, err
	}
	if err := validID("id", p.ID); err != nil {
		return Result{}, err
	}

	err = database.InTx(ctx, s.db, func(tx *gorm.DB) error {
		asset, err := lockAsset(tx, p.ID)
		if err != nil {
			return err
		}
		previous := models.DetailsSnapshot(asset.Status, asset.Note)

		upd := tx.Model(&models.Asset{}).Where("id = ?", asset.ID).
			Updates(map[string]any{"status": p.Status, "note": noteValue(p.Note)})
		if upd.Error != nil {
			return errors.Wrap(upd.Error, "update asset details")
		}

		entry := models.NewChangeLogEntry(p.UpdatedBy, s.clock.Now(), models.FieldStatusAndNote,
			previous, models.DetailsSnapshot(p.Status, p.Note))
		return s.recorder.Append(tx, database.TargetAsset, asset.ID, entry)
	})
	if err != nil {
		return Result{}, err
	}

	s.log.WithFields(logrus.Fields{"asset_id": p.ID, "status": p.Status}).Info("asset details updated")
	return ok("Asset details updated successfully"), nil
}

func (s *AssetService) Get(ctx context.Context, id string) (models.Asset, error) {
	if err := validID("id", id); err != nil {
		return models.Asset{}, err
	}
	asset, err := findOne[models.Asset](s.db.WithContext(ctx).Where("id = ?", id), assetNotFound(id))
	return asset, readErr(err)
}

func (s *AssetService) GetBySerial(ctx context.Context, serial string) (models.Asset, error) {
	if err := required("serialNumber", serial); err != nil {
		return models.Asset{}, err
	}
	notFound := apperrors.NotFound(apperrors.CodeAssetSerialNotFound, "asset not found", "serialNumber", serial)
	asset, err := findOne[models.Asset](s.db.WithContext(ctx).Where("serial_number = ?", serial), notFound)
	return asset, readErr(err)
}

func (s *AssetService) List(ctx context.Context, filter AssetFilter) ([]models.Asset, error) {
	q := s.db.WithContext(ctx).Order("created_at asc, serial_number asc")
	if email := strings.TrimSpace(filter.AssignedTo); email != "" {
		q = q.Where("assigned_to = ?", email)
	}
	assets := []models.Asset{}
	if err := q.Find(&assets).Error; err != nil {
		return nil, readErr(err)
	}
	return assets, nil
}

// readErr: ошибки чтения вне транзакции тоже приводим к DATABASE_ERROR.
func readErr(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}
	return apperrors.Internal(apperrors.CodeDatabase, "database query failed", err)
}
