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

const DefaultPageSize = 20

// сортировка списка сотрудников: параметр API -> колонка
var staffOrderColumns = map[string]string{
	"name":       "name",
	"department": "department",
	"email":      "email",
	"createdAt":  "created_at",
}

type StaffService struct {
	db       *gorm.DB
	recorder database.Recorder
	clock    Clock
	log      *logrus.Logger
	pageSize int
}

func NewStaffService(db *gorm.DB, recorder database.Recorder, clock Clock, log *logrus.Logger, pageSize int) *StaffService {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &StaffService{
		db:       db,
		recorder: recorder,
		clock:    clock,
		log:      log,
		pageSize: pageSize,
	}
}

type CreateStaffParams struct {
	Name       string
	Email      string
	Department string
	JobTitle   string
	CreatedBy  string
}

type StaffListParams struct {
	OrderBy string
	Page    int
	Search  string
}

type StaffPage struct {
	Staff      []models.Staff `json:"staffList"`
	TotalPages int            `json:"totalPages"`
}

func (s *StaffService) Create(ctx context.Context, p CreateStaffParams) (created models.Staff, err error) {
	defer func(start time.Time) { observe("create_staff", start, err) }(time.Now())
	for _, f := range [][2]string{
		{"name", p.Name},
		{"email", p.Email},
		{"department", p.Department},
		{"jobTitle", p.JobTitle},
		{"createdBy", p.CreatedBy},
	} {
		if err := required(f[0], f[1]); err != nil {
			return models.Staff{}, err
		}
	}

	err = database.InTx(ctx, s.db, func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Staff{}).Where("email = ?", p.Email).Count(&count).Error; err != nil {
			return errors.Wrap(err, "check staff email")
		}
		if count > 0 {
			return staffExists(p.Email)
		}

		staff := models.Staff{
			Email:        p.Email,
			Name:         p.Name,
			Department:   p.Department,
			JobTitle:     p.JobTitle,
			Status:       models.DefaultStatus,
			CreatedAt:    s.clock.Now(),
			CreatedBy:    p.CreatedBy,
			AssetHistory: datatypes.JSONSlice[string]{},
			ChangeLog:    datatypes.JSONSlice[models.ChangeLogEntry]{},
		}
		if err := tx.Create(&staff).Error; err != nil {
			return duplicate(err, apperrors.CodeStaffAlreadyExists, "staff already exists", "email", p.Email)
		}
		created = staff
		return nil
	})
	if err != nil {
		return models.Staff{}, err
	}

	s.log.WithFields(logrus.Fields{"staff_id": created.ID, "email": created.Email}).Info("staff created")
	return created, nil
}

func staffExists(email string) error {
	return apperrors.Conflict(apperrors.ReasonDuplicate, apperrors.CodeStaffAlreadyExists, "staff already exists", "email", email)
}

func (s *StaffService) UpdateDetails(ctx context.Context, p DetailsParams) (res Result, err error) {
	defer func(start time.Time) { observe("update_staff_details", start, err) }(time.Now())
	if err := p.validate(); err != nil {
		return Result{}, err
	}
	if err := validID("id", p.ID); err != nil {
		return Result{}, err
	}

	err = database.InTx(ctx, s.db, func(tx *gorm.DB) error {
		staff, err := findOne[models.Staff](database.ForUpdate(tx).Where("id = ?", p.ID), staffNotFound("id", p.ID))
		if err != nil {
			return err
		}
		previous := models.DetailsSnapshot(staff.Status, staff.Note)

		upd := tx.Model(&models.Staff{}).Where("id = ?", staff.ID).
			Updates(map[string]any{"status": p.Status, "note": noteValue(p.Note)})
		if upd.Error != nil {
			return errors.Wrap(upd.Error, "update staff details")
		}

		entry := models.NewChangeLogEntry(p.UpdatedBy, s.clock.Now(), models.FieldStatusAndNote,
			previous, models.DetailsSnapshot(p.Status, p.Note))
		return s.recorder.Append(tx, database.TargetStaff, staff.Email, entry)
	})
	if err != nil {
		return Result{}, err
	}

	s.log.WithFields(logrus.Fields{"staff_id": p.ID, "status": p.Status}).Info("staff details updated")
	return ok("Staff details updated successfully"), nil
}

func (s *StaffService) Get(ctx context.Context, id string) (models.Staff, error) {
	if err := validID("id", id); err != nil {
		return models.Staff{}, err
	}
	staff, err := findOne[models.Staff](s.db.WithContext(ctx).Where("id = ?", id), staffNotFound("id", id))
	return staff, readErr(err)
}

func (s *StaffService) GetByEmail(ctx context.Context, email string) (models.Staff, error) {
	if err := required("email", email); err != nil {
		return models.Staff{}, err
	}
	staff, err := findStaff(s.db.WithContext(ctx), email)
	return staff, readErr(err)
}

// List отдаёт страницу сотрудников (нумерация с 1) и общее число страниц.
func (s *StaffService) List(ctx context.Context, p StaffListParams) (StaffPage, error) {
	orderBy := p.OrderBy
	if orderBy == "" {
		orderBy = "name"
	}
	column, known := staffOrderColumns[orderBy]
	if !known {
		return StaffPage{}, apperrors.Validation(apperrors.CodeValidation,
			"orderBy must be one of name, department, email, createdAt", "orderBy")
	}
	page := p.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return StaffPage{}, apperrors.Validation(apperrors.CodeValidation, "page must be positive", "page")
	}

	q := s.db.WithContext(ctx).Model(&models.Staff{})
	if search := strings.TrimSpace(p.Search); search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return StaffPage{}, readErr(err)
	}

	staff := []models.Staff{}
	err := q.Order(column + " asc").Order("id asc").
		Limit(s.pageSize).Offset((page - 1) * s.pageSize).
		Find(&staff).Error
	if err != nil {
		return StaffPage{}, readErr(err)
	}

	return StaffPage{
		Staff:      staff,
		TotalPages: int((total + int64(s.pageSize) - 1) / int64(s.pageSize)),
	}, nil
}
