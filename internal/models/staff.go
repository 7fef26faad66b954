package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Staff struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email      string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Department string    `gorm:"size:255;not null" json:"department"`
	JobTitle   string    `gorm:"size:255;not null" json:"jobTitle"`
	Status     string    `gorm:"size:50;not null;default:ACTIVE" json:"status"`
	Note       *string   `gorm:"type:text" json:"note"`
	CreatedAt  time.Time `json:"createdAt"`
	CreatedBy  string    `gorm:"size:255;not null" json:"createdBy"`

	// id всех активов, когда-либо выданных сотруднику; не чистится при снятии
	AssetHistory datatypes.JSONSlice[string]         `gorm:"column:asset_history_list;not null" json:"assetHistoryList"`
	ChangeLog    datatypes.JSONSlice[ChangeLogEntry] `gorm:"column:change_log;not null" json:"changeLog"`
}

func (Staff) TableName() string { return "staff" }

func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.Status == "" {
		s.Status = DefaultStatus
	}
	if s.AssetHistory == nil {
		s.AssetHistory = datatypes.JSONSlice[string]{}
	}
	if s.ChangeLog == nil {
		s.ChangeLog = datatypes.JSONSlice[ChangeLogEntry]{}
	}
	return nil
}

// WithAsset возвращает историю с assetID в конце; повторно id не добавляется.
func (s Staff) WithAsset(assetID string) []string {
	history := append([]string{}, s.AssetHistory...)
	if slices.Contains(history, assetID) {
		return history
	}
	return append(history, assetID)
}

func (s Staff) HasAsset(assetID string) bool {
	return slices.Contains(s.AssetHistory, assetID)
}
