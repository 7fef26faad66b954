package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultStatus = "ACTIVE"

type Asset struct {
	ID            string     `gorm:"type:uuid;primaryKey" json:"id"`
	SerialNumber  string     `gorm:"size:255;uniqueIndex;not null" json:"serialNumber"`
	Name          string     `gorm:"size:255;not null" json:"name"`
	Type          string     `gorm:"size:100;not null" json:"type"`
	Maker         string     `gorm:"size:255;not null" json:"maker"`
	AssignedTo    *string    `gorm:"size:255;index" json:"assignedTo"`
	DateAssigned  *time.Time `json:"dateAssigned"`
	DatePurchased time.Time  `gorm:"not null" json:"datePurchased"`
	AssetNumber   string     `gorm:"size:100;not null" json:"assetNumber"`
	Status        string     `gorm:"size:50;not null;default:ACTIVE" json:"status"`
	Note          *string    `gorm:"type:text" json:"note"`
	CreatedAt     time.Time  `json:"createdAt"`
	CreatedBy     string     `gorm:"size:255;not null" json:"createdBy"`

	ChangeLog datatypes.JSONSlice[ChangeLogEntry] `gorm:"column:change_log;not null" json:"changeLog"`
}

// BeforeCreate проставляет id и пустой журнал, если их не задали.
func (a *Asset) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = DefaultStatus
	}
	if a.ChangeLog == nil {
		a.ChangeLog = datatypes.JSONSlice[ChangeLogEntry]{}
	}
	return nil
}

// IsAssigned проверяет инвариант assignee == nil <=> dateAssigned == nil.
func (a Asset) IsAssigned() bool {
	return a.AssignedTo != nil && a.DateAssigned != nil
}
