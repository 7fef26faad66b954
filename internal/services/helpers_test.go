package services_test

import (
	"context"
	"testing"
	"time"

	"it-inventory/internal/database"
	"it-inventory/internal/database/dbtest"
	"it-inventory/internal/models"
	"it-inventory/internal/services"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const admin = "admin@x.com"

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

var testNow = time.Date(2025, 5, 14, 9, 30, 0, 0, time.UTC)

// failingRecorder пишет журнал как обычно, но падает на заданной цели.
type failingRecorder struct {
	next   database.Recorder
	target database.Target
}

func (r failingRecorder) Append(tx *gorm.DB, target database.Target, key string, entry models.ChangeLogEntry) error {
	if target == r.target {
		return errors.New("changelog write failed")
	}
	return r.next.Append(tx, target, key, entry)
}

type env struct {
	db     *gorm.DB
	assets *services.AssetService
	staff  *services.StaffService
}

func newEnv(t *testing.T) env {
	return newEnvWith(t, database.NewChangeLogRecorder())
}

func newEnvWith(t *testing.T, recorder database.Recorder) env {
	t.Helper()
	db := dbtest.Open(t)
	clock := fixedClock{at: testNow}
	return env{
		db:     db,
		assets: services.NewAssetService(db, recorder, clock, dbtest.Logger()),
		staff:  services.NewStaffService(db, recorder, clock, dbtest.Logger(), 2),
	}
}

func (e env) mustStaff(t *testing.T, name, email string) models.Staff {
	t.Helper()
	staff, err := e.staff.Create(context.Background(), services.CreateStaffParams{
		Name:       name,
		Email:      email,
		Department: "IT",
		JobTitle:   "Engineer",
		CreatedBy:  admin,
	})
	require.NoError(t, err)
	return staff
}

func assetParams(serial string) services.CreateAssetParams {
	return services.CreateAssetParams{
		SerialNumber:  serial,
		Name:          "ThinkPad X1",
		Type:          "laptop",
		Maker:         "Lenovo",
		DatePurchased: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
		AssetNumber:   "INV-" + serial,
		CreatedBy:     admin,
	}
}

func (e env) mustAsset(t *testing.T, serial string) models.Asset {
	t.Helper()
	asset, err := e.assets.Create(context.Background(), assetParams(serial))
	require.NoError(t, err)
	return asset
}

func (e env) reloadAsset(t *testing.T, id string) models.Asset {
	t.Helper()
	var asset models.Asset
	require.NoError(t, e.db.Where("id = ?", id).First(&asset).Error)
	return asset
}

func (e env) reloadStaff(t *testing.T, email string) models.Staff {
	t.Helper()
	var staff models.Staff
	require.NoError(t, e.db.Where("email = ?", email).First(&staff).Error)
	return staff
}

// requireAssignmentConsistent: assignee и дата либо обе заданы, либо обе пусты,
// и актив есть в истории текущего держателя.
func (e env) requireAssignmentConsistent(t *testing.T, id string) {
	t.Helper()
	asset := e.reloadAsset(t, id)
	require.Equal(t, asset.AssignedTo == nil, asset.DateAssigned == nil)
	if asset.AssignedTo != nil {
		require.True(t, e.reloadStaff(t, *asset.AssignedTo).HasAsset(id))
	}
}
