package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestStaff_WithAsset(t *testing.T) {
	s := Staff{AssetHistory: datatypes.JSONSlice[string]{"a1"}}

	assert.Equal(t, []string{"a1", "a2"}, s.WithAsset("a2"))
	assert.Equal(t, []string{"a1"}, s.WithAsset("a1"))
	assert.Equal(t, []string{"a1"}, []string(s.AssetHistory), "receiver untouched")
	assert.True(t, s.HasAsset("a1"))
	assert.False(t, s.HasAsset("a2"))
}

func TestSnapshots(t *testing.T) {
	email := "alice@x.com"
	note := "spare"

	assert.Equal(t, []string{}, AssigneeSnapshot(nil))
	assert.Equal(t, []string{email}, AssigneeSnapshot(&email))
	assert.Equal(t, []string{"ACTIVE", ""}, DetailsSnapshot("ACTIVE", nil))
	assert.Equal(t, []string{"LOST", note}, DetailsSnapshot("LOST", &note))
}

func TestNewChangeLogEntry(t *testing.T) {
	at := time.Date(2025, 1, 2, 15, 4, 5, 0, time.FixedZone("MSK", 3*3600))
	prev := []string{"x"}

	e := NewChangeLogEntry("admin@x.com", at, FieldAssignedTo, prev, nil)
	prev[0] = "mutated"

	assert.Equal(t, time.UTC, e.UpdatedAt.Location())
	assert.True(t, e.UpdatedAt.Equal(at))
	assert.Equal(t, []string{"x"}, e.PreviousValue)
	assert.NotNil(t, e.NewValue)
	assert.Empty(t, e.NewValue)
}

func TestAsset_IsAssigned(t *testing.T) {
	email := "alice@x.com"
	now := time.Now()

	assert.False(t, Asset{}.IsAssigned())
	assert.True(t, Asset{AssignedTo: &email, DateAssigned: &now}.IsAssigned())
}
