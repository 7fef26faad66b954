package models

import "time"

// Имена полей, которые пишутся в updatedField.
const (
	FieldAssignedTo       = "assignedTo"
	FieldAssetHistoryList = "assetHistoryList"
	FieldStatusAndNote    = "status and note"
)

// Маркеры для записей о снятии назначения.
const (
	AssignmentClearedMarker = "EMPTY - asset unassigned, assignment date cleared"
	AssetRemovedPrefix      = "REMOVED "
)

// ChangeLogEntry: одна запись журнала изменений, встроенного в актив или сотрудника.
// previousValue/newValue всегда массивы строк, независимо от поля.
type ChangeLogEntry struct {
	UpdatedBy     string    `json:"updatedBy"`
	UpdatedAt     time.Time `json:"updatedAt"`
	UpdatedField  string    `json:"updatedField"`
	PreviousValue []string  `json:"previousValue"`
	NewValue      []string  `json:"newValue"`
}

func NewChangeLogEntry(updatedBy string, at time.Time, field string, prev, next []string) ChangeLogEntry {
	return ChangeLogEntry{
		UpdatedBy:     updatedBy,
		UpdatedAt:     at.UTC(),
		UpdatedField:  field,
		PreviousValue: nonNil(prev),
		NewValue:      nonNil(next),
	}
}

// AssigneeSnapshot: [] если актив свободен, иначе [email].
func AssigneeSnapshot(assignee *string) []string {
	if assignee == nil {
		return []string{}
	}
	return []string{*assignee}
}

func DetailsSnapshot(status string, note *string) []string {
	if note == nil {
		return []string{status, ""}
	}
	return []string{status, *note}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
