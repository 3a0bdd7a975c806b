// Package models defines the server-side domain types persisted in the
// database and rendered by the REST API.
package models

import (
	"fmt"

	"github.com/dmitrijs2005/taskcal/internal/common"
)

// TimeOfDay is the coarse slot a task belongs to within a day.
type TimeOfDay string

const (
	TimeOfDayMorning TimeOfDay = "Morning"
	TimeOfDayNoon    TimeOfDay = "Noon"
	TimeOfDayEvening TimeOfDay = "Evening"
	TimeOfDayNight   TimeOfDay = "Night"
	TimeOfDayAny     TimeOfDay = "Any"
)

// ParseTimeOfDay validates s. An empty string is not accepted here; callers
// decide the default.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	switch t := TimeOfDay(s); t {
	case TimeOfDayMorning, TimeOfDayNoon, TimeOfDayEvening, TimeOfDayNight, TimeOfDayAny:
		return t, nil
	}
	return "", fmt.Errorf("%w: timeOfDay must be one of Morning, Noon, Evening, Night, Any", common.ErrorValidation)
}

// EntryStatus tracks completion of a calendar entry.
type EntryStatus string

const (
	StatusPending   EntryStatus = "pending"
	StatusCompleted EntryStatus = "completed"
)

func ParseEntryStatus(s string) (EntryStatus, error) {
	switch st := EntryStatus(s); st {
	case StatusPending, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("%w: status must be pending or completed", common.ErrorValidation)
}
