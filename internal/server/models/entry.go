package models

// BlueprintSummary is the part of a blueprint shown next to an entry.
type BlueprintSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}

// CalendarEntry is a blueprint placed on a date.
//
// BlueprintID keeps whatever id the entry was created with, even after the
// blueprint is deleted. Blueprint is nil whenever that id no longer resolves.
type CalendarEntry struct {
	ID                string            `json:"id"`
	OwnerID           string            `json:"owner"`
	BlueprintID       *string           `json:"blueprintId"`
	Blueprint         *BlueprintSummary `json:"blueprint"`
	Date              CalendarDate      `json:"date"`
	Status            EntryStatus       `json:"status"`
	CustomDescription *string           `json:"customDescription"`
	Order             int               `json:"order"`
	TimeOfDay         TimeOfDay         `json:"timeOfDay"`
}

// Title returns the resolved blueprint title, or nil for a dangling
// reference.
func (e *CalendarEntry) Title() *string {
	if e.Blueprint == nil {
		return nil
	}
	title := e.Blueprint.Title
	return &title
}

// Color returns the resolved blueprint color, or nil for a dangling
// reference.
func (e *CalendarEntry) Color() *string {
	if e.Blueprint == nil {
		return nil
	}
	color := e.Blueprint.Color
	return &color
}

// EntryPatch is a partial update: nil fields are left untouched.
type EntryPatch struct {
	Status            *EntryStatus
	Date              *CalendarDate
	Order             *int
	TimeOfDay         *TimeOfDay
	CustomDescription *string
}
