package models

import "time"

// DefaultBlueprintColor is used when a blueprint is created without a color.
const DefaultBlueprintColor = "#3b82f6"

// Blueprint is a reusable task template owned by one user.
type Blueprint struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner"`
	Title       string    `json:"title"`
	Description *string   `json:"defaultDescription"`
	Color       string    `json:"color"`
	TimeOfDay   TimeOfDay `json:"timeOfDay"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BlueprintPatch lists the fields a blueprint edit may change; nil means
// "leave as is".
type BlueprintPatch struct {
	Title       *string
	Description *string
	Color       *string
	TimeOfDay   *TimeOfDay
}
