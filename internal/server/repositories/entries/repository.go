// Package entries declares the repository contract for calendar entries.
// Reads come back populated with the blueprint summary when the entry's
// blueprint still exists.
package entries

import (
	"context"

	"github.com/dmitrijs2005/taskcal/internal/server/models"
)

// Repository is the storage contract for calendar entries.
type Repository interface {
	// CountForDate returns how many entries ownerID has on date.
	CountForDate(ctx context.Context, ownerID string, date models.CalendarDate) (int, error)
	// Create inserts entry as given (order included) and sets its ID.
	Create(ctx context.Context, entry *models.CalendarEntry) error
	// ListByOwner returns every entry of ownerID sorted by display order.
	ListByOwner(ctx context.Context, ownerID string) ([]*models.CalendarEntry, error)
	Get(ctx context.Context, id, ownerID string) (*models.CalendarEntry, error)
	// Update applies the non-nil fields of patch.
	Update(ctx context.Context, id, ownerID string, patch models.EntryPatch) error
	Delete(ctx context.Context, id, ownerID string) error
}
