// Package blueprints declares the repository contract for task blueprints.
// Every lookup is scoped by owner, so a foreign id behaves like a missing one.
package blueprints

import (
	"context"

	"github.com/dmitrijs2005/taskcal/internal/server/models"
)

// Repository is the storage contract for task blueprints.
type Repository interface {
	Create(ctx context.Context, bp *models.Blueprint) (*models.Blueprint, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*models.Blueprint, error)
	Get(ctx context.Context, id, ownerID string) (*models.Blueprint, error)
	Update(ctx context.Context, id, ownerID string, patch models.BlueprintPatch) (*models.Blueprint, error)
	Delete(ctx context.Context, id, ownerID string) error
}
