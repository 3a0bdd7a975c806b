// Package sharelinks declares the repository contract for public share
// links. Tokens are unique across all owners.
package sharelinks

import (
	"context"

	"github.com/dmitrijs2005/taskcal/internal/server/models"
)

// Repository is the storage contract the share service depends on.
type Repository interface {
	// Create stores link and fills in its generated fields. A token that is
	// already taken yields common.ErrorAlreadyExists.
	Create(ctx context.Context, link *models.ShareLink) (*models.ShareLink, error)

	// FindActiveByToken returns common.ErrorNotFound both for unknown and
	// for deactivated tokens.
	FindActiveByToken(ctx context.Context, token string) (*models.ShareLink, error)

	ListByOwner(ctx context.Context, ownerID string) ([]*models.ShareLink, error)

	// Deactivate switches an owner's link off. Links are never deleted.
	Deactivate(ctx context.Context, token, ownerID string) error
}
