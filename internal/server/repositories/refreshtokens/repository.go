// Package refreshtokens declares the repository contract for the
// server-stored refresh tokens behind the auth cookie.
package refreshtokens

import (
	"context"

	"github.com/dmitrijs2005/taskcal/internal/server/models"
)

// Repository is the storage contract for refresh tokens.
type Repository interface {
	// Create stores token for its user until token.Expires.
	Create(ctx context.Context, token *models.RefreshToken) error

	// Find returns the stored token or common.ErrorNotFound.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes the token; deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}
