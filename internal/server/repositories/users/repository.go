// Package users declares the repository contract for account records.
package users

import (
	"context"

	"github.com/dmitrijs2005/taskcal/internal/server/models"
)

// Repository is the storage contract for user accounts.
type Repository interface {
	// Create stores a new user and fills in its generated fields. A taken
	// email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
