package repositories

import (
	"context"

	"devconnector/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Delete removes the user together with the owned profile and its experience.
	Delete(ctx context.Context, id string) error
}
