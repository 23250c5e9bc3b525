package repositories

import (
	"context"

	"devconnector/internal/models"
)

// ProfileRepository defines the interface for profile data access.
// Reads return the profile with its owner name and experience (newest first) populated.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	GetByHandle(ctx context.Context, handle string) (*models.Profile, error)
	GetAll(ctx context.Context) ([]models.Profile, error)

	// Upsert inserts profile, or when profile.UserID already owns a profile,
	// overwrites only the given columns of it. It is a single statement.
	Upsert(ctx context.Context, profile *models.Profile, columns []string) (*models.Profile, error)
	// Patch updates the given columns of the profile owned by profile.UserID.
	// It returns ErrNotFound when the user has no profile.
	Patch(ctx context.Context, profile *models.Profile, columns []string) (*models.Profile, error)

	AddExperience(ctx context.Context, exp *models.Experience) error
	// RemoveExperience reports whether an entry was deleted.
	RemoveExperience(ctx context.Context, profileID, experienceID string) (bool, error)
}
