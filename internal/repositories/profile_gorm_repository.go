package repositories

import (
	"context"

	"devconnector/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProfileRepository is a GORM implementation of ProfileRepository.
type GORMProfileRepository struct {
	db *gorm.DB
}

// NewGORMProfileRepository creates a new instance of GORMProfileRepository.
func NewGORMProfileRepository(db *gorm.DB) *GORMProfileRepository {
	return &GORMProfileRepository{
		db: db,
	}
}

// populated preloads the owner's public fields and the experience list.
func (r *GORMProfileRepository) populated(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "created_at")
		}).
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq DESC")
		})
}

// GetByUserID retrieves the profile owned by userID.
func (r *GORMProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.populated(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, translate("get profile by user", err)
	}
	return &profile, nil
}

// GetByHandle retrieves the profile with the given handle.
func (r *GORMProfileRepository) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	var profile models.Profile
	if err := r.populated(ctx).First(&profile, "handle = ?", handle).Error; err != nil {
		return nil, translate("get profile by handle", err)
	}
	return &profile, nil
}

// GetAll retrieves every profile, oldest first.
func (r *GORMProfileRepository) GetAll(ctx context.Context) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.populated(ctx).Order("created_at ASC").Find(&profiles).Error; err != nil {
		return nil, translate("get all profiles", err)
	}
	return profiles, nil
}

// Upsert issues INSERT ... ON CONFLICT (user_id) DO UPDATE SET <columns>.
// A concurrent create for the same user therefore turns into an update instead of a second row.
func (r *GORMProfileRepository) Upsert(ctx context.Context, profile *models.Profile, columns []string) (*models.Profile, error) {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	if profile.Skills == nil {
		profile.Skills = []string{}
	}

	updates := make([]string, 0, len(columns)+1)
	updates = append(updates, columns...)
	updates = append(updates, "updated_at")

	err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns(updates),
		}).
		Create(profile).Error
	if err != nil {
		return nil, translate("upsert profile", err)
	}
	return r.GetByUserID(ctx, profile.UserID)
}

// Patch updates only the given columns, zero values included.
func (r *GORMProfileRepository) Patch(ctx context.Context, profile *models.Profile, columns []string) (*models.Profile, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("user_id = ?", profile.UserID).
		Select(columns).
		Updates(profile)
	if res.Error != nil {
		return nil, translate("patch profile", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByUserID(ctx, profile.UserID)
}

// AddExperience inserts exp, generating its ID when empty.
func (r *GORMProfileRepository) AddExperience(ctx context.Context, exp *models.Experience) error {
	if exp.ID == "" {
		exp.ID = uuid.New().String()
	}
	return translate("add experience", r.db.WithContext(ctx).Create(exp).Error)
}

// RemoveExperience deletes the entry only if it belongs to profileID.
func (r *GORMProfileRepository) RemoveExperience(ctx context.Context, profileID, experienceID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", experienceID, profileID).
		Delete(&models.Experience{})
	if res.Error != nil {
		return false, translate("remove experience", res.Error)
	}
	return res.RowsAffected > 0, nil
}
