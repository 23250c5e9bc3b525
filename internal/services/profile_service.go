package services

import (
	"context"
	"errors"

	"devconnector/internal/models"
	"devconnector/internal/repositories"
	"devconnector/internal/validation"

	"github.com/sirupsen/logrus"
)

// ProfileService handles profile upserts, experience entries and profile lookups.
type ProfileService struct {
	repo      repositories.ProfileRepository
	publisher EventPublisher
}

// NewProfileService creates a new ProfileService. publisher may be nil.
func NewProfileService(repo repositories.ProfileRepository, publisher EventPublisher) *ProfileService {
	return &ProfileService{
		repo:      repo,
		publisher: publisher,
	}
}

// UpsertProfile creates the caller's profile or merge-patches the supplied fields into it.
//
// A complete payload (handle, status and skills present) is written with a single
// insert-or-update keyed on the owner. A partial payload can only patch an existing
// profile; when there is none, the missing required fields are reported.
// A handle owned by another user aborts the request before anything is written.
func (s *ProfileService) UpsertProfile(ctx context.Context, userID string, in validation.ProfileInput) (*models.Profile, error) {
	if res := validation.ValidateProfileInput(in, true); !res.IsValid {
		return nil, &ValidationError{Errors: res.Errors}
	}

	profile, columns := profileFields(userID, in)

	if in.Handle != nil {
		owner, err := s.repo.GetByHandle(ctx, *in.Handle)
		switch {
		case err == nil && owner.UserID != userID:
			return nil, errHandleTaken
		case err != nil && !errors.Is(err, repositories.ErrNotFound):
			return nil, err
		}
	}

	var (
		saved *models.Profile
		err   error
	)
	required := validation.ValidateProfileInput(in, false)
	switch {
	case required.IsValid:
		saved, err = s.repo.Upsert(ctx, profile, columns)
	case len(columns) == 0:
		saved, err = s.repo.GetByUserID(ctx, userID)
	default:
		saved, err = s.repo.Patch(ctx, profile, columns)
	}
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, &ValidationError{Errors: required.Errors}
		case errors.Is(err, repositories.ErrDuplicate):
			return nil, errHandleTaken
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": userID, "handle": saved.Handle}).Info("profile saved")
	publish(s.publisher, EventProfileUpserted, map[string]interface{}{
		"profileID": saved.ID,
		"userID":    userID,
		"handle":    saved.Handle,
	})
	return saved, nil
}

// profileFields copies the supplied fields onto a Profile and lists their columns.
func profileFields(userID string, in validation.ProfileInput) (*models.Profile, []string) {
	profile := &models.Profile{UserID: userID}
	var columns []string
	if in.Handle != nil {
		profile.Handle = *in.Handle
		columns = append(columns, "handle")
	}
	if in.Company != nil {
		profile.Company = *in.Company
		columns = append(columns, "company")
	}
	if in.Website != nil {
		profile.Website = *in.Website
		columns = append(columns, "website")
	}
	if in.Location != nil {
		profile.Location = *in.Location
		columns = append(columns, "location")
	}
	if in.Status != nil {
		profile.Status = *in.Status
		columns = append(columns, "status")
	}
	if in.Skills != nil {
		profile.Skills = validation.SplitSkills(*in.Skills)
		columns = append(columns, "skills")
	}
	return profile, columns
}

// AddExperience prepends a new entry to the caller's experience list.
func (s *ProfileService) AddExperience(ctx context.Context, userID string, in validation.ExperienceInput) (*models.Profile, error) {
	if res := validation.ValidateExperienceInput(in); !res.IsValid {
		return nil, &ValidationError{Errors: res.Errors}
	}

	profile, err := s.GetCurrentProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	exp := &models.Experience{
		ProfileID: profile.ID,
		Title:     in.Title,
		Company:   in.Company,
		Location:  in.Location,
	}
	if err := s.repo.AddExperience(ctx, exp); err != nil {
		return nil, err
	}

	publish(s.publisher, EventExperienceAdded, map[string]interface{}{
		"profileID":    profile.ID,
		"experienceID": exp.ID,
	})
	return s.GetCurrentProfile(ctx, userID)
}

// RemoveExperience deletes one entry from the caller's experience list.
// An unknown experienceID leaves the profile unchanged and is not an error.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, experienceID string) (*models.Profile, error) {
	profile, err := s.GetCurrentProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	removed, err := s.repo.RemoveExperience(ctx, profile.ID, experienceID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return profile, nil
	}

	publish(s.publisher, EventExperienceRemoved, map[string]interface{}{
		"profileID":    profile.ID,
		"experienceID": experienceID,
	})
	return s.GetCurrentProfile(ctx, userID)
}

// GetCurrentProfile returns the profile owned by userID.
func (s *ProfileService) GetCurrentProfile(ctx context.Context, userID string) (*models.Profile, error) {
	profile, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errNoProfile
		}
		return nil, err
	}
	return profile, nil
}

// GetProfileByUserID is the public lookup by owner id.
func (s *ProfileService) GetProfileByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	return s.GetCurrentProfile(ctx, userID)
}

// GetProfileByHandle returns the profile with the given handle.
func (s *ProfileService) GetProfileByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	profile, err := s.repo.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errNoProfile
		}
		return nil, err
	}
	return profile, nil
}

// GetAllProfiles lists every profile.
func (s *ProfileService) GetAllProfiles(ctx context.Context) ([]models.Profile, error) {
	profiles, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, errNoProfiles
	}
	return profiles, nil
}
