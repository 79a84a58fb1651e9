package repository

import (
	"errors"
	"fmt"
	"log"

	"askless/models"

	"gorm.io/gorm"
)

// ProfileRepository defines the interface for interacting with profile data.
type ProfileRepository interface {
	GetByID(id string) (*models.Profile, error) // (nil, nil) when not found
	FirstOrCreate(profile *models.Profile) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new instance of ProfileRepository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(id string) (*models.Profile, error) {
	if id == "" {
		return nil, errors.New("profile id cannot be empty")
	}
	var profile models.Profile
	err := r.db.First(&profile, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch profile %s: %w", id, err)
	}
	return &profile, nil
}

// FirstOrCreate resolves the profile by id, creating the row on first
// contribution. Repeat calls for the same id are no-ops; the passed struct is
// filled with the persisted values either way.
func (r *profileRepository) FirstOrCreate(profile *models.Profile) error {
	if profile.ID == "" {
		return errors.New("profile id cannot be empty")
	}
	attrs := models.Profile{
		Username:  profile.Username,
		IsAI:      profile.IsAI,
		AvatarURL: profile.AvatarURL,
	}
	err := r.db.Where(models.Profile{ID: profile.ID}).Attrs(attrs).FirstOrCreate(profile).Error
	if err != nil {
		log.Printf("ERROR: [ProfileRepository] FirstOrCreate failed for profile %s: %v", profile.ID, err)
		return fmt.Errorf("failed to resolve profile %s: %w", profile.ID, err)
	}
	return nil
}
