package repository

import (
	"fmt"

	"askless/models"

	"gorm.io/gorm"
)

// TagRepository defines the interface for interacting with tag data.
type TagRepository interface {
	FindByNames(names []string) ([]models.Tag, error)
	FindByIDs(ids []uint) ([]models.Tag, error)
	List() ([]models.Tag, error)
	Create(tag *models.Tag) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new instance of TagRepository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) FindByNames(names []string) ([]models.Tag, error) {
	if len(names) == 0 {
		return []models.Tag{}, nil
	}
	var tags []models.Tag
	if err := r.db.Where("name IN ?", names).Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tags by name: %w", err)
	}
	return tags, nil
}

func (r *tagRepository) FindByIDs(ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	var tags []models.Tag
	if err := r.db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch tags by id: %w", err)
	}
	return tags, nil
}

func (r *tagRepository) List() ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Order("name asc").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

func (r *tagRepository) Create(tag *models.Tag) error {
	if err := r.db.Create(tag).Error; err != nil {
		return fmt.Errorf("failed to create tag '%s': %w", tag.Name, err)
	}
	return nil
}
