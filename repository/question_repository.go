package repository

import (
	"errors"
	"fmt"
	"log"

	"askless/models"

	"gorm.io/gorm"
)

// QuestionRepository defines the interface for interacting with question data.
type QuestionRepository interface {
	Create(question *models.Question) error
	GetByID(id uint) (*models.Question, error) // (nil, nil) when not found
	List(limit int) ([]models.Question, error)
	TopSearched(limit int) ([]models.Question, error)
	IncrementSearchCount(id uint) error
	UpdateStatus(id uint, status models.QuestionStatus) error
	// FindByTagOverlap returns questions sharing at least minOverlap of the
	// given tags, most overlapping first, then most recent.
	FindByTagOverlap(tagIDs []uint, minOverlap int) ([]models.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository creates a new instance of QuestionRepository.
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

// Create persists the question together with its tag associations. A failure
// to link a subset of tags does not fail the question itself.
func (r *questionRepository) Create(question *models.Question) error {
	if err := r.db.Omit("Tags", "Answers").Create(question).Error; err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	if len(question.Tags) > 0 {
		if err := r.db.Model(question).Association("Tags").Append(question.Tags); err != nil {
			// Tolerated: the question exists, some tag links may be missing.
			log.Printf("WARN: [QuestionRepository] Failed to link %d tags to question %d: %v", len(question.Tags), question.ID, err)
		}
	}
	return nil
}

func (r *questionRepository) GetByID(id uint) (*models.Question, error) {
	var question models.Question
	err := r.db.Preload("Tags").Preload("Answers").Preload("Answers.Author").First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch question %d: %w", id, err)
	}
	return &question, nil
}

func (r *questionRepository) List(limit int) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.Preload("Tags").Order("created_at desc").Limit(limit).Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

func (r *questionRepository) TopSearched(limit int) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.Preload("Tags").
		Where("search_count > 0").
		Order("search_count desc, created_at desc").
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list top searched questions: %w", err)
	}
	return questions, nil
}

// IncrementSearchCount bumps the duplicate-hit counter in place so two
// concurrent hits both count.
func (r *questionRepository) IncrementSearchCount(id uint) error {
	err := r.db.Model(&models.Question{}).
		Where("id = ?", id).
		UpdateColumn("search_count", gorm.Expr("search_count + ?", 1)).Error
	if err != nil {
		return fmt.Errorf("failed to increment search count for question %d: %w", id, err)
	}
	return nil
}

func (r *questionRepository) UpdateStatus(id uint, status models.QuestionStatus) error {
	err := r.db.Model(&models.Question{}).
		Where("id = ?", id).
		UpdateColumn("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to update status for question %d: %w", id, err)
	}
	return nil
}

func (r *questionRepository) FindByTagOverlap(tagIDs []uint, minOverlap int) ([]models.Question, error) {
	if len(tagIDs) == 0 || minOverlap <= 0 {
		return []models.Question{}, nil
	}
	var questions []models.Question
	err := r.db.
		Joins("JOIN question_tags qt ON qt.question_id = questions.id").
		Where("qt.tag_id IN ?", tagIDs).
		Group("questions.id").
		Having("COUNT(DISTINCT qt.tag_id) >= ?", minOverlap).
		Order("COUNT(DISTINCT qt.tag_id) DESC, questions.created_at DESC").
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search questions by tag overlap: %w", err)
	}
	return questions, nil
}
