package repository

import (
	"fmt"

	"askless/models"

	"gorm.io/gorm"
)

// AnswerRepository defines the interface for interacting with answer data.
type AnswerRepository interface {
	Create(answer *models.Answer) error
	GetByQuestionID(questionID uint) ([]models.Answer, error)
}

type answerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository creates a new instance of AnswerRepository.
func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) Create(answer *models.Answer) error {
	if err := r.db.Omit("Author").Create(answer).Error; err != nil {
		return fmt.Errorf("failed to create answer for question %d: %w", answer.QuestionID, err)
	}
	return nil
}

func (r *answerRepository) GetByQuestionID(questionID uint) ([]models.Answer, error) {
	var answers []models.Answer
	err := r.db.Preload("Author").
		Where("question_id = ?", questionID).
		Order("created_at asc").
		Find(&answers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch answers for question %d: %w", questionID, err)
	}
	return answers, nil
}
