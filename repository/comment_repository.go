package repository

import (
	"fmt"

	"askless/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for interacting with comment data.
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByQuestionID(questionID uint) ([]models.Comment, error)
	GetByAnswerID(answerID uint) ([]models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new instance of CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *models.Comment) error {
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *commentRepository) GetByQuestionID(questionID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("question_id = ?", questionID).Order("created_at asc").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments for question %d: %w", questionID, err)
	}
	return comments, nil
}

func (r *commentRepository) GetByAnswerID(answerID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("answer_id = ?", answerID).Order("created_at asc").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments for answer %d: %w", answerID, err)
	}
	return comments, nil
}
