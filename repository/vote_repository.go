package repository

import (
	"errors"
	"fmt"

	"askless/models"

	"gorm.io/gorm"
)

// VoteRepository defines the interface for interacting with vote data.
type VoteRepository interface {
	// FindByUserAndTarget returns (nil, nil) when the user has no vote on the
	// target. Exactly one of questionID/answerID is expected to be set.
	FindByUserAndTarget(userID string, questionID, answerID *uint) (*models.Vote, error)
	Create(vote *models.Vote) error
	Delete(id uint) error
	UpdateType(id uint, voteType models.VoteType) error
	CountByTarget(questionID, answerID *uint) (upvotes int64, downvotes int64, err error)
}

type voteRepository struct {
	db *gorm.DB
}

// NewVoteRepository creates a new instance of VoteRepository.
func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func targetScope(db *gorm.DB, questionID, answerID *uint) *gorm.DB {
	if questionID != nil {
		return db.Where("question_id = ?", *questionID)
	}
	return db.Where("answer_id = ?", *answerID)
}

func (r *voteRepository) FindByUserAndTarget(userID string, questionID, answerID *uint) (*models.Vote, error) {
	var vote models.Vote
	err := targetScope(r.db.Where("user_id = ?", userID), questionID, answerID).First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch vote for user %s: %w", userID, err)
	}
	return &vote, nil
}

func (r *voteRepository) Create(vote *models.Vote) error {
	if err := r.db.Create(vote).Error; err != nil {
		return fmt.Errorf("failed to create vote: %w", err)
	}
	return nil
}

func (r *voteRepository) Delete(id uint) error {
	if err := r.db.Delete(&models.Vote{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete vote %d: %w", id, err)
	}
	return nil
}

func (r *voteRepository) UpdateType(id uint, voteType models.VoteType) error {
	err := r.db.Model(&models.Vote{}).Where("id = ?", id).UpdateColumn("vote_type", voteType).Error
	if err != nil {
		return fmt.Errorf("failed to update vote %d: %w", id, err)
	}
	return nil
}

// CountByTarget derives the counts on read. A backing-store failure surfaces
// as an error, distinct from a target that simply has no votes yet.
func (r *voteRepository) CountByTarget(questionID, answerID *uint) (int64, int64, error) {
	var upvotes, downvotes int64
	base := r.db.Model(&models.Vote{})
	err := targetScope(base, questionID, answerID).
		Where("vote_type = ?", models.VoteTypeUp).
		Count(&upvotes).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count upvotes: %w", err)
	}
	base = r.db.Model(&models.Vote{})
	err = targetScope(base, questionID, answerID).
		Where("vote_type = ?", models.VoteTypeDown).
		Count(&downvotes).Error
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count downvotes: %w", err)
	}
	return upvotes, downvotes, nil
}
