package services

import (
	"log"

	"askless/models"
	"askless/repository"
)

// VoteService implements toggle-vote semantics over exactly one target.
type VoteService interface {
	// CreateOrToggle returns the resulting vote, or (nil, nil) when an
	// existing vote of the same type was toggled off.
	CreateOrToggle(userID string, questionID, answerID *uint, voteType models.VoteType) (*models.Vote, error)
	Counts(questionID, answerID *uint) (*models.VoteCounts, error)
}

type voteService struct {
	repo repository.VoteRepository
}

// NewVoteService creates a vote service instance.
func NewVoteService(repo repository.VoteRepository) VoteService {
	return &voteService{repo: repo}
}

func validateTarget(questionID, answerID *uint) error {
	if (questionID == nil) == (answerID == nil) {
		return ErrInvalidVoteTarget
	}
	return nil
}

func (s *voteService) CreateOrToggle(userID string, questionID, answerID *uint, voteType models.VoteType) (*models.Vote, error) {
	if userID == "" {
		return nil, ErrNoIdentity
	}
	if err := validateTarget(questionID, answerID); err != nil {
		return nil, err
	}
	if voteType != models.VoteTypeUp && voteType != models.VoteTypeDown {
		return nil, ErrInvalidVoteType
	}

	existing, err := s.repo.FindByUserAndTarget(userID, questionID, answerID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		vote := &models.Vote{
			UserID:     userID,
			QuestionID: questionID,
			AnswerID:   answerID,
			VoteType:   voteType,
		}
		if err := s.repo.Create(vote); err != nil {
			return nil, err
		}
		return vote, nil
	}

	if existing.VoteType == voteType {
		// Same type again toggles the vote off.
		if err := s.repo.Delete(existing.ID); err != nil {
			return nil, err
		}
		log.Printf("INFO: [VoteService] Toggled off vote %d for user %s.", existing.ID, userID)
		return nil, nil
	}

	// Different type overwrites in place. A race between two votes from the
	// same user is last-write-wins.
	if err := s.repo.UpdateType(existing.ID, voteType); err != nil {
		return nil, err
	}
	existing.VoteType = voteType
	return existing, nil
}

func (s *voteService) Counts(questionID, answerID *uint) (*models.VoteCounts, error) {
	if err := validateTarget(questionID, answerID); err != nil {
		return nil, err
	}
	upvotes, downvotes, err := s.repo.CountByTarget(questionID, answerID)
	if err != nil {
		return nil, err
	}
	return &models.VoteCounts{
		Upvotes:   upvotes,
		Downvotes: downvotes,
		Score:     upvotes - downvotes,
	}, nil
}
