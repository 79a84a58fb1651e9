package services

import (
	"errors"
	"testing"

	"askless/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockVoteRepository is a mock type for the VoteRepository interface.
type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) FindByUserAndTarget(userID string, questionID, answerID *uint) (*models.Vote, error) {
	args := m.Called(userID, questionID, answerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vote), args.Error(1)
}

func (m *MockVoteRepository) Create(vote *models.Vote) error {
	args := m.Called(vote)
	return args.Error(0)
}

func (m *MockVoteRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockVoteRepository) UpdateType(id uint, voteType models.VoteType) error {
	args := m.Called(id, voteType)
	return args.Error(0)
}

func (m *MockVoteRepository) CountByTarget(questionID, answerID *uint) (int64, int64, error) {
	args := m.Called(questionID, answerID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func uintPtr(v uint) *uint { return &v }

func TestVoteService_CreateOrToggle(t *testing.T) {
	questionID := uintPtr(42)

	t.Run("First vote is inserted", func(t *testing.T) {
		mockRepo := new(MockVoteRepository)
		service := NewVoteService(mockRepo)

		mockRepo.On("FindByUserAndTarget", "u1", questionID, (*uint)(nil)).Return(nil, nil).Once()
		mockRepo.On("Create", mock.MatchedBy(func(v *models.Vote) bool {
			return v.UserID == "u1" && v.QuestionID == questionID && v.VoteType == models.VoteTypeUp
		})).Run(func(args mock.Arguments) {
			args.Get(0).(*models.Vote).ID = 1
		}).Return(nil).Once()

		vote, err := service.CreateOrToggle("u1", questionID, nil, models.VoteTypeUp)

		assert.NoError(t, err)
		assert.NotNil(t, vote)
		assert.Equal(t, uint(1), vote.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Same type again toggles the vote off", func(t *testing.T) {
		mockRepo := new(MockVoteRepository)
		service := NewVoteService(mockRepo)

		existing := &models.Vote{ID: 9, UserID: "u1", QuestionID: questionID, VoteType: models.VoteTypeUp}
		mockRepo.On("FindByUserAndTarget", "u1", questionID, (*uint)(nil)).Return(existing, nil).Once()
		mockRepo.On("Delete", uint(9)).Return(nil).Once()

		vote, err := service.CreateOrToggle("u1", questionID, nil, models.VoteTypeUp)

		assert.NoError(t, err)
		assert.Nil(t, vote)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Opposite type overwrites in place", func(t *testing.T) {
		mockRepo := new(MockVoteRepository)
		service := NewVoteService(mockRepo)

		existing := &models.Vote{ID: 9, UserID: "u1", QuestionID: questionID, VoteType: models.VoteTypeUp}
		mockRepo.On("FindByUserAndTarget", "u1", questionID, (*uint)(nil)).Return(existing, nil).Once()
		mockRepo.On("UpdateType", uint(9), models.VoteTypeDown).Return(nil).Once()

		vote, err := service.CreateOrToggle("u1", questionID, nil, models.VoteTypeDown)

		assert.NoError(t, err)
		assert.Equal(t, models.VoteTypeDown, vote.VoteType)
		assert.Equal(t, uint(9), vote.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing identity is rejected", func(t *testing.T) {
		service := NewVoteService(new(MockVoteRepository))

		vote, err := service.CreateOrToggle("", questionID, nil, models.VoteTypeUp)

		assert.ErrorIs(t, err, ErrNoIdentity)
		assert.Nil(t, vote)
	})

	t.Run("Both targets set is rejected", func(t *testing.T) {
		service := NewVoteService(new(MockVoteRepository))

		_, err := service.CreateOrToggle("u1", questionID, uintPtr(7), models.VoteTypeUp)

		assert.ErrorIs(t, err, ErrInvalidVoteTarget)
	})

	t.Run("Neither target set is rejected", func(t *testing.T) {
		service := NewVoteService(new(MockVoteRepository))

		_, err := service.CreateOrToggle("u1", nil, nil, models.VoteTypeUp)

		assert.ErrorIs(t, err, ErrInvalidVoteTarget)
	})

	t.Run("Unknown vote type is rejected", func(t *testing.T) {
		service := NewVoteService(new(MockVoteRepository))

		_, err := service.CreateOrToggle("u1", questionID, nil, models.VoteType("sideways"))

		assert.ErrorIs(t, err, ErrInvalidVoteType)
	})

	t.Run("Repository failure propagates unchanged", func(t *testing.T) {
		mockRepo := new(MockVoteRepository)
		service := NewVoteService(mockRepo)

		dbErr := errors.New("db gone")
		mockRepo.On("FindByUserAndTarget", "u1", questionID, (*uint)(nil)).Return(nil, dbErr).Once()

		vote, err := service.CreateOrToggle("u1", questionID, nil, models.VoteTypeUp)

		assert.Nil(t, vote)
		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrInvalidVoteTarget)
	})
}

func TestVoteService_Counts(t *testing.T) {
	answerID := uintPtr(7)

	t.Run("Score is upvotes minus downvotes", func(t *testing.T) {
		mockRepo := new(MockVoteRepository)
		service := NewVoteService(mockRepo)

		mockRepo.On("CountByTarget", (*uint)(nil), answerID).Return(int64(5), int64(2), nil).Once()

		counts, err := service.Counts(nil, answerID)

		assert.NoError(t, err)
		assert.Equal(t, int64(5), counts.Upvotes)
		assert.Equal(t, int64(2), counts.Downvotes)
		assert.Equal(t, int64(3), counts.Score)
	})

	t.Run("Invalid target is rejected", func(t *testing.T) {
		service := NewVoteService(new(MockVoteRepository))

		counts, err := service.Counts(nil, nil)

		assert.ErrorIs(t, err, ErrInvalidVoteTarget)
		assert.Nil(t, counts)
	})
}
