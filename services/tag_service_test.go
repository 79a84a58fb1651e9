package services

import (
	"context"
	"errors"
	"testing"

	"askless/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTagRepository is a mock type for the TagRepository interface.
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) FindByNames(names []string) ([]models.Tag, error) {
	args := m.Called(names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockTagRepository) FindByIDs(ids []uint) ([]models.Tag, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockTagRepository) List() ([]models.Tag, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockTagRepository) Create(tag *models.Tag) error {
	args := m.Called(tag)
	return args.Error(0)
}

// MockGenerator is a mock type for the AnswerGenerator interface.
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, systemInstruction string, question string) (string, error) {
	args := m.Called(ctx, systemInstruction, question)
	return args.String(0), args.Error(1)
}

func TestTagService_ResolveTags(t *testing.T) {
	t.Run("Existing tags first, created ones appended", func(t *testing.T) {
		mockRepo := new(MockTagRepository)
		service := NewTagService(mockRepo, nil)

		existing := []models.Tag{{ID: 1, Name: "css"}}
		mockRepo.On("FindByNames", []string{"css", "html"}).Return(existing, nil).Once()
		mockRepo.On("Create", mock.MatchedBy(func(tag *models.Tag) bool {
			return tag.Name == "html"
		})).Run(func(args mock.Arguments) {
			args.Get(0).(*models.Tag).ID = 2
		}).Return(nil).Once()

		tags, err := service.ResolveTags([]string{"css", "html"})

		assert.NoError(t, err)
		assert.Len(t, tags, 2)
		assert.Equal(t, "css", tags[0].Name)
		assert.Equal(t, "html", tags[1].Name)
		assert.Equal(t, uint(2), tags[1].ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Names are case-normalized and deduplicated", func(t *testing.T) {
		mockRepo := new(MockTagRepository)
		service := NewTagService(mockRepo, nil)

		mockRepo.On("FindByNames", []string{"css", "html"}).Return([]models.Tag{}, nil).Once()
		mockRepo.On("Create", mock.AnythingOfType("*models.Tag")).Return(nil).Twice()

		tags, err := service.ResolveTags([]string{" CSS ", "css", "", "Html"})

		assert.NoError(t, err)
		assert.Len(t, tags, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Partial creation failure returns the surviving subset", func(t *testing.T) {
		mockRepo := new(MockTagRepository)
		service := NewTagService(mockRepo, nil)

		mockRepo.On("FindByNames", []string{"css", "html"}).Return([]models.Tag{}, nil).Once()
		mockRepo.On("Create", mock.MatchedBy(func(tag *models.Tag) bool {
			return tag.Name == "css"
		})).Return(errors.New("constraint violation")).Once()
		mockRepo.On("Create", mock.MatchedBy(func(tag *models.Tag) bool {
			return tag.Name == "html"
		})).Return(nil).Once()

		tags, err := service.ResolveTags([]string{"css", "html"})

		assert.NoError(t, err)
		assert.Len(t, tags, 1)
		assert.Equal(t, "html", tags[0].Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty input resolves to an empty set without repo calls", func(t *testing.T) {
		mockRepo := new(MockTagRepository)
		service := NewTagService(mockRepo, nil)

		tags, err := service.ResolveTags([]string{"  ", ""})

		assert.NoError(t, err)
		assert.Empty(t, tags)
		mockRepo.AssertNotCalled(t, "FindByNames", mock.Anything)
	})
}

func TestTagService_SuggestTags(t *testing.T) {
	t.Run("Parses, normalizes and caps the model output", func(t *testing.T) {
		mockRepo := new(MockTagRepository)
		mockGen := new(MockGenerator)
		service := NewTagService(mockRepo, mockGen)

		mockGen.On("Generate", mock.Anything, tagSuggestionInstruction, mock.Anything).
			Return("CSS, html, Flexbox\nlayout, centering, extra-one, extra-two", nil).Once()

		names := service.SuggestTags(context.Background(), "How do I center a div?", "I tried margin auto.")

		assert.Equal(t, []string{"css", "html", "flexbox", "layout", "centering"}, names)
		mockGen.AssertExpectations(t)
	})

	t.Run("Generation failure yields an empty list", func(t *testing.T) {
		mockRepo := new(MockTagRepository)
		mockGen := new(MockGenerator)
		service := NewTagService(mockRepo, mockGen)

		mockGen.On("Generate", mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("upstream down")).Once()

		names := service.SuggestTags(context.Background(), "", "anything")

		assert.Empty(t, names)
		mockGen.AssertExpectations(t)
	})

	t.Run("Nil generator disables suggestions", func(t *testing.T) {
		service := NewTagService(new(MockTagRepository), nil)
		assert.Empty(t, service.SuggestTags(context.Background(), "", "anything"))
	})
}
