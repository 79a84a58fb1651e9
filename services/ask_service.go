package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"askless/config"
	"askless/models"
	"askless/repository"
)

// AskRequest carries a question submission through the orchestrated flow.
type AskRequest struct {
	UserID    string
	Username  string
	AvatarURL string
	Title     string
	Question  string
	TagIDs    []uint
}

// AskService runs the question-submission state machine: resolve the asker,
// resolve tags, check for duplicates, persist the question and fan the
// question out to every configured bot personality.
type AskService interface {
	Ask(ctx context.Context, req AskRequest) (*models.AskResponse, error)
}

type askService struct {
	profiles   ProfileService
	tags       TagService
	duplicates DuplicateService
	questions  repository.QuestionRepository
	answers    repository.AnswerRepository
	generator  AnswerGenerator
	bots       []*config.BotPersonality
}

// NewAskService creates the ask orchestrator.
func NewAskService(
	profiles ProfileService,
	tags TagService,
	duplicates DuplicateService,
	questions repository.QuestionRepository,
	answers repository.AnswerRepository,
	generator AnswerGenerator,
	bots []*config.BotPersonality,
) AskService {
	return &askService{
		profiles:   profiles,
		tags:       tags,
		duplicates: duplicates,
		questions:  questions,
		answers:    answers,
		generator:  generator,
		bots:       bots,
	}
}

type botResult struct {
	bot     *config.BotPersonality
	profile *models.Profile
	content string
	err     error
}

func (s *askService) Ask(ctx context.Context, req AskRequest) (*models.AskResponse, error) {
	if req.Question == "" {
		return nil, errors.New("question cannot be empty")
	}

	// 1. Resolve asker identity.
	asker, err := s.profiles.ResolveProfile(req.UserID, req.Username, req.AvatarURL, false)
	if err != nil {
		return nil, err
	}

	// 2. Resolve tags: caller-supplied selection wins, otherwise ask the
	// model for suggestions. Both paths are best-effort; an empty tag set
	// never blocks question creation.
	tags := s.resolveRequestTags(ctx, req)
	tagNames := make([]string, 0, len(tags))
	for _, tag := range tags {
		tagNames = append(tagNames, tag.Name)
	}

	// 3. Duplicate check.
	duplicate, err := s.duplicates.FindDuplicate(tagNames)
	if err != nil {
		log.Printf("WARN: [AskService] Duplicate check failed, treating as no duplicate: %v", err)
		duplicate = nil
	}
	if duplicate != nil {
		return s.respondWithDuplicate(duplicate, tags)
	}

	// 4. Persist the question with its resolved tags.
	question := &models.Question{
		UserID:  asker.ID,
		Title:   req.Title,
		Content: req.Question,
		Status:  models.QuestionStatusOpen,
		Tags:    tags,
	}
	if question.Title == "" {
		question.Title = deriveTitle(req.Question)
	}
	if err := s.questions.Create(question); err != nil {
		return nil, err
	}

	// 5-6. Fan out to the personalities and persist the successes.
	results := s.fanOut(ctx, req.Question)
	persisted := make([]models.Answer, 0, len(results))
	var failures []error
	for _, result := range results {
		if result.err != nil {
			log.Printf("WARN: [AskService] Bot '%s' failed for question %d: %v", result.bot.Key, question.ID, result.err)
			failures = append(failures, result.err)
			continue
		}
		answer := models.Answer{
			QuestionID: question.ID,
			UserID:     result.profile.ID,
			Content:    result.content,
		}
		if err := s.answers.Create(&answer); err != nil {
			log.Printf("ERROR: [AskService] Failed to persist answer from bot '%s' for question %d: %v", result.bot.Key, question.ID, err)
			failures = append(failures, err)
			continue
		}
		answer.Author = result.profile
		persisted = append(persisted, answer)
	}

	// 7. Respond. Zero successful bots fails the whole request: the asker
	// would otherwise get nothing.
	if len(persisted) == 0 {
		return nil, fmt.Errorf("%w (question %d): %w", ErrAllBotsFailed, question.ID, dominantFailure(failures))
	}
	if err := s.questions.UpdateStatus(question.ID, models.QuestionStatusAnswered); err != nil {
		log.Printf("WARN: [AskService] Failed to mark question %d answered: %v", question.ID, err)
	} else {
		question.Status = models.QuestionStatusAnswered
	}

	log.Printf("INFO: [AskService] Question %d answered by %d/%d bots.", question.ID, len(persisted), len(s.bots))
	return &models.AskResponse{
		IsDuplicate:    false,
		Question:       question,
		Answers:        persisted,
		Tags:           tags,
		TotalBots:      len(s.bots),
		SuccessfulBots: len(persisted),
	}, nil
}

func (s *askService) resolveRequestTags(ctx context.Context, req AskRequest) []models.Tag {
	if len(req.TagIDs) > 0 {
		tags, err := s.tags.ResolveTagIDs(req.TagIDs)
		if err != nil {
			log.Printf("WARN: [AskService] Failed to resolve supplied tag ids, proceeding untagged: %v", err)
			return []models.Tag{}
		}
		return tags
	}
	suggested := s.tags.SuggestTags(ctx, req.Title, req.Question)
	if len(suggested) == 0 {
		return []models.Tag{}
	}
	tags, err := s.tags.ResolveTags(suggested)
	if err != nil {
		log.Printf("WARN: [AskService] Failed to resolve suggested tags, proceeding untagged: %v", err)
		return []models.Tag{}
	}
	return tags
}

// respondWithDuplicate serves the prior question's answers instead of
// generating new ones. The new question is not created.
func (s *askService) respondWithDuplicate(match *models.Question, tags []models.Tag) (*models.AskResponse, error) {
	if err := s.questions.IncrementSearchCount(match.ID); err != nil {
		log.Printf("WARN: [AskService] Failed to increment search count for question %d: %v", match.ID, err)
	}
	original, err := s.questions.GetByID(match.ID)
	if err != nil || original == nil {
		// Fall back to the bare match row rather than failing the request.
		log.Printf("WARN: [AskService] Failed to reload duplicate question %d: %v", match.ID, err)
		original = match
	}
	answers, err := s.answers.GetByQuestionID(match.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch answers for duplicate question %d: %w", match.ID, err)
	}
	log.Printf("INFO: [AskService] Duplicate hit: redirecting to question %d with %d answers.", match.ID, len(answers))
	return &models.AskResponse{
		IsDuplicate:      true,
		OriginalQuestion: original,
		Answers:          answers,
		Tags:             tags,
		TotalBots:        len(s.bots),
		SuccessfulBots:   0,
	}, nil
}

// fanOut issues one generation per personality concurrently and waits for
// every call to settle. One bot's failure never short-circuits the others.
func (s *askService) fanOut(ctx context.Context, question string) []botResult {
	results := make([]botResult, len(s.bots))
	var wg sync.WaitGroup
	for i, bot := range s.bots {
		wg.Add(1)
		go func(i int, bot *config.BotPersonality) {
			defer wg.Done()
			results[i] = s.generateFor(ctx, bot, question)
		}(i, bot)
	}
	wg.Wait()
	return results
}

func (s *askService) generateFor(ctx context.Context, bot *config.BotPersonality, question string) botResult {
	result := botResult{bot: bot}
	profile, err := s.profiles.ResolveBotProfile(bot)
	if err != nil {
		result.err = fmt.Errorf("failed to resolve profile for bot '%s': %w", bot.Key, err)
		return result
	}
	result.profile = profile

	if s.generator == nil {
		result.err = ErrInvalidCredential
		return result
	}
	content, err := s.generator.Generate(ctx, bot.SystemInstruction, question)
	if err != nil {
		result.err = err
		return result
	}
	result.content = content
	return result
}

// dominantFailure picks the most actionable error class out of the per-bot
// failures so the caller sees a credential problem before a generic one.
func dominantFailure(failures []error) error {
	if len(failures) == 0 {
		return errors.New("no bot personalities configured")
	}
	for _, sentinel := range []error{ErrInvalidCredential, ErrQuotaExhausted, ErrModelUnavailable} {
		for _, err := range failures {
			if errors.Is(err, sentinel) {
				return err
			}
		}
	}
	return failures[0]
}

func deriveTitle(question string) string {
	const maxTitle = 80
	if len(question) <= maxTitle {
		return question
	}
	return question[:maxTitle]
}
