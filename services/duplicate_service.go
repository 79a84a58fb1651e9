package services

import (
	"fmt"
	"log"

	"askless/models"
	"askless/repository"
)

// DuplicateService finds prior questions with sufficient tag overlap against
// a new question's tags.
type DuplicateService interface {
	// FindDuplicate returns the best matching prior question, or (nil, nil)
	// when nothing overlaps enough. An empty tag list never matches.
	FindDuplicate(tagNames []string) (*models.Question, error)
}

type duplicateService struct {
	questionRepo repository.QuestionRepository
	tagRepo      repository.TagRepository
	threshold    int
}

// NewDuplicateService creates a duplicate detector with the given overlap
// threshold. The effective threshold for a request is
// min(threshold, len(tagNames)).
func NewDuplicateService(questionRepo repository.QuestionRepository, tagRepo repository.TagRepository, threshold int) DuplicateService {
	if threshold <= 0 {
		threshold = 2
	}
	return &duplicateService{
		questionRepo: questionRepo,
		tagRepo:      tagRepo,
		threshold:    threshold,
	}
}

func (s *duplicateService) FindDuplicate(tagNames []string) (*models.Question, error) {
	normalized := normalizeTagNames(tagNames)
	if len(normalized) == 0 {
		// An untagged question is never blocked by duplicate detection.
		return nil, nil
	}

	minOverlap := s.threshold
	if len(normalized) < minOverlap {
		minOverlap = len(normalized)
	}

	tags, err := s.tagRepo.FindByNames(normalized)
	if err != nil {
		return nil, fmt.Errorf("duplicate check failed to resolve tags: %w", err)
	}
	if len(tags) < minOverlap {
		// Not enough of the supplied tags even exist; no prior question can
		// reach the overlap.
		return nil, nil
	}

	tagIDs := make([]uint, 0, len(tags))
	for _, tag := range tags {
		tagIDs = append(tagIDs, tag.ID)
	}

	matches, err := s.questionRepo.FindByTagOverlap(tagIDs, minOverlap)
	if err != nil {
		return nil, fmt.Errorf("duplicate check failed: %w", err)
	}
	if len(matches) == 0 {
		return nil, nil
	}
	log.Printf("INFO: [DuplicateService] Found %d candidate duplicates for tags %v, top match question %d.", len(matches), normalized, matches[0].ID)
	return &matches[0], nil
}
