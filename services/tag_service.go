package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"askless/models"
	"askless/repository"
)

const maxSuggestedTags = 5

const tagSuggestionInstruction = "You label technical Q&A posts. Reply with up to five short, " +
	"lowercase tags for the question, comma separated, nothing else. " +
	"Example: css, html, flexbox"

// TagService maps free-text tag names to canonical tag records and suggests
// tags for untagged questions.
type TagService interface {
	// ResolveTags returns existing tags first, newly created ones appended.
	// A failure to create a subset of tags does not fail the call.
	ResolveTags(names []string) ([]models.Tag, error)
	// ResolveTagIDs returns the tags for the ids that exist; unknown ids are
	// silently dropped.
	ResolveTagIDs(ids []uint) ([]models.Tag, error)
	// SuggestTags is best-effort: any failure yields an empty list.
	SuggestTags(ctx context.Context, title, content string) []string
	List() ([]models.Tag, error)
}

type tagService struct {
	repo      repository.TagRepository
	generator AnswerGenerator // may be nil, which disables suggestions
}

// NewTagService creates a tag service instance.
func NewTagService(repo repository.TagRepository, generator AnswerGenerator) TagService {
	return &tagService{repo: repo, generator: generator}
}

// NormalizeTagName lowercases and trims a tag name.
func NormalizeTagName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func normalizeTagNames(names []string) []string {
	seen := make(map[string]bool, len(names))
	normalized := make([]string, 0, len(names))
	for _, name := range names {
		n := NormalizeTagName(name)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		normalized = append(normalized, n)
	}
	return normalized
}

func (s *tagService) ResolveTags(names []string) ([]models.Tag, error) {
	normalized := normalizeTagNames(names)
	if len(normalized) == 0 {
		return []models.Tag{}, nil
	}

	existing, err := s.repo.FindByNames(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tags: %w", err)
	}
	existingByName := make(map[string]bool, len(existing))
	for _, tag := range existing {
		existingByName[tag.Name] = true
	}

	resolved := existing
	for _, name := range normalized {
		if existingByName[name] {
			continue
		}
		tag := models.Tag{Name: name}
		if createErr := s.repo.Create(&tag); createErr != nil {
			// Partial failure tolerated: the caller gets whatever subset
			// succeeded.
			log.Printf("WARN: [TagService] Failed to create tag '%s', skipping: %v", name, createErr)
			continue
		}
		resolved = append(resolved, tag)
	}
	return resolved, nil
}

func (s *tagService) ResolveTagIDs(ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return []models.Tag{}, nil
	}
	tags, err := s.repo.FindByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tag ids: %w", err)
	}
	if len(tags) < len(ids) {
		log.Printf("WARN: [TagService] %d of %d requested tag ids do not exist, dropped.", len(ids)-len(tags), len(ids))
	}
	return tags, nil
}

func (s *tagService) SuggestTags(ctx context.Context, title, content string) []string {
	if s.generator == nil {
		return nil
	}
	question := content
	if title != "" {
		question = title + "\n\n" + content
	}
	raw, err := s.generator.Generate(ctx, tagSuggestionInstruction, question)
	if err != nil {
		log.Printf("WARN: [TagService] Tag suggestion failed, proceeding without tags: %v", err)
		return nil
	}
	return parseSuggestedTags(raw)
}

func (s *tagService) List() ([]models.Tag, error) {
	return s.repo.List()
}

func parseSuggestedTags(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	names := normalizeTagNames(fields)
	if len(names) > maxSuggestedTags {
		names = names[:maxSuggestedTags]
	}
	return names
}
