package services

import (
	"fmt"
	"log"

	"askless/config"
	"askless/models"
	"askless/repository"

	"github.com/google/uuid"
)

// botNamespace is the fixed UUID namespace for deriving bot profile ids.
// Changing it would orphan every existing bot profile.
var botNamespace = uuid.MustParse("a7f8c2d4-3b61-4e09-9c55-1d2e8f4a6b03")

// BotProfileID derives the stable profile id for a personality key. The same
// key always maps to the same id, so repeated startups never create
// duplicate bot profiles.
func BotProfileID(key string) string {
	return uuid.NewSHA1(botNamespace, []byte("askless:bot:"+key)).String()
}

// ProfileService resolves contributor identities, creating profiles lazily on
// first contribution.
type ProfileService interface {
	ResolveProfile(id, username, avatarURL string, isAI bool) (*models.Profile, error)
	ResolveBotProfile(bot *config.BotPersonality) (*models.Profile, error)
	InitializeBots(bots []*config.BotPersonality) ([]models.Profile, error)
}

type profileService struct {
	repo repository.ProfileRepository
}

// NewProfileService creates a profile service instance.
func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) ResolveProfile(id, username, avatarURL string, isAI bool) (*models.Profile, error) {
	if id == "" {
		return nil, ErrNoIdentity
	}
	if username == "" {
		short := id
		if len(short) > 8 {
			short = short[:8]
		}
		username = "user_" + short
	}
	profile := &models.Profile{
		ID:        id,
		Username:  username,
		IsAI:      isAI,
		AvatarURL: avatarURL,
	}
	if err := s.repo.FirstOrCreate(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) ResolveBotProfile(bot *config.BotPersonality) (*models.Profile, error) {
	return s.ResolveProfile(BotProfileID(bot.Key), bot.Username, bot.AvatarURL, true)
}

// InitializeBots seeds a profile for every configured personality. Idempotent:
// a second run resolves the same deterministic ids and creates nothing new.
func (s *profileService) InitializeBots(bots []*config.BotPersonality) ([]models.Profile, error) {
	profiles := make([]models.Profile, 0, len(bots))
	for _, bot := range bots {
		profile, err := s.ResolveBotProfile(bot)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize bot '%s': %w", bot.Key, err)
		}
		profiles = append(profiles, *profile)
	}
	log.Printf("INFO: [ProfileService] Initialized %d bot profiles.", len(profiles))
	return profiles, nil
}
