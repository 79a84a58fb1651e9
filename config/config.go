package config

import (
	"log"
	"os"

	"github.com/spf13/viper"
)

// BotPersonality describes one of the fixed AI answerers. The Key is the
// stable identifier the bot's profile id is derived from; everything else is
// presentation and prompting.
type BotPersonality struct {
	Key               string `mapstructure:"key" json:"key"`
	Name              string `mapstructure:"name" json:"name"`
	Username          string `mapstructure:"username" json:"username"`
	SystemInstruction string `mapstructure:"system_instruction" json:"system_instruction"`
	AvatarURL         string `mapstructure:"avatar_url" json:"avatar_url"`
}

// LLMConfig holds the upstream model API settings. BaseURL may point at any
// OpenAI-compatible endpoint; ModelFallbacks is tried in order until one
// model produces an answer.
type LLMConfig struct {
	APIKey         string   `mapstructure:"api_key"`
	BaseURL        string   `mapstructure:"base_url"`
	ModelFallbacks []string `mapstructure:"model_fallbacks"`
}

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port          string `mapstructure:"port"`
		AllowedOrigin string `mapstructure:"allowed_origin"`
	} `mapstructure:"server"`
	Database struct {
		DSN string `mapstructure:"dsn"` // "memory" or a SQLite file path
	} `mapstructure:"database"`
	LLM LLMConfig `mapstructure:"llm"`

	// DuplicateTagThreshold is the number of shared tags that makes a new
	// question a duplicate of an existing one. The effective threshold is
	// min(threshold, number of tags on the incoming question).
	DuplicateTagThreshold int `mapstructure:"duplicate_tag_threshold"`

	Bots []*BotPersonality `mapstructure:"bots"`

	// Reveal and Poll tune the client-side sequencer. They are served from
	// config so the timing stays a knob, not a constant.
	Reveal struct {
		FirstDelayMs  int `mapstructure:"first_delay_ms"`
		MinIntervalMs int `mapstructure:"min_interval_ms"`
		MaxIntervalMs int `mapstructure:"max_interval_ms"`
	} `mapstructure:"reveal"`
	Poll struct {
		IntervalMs  int `mapstructure:"interval_ms"`
		MaxAttempts int `mapstructure:"max_attempts"`
	} `mapstructure:"poll"`
}

// AppConfig is the global configuration instance, populated by LoadConfig.
// Components receive the values they need explicitly at wiring time; only
// main reads this directly.
var AppConfig Config

// LoadConfig loads configuration from config.yaml and environment variables.
func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../config") // for running from locations like tests

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.allowed_origin", "*")
	viper.SetDefault("database.dsn", "memory")
	viper.SetDefault("llm.base_url", "")
	viper.SetDefault("llm.model_fallbacks", []string{"gpt-4o-mini", "gpt-3.5-turbo"})
	viper.SetDefault("duplicate_tag_threshold", 2)
	viper.SetDefault("reveal.first_delay_ms", 1500)
	viper.SetDefault("reveal.min_interval_ms", 2000)
	viper.SetDefault("reveal.max_interval_ms", 6000)
	viper.SetDefault("poll.interval_ms", 3000)
	viper.SetDefault("poll.max_attempts", 10)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("WARN: [Config] Configuration file (config.yaml) not found. Using environment variables and defaults.")
		} else {
			log.Fatalf("FATAL: [Config] Error reading configuration file: %v", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("FATAL: [Config] Failed to unmarshal configuration: %v", err)
	}

	// Environment variable overrides
	if port := os.Getenv("SERVER_PORT"); port != "" {
		AppConfig.Server.Port = port
		log.Printf("INFO: [Config] Server port overridden by SERVER_PORT: %s", port)
	}
	if origin := os.Getenv("ALLOWED_ORIGIN"); origin != "" {
		AppConfig.Server.AllowedOrigin = origin
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		AppConfig.Database.DSN = dsn
	}
	if key := os.Getenv("LLM_API_KEY"); key != "" {
		AppConfig.LLM.APIKey = key
		log.Println("INFO: [Config] LLM API key loaded from LLM_API_KEY.")
	}
	if baseURL := os.Getenv("LLM_BASE_URL"); baseURL != "" {
		AppConfig.LLM.BaseURL = baseURL
	}

	if AppConfig.LLM.APIKey == "" {
		log.Println("WARN: [Config] No LLM API key configured (LLM_API_KEY). Bot answer generation will fail until one is provided.")
	}

	if len(AppConfig.Bots) == 0 {
		AppConfig.Bots = DefaultBots()
		log.Printf("INFO: [Config] No bots configured, using the %d built-in personalities.", len(AppConfig.Bots))
	}
	log.Println("INFO: [Config] Configuration loading complete.")
}

// DefaultBots returns the five built-in answer personalities.
func DefaultBots() []*BotPersonality {
	return []*BotPersonality{
		{
			Key:      "professor",
			Name:     "Professor Byte",
			Username: "prof_byte",
			SystemInstruction: "You are Professor Byte, a meticulous computer science lecturer. " +
				"Answer the question thoroughly and step by step, define any term the asker might not know, " +
				"and finish with one caveat or common misconception. Stay formal but never condescending.",
		},
		{
			Key:      "straight_shooter",
			Name:     "Straight Shooter",
			Username: "no_fluff",
			SystemInstruction: "You are Straight Shooter. Give the shortest correct answer first, in one or two " +
				"sentences, then at most three bullet points of detail. No greetings, no hedging, no filler.",
		},
		{
			Key:      "skeptic",
			Name:     "The Skeptic",
			Username: "well_actually",
			SystemInstruction: "You are The Skeptic. Before answering, question whether the asker is solving the " +
				"right problem. Point out hidden assumptions, edge cases and failure modes, then give the answer " +
				"that survives your own objections.",
		},
		{
			Key:      "cheerleader",
			Name:     "Sunny",
			Username: "sunny_side",
			SystemInstruction: "You are Sunny, an endlessly encouraging mentor for beginners. Answer in plain, " +
				"friendly language, celebrate what the asker already got right, and suggest an easy next step " +
				"to build confidence.",
		},
		{
			Key:      "greybeard",
			Name:     "Grumpy Greybeard",
			Username: "greybeard",
			SystemInstruction: "You are Grumpy Greybeard, a sysadmin with thirty years of scars. Answer correctly " +
				"but grumble about how things were done before, drop one war story, and remind the asker to read " +
				"the documentation. Despite the tone, your advice is excellent.",
		},
	}
}
