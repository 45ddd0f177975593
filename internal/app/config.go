package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultAPIBaseURL is the public Clash of Clans API root
	DefaultAPIBaseURL = "https://api.clashofclans.com/v1"
	// DefaultWarFetchConcurrency bounds parallel war lookups per command
	DefaultWarFetchConcurrency = 4
)

// Config holds application configuration. It is built once at startup and
// treated as read-only afterwards.
type Config struct {
	DiscordBotToken     string
	CocAPIToken         string
	ClanTag             string
	APIBaseURL          string
	WarFetchConcurrency int
	MessagesDir         string
}

// SetupEnvironment loads .env file and configures zerolog output and log level.
func SetupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	levelStr := strings.ToLower(os.Getenv("LOGLEVEL"))
	switch levelStr {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "":
		if os.Getenv("ENV") == "production" {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	apiToken := strings.TrimSpace(os.Getenv("COC_API_TOKEN"))
	if apiToken == "" {
		return nil, fmt.Errorf("COC_API_TOKEN environment variable is required")
	}

	clanTag, err := NormalizeTag(os.Getenv("CLAN_TAG"))
	if err != nil {
		return nil, fmt.Errorf("CLAN_TAG environment variable is invalid: %w", err)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(os.Getenv("COC_API_BASE_URL")), "/")
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}

	concurrency := DefaultWarFetchConcurrency
	if v := strings.TrimSpace(os.Getenv("WAR_FETCH_CONCURRENCY")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("WAR_FETCH_CONCURRENCY must be a positive integer, got %q", v)
		}
		concurrency = n
	}

	return &Config{
		DiscordBotToken:     strings.TrimSpace(os.Getenv("DISCORD_BOT_TOKEN")),
		CocAPIToken:         apiToken,
		ClanTag:             clanTag,
		APIBaseURL:          baseURL,
		WarFetchConcurrency: concurrency,
		MessagesDir:         strings.TrimSpace(os.Getenv("MESSAGES_DIR")),
	}, nil
}

// NormalizeTag trims and upper-cases a clan or war tag. Tags must start with '#'.
func NormalizeTag(tag string) (string, error) {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	if tag == "" {
		return "", fmt.Errorf("tag is empty")
	}
	if !strings.HasPrefix(tag, "#") || len(tag) == 1 {
		return "", fmt.Errorf("tag %q must start with '#'", tag)
	}
	return tag, nil
}
