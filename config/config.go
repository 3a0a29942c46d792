package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"lessonplan/pkg/apperr"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

type AppConfig struct {
	Port    string
	DBPath  string
	LogMode string

	LLMProvider    string
	LLMEndpoint    string
	LLMAPIKey      string
	LLMModel       string
	LLMTemperature float32

	SkillsCSV      string
	DescriptorsCSV string
	RefDataXLSX    string

	MaxUploadBytes      int64
	FetchAllowedDomains []string
	FetchMaxBytes       int64
}

func Load() AppConfig { return LoadWith(nil) }

// LoadWith is Load with a few variables forced, e.g. from command line flags.
// Empty override values are ignored.
func LoadWith(overrides map[string]string) AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[cfg] error loading .env: %v", err)
	}
	return FromEnv(func(k string) string {
		if v := overrides[k]; v != "" {
			return v
		}
		return os.Getenv(k)
	})
}

// FromEnv builds the config from a lookup function so tests can feed a map.
func FromEnv(getenv func(string) string) AppConfig {
	get := func(k, def string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return def
	}
	provider := strings.ToLower(get("LLM_PROVIDER", ProviderGemini))

	// the Gemini backend accepts the key under its own name or the generic one
	key := get("LLM_API_KEY", "")
	if provider == ProviderGemini {
		key = get("GEMINI_API_KEY", get("API_KEY", key))
	}
	model := get("LLM_MODEL", "")
	if model == "" {
		switch provider {
		case ProviderOpenAI:
			model = "gpt-4o-mini"
		default:
			model = "gemini-2.5-flash"
		}
	}

	temp := float32(0.2)
	if v, err := strconv.ParseFloat(get("LLM_TEMPERATURE", ""), 32); err == nil && v >= 0 {
		temp = float32(v)
	}

	var domains []string
	for _, h := range strings.Split(get("FETCH_ALLOWED_DOMAINS", ""), ",") {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			domains = append(domains, h)
		}
	}

	return AppConfig{
		Port:                get("PORT", "8080"),
		DBPath:              get("DB_PATH", "lessonplan.db"),
		LogMode:             get("LOG_MODE", "dev"),
		LLMProvider:         provider,
		LLMEndpoint:         get("LLM_ENDPOINT", "https://api.openai.com"),
		LLMAPIKey:           key,
		LLMModel:            model,
		LLMTemperature:      temp,
		SkillsCSV:           get("REFDATA_SKILLS_CSV", ""),
		DescriptorsCSV:      get("REFDATA_DESCRIPTORS_CSV", ""),
		RefDataXLSX:         get("REFDATA_XLSX", ""),
		MaxUploadBytes:      parseInt64(get("MAX_UPLOAD_BYTES", ""), 10<<20),
		FetchAllowedDomains: domains,
		FetchMaxBytes:       parseInt64(get("FETCH_MAX_BYTES", ""), 1500000),
	}
}

// Validate reports missing credentials for the selected completion backend.
// It runs once at startup; requests never re-check it.
func (c AppConfig) Validate() error {
	switch c.LLMProvider {
	case ProviderMock:
		return nil
	case ProviderGemini, ProviderOpenAI:
		if c.LLMAPIKey == "" {
			return apperr.Wrap(apperr.ErrConfiguration, "config", "API key not set for provider "+c.LLMProvider, nil)
		}
		if c.LLMProvider == ProviderOpenAI && c.LLMEndpoint == "" {
			return apperr.Wrap(apperr.ErrConfiguration, "config", "LLM_ENDPOINT not set", nil)
		}
		return nil
	default:
		return apperr.Wrap(apperr.ErrConfiguration, "config", "unknown LLM_PROVIDER "+c.LLMProvider, nil)
	}
}

func parseInt64(s string, def int64) int64 {
	if v, err := strconv.ParseInt(s, 10, 64); err == nil && v > 0 {
		return v
	}
	return def
}
