package profile

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Profile is configuration to start the main server.
type Profile struct {
	Mode     string
	Addr     string
	Port     int
	UNIXSock string
	Version  string

	// Provider configuration. Each provider is optional; a request for
	// an unconfigured provider fails at chat time, not at startup.
	GeminiAPIKey   string
	GeminiModel    string
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	OpenAIModel    string
	GPT4oAPIKey    string // GitHub Models token
	GPT4oModel     string
	DeepSeekAPIKey string
	DeepSeekModel  string
	LLMTimeout     int // seconds

	// Timezone is the wall-clock zone for dates and event times.
	Timezone string

	// Collaborator services.
	TavilyAPIKey  string
	TavilyAPIURL  string
	WeatherAPIKey string

	// MaxConcurrentChats bounds simultaneous chat turns; zero disables
	// the bound.
	MaxConcurrentChats int
}

// Provider default model names, used when the corresponding env var is
// not set.
var providerModelDefaults = map[string]string{
	"gemini":   "gemini-2.0-flash",
	"openai":   "gpt-4o-mini",
	"gpt4o":    "gpt-4o",
	"deepseek": "deepseek-chat",
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns environment variable value or default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrDefaultInt returns environment variable value as int or default value.
func getEnvOrDefaultInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// FromEnv loads configuration from environment variables. The provider
// and collaborator keys keep their conventional upstream names.
func (p *Profile) FromEnv() {
	p.GeminiAPIKey = getEnvOrDefault("GEMINI_API_KEY", os.Getenv("GOOGLE_API_KEY"))
	p.GeminiModel = getEnvOrDefault("GEMINI_MODEL", providerModelDefaults["gemini"])
	p.OpenAIAPIKey = getEnvOrDefault("OPENAI_API_KEY", "")
	p.OpenAIBaseURL = getEnvOrDefault("OPENAI_BASE_URL", "")
	p.OpenAIModel = getEnvOrDefault("OPENAI_MODEL", providerModelDefaults["openai"])
	p.GPT4oAPIKey = getEnvOrDefault("GITHUB_TOKEN", "")
	p.GPT4oModel = getEnvOrDefault("GPT4O_MODEL", providerModelDefaults["gpt4o"])
	p.DeepSeekAPIKey = getEnvOrDefault("DEEPSEEK_API_KEY", "")
	p.DeepSeekModel = getEnvOrDefault("DEEPSEEK_MODEL", providerModelDefaults["deepseek"])
	p.LLMTimeout = getEnvOrDefaultInt("AIAGENT_LLM_TIMEOUT_SECONDS", 120)

	p.Timezone = getEnvOrDefault("AIAGENT_TIMEZONE", "Asia/Kolkata")

	p.TavilyAPIKey = getEnvOrDefault("TAVILY_API_KEY", "")
	p.TavilyAPIURL = getEnvOrDefault("TAVILY_API_URL", "")
	p.WeatherAPIKey = getEnvOrDefault("WEATHER_API_KEY", "")

	p.MaxConcurrentChats = getEnvOrDefaultInt("AIAGENT_MAX_CONCURRENT_CHATS", 32)
}

// ConfiguredProviders lists the provider kinds with credentials present.
func (p *Profile) ConfiguredProviders() []string {
	var kinds []string
	if p.GeminiAPIKey != "" {
		kinds = append(kinds, "gemini")
	}
	if p.OpenAIAPIKey != "" {
		kinds = append(kinds, "openai")
	}
	if p.GPT4oAPIKey != "" {
		kinds = append(kinds, "gpt4o")
	}
	if p.DeepSeekAPIKey != "" {
		kinds = append(kinds, "deepseek")
	}
	return kinds
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}
	if p.Port <= 0 || p.Port > 65535 {
		return errors.Errorf("invalid port %d", p.Port)
	}
	if len(p.ConfiguredProviders()) == 0 {
		slog.Warn("no language model provider configured, chat answers will be unavailable")
	}
	return nil
}
