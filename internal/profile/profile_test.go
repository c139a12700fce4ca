package profile

import (
	"os"
	"testing"
)

func TestProfileDefaults(t *testing.T) {
	clearProfileEnvVars(t)

	profile := &Profile{}
	profile.FromEnv()

	tests := []struct {
		name     string
		expected string
		actual   string
	}{
		{"GeminiModel default", "gemini-2.0-flash", profile.GeminiModel},
		{"OpenAIModel default", "gpt-4o-mini", profile.OpenAIModel},
		{"GPT4oModel default", "gpt-4o", profile.GPT4oModel},
		{"DeepSeekModel default", "deepseek-chat", profile.DeepSeekModel},
		{"Timezone default", "Asia/Kolkata", profile.Timezone},
		{"GeminiAPIKey empty", "", profile.GeminiAPIKey},
		{"TavilyAPIKey empty", "", profile.TavilyAPIKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, tt.actual)
			}
		})
	}

	if profile.LLMTimeout != 120 {
		t.Errorf("LLMTimeout default: expected 120, got %d", profile.LLMTimeout)
	}
	if profile.MaxConcurrentChats != 32 {
		t.Errorf("MaxConcurrentChats default: expected 32, got %d", profile.MaxConcurrentChats)
	}
}

func TestProfileFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		envVar   string
		envValue string
		field    func(*Profile) string
		expected string
	}{
		{
			name:     "Gemini API key",
			envVar:   "GEMINI_API_KEY",
			envValue: "test-gemini-key",
			field:    func(p *Profile) string { return p.GeminiAPIKey },
			expected: "test-gemini-key",
		},
		{
			name:     "GOOGLE_API_KEY is a fallback for Gemini",
			envVar:   "GOOGLE_API_KEY",
			envValue: "legacy-google-key",
			field:    func(p *Profile) string { return p.GeminiAPIKey },
			expected: "legacy-google-key",
		},
		{
			name:     "GitHub Models token",
			envVar:   "GITHUB_TOKEN",
			envValue: "ghp-test",
			field:    func(p *Profile) string { return p.GPT4oAPIKey },
			expected: "ghp-test",
		},
		{
			name:     "Tavily API key",
			envVar:   "TAVILY_API_KEY",
			envValue: "tvly-test",
			field:    func(p *Profile) string { return p.TavilyAPIKey },
			expected: "tvly-test",
		},
		{
			name:     "timezone override",
			envVar:   "AIAGENT_TIMEZONE",
			envValue: "Europe/Berlin",
			field:    func(p *Profile) string { return p.Timezone },
			expected: "Europe/Berlin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearProfileEnvVars(t)
			t.Setenv(tt.envVar, tt.envValue)

			profile := &Profile{}
			profile.FromEnv()

			actual := tt.field(profile)
			if actual != tt.expected {
				t.Errorf("%s: expected %q, got %q", tt.name, tt.expected, actual)
			}
		})
	}
}

func TestConfiguredProviders(t *testing.T) {
	profile := &Profile{
		GeminiAPIKey:   "g",
		DeepSeekAPIKey: "d",
	}

	got := profile.ConfiguredProviders()
	want := []string{"gemini", "deepseek"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("provider %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestValidate(t *testing.T) {
	profile := &Profile{Mode: "nonsense", Port: 8081, GeminiAPIKey: "g"}
	if err := profile.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Mode != "demo" {
		t.Errorf("unknown mode should fall back to demo, got %q", profile.Mode)
	}

	profile = &Profile{Mode: "prod", Port: 0}
	if err := profile.Validate(); err == nil {
		t.Error("expected error for port 0")
	}
}

func clearProfileEnvVars(t *testing.T) {
	t.Helper()
	vars := []string{
		"GEMINI_API_KEY", "GOOGLE_API_KEY", "GEMINI_MODEL",
		"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL",
		"GITHUB_TOKEN", "GPT4O_MODEL",
		"DEEPSEEK_API_KEY", "DEEPSEEK_MODEL",
		"AIAGENT_LLM_TIMEOUT_SECONDS", "AIAGENT_TIMEZONE",
		"TAVILY_API_KEY", "TAVILY_API_URL", "WEATHER_API_KEY",
		"AIAGENT_MAX_CONCURRENT_CHATS",
	}
	for _, v := range vars {
		if val, ok := os.LookupEnv(v); ok {
			t.Setenv(v, val)
			os.Unsetenv(v)
		}
	}
}
