package config

import (
	"strings"
	"testing"
	"time"
)

// clearRelayEnv unsets every variable Load reads so tests see defaults.
func clearRelayEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "READ_TIMEOUT", "READ_HEADER_TIMEOUT", "WRITE_TIMEOUT", "IDLE_TIMEOUT",
		"MAX_HEADER_BYTES", "GIN_MODE", "LOG_LEVEL", "LOG_PRETTY",
		"TELEGRAM_TOKEN", "OPENAI_API_KEY", "COMPLETION_MODEL", "PROMPT_MODE",
		"PROJECT_NAME", "KEYWORDS", "CORPUS_PATH", "COMPLETION_TIMEOUT",
		"OTEL_ENABLED", "OTEL_EXPORTER_OTLP_ENDPOINT", "OTEL_EXPORTER_OTLP_INSECURE",
		"OTEL_SERVICE_NAME", "OTEL_TRACES_SAMPLER_ARG",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearRelayEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Port)
	}
	if cfg.Model != "gpt-4.1-mini" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Mode != PromptModeProject {
		t.Errorf("Mode = %q, want project", cfg.Mode)
	}
	if cfg.FilterEnabled() {
		t.Errorf("FilterEnabled = true with no KEYWORDS")
	}
	if cfg.CompletionTimeout != 60*time.Second {
		t.Errorf("CompletionTimeout = %v", cfg.CompletionTimeout)
	}
	if cfg.OTEL.Enabled {
		t.Errorf("OTEL.Enabled = true by default")
	}
}

func TestLoad_KeywordsCSVLowercased(t *testing.T) {
	clearRelayEnv(t)
	t.Setenv("KEYWORDS", "Giants, Giants Staking ,,GIANTS ROADMAP")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"giants", "giants staking", "giants roadmap"}
	if len(cfg.Keywords) != len(want) {
		t.Fatalf("Keywords = %v, want %v", cfg.Keywords, want)
	}
	for i := range want {
		if cfg.Keywords[i] != want[i] {
			t.Errorf("Keywords[%d] = %q, want %q", i, cfg.Keywords[i], want[i])
		}
	}
	if !cfg.FilterEnabled() {
		t.Errorf("FilterEnabled = false with keywords present")
	}
}

func TestLoad_Validation(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"bad log level", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"bad mode", map[string]string{"PROMPT_MODE": "chatty"}, "PROMPT_MODE"},
		{"bad sample ratio", map[string]string{"OTEL_TRACES_SAMPLER_ARG": "2"}, "OTEL_TRACES_SAMPLER_ARG"},
		{"bad completion timeout", map[string]string{"COMPLETION_TIMEOUT": "-1s"}, "COMPLETION_TIMEOUT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearRelayEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("err = %v, want mention of %s", err, tc.want)
			}
		})
	}
}

func TestLoad_Normalization(t *testing.T) {
	clearRelayEnv(t)
	t.Setenv("LOG_LEVEL", "WARNING")
	t.Setenv("GIN_MODE", "production")
	t.Setenv("PROMPT_MODE", "GROUNDED")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.GinMode != "release" {
		t.Errorf("GinMode = %q, want release", cfg.GinMode)
	}
	if cfg.Mode != PromptModeGrounded {
		t.Errorf("Mode = %q, want grounded", cfg.Mode)
	}
}

func TestWarnings(t *testing.T) {
	clearRelayEnv(t)
	t.Setenv("PROMPT_MODE", "grounded")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	w := cfg.Warnings()
	if len(w) != 3 {
		t.Fatalf("Warnings = %v, want 3 entries", w)
	}

	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("CORPUS_PATH", "data/corpus.md")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if w := cfg.Warnings(); len(w) != 0 {
		t.Fatalf("Warnings = %v, want none", w)
	}
}
