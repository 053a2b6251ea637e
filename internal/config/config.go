// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as the Telegram and OpenAI credentials, server timeouts, topic keyword
// filtering, grounding corpus location, logging, and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// PromptMode selects the rule preamble sent to the completion service.
type PromptMode string

const (
	// PromptModeOpen answers community questions without a topical restriction.
	PromptModeOpen PromptMode = "open"
	// PromptModeProject answers only project-related questions; everything
	// else is declined with the NO_REPLY sentinel.
	PromptModeProject PromptMode = "project"
	// PromptModeGrounded answers only from the configured grounding corpus.
	PromptModeGrounded PromptMode = "grounded"
)

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "go-telegram-relay")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging
	LogLevel  string // debug|info|warn|error|fatal|panic
	LogPretty bool   // pretty console logs in dev

	// Credentials (missing values are boot warnings, not failures)
	TelegramToken string // TELEGRAM_TOKEN
	OpenAIAPIKey  string // OPENAI_API_KEY

	// Relay
	Model             string        // completion model identifier
	Mode              PromptMode    // open|project|grounded
	ProjectName       string        // used in the rule preamble
	Keywords          []string      // topic gate; empty disables filtering
	CorpusPath        string        // optional grounding document
	CompletionTimeout time.Duration // bound on the outbound completion call

	// Observability
	OTEL OTELConfig
}

// FilterEnabled reports whether the topic keyword gate is active.
func (c Config) FilterEnabled() bool { return len(c.Keywords) > 0 }

// Warnings returns human-readable notes about configuration that is missing
// but not fatal at boot. The process starts regardless; affected calls fail
// at runtime and are logged per update.
func (c Config) Warnings() []string {
	var w []string
	if strings.TrimSpace(c.TelegramToken) == "" {
		w = append(w, "TELEGRAM_TOKEN is not set; replies cannot be delivered")
	}
	if strings.TrimSpace(c.OpenAIAPIKey) == "" {
		w = append(w, "OPENAI_API_KEY is not set; completion calls will fail")
	}
	if c.Mode == PromptModeGrounded && strings.TrimSpace(c.CorpusPath) == "" {
		w = append(w, "PROMPT_MODE=grounded but CORPUS_PATH is not set; running without grounding text")
	}
	return w
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "3000"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging
		LogLevel:  strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty: getbool("LOG_PRETTY", false),

		// Credentials
		TelegramToken: getenv("TELEGRAM_TOKEN", ""),
		OpenAIAPIKey:  getenv("OPENAI_API_KEY", ""),

		// Relay
		Model:             getenv("COMPLETION_MODEL", "gpt-4.1-mini"),
		Mode:              PromptMode(strings.ToLower(getenv("PROMPT_MODE", string(PromptModeProject)))),
		ProjectName:       getenv("PROJECT_NAME", "Giants Protocol"),
		Keywords:          splitCSV(strings.ToLower(getenv("KEYWORDS", ""))),
		CorpusPath:        getenv("CORPUS_PATH", ""),
		CompletionTimeout: getdur("COMPLETION_TIMEOUT", 60*time.Second),

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-telegram-relay"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return cfg, errors.New("COMPLETION_MODEL must not be empty")
	}
	switch cfg.Mode {
	case PromptModeOpen, PromptModeProject, PromptModeGrounded:
	default:
		return cfg, errors.New("PROMPT_MODE must be one of: open, project, grounded")
	}
	if cfg.CompletionTimeout <= 0 {
		return cfg, errors.New("COMPLETION_TIMEOUT must be > 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
