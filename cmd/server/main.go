// Command server runs the Telegram webhook relay.
//
// Boot order: load .env, read configuration, configure logging and tracing,
// load the optional grounding corpus, build the completion and Telegram
// clients, wire the relay service into the HTTP router, and serve until
// SIGINT/SIGTERM.
//
// Missing credentials are deliberately not fatal: the process starts, logs a
// warning per missing value, and the affected updates fail at runtime. This
// keeps health checks green while secrets are being rotated.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-telegram-relay/internal/config"
	"github.com/tbourn/go-telegram-relay/internal/completion"
	"github.com/tbourn/go-telegram-relay/internal/corpus"
	relayhttp "github.com/tbourn/go-telegram-relay/internal/http"
	"github.com/tbourn/go-telegram-relay/internal/observability"
	"github.com/tbourn/go-telegram-relay/internal/scope"
	"github.com/tbourn/go-telegram-relay/internal/services"
	"github.com/tbourn/go-telegram-relay/internal/sysutil"
	"github.com/tbourn/go-telegram-relay/internal/telegram"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	sysutil.SetLogLevel(cfg.LogLevel)
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	for _, w := range cfg.Warnings() {
		log.Warn().Msg(w)
	}

	version := sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), "dev")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("opentelemetry setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Warn().Err(err).Msg("opentelemetry shutdown")
		}
	}()

	corp, err := corpus.Load(cfg.CorpusPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.CorpusPath).
			Msg("grounding corpus unavailable, answering without it")
		corp = corpus.New("")
	}
	if !corp.Empty() {
		log.Info().Str("path", cfg.CorpusPath).Int("bytes", corp.Len()).Msg("grounding corpus loaded")
	}

	matcher := scope.NewMatcher(cfg.Keywords)
	if matcher.Enabled() {
		log.Info().Strs("keywords", matcher.Keywords()).Msg("topic filter enabled")
	} else {
		log.Info().Msg("topic filter disabled, relaying every message")
	}

	completer := completion.New(cfg, corp)

	sender, err := telegram.NewClient(cfg.TelegramToken)
	if err != nil {
		log.Warn().Err(err).Msg("telegram client unavailable, replies will not be delivered")
		sender = &telegram.Client{}
	}

	relay := services.NewRelayService(matcher, completer, sender)

	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	relayhttp.RegisterRoutes(engine, relay, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("addr", srv.Addr).
			Str("mode", string(cfg.Mode)).
			Str("model", cfg.Model).
			Str("version", version).
			Msg("relay listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("relay stopped")
}
