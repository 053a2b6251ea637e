// Package services holds the application core: RelayService, the per-update
// orchestrator behind the webhook. One inbound update flows through
// validation, the optional topic gate, the completion call, and the reply
// dispatch, with an early exit to acknowledgment at every step.
//
// RelayService is stateless across updates; any number of updates may be in
// flight concurrently with no coordination, because every value it touches is
// request-scoped and its collaborators are read-only after boot.
package services

import (
	"context"

	"github.com/mymmrac/telego"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tbourn/go-telegram-relay/internal/completion"
	"github.com/tbourn/go-telegram-relay/internal/domain"
	"github.com/tbourn/go-telegram-relay/internal/scope"
	"github.com/tbourn/go-telegram-relay/internal/telegram"
)

// Outcome classifies how one inbound update was resolved. Every path ends in
// an acknowledgment to the platform; the outcome records what happened on the
// way there.
type Outcome string

const (
	// OutcomeNoMessage: update without a message or without text; nothing to do.
	OutcomeNoMessage Outcome = "no_message"
	// OutcomeOutOfScope: topic filter rejected the text; no completion call made.
	OutcomeOutOfScope Outcome = "out_of_scope"
	// OutcomeDeclined: the model refused within its rules; reply suppressed.
	OutcomeDeclined Outcome = "declined"
	// OutcomeCompletionFailed: transport/shape failure upstream; reply suppressed.
	OutcomeCompletionFailed Outcome = "completion_failed"
	// OutcomeReplied: answer delivered to the chat.
	OutcomeReplied Outcome = "replied"
	// OutcomeSendFailed: answer produced but delivery failed; logged only.
	OutcomeSendFailed Outcome = "send_failed"
)

var (
	// relayUpdates counts processed updates by final outcome.
	relayUpdates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "relay_updates_total",
			Help: "Total number of processed webhook updates by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(relayUpdates)
}

// maxLogPreview caps how much message text lands in logs.
const maxLogPreview = 80

// RelayService orchestrates the receive → filter → complete → reply pipeline.
// All collaborators are injected so tests can substitute fakes.
type RelayService struct {
	Scope     *scope.Matcher
	Completer completion.Requester
	Sender    telegram.Sender
}

// NewRelayService wires the orchestrator from its three collaborators.
func NewRelayService(m *scope.Matcher, c completion.Requester, s telegram.Sender) *RelayService {
	return &RelayService{Scope: m, Completer: c, Sender: s}
}

// Process handles one inbound update end to end and returns the outcome. It
// never returns an error: every failure is terminal and local, logged here,
// so the webhook layer can acknowledge unconditionally.
func (s *RelayService) Process(ctx context.Context, update telego.Update) Outcome {
	tr := otel.Tracer("services/RelayService")
	ctx, span := tr.Start(ctx, "Process")
	defer span.End()

	outcome := s.process(ctx, update)
	span.SetAttributes(attribute.String("relay.outcome", string(outcome)))
	relayUpdates.WithLabelValues(string(outcome)).Inc()
	return outcome
}

func (s *RelayService) process(ctx context.Context, update telego.Update) Outcome {
	// Only text messages are processable.
	msg := update.Message
	if msg == nil || msg.Text == "" {
		return OutcomeNoMessage
	}

	chatID := msg.Chat.ID
	text := msg.Text

	if s.Scope != nil && !s.Scope.InScope(text) {
		log.Debug().
			Int64("chat_id", chatID).
			Str("preview", truncate(text, maxLogPreview)).
			Msg("ignored out-of-scope message")
		return OutcomeOutOfScope
	}

	result := s.Completer.Complete(ctx, text)
	switch result.Status {
	case domain.CompletionDeclined:
		log.Info().
			Int64("chat_id", chatID).
			Str("preview", truncate(text, maxLogPreview)).
			Msg("completion declined by policy")
		return OutcomeDeclined
	case domain.CompletionFailed:
		// Detail was logged by the completion client; record the drop here.
		log.Warn().
			Int64("chat_id", chatID).
			Msg("dropping update after completion failure")
		return OutcomeCompletionFailed
	}

	reply := domain.Reply{ChatID: chatID, Text: result.Text}
	if err := s.Sender.Send(ctx, reply); err != nil {
		// Delivery failures never escalate; the platform has its 200 already.
		log.Error().
			Err(err).
			Int64("chat_id", chatID).
			Msg("reply delivery failed")
		return OutcomeSendFailed
	}

	log.Info().
		Int64("chat_id", chatID).
		Int("reply_len", len(result.Text)).
		Msg("reply delivered")
	return OutcomeReplied
}

// truncate caps s at max bytes for log previews.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
