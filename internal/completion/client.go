// Package completion implements the outbound call to the OpenAI Responses
// API. It composes the constrained prompt (rule preamble + optional grounding
// corpus + literal user text), performs exactly one synchronous request, and
// converts the wire-level outcome into the tagged domain.CompletionResult.
//
// The NO_REPLY sentinel is an in-band control signal between the prompt rules
// and this parser; the string comparison happens here and nowhere else.
package completion

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"github.com/rs/zerolog/log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-telegram-relay/internal/config"
	"github.com/tbourn/go-telegram-relay/internal/corpus"
	"github.com/tbourn/go-telegram-relay/internal/domain"
)

// Sentinel is the exact refusal token the rule preamble instructs the model
// to emit. Compared after trimming surrounding whitespace.
const Sentinel = "NO_REPLY"

// Requester is the narrow interface the orchestrator depends on.
type Requester interface {
	Complete(ctx context.Context, userText string) domain.CompletionResult
}

// Client calls the OpenAI Responses API with a constrained prompt. Construct
// once at boot; safe for concurrent use.
type Client struct {
	api     openai.Client
	model   string
	mode    config.PromptMode
	project string
	corpus  corpus.Corpus
}

// New builds a Client from configuration and the loaded grounding corpus.
// Extra request options are appended last so tests can redirect the base URL
// to a stub server.
//
// The underlying transport is configured for a single attempt with a bounded
// request timeout. A failed call is reported as Failed and the update is
// dropped silently; nothing retries.
func New(cfg config.Config, corp corpus.Corpus, extra ...option.RequestOption) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.OpenAIAPIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.CompletionTimeout),
	}
	opts = append(opts, extra...)

	return &Client{
		api:     openai.NewClient(opts...),
		model:   cfg.Model,
		mode:    cfg.Mode,
		project: cfg.ProjectName,
		corpus:  corp,
	}
}

// Complete submits one completion request and maps the outcome:
//
//   - transport or API error            → Failed (detail logged here)
//   - missing/unexpected response shape → Failed (never a fabricated reply)
//   - exact sentinel after trimming     → Declined
//   - any other non-empty text          → Answered, trimmed
func (c *Client) Complete(ctx context.Context, userText string) domain.CompletionResult {
	tr := otel.Tracer("completion/Client")
	ctx, span := tr.Start(ctx, "Complete",
		trace.WithAttributes(
			attribute.String("completion.model", c.model),
			attribute.String("completion.mode", string(c.mode)),
		),
	)
	defer span.End()

	prompt := BuildPrompt(c.mode, c.project, c.corpus.Text(), userText)

	resp, err := c.api.Responses.New(ctx, responses.ResponseNewParams{
		Model: c.model,
		Input: responses.ResponseNewParamsInputUnion{OfString: openai.Opt(prompt)},
	})
	if err != nil {
		ev := log.Error().Str("model", c.model)
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			ev = ev.Int("status_code", apiErr.StatusCode).
				Str("api_code", apiErr.Code).
				Str("api_message", apiErr.Message)
		}
		ev.Err(err).Msg("completion call failed")
		return domain.Failed()
	}

	text, ok := extractOutputText(resp)
	if !ok {
		log.Error().Str("model", c.model).Msg("completion response missing expected output shape")
		return domain.Failed()
	}

	text = strings.TrimSpace(text)
	switch {
	case text == Sentinel:
		return domain.Declined()
	case text == "":
		return domain.Failed()
	default:
		return domain.Answered(text)
	}
}

// extractOutputText reads the answer at output[0].content[0].text. Any
// deviation from that exact nesting counts as absent output.
func extractOutputText(resp *responses.Response) (string, bool) {
	if resp == nil || len(resp.Output) == 0 {
		return "", false
	}
	item := resp.Output[0]
	if item.Type != "message" || len(item.Content) == 0 {
		return "", false
	}
	content := item.Content[0]
	if content.Type != "output_text" {
		return "", false
	}
	return content.Text, true
}
