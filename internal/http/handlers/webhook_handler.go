// Telegram webhook endpoint.
//
// The webhook contract is unusual: Telegram retries any non-2xx delivery, so
// the handler acknowledges every request with 200 regardless of what happens
// downstream. Malformed payloads, relay failures and even panics are logged
// and swallowed; the 200 only means "delivery received", never "reply sent".
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mymmrac/telego"

	"github.com/tbourn/go-telegram-relay/internal/http/middleware"
	"github.com/tbourn/go-telegram-relay/internal/services"
)

// Relay processes a single Telegram update end to end.
type Relay interface {
	Process(ctx context.Context, update telego.Update) services.Outcome
}

// WebhookHandler receives Telegram update deliveries.
type WebhookHandler struct {
	relay Relay
}

// NewWebhookHandler wires the webhook endpoint to a relay implementation.
func NewWebhookHandler(relay Relay) *WebhookHandler {
	return &WebhookHandler{relay: relay}
}

// Post handles POST /webhook.
//
// It decodes the update, hands it to the relay, and acknowledges with 200.
// The recover here runs ahead of the shared Recovery middleware so that a
// downstream panic still produces a 200 instead of a 500.
func (h *WebhookHandler) Post(c *gin.Context) {
	lg := middleware.LoggerFrom(c)

	defer func() {
		if r := recover(); r != nil {
			lg.Error().Interface("panic", r).Msg("webhook processing panicked")
		}
		if !c.Writer.Written() {
			c.Status(http.StatusOK)
		}
	}()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		lg.Warn().Err(err).Msg("webhook body unreadable")
		return
	}

	var update telego.Update
	if err := json.Unmarshal(body, &update); err != nil {
		lg.Warn().Err(err).Int("bytes", len(body)).Msg("webhook payload is not a valid update")
		return
	}

	outcome := h.relay.Process(c.Request.Context(), update)
	lg.Info().Str("outcome", string(outcome)).Msg("webhook processed")
}
