// Package telegram delivers replies to the originating chat through the
// Telegram Bot API sendMessage endpoint. The bot token travels in the URL
// path per the platform convention; there is no separate auth header.
//
// Delivery is fire-and-forget from the webhook's point of view: a failed
// send is reported to the orchestrator for logging and never changes the
// acknowledgment already owed to the platform.
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"

	"github.com/tbourn/go-telegram-relay/internal/domain"
)

// ErrNotConfigured is returned by Send when the bot token was missing at
// boot. The process still starts in that state; the failure surfaces (and is
// logged) per update instead.
var ErrNotConfigured = errors.New("telegram token not configured")

// Sender is the narrow interface the orchestrator depends on.
type Sender interface {
	Send(ctx context.Context, reply domain.Reply) error
}

// Client wraps a telego bot for outbound sends only. Construct once at boot;
// safe for concurrent use. A Client built without a token is a no-op sender
// that fails every Send with ErrNotConfigured.
type Client struct {
	bot *telego.Bot
}

// NewClient builds a Client for the given bot token. An empty token yields a
// disabled (but non-nil) Client rather than an error, keeping the
// no-hard-fail boot contract. Extra options are passed through to telego so
// tests can point the client at a stub API server.
func NewClient(token string, opts ...telego.BotOption) (*Client, error) {
	if strings.TrimSpace(token) == "" {
		return &Client{}, nil
	}

	botOpts := append([]telego.BotOption{telego.WithDiscardLogger()}, opts...)
	bot, err := telego.NewBot(token, botOpts...)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}
	return &Client{bot: bot}, nil
}

// Configured reports whether the client holds a usable bot token.
func (c *Client) Configured() bool { return c.bot != nil }

// Send issues exactly one sendMessage call with {chat_id, text}. No retries;
// the caller logs failures and moves on.
func (c *Client) Send(ctx context.Context, reply domain.Reply) error {
	if c.bot == nil {
		return ErrNotConfigured
	}

	_, err := c.bot.SendMessage(ctx, &telego.SendMessageParams{
		ChatID: tu.ID(reply.ChatID),
		Text:   reply.Text,
	})
	if err != nil {
		return fmt.Errorf("send message to chat %d: %w", reply.ChatID, err)
	}
	return nil
}
