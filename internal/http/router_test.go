package http

import (
	"bytes"
	"context"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mymmrac/telego"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-telegram-relay/internal/config"
	"github.com/tbourn/go-telegram-relay/internal/services"
)

type noopRelay struct{ calls int }

func (n *noopRelay) Process(context.Context, telego.Update) services.Outcome {
	n.calls++
	return services.OutcomeReplied
}

func newTestRouter(t *testing.T) (*gin.Engine, *noopRelay) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger = zerolog.New(&bytes.Buffer{})

	relay := &noopRelay{}
	r := gin.New()
	RegisterRoutes(r, relay, config.Config{})
	return r, relay
}

func TestRouter_Health(t *testing.T) {
	r, _ := newTestRouter(t)
	for _, path := range []string{"/", "/health"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, path, nil))
		if w.Code != nethttp.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), "OK") {
			t.Errorf("GET %s body = %q", path, w.Body.String())
		}
	}
}

func TestRouter_WebhookWiredAndAcknowledged(t *testing.T) {
	r, relay := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(nethttp.MethodPost, "/webhook",
		strings.NewReader(`{"update_id":1,"message":{"message_id":1,"date":0,"chat":{"id":9,"type":"private"},"text":"hi"}}`))
	r.ServeHTTP(w, req)

	if w.Code != nethttp.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if relay.calls != 1 {
		t.Fatalf("relay calls = %d, want 1", relay.calls)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID missing")
	}
}

func TestRouter_WebhookBadJSONStill200(t *testing.T) {
	r, relay := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(nethttp.MethodPost, "/webhook", strings.NewReader("not json at all")))

	if w.Code != nethttp.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if relay.calls != 0 {
		t.Fatalf("relay calls = %d, want 0", relay.calls)
	}
}

func TestRouter_MetricsExposed(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/metrics", nil))

	if w.Code != nethttp.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "go_") {
		t.Errorf("metrics body looks empty: %.100s", w.Body.String())
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/nope", nil))

	if w.Code != nethttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "not_found") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(nethttp.MethodDelete, "/webhook", nil))

	if w.Code != nethttp.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", w.Code)
	}
}

func TestRouter_CORSHeaderPresent(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(nethttp.MethodGet, "/health", nil))

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("nosniff header missing")
	}
}
