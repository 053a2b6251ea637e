package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mymmrac/telego"

	"github.com/tbourn/go-telegram-relay/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubRelay struct {
	outcome services.Outcome
	panics  bool
	calls   int
	last    telego.Update
}

func (s *stubRelay) Process(_ context.Context, u telego.Update) services.Outcome {
	s.calls++
	s.last = u
	if s.panics {
		panic("relay exploded")
	}
	return s.outcome
}

func newWebhookRouter(relay Relay) *gin.Engine {
	r := gin.New()
	r.POST("/webhook", NewWebhookHandler(relay).Post)
	return r
}

func postWebhook(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestWebhook_ValidUpdateAcknowledged(t *testing.T) {
	relay := &stubRelay{outcome: services.OutcomeReplied}
	r := newWebhookRouter(relay)

	w := postWebhook(t, r, `{"update_id":7,"message":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"},"text":"what is staking"}}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if relay.calls != 1 {
		t.Fatalf("relay calls = %d, want 1", relay.calls)
	}
	if relay.last.Message == nil || relay.last.Message.Chat.ID != 42 {
		t.Fatalf("decoded update = %+v", relay.last)
	}
	if relay.last.Message.Text != "what is staking" {
		t.Fatalf("text = %q", relay.last.Message.Text)
	}
}

func TestWebhook_MalformedJSONStillAcknowledged(t *testing.T) {
	relay := &stubRelay{}
	r := newWebhookRouter(relay)

	w := postWebhook(t, r, `{"message": not-json`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if relay.calls != 0 {
		t.Fatalf("relay must not run on malformed payloads, calls = %d", relay.calls)
	}
}

func TestWebhook_EmptyObjectAcknowledged(t *testing.T) {
	relay := &stubRelay{outcome: services.OutcomeNoMessage}
	r := newWebhookRouter(relay)

	w := postWebhook(t, r, `{}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if relay.calls != 1 {
		t.Fatalf("relay calls = %d, want 1", relay.calls)
	}
	if relay.last.Message != nil {
		t.Fatalf("expected empty update, got %+v", relay.last)
	}
}

func TestWebhook_RelayPanicStillAcknowledged(t *testing.T) {
	relay := &stubRelay{panics: true}
	r := newWebhookRouter(relay)

	w := postWebhook(t, r, `{"update_id":1}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestWebhook_AllOutcomesAcknowledged(t *testing.T) {
	outcomes := []services.Outcome{
		services.OutcomeNoMessage,
		services.OutcomeOutOfScope,
		services.OutcomeDeclined,
		services.OutcomeCompletionFailed,
		services.OutcomeReplied,
		services.OutcomeSendFailed,
	}
	for _, o := range outcomes {
		r := newWebhookRouter(&stubRelay{outcome: o})
		w := postWebhook(t, r, `{"update_id":1,"message":{"message_id":1,"date":0,"chat":{"id":1,"type":"private"},"text":"hi"}}`)
		if w.Code != http.StatusOK {
			t.Errorf("outcome %s: status = %d, want 200", o, w.Code)
		}
	}
}

func TestHealth(t *testing.T) {
	r := gin.New()
	r.GET("/health", Health)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
	if !strings.Contains(w.Body.String(), "OK") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestFallbacks(t *testing.T) {
	r := gin.New()
	r.NoRoute(NotFound)
	r.HandleMethodNotAllowed = true
	r.NoMethod(MethodNotAllowed)
	r.GET("/health", Health)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound || !strings.Contains(w.Body.String(), ErrCodeNotFound) {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/health", nil))
	if w.Code != http.StatusMethodNotAllowed || !strings.Contains(w.Body.String(), ErrCodeMethodNotAllowed) {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
}
