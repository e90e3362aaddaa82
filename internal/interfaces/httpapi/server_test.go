package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/tycoon-player-api/internal/domain/player"
	"github.com/riskibarqy/tycoon-player-api/internal/platform/logging"
)

func TestRouter_Healthz(t *testing.T) {
	h, db := newTestHandler(t)
	router := NewRouter(h, logging.NewNop(), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if db.OpenCount() != 0 {
		t.Fatalf("health check must not open the store")
	}
}

func TestRouter_DispatchesToHandler(t *testing.T) {
	h, _ := newTestHandler(t, player.Profile{Player: player.Player{ID: 1, Username: "erin", Balance: 12}})
	router := NewRouter(h, logging.NewNop(), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?username=erin", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("missing CORS header: %v", rec.Header())
	}
	if !strings.Contains(rec.Body.String(), `"username":"erin"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRouter_PutThroughHTTP(t *testing.T) {
	h, _ := newTestHandler(t, player.Profile{Player: player.Player{ID: 1, Username: "erin"}})
	router := NewRouter(h, logging.NewNop(), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"username":"erin","houses":{"1":2}}`))
	req.Header.Set("X-User-Id", "99")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_UnhandledFailureIsPlain500(t *testing.T) {
	h, db := newTestHandler(t)
	db.InjectFault("TopByBalance", errors.New("boom"))
	router := NewRouter(h, logging.NewNop(), nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "boom") {
		t.Fatalf("store error leaked into the body: %s", rec.Body.String())
	}
}

func TestRouter_MetricsRoute(t *testing.T) {
	h, _ := newTestHandler(t)
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics"))
	})
	router := NewRouter(h, logging.NewNop(), metrics)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Body.String() != "# metrics" {
		t.Fatalf("unexpected metrics body: %q", rec.Body.String())
	}
}

func TestRecoverPanic(t *testing.T) {
	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}
