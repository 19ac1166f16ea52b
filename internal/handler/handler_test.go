package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"otc-signal-bot/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

func TestHealth(t *testing.T) {
	h := New(trace.NewNoopTracerProvider().Tracer("handler-test"), nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)

	router := gin.New()
	h.RegisterRoutes(router)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestGetSignalsSuccess(t *testing.T) {
	lister := &batchListerStub{
		resp: []domain.SignalBatch{{
			ID:       1,
			UserID:   7,
			Strategy: "2",
			Assets:   []string{"BRLUSD-OTC"},
			Entries: []domain.SignalEntry{{
				Asset:     "BRLUSD-OTC",
				Timeframe: "M1",
				At:        time.Unix(0, 0).UTC(),
				Direction: domain.DirectionCall,
			}},
			Message:     "FINAL SIGNAL",
			GeneratedAt: time.Unix(0, 0).UTC(),
		}},
	}
	h := New(trace.NewNoopTracerProvider().Tracer("handler-test"), lister, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/signals?limit=5", nil)

	router := gin.New()
	h.RegisterRoutes(router)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if lister.lastLimit != 5 {
		t.Fatalf("expected limit 5, got %d", lister.lastLimit)
	}

	var resp struct {
		Batches []domain.SignalBatch `json:"batches"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(resp.Batches) != 1 || resp.Batches[0].Strategy != "2" {
		t.Fatalf("unexpected response payload: %+v", resp)
	}
}

func TestGetSignalsBadLimit(t *testing.T) {
	h := New(trace.NewNoopTracerProvider().Tracer("handler-test"), &batchListerStub{}, nil)

	for _, raw := range []string{"abc", "0", "101"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/signals?limit="+raw, nil)

		router := gin.New()
		h.RegisterRoutes(router)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("limit %q: expected 400, got %d", raw, w.Code)
		}
	}
}

func TestGetSignalsUnavailableWithoutHistory(t *testing.T) {
	h := New(trace.NewNoopTracerProvider().Tracer("handler-test"), nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/signals", nil)

	router := gin.New()
	h.RegisterRoutes(router)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
}

func TestGetSessionStats(t *testing.T) {
	h := New(trace.NewNoopTracerProvider().Tracer("handler-test"), nil, sessionStatsStub{count: 3})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/sessions/stats", nil)

	router := gin.New()
	h.RegisterRoutes(router)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp struct {
		ActiveSessions int `json:"active_sessions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if resp.ActiveSessions != 3 {
		t.Fatalf("expected 3 active sessions, got %d", resp.ActiveSessions)
	}
}

type batchListerStub struct {
	lastLimit int
	resp      []domain.SignalBatch
}

func (s *batchListerStub) ListRecent(ctx context.Context, limit int) ([]domain.SignalBatch, error) {
	s.lastLimit = limit
	return append([]domain.SignalBatch(nil), s.resp...), nil
}

type sessionStatsStub struct {
	count int
}

func (s sessionStatsStub) Count() int { return s.count }
