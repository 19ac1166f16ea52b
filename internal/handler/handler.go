package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"otc-signal-bot/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// BatchLister reads back the stored signal batch history.
type BatchLister interface {
	ListRecent(ctx context.Context, limit int) ([]domain.SignalBatch, error)
}

// SessionStats exposes live session counters for the ops endpoints.
type SessionStats interface {
	Count() int
}

type Handler struct {
	tracer   trace.Tracer
	batches  BatchLister
	sessions SessionStats
}

func New(tracer trace.Tracer, batches BatchLister, sessions SessionStats) *Handler {
	return &Handler{
		tracer:   tracer,
		batches:  batches,
		sessions: sessions,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
	r.GET("/api/signals", h.GetSignals)
	r.GET("/api/sessions/stats", h.GetSessionStats)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) GetSignals(c *gin.Context) {
	if h.batches == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "signal history unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-signals")
	defer span.End()

	limit := 20
	if rawLimit := strings.TrimSpace(c.Query("limit")); rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil || n <= 0 || n > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = n
	}
	span.SetAttributes(attribute.Int("limit", limit))

	batches, err := h.batches.ListRecent(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"batches": batches})
}

func (h *Handler) GetSessionStats(c *gin.Context) {
	if h.sessions == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "session store unavailable"})
		return
	}

	_, span := h.tracer.Start(c.Request.Context(), "handler.get-session-stats")
	defer span.End()

	c.JSON(http.StatusOK, gin.H{"active_sessions": h.sessions.Count()})
}
