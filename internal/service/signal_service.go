package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"otc-signal-bot/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type Generator interface {
	Generate(asset string, start time.Time) []domain.SignalEntry
}

type BatchRepository interface {
	InsertBatch(ctx context.Context, batch *domain.SignalBatch) (int64, error)
}

type BatchNotifier interface {
	NotifyBatch(ctx context.Context, batch *domain.SignalBatch) error
}

// SignalService turns a completed conversation flow into a formatted signal
// batch: it runs the generator per asset, renders the message, records the
// batch, and fans it out to alert subscribers. Repository and notifier are
// optional; their failures are logged, not surfaced, since the user's message
// is already generated at that point.
type SignalService struct {
	tracer    trace.Tracer
	generator Generator
	repo      BatchRepository
	notifier  BatchNotifier
	timezone  string
	now       func() time.Time
}

func NewSignalService(
	tracer trace.Tracer,
	generator Generator,
	repo BatchRepository,
	notifier BatchNotifier,
	timezone string,
) *SignalService {
	return &SignalService{
		tracer:    tracer,
		generator: generator,
		repo:      repo,
		notifier:  notifier,
		timezone:  timezone,
		now:       time.Now,
	}
}

func (s *SignalService) GenerateBatch(ctx context.Context, userID int64, assets []string, strategy string, day int, startTime string) (*domain.SignalBatch, error) {
	ctx, span := s.tracer.Start(ctx, "signal-service.generate-batch")
	defer span.End()

	if len(assets) == 0 {
		return nil, fmt.Errorf("no assets selected")
	}

	start := s.resolveStart(startTime)
	entries := make([]domain.SignalEntry, 0, len(assets)*3)
	for _, asset := range assets {
		entries = append(entries, s.generator.Generate(asset, start)...)
	}

	batch := &domain.SignalBatch{
		UserID:      userID,
		Strategy:    strategy,
		Assets:      assets,
		Entries:     entries,
		GeneratedAt: s.now().UTC(),
	}
	batch.Message = s.formatMessage(batch)

	if s.repo != nil {
		id, err := s.repo.InsertBatch(ctx, batch)
		if err != nil {
			log.Printf("signal service: batch insert for user %d failed: %v", userID, err)
		} else {
			batch.ID = id
		}
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyBatch(ctx, batch); err != nil {
			log.Printf("signal service: alert broadcast failed: %v", err)
		}
	}

	return batch, nil
}

// resolveStart anchors the HH:MM start time to today's date. Shapes the
// classifier let through but the clock cannot parse (e.g. 25:99) fall back to
// the current time.
func (s *SignalService) resolveStart(startTime string) time.Time {
	parsed, err := time.Parse("15:04", startTime)
	if err != nil {
		log.Printf("signal service: unparseable start time %q, using current time", startTime)
		return s.now()
	}
	today := s.now().UTC()
	return time.Date(today.Year(), today.Month(), today.Day(), parsed.Hour(), parsed.Minute(), 0, 0, time.UTC)
}

const messageDivider = "━━━━━━━━━━━━━━━━━━━━━━━"

func (s *SignalService) formatMessage(batch *domain.SignalBatch) string {
	lines := []string{
		"𒆜•──❎ FINAL ⋅◈⋅ SIGNAL ❎──•𒆜",
		messageDivider,
		fmt.Sprintf("📆 %s 📆", batch.GeneratedAt.Format("02/01/2006")),
		messageDivider,
		"SIGNAL FOR QUOTEX",
		"",
		s.timezone + " TIME ZONE",
		"",
		"1 MIN SIGNAL, USE 1 STEP MTG MAX",
		"",
	}
	for _, e := range batch.Entries {
		lines = append(lines, fmt.Sprintf("• %s %s %s %s", e.Timeframe, e.Asset, e.At.Format("15:04"), e.Direction))
	}
	lines = append(lines,
		messageDivider,
		"⚠️ Avoid signals after big candles, doji, below 80%, or gaps",
		messageDivider,
	)
	return strings.Join(lines, "\n")
}
