// Package signal produces the mock per-asset signal entries. The real market
// analysis lives behind the same interface in production; this generator emits
// a deterministic three-entry cadence so the rest of the pipeline is testable.
package signal

import (
	"time"

	"otc-signal-bot/internal/domain"
)

const (
	timeframe    = "M1"
	entryCount   = 3
	entrySpacing = 5 * time.Minute
)

type Generator struct {
	now func() time.Time
}

func NewGenerator(now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{now: now}
}

// Generate returns three entries for one asset starting at start, five minutes
// apart, alternating CALL/PUT. A zero start falls back to the current time.
func (g *Generator) Generate(asset string, start time.Time) []domain.SignalEntry {
	if start.IsZero() {
		start = g.now()
	}

	entries := make([]domain.SignalEntry, 0, entryCount)
	for i := 0; i < entryCount; i++ {
		direction := domain.DirectionCall
		if i%2 == 1 {
			direction = domain.DirectionPut
		}
		entries = append(entries, domain.SignalEntry{
			Asset:     asset,
			Timeframe: timeframe,
			At:        start.Add(time.Duration(i) * entrySpacing),
			Direction: direction,
		})
	}
	return entries
}
