package signal

import (
	"testing"
	"time"

	"otc-signal-bot/internal/domain"
)

func TestGenerateCadence(t *testing.T) {
	gen := NewGenerator(nil)
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	entries := gen.Generate("BRLUSD-OTC", start)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	wantDirections := []domain.SignalDirection{
		domain.DirectionCall, domain.DirectionPut, domain.DirectionCall,
	}
	for i, e := range entries {
		if e.Asset != "BRLUSD-OTC" {
			t.Fatalf("entry %d has wrong asset %q", i, e.Asset)
		}
		if e.Timeframe != "M1" {
			t.Fatalf("entry %d has wrong timeframe %q", i, e.Timeframe)
		}
		wantAt := start.Add(time.Duration(i) * 5 * time.Minute)
		if !e.At.Equal(wantAt) {
			t.Fatalf("entry %d at %s, want %s", i, e.At, wantAt)
		}
		if e.Direction != wantDirections[i] {
			t.Fatalf("entry %d direction %s, want %s", i, e.Direction, wantDirections[i])
		}
	}
}

func TestGenerateZeroStartUsesClock(t *testing.T) {
	fixed := time.Date(2025, 6, 1, 5, 41, 0, 0, time.UTC)
	gen := NewGenerator(func() time.Time { return fixed })

	entries := gen.Generate("BTCUSD-OTC", time.Time{})
	if !entries[0].At.Equal(fixed) {
		t.Fatalf("expected first entry at clock time %s, got %s", fixed, entries[0].At)
	}
}
