package job

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// SessionSweeper is the part of the session store the reaper drives.
type SessionSweeper interface {
	Sweep(ctx context.Context, maxIdle time.Duration) int
	Count() int
}

// SessionReaper periodically drops sessions that have been idle past the TTL.
type SessionReaper struct {
	tracer   trace.Tracer
	store    SessionSweeper
	maxIdle  time.Duration
	interval time.Duration
}

func NewSessionReaper(tracer trace.Tracer, store SessionSweeper, maxIdle, interval time.Duration) *SessionReaper {
	return &SessionReaper{
		tracer:   tracer,
		store:    store,
		maxIdle:  maxIdle,
		interval: interval,
	}
}

// Start runs the sweep loop. Blocks until ctx is cancelled.
func (r *SessionReaper) Start(ctx context.Context) {
	if r.store == nil {
		log.Println("Session reaper disabled: no session store")
		<-ctx.Done()
		return
	}

	log.Println("Session reaper starting...")
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Session reaper stopped")
			return
		case <-ticker.C:
			r.sweepOnce(ctx)
		}
	}
}

func (r *SessionReaper) sweepOnce(ctx context.Context) {
	ctx, span := r.tracer.Start(ctx, "session-reaper.sweep")
	defer span.End()

	removed := r.store.Sweep(ctx, r.maxIdle)
	if removed > 0 {
		log.Printf("session reaper: removed %d idle sessions, %d remain", removed, r.store.Count())
	}
}
