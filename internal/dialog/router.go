// Package dialog is the routing core of the bot: it decides, for every
// inbound text message, whether it belongs to the login machine or to one of
// the signal-flow steps, updates the per-user session, and produces the
// outbound replies.
package dialog

import (
	"context"
	"log"
	"time"

	"otc-signal-bot/internal/domain"
	"otc-signal-bot/internal/session"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	cmdStart  = "/start"
	cmdCancel = "/cancel"
	cmdMarket = "/market"
)

// Reply is one outbound message. Keyboard, when set, is a reply-keyboard hint
// for the gateway; rendering is the gateway's concern.
type Reply struct {
	Text     string
	Keyboard [][]string
}

// SignalSource produces one formatted signal batch for a finished flow.
type SignalSource interface {
	GenerateBatch(ctx context.Context, userID int64, assets []string, strategy string, day int, startTime string) (*domain.SignalBatch, error)
}

// SignalWriter is the file-persistence collaborator behind the save step.
type SignalWriter interface {
	Write(name, content string) error
}

type Router struct {
	store         *session.Store
	signals       SignalSource
	writer        SignalWriter
	adminPassword string
	timezone      string
	tracer        trace.Tracer
	now           func() time.Time
}

func NewRouter(
	store *session.Store,
	signals SignalSource,
	writer SignalWriter,
	adminPassword string,
	timezone string,
	tracer trace.Tracer,
) *Router {
	return &Router{
		store:         store,
		signals:       signals,
		writer:        writer,
		adminPassword: adminPassword,
		timezone:      timezone,
		tracer:        tracer,
		now:           time.Now,
	}
}

// Route processes one inbound message and returns the replies to send. The
// user's session lock is held for the whole call, so concurrent messages from
// one user are serialized while different users proceed in parallel.
func (r *Router) Route(ctx context.Context, userID int64, text string) []Reply {
	ctx, span := r.tracer.Start(ctx, "dialog.route")
	defer span.End()

	var replies []Reply
	r.store.With(ctx, userID, func(sess *domain.Session) {
		replies = r.dispatch(ctx, sess, text)
	})
	return replies
}

// dispatch runs under the session lock. Commands are recognized ahead of the
// shape classifier, then mid-login messages go to the login machine, then the
// classifier picks a step handler. Unmatched messages are dropped without a
// reply.
func (r *Router) dispatch(ctx context.Context, sess *domain.Session, text string) []Reply {
	switch text {
	case cmdStart:
		return r.beginLogin(sess)
	case cmdCancel:
		return r.cancelLogin(sess)
	case cmdMarket:
		return r.marketPrompt(sess)
	}

	if sess.AuthPhase.InLogin() {
		return r.handleLogin(sess, text)
	}

	kind, ok := Classify(sess, text)
	if !ok {
		log.Printf("dialog: unmatched message from user %d at step %s, dropped", sess.UserID, sess.Step)
		return nil
	}
	trace.SpanFromContext(ctx).SetAttributes(attribute.String("dialog.step", kind.String()))

	switch kind {
	case KindSave:
		return r.handleSave(sess)
	case KindStartTime:
		return r.handleStartTime(sess, text)
	case KindEndTime:
		return r.handleEndTime(ctx, sess, text)
	case KindDay:
		return r.handleDay(sess, text)
	case KindStrategy:
		return r.handleStrategy(sess, text)
	case KindAssets:
		return r.handleAssets(sess, text)
	case KindMarket:
		return r.handleMarket(sess, text)
	default:
		return nil
	}
}
