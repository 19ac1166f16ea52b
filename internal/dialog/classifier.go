package dialog

import (
	"regexp"

	"otc-signal-bot/internal/domain"
)

// StepKind identifies which handler a free-text message belongs to.
type StepKind int

const (
	KindNone StepKind = iota
	KindSave
	KindStartTime
	KindEndTime
	KindDay
	KindStrategy
	KindAssets
	KindMarket
)

func (k StepKind) String() string {
	switch k {
	case KindSave:
		return "save"
	case KindStartTime:
		return "start_time"
	case KindEndTime:
		return "end_time"
	case KindDay:
		return "day"
	case KindStrategy:
		return "strategy"
	case KindAssets:
		return "assets"
	case KindMarket:
		return "market"
	default:
		return "none"
	}
}

var (
	timePattern   = regexp.MustCompile(`^\d{1,2}:\d{2}$`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
	assetsPattern = regexp.MustCompile(`^(\d+,?)+$`)
	marketPattern = regexp.MustCompile(`^[12]\.`)
)

// Classify decides which step handler should receive text. Predicates are
// evaluated in priority order; each couples a text shape with a session-state
// guard, so a message is never routed to a step whose prerequisites are
// missing. The two time shapes are told apart by whether the start time is
// already captured: first match sets the start, the second the end, and any
// further time input is ignored. Returns KindNone when nothing matches.
func Classify(sess *domain.Session, text string) (StepKind, bool) {
	switch {
	case text == "save":
		return KindSave, true
	case timePattern.MatchString(text):
		if sess.Step == domain.StepNeedStartTime && sess.StartTime == "" {
			return KindStartTime, true
		}
		if sess.Step == domain.StepNeedEndTime && sess.EndTime == "" {
			return KindEndTime, true
		}
		return KindNone, false
	case sess.Step == domain.StepNeedDay && digitsPattern.MatchString(text):
		return KindDay, true
	case sess.Step == domain.StepNeedStrategy && digitsPattern.MatchString(text):
		return KindStrategy, true
	case sess.Step == domain.StepNeedAssets && assetsPattern.MatchString(text):
		return KindAssets, true
	case sess.Step == domain.StepNeedMarket && marketPattern.MatchString(text):
		return KindMarket, true
	default:
		return KindNone, false
	}
}
