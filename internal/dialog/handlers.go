package dialog

import (
	"context"
	"log"
	"strconv"
	"strings"

	"otc-signal-bot/internal/domain"
)

// One handler per conversation step. Each validates its input, mutates only
// the session fields it owns, advances the step enum, and returns the next
// prompt. Validation failures leave the session unchanged.

func (r *Router) marketPrompt(sess *domain.Session) []Reply {
	sess.ResetCycle()
	return []Reply{{Text: msgMarketPrompt, Keyboard: marketKeyboard()}}
}

func (r *Router) handleMarket(sess *domain.Session, text string) []Reply {
	var replies []Reply
	switch {
	case strings.Contains(text, "1"):
		sess.MarketType = domain.MarketOTC
	case strings.Contains(text, "2"):
		sess.MarketType = domain.MarketReal
		replies = append(replies, Reply{Text: msgRealMarketSoon})
	default:
		return []Reply{{Text: msgMarketInvalid}}
	}
	sess.Step = domain.StepNeedAssets
	return append(replies, Reply{Text: assetListMessage()})
}

func (r *Router) handleAssets(sess *domain.Session, text string) []Reply {
	var selected []string
	for _, token := range strings.Split(text, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		ordinal, err := strconv.Atoi(token)
		if err != nil {
			return []Reply{{Text: msgAssetsInvalid}}
		}
		asset, err := domain.AssetByOrdinal(ordinal)
		if err != nil {
			// one bad index fails the whole step, nothing is kept
			return []Reply{{Text: msgAssetsInvalid}}
		}
		selected = append(selected, asset)
	}
	if len(selected) == 0 {
		return []Reply{{Text: msgAssetsInvalid}}
	}

	sess.SelectedAssets = selected
	sess.Step = domain.StepNeedStrategy
	return []Reply{{Text: strategyListMessage()}}
}

func (r *Router) handleStrategy(sess *domain.Session, text string) []Reply {
	name, ok := domain.Strategies[text]
	if !ok {
		return []Reply{{Text: msgStrategyInvalid}}
	}
	sess.Strategy = name
	sess.Step = domain.StepNeedDay
	return []Reply{{Text: strategyChosenMessage(name)}}
}

func (r *Router) handleDay(sess *domain.Session, text string) []Reply {
	day, err := strconv.Atoi(text)
	if err != nil || !domain.ValidAnalysisDay(day) {
		return []Reply{{Text: msgDayInvalid}}
	}
	sess.AnalysisDay = day
	sess.Step = domain.StepNeedStartTime
	return []Reply{{Text: startTimePrompt(r.timezone)}}
}

func (r *Router) handleStartTime(sess *domain.Session, text string) []Reply {
	sess.StartTime = text
	sess.Step = domain.StepNeedEndTime
	return []Reply{{Text: msgEndTimePrompt}}
}

func (r *Router) handleEndTime(ctx context.Context, sess *domain.Session, text string) []Reply {
	if len(sess.SelectedAssets) == 0 {
		return []Reply{{Text: msgNoAssets}}
	}

	sess.EndTime = text
	sess.Step = domain.StepReady
	replies := []Reply{{Text: msgGenerating}}

	batch, err := r.signals.GenerateBatch(ctx, sess.UserID, sess.SelectedAssets, sess.Strategy, sess.AnalysisDay, sess.StartTime)
	if err != nil {
		log.Printf("dialog: signal generation for user %d failed: %v", sess.UserID, err)
		return append(replies, Reply{Text: msgGenerateFailed})
	}

	sess.LastSignalMessage = batch.Message
	return append(replies, Reply{Text: batch.Message})
}

func (r *Router) handleSave(sess *domain.Session) []Reply {
	if sess.LastSignalMessage == "" {
		return []Reply{{Text: msgNothingToSave}}
	}

	filename := "signals_" + r.now().Format("20060102_150405") + ".txt"
	if err := r.writer.Write(filename, sess.LastSignalMessage); err != nil {
		log.Printf("dialog: save for user %d failed: %v", sess.UserID, err)
		return []Reply{{Text: msgSaveFailed}}
	}
	return []Reply{{Text: savedMessage(filename)}}
}
