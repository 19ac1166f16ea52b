package bot

import (
	"testing"
)

func TestStartTelegramBotSkipsWithoutToken(t *testing.T) {
	StartTelegramBot("", nil, nil)
}

func TestReplyMarkupBuildsKeyboard(t *testing.T) {
	markup := replyMarkup([][]string{{"1. OTC Market", "2. Real Market"}})

	if !markup.ResizeKeyboard || !markup.OneTimeKeyboard {
		t.Fatalf("expected resize and one-time flags, got %+v", markup)
	}
	if len(markup.ReplyKeyboard) != 1 || len(markup.ReplyKeyboard[0]) != 2 {
		t.Fatalf("unexpected keyboard shape: %+v", markup.ReplyKeyboard)
	}
	if markup.ReplyKeyboard[0][0].Text != "1. OTC Market" {
		t.Fatalf("unexpected button label: %q", markup.ReplyKeyboard[0][0].Text)
	}
}
