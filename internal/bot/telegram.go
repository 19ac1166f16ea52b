package bot

import (
	"context"
	"log"
	"time"

	"otc-signal-bot/internal/dialog"

	tele "gopkg.in/telebot.v3"
)

// MessageRouter is the dialogue core behind every inbound message.
type MessageRouter interface {
	Route(ctx context.Context, userID int64, text string) []dialog.Reply
}

// StartTelegramBot connects the long-polling gateway to the dialogue router
// and binds the alert dispatcher to the live bot. With no token configured
// the bot is skipped and the rest of the stack keeps running.
func StartTelegramBot(token string, router MessageRouter, alerts *AlertDispatcher) {
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}
	if alerts == nil {
		alerts = NewAlertDispatcher(nil)
	}
	alerts.Bind(b)

	routed := func(c tele.Context) error {
		sender := c.Sender()
		if sender == nil {
			return nil
		}
		replies := router.Route(context.Background(), sender.ID, c.Text())
		return sendReplies(c, replies)
	}

	b.Handle("/start", routed)
	b.Handle("/cancel", routed)
	b.Handle("/market", routed)
	b.Handle(tele.OnText, routed)

	b.Handle("/alerts", func(c tele.Context) error {
		chat := c.Chat()
		if chat == nil {
			return c.Send("Unable to detect chat")
		}

		mode, err := parseAlertMode(c.Args())
		if err != nil {
			return c.Send("Usage: /alerts on | /alerts off | /alerts status")
		}

		switch mode {
		case "on":
			if alerts.Subscribe(chat.ID) {
				return c.Send("Signal alerts enabled for this chat.")
			}
			return c.Send("Signal alerts are already enabled for this chat.")
		case "off":
			if alerts.Unsubscribe(chat.ID) {
				return c.Send("Signal alerts disabled for this chat.")
			}
			return c.Send("Signal alerts are already disabled for this chat.")
		default:
			if alerts.IsSubscribed(chat.ID) {
				return c.Send("Alerts status: ON")
			}
			return c.Send("Alerts status: OFF")
		}
	})

	log.Println("Telegram bot started")
	go b.Start()
}

func sendReplies(c tele.Context, replies []dialog.Reply) error {
	for _, r := range replies {
		if len(r.Keyboard) == 0 {
			if err := c.Send(r.Text); err != nil {
				return err
			}
			continue
		}
		if err := c.Send(r.Text, replyMarkup(r.Keyboard)); err != nil {
			return err
		}
	}
	return nil
}

func replyMarkup(rows [][]string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	keyboard := make([][]tele.ReplyButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tele.ReplyButton, 0, len(row))
		for _, label := range row {
			buttons = append(buttons, tele.ReplyButton{Text: label})
		}
		keyboard = append(keyboard, buttons)
	}
	markup.ReplyKeyboard = keyboard
	return markup
}
