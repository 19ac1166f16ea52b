package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"otc-signal-bot/internal/domain"

	tele "gopkg.in/telebot.v3"
)

type messageSender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// AlertDispatcher broadcasts newly-generated signal batches to subscribed
// chats. It is created before the gateway so it can be handed to the signal
// service as its notifier; Bind attaches the sender once the bot is up.
type AlertDispatcher struct {
	mu          sync.RWMutex
	sender      messageSender
	subscribers map[int64]struct{}
}

func NewAlertDispatcher(sender messageSender) *AlertDispatcher {
	return &AlertDispatcher{
		sender:      sender,
		subscribers: make(map[int64]struct{}),
	}
}

// Bind attaches the outgoing sender. Until bound, NotifyBatch is a no-op.
func (d *AlertDispatcher) Bind(sender messageSender) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sender = sender
}

func (d *AlertDispatcher) Subscribe(chatID int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.subscribers[chatID]; exists {
		return false
	}
	d.subscribers[chatID] = struct{}{}
	return true
}

func (d *AlertDispatcher) Unsubscribe(chatID int64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.subscribers[chatID]; !exists {
		return false
	}
	delete(d.subscribers, chatID)
	return true
}

func (d *AlertDispatcher) IsSubscribed(chatID int64) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, exists := d.subscribers[chatID]
	return exists
}

func (d *AlertDispatcher) SubscriberCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.subscribers)
}

// NotifyBatch fans a freshly generated batch out to every subscribed chat.
// The generating user is skipped; they already received the full message.
func (d *AlertDispatcher) NotifyBatch(ctx context.Context, batch *domain.SignalBatch) error {
	_ = ctx
	if d == nil || batch == nil || len(batch.Entries) == 0 {
		return nil
	}

	d.mu.RLock()
	sender := d.sender
	d.mu.RUnlock()
	if sender == nil {
		return nil
	}

	chatIDs := d.snapshotSubscribers()
	if len(chatIDs) == 0 {
		return nil
	}

	msg := formatAlertMessage(batch)
	var failures []string
	for _, chatID := range chatIDs {
		if chatID == batch.UserID {
			continue
		}
		if _, err := sender.Send(&tele.Chat{ID: chatID}, msg); err != nil {
			failures = append(failures, fmt.Sprintf("chat %d: %v", chatID, err))
		}
	}
	if len(failures) > 0 {
		return fmt.Errorf("failed sending %d alerts: %s", len(failures), strings.Join(failures, "; "))
	}
	return nil
}

func (d *AlertDispatcher) snapshotSubscribers() []int64 {
	d.mu.RLock()
	defer d.mu.RUnlock()

	chatIDs := make([]int64, 0, len(d.subscribers))
	for chatID := range d.subscribers {
		chatIDs = append(chatIDs, chatID)
	}
	sort.Slice(chatIDs, func(i, j int) bool { return chatIDs[i] < chatIDs[j] })
	return chatIDs
}

func parseAlertMode(args []string) (string, error) {
	if len(args) == 0 {
		return "status", nil
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "on":
		return "on", nil
	case "off":
		return "off", nil
	case "status":
		return "status", nil
	default:
		return "", fmt.Errorf("invalid mode")
	}
}

func formatAlertMessage(batch *domain.SignalBatch) string {
	strategy := batch.Strategy
	if name, ok := domain.Strategies[batch.Strategy]; ok {
		strategy = name
	}

	lines := make([]string, 0, len(batch.Entries)+1)
	lines = append(lines, fmt.Sprintf("New signal batch (%s):", strategy))
	for _, e := range batch.Entries {
		lines = append(lines, formatEntry(e))
	}
	return strings.Join(lines, "\n")
}

func formatEntry(e domain.SignalEntry) string {
	return fmt.Sprintf("%s %s %s %s", e.Timeframe, e.Asset, e.At.Format("15:04"), e.Direction)
}
