// Package notify tells the sales team about new inquiries.
package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/newindiatimber/timbercraft/internal/inquiry"
)

// Notifier is told about every stored inquiry. Implementations log their own
// failures; a lost notification never fails the submission.
type Notifier interface {
	BulkOrder(ctx context.Context, o inquiry.BulkOrder)
	Contact(ctx context.Context, m inquiry.ContactMessage)
}

// Noop drops every notification.
type Noop struct{}

func (Noop) BulkOrder(context.Context, inquiry.BulkOrder)      {}
func (Noop) Contact(context.Context, inquiry.ContactMessage) {}

// Sender is the part of the bot API used to post messages.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts a short summary of every inquiry to one chat.
type Telegram struct {
	bot    Sender
	chatID int64
	logger *zap.Logger
}

func NewTelegram(bot Sender, chatID int64, logger *zap.Logger) *Telegram {
	return &Telegram{bot: bot, chatID: chatID, logger: logger}
}

// ConnectTelegram authorizes token against the bot API.
func ConnectTelegram(token string, chatID int64, logger *zap.Logger) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("authorize telegram bot: %w", err)
	}
	logger.Info("telegram notifications enabled", zap.String("bot", bot.Self.UserName), zap.Int64("chat_id", chatID))
	return NewTelegram(bot, chatID, logger), nil
}

func (t *Telegram) BulkOrder(_ context.Context, o inquiry.BulkOrder) {
	t.send(BulkOrderText(o), zap.String("order_number", o.OrderNumber))
}

func (t *Telegram) Contact(_ context.Context, m inquiry.ContactMessage) {
	t.send(ContactText(m), zap.Int64("message_id", m.ID))
}

func (t *Telegram) send(text string, field zap.Field) {
	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		t.logger.Error("failed to send telegram notification", field, zap.Int64("chat_id", t.chatID), zap.Error(err))
	}
}

// BulkOrderText is the message posted for a new bulk order.
func BulkOrderText(o inquiry.BulkOrder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New bulk order %s\n", o.OrderNumber)
	fmt.Fprintf(&b, "Product: %s x %d\n", o.ProductType, o.Quantity)
	fmt.Fprintf(&b, "Customer: %s", o.CustomerName)
	if o.Company != "" {
		fmt.Fprintf(&b, " (%s)", o.Company)
	}
	fmt.Fprintf(&b, "\nContact: %s, %s", o.CustomerEmail, o.CustomerPhone)
	if o.Timeline != "" {
		fmt.Fprintf(&b, "\nTimeline: %s", o.Timeline)
	}
	if o.Budget != "" {
		fmt.Fprintf(&b, "\nBudget: %s", o.Budget)
	}
	return b.String()
}

// ContactText is the message posted for a new contact message.
func ContactText(m inquiry.ContactMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New contact message from %s <%s>", m.Name, m.Email)
	if m.Phone != "" {
		fmt.Fprintf(&b, ", %s", m.Phone)
	}
	if m.Subject != "" {
		fmt.Fprintf(&b, "\nSubject: %s", m.Subject)
	}
	fmt.Fprintf(&b, "\n\n%s", m.Message)
	return b.String()
}
