package notify

import (
	"context"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

func (k Kind) icon() string {
	switch k {
	case KindSuccess:
		return "✅"
	case KindError:
		return "❌"
	case KindWarning:
		return "⚠️"
	default:
		return "ℹ️"
	}
}

// Notification одно всплывающее уведомление
type Notification struct {
	ID          string
	ChatID      int64
	Kind        Kind
	Title       string
	Description string
	MessageID   int // ID отправленного сообщения в Telegram
}

// Sender часть API бота, нужная очереди. *bot.Bot реализует интерфейс.
type Sender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error)
}

// Queue ограниченная FIFO-очередь уведомлений с автоскрытием по таймеру.
// При переполнении сбрасывается самое старое уведомление.
type Queue struct {
	sender Sender
	logger *zap.Logger
	ttl    time.Duration
	limit  int

	mu      sync.Mutex
	entries []*Notification
	timers  map[string]*time.Timer
}

func NewQueue(sender Sender, logger *zap.Logger, limit int, ttl time.Duration) *Queue {
	return &Queue{
		sender:  sender,
		logger:  logger,
		ttl:     ttl,
		limit:   limit,
		entries: make([]*Notification, 0, limit),
		timers:  make(map[string]*time.Timer),
	}
}

// Push показывает уведомление и планирует его скрытие через ttl
func (q *Queue) Push(ctx context.Context, chatID int64, kind Kind, title, description string) string {
	n := &Notification{
		ID:          uuid.NewString(),
		ChatID:      chatID,
		Kind:        kind,
		Title:       title,
		Description: description,
	}

	text := kind.icon() + " " + title
	if description != "" {
		text += "\n" + description
	}

	msg, err := q.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		q.logger.Error("Failed to send notification",
			zap.Int64("chat_id", chatID), zap.Error(err))
		return ""
	}
	n.MessageID = msg.ID

	// Вытеснение и добавление идут под одной блокировкой,
	// сообщения Telegram удаляются после её освобождения
	q.mu.Lock()
	var evicted []*Notification
	for len(q.entries) >= q.limit {
		oldest := q.entries[0]
		q.entries = q.entries[1:]
		if timer, ok := q.timers[oldest.ID]; ok {
			timer.Stop()
			delete(q.timers, oldest.ID)
		}
		evicted = append(evicted, oldest)
	}
	q.entries = append(q.entries, n)
	q.timers[n.ID] = time.AfterFunc(q.ttl, func() {
		q.Dismiss(context.Background(), n.ID)
	})
	q.mu.Unlock()

	for _, old := range evicted {
		if _, err := q.sender.DeleteMessage(ctx, &bot.DeleteMessageParams{
			ChatID:    old.ChatID,
			MessageID: old.MessageID,
		}); err != nil {
			q.logger.Debug("Failed to delete notification message",
				zap.Int64("chat_id", old.ChatID), zap.Error(err))
		}
	}

	return n.ID
}

// Dismiss скрывает уведомление досрочно или по таймеру
func (q *Queue) Dismiss(ctx context.Context, id string) {
	q.mu.Lock()
	var target *Notification
	for i, n := range q.entries {
		if n.ID == id {
			target = n
			q.entries = append(q.entries[:i:i], q.entries[i+1:]...)
			break
		}
	}
	if timer, ok := q.timers[id]; ok {
		timer.Stop()
		delete(q.timers, id)
	}
	q.mu.Unlock()

	if target == nil {
		return
	}

	if _, err := q.sender.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    target.ChatID,
		MessageID: target.MessageID,
	}); err != nil {
		// Сообщение могло быть удалено вручную — не страшно
		q.logger.Debug("Failed to delete notification message",
			zap.Int64("chat_id", target.ChatID), zap.Error(err))
	}
}

// Active возвращает снимок текущих уведомлений
func (q *Queue) Active() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Notification, len(q.entries))
	for i, n := range q.entries {
		out[i] = *n
	}
	return out
}

// Shutdown останавливает все таймеры
func (q *Queue) Shutdown() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for id, timer := range q.timers {
		timer.Stop()
		delete(q.timers, id)
	}
	q.entries = q.entries[:0]
}
