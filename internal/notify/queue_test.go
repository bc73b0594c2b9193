package notify

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSender считает отправленные и удалённые сообщения
type fakeSender struct {
	mu      sync.Mutex
	nextID  int
	sent    []string
	deleted []int
}

func (f *fakeSender) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	f.sent = append(f.sent, params.Text)
	return &models.Message{ID: f.nextID}, nil
}

func (f *fakeSender) DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleted = append(f.deleted, params.MessageID)
	return true, nil
}

func (f *fakeSender) deletedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.deleted)
}

func TestQueuePushSendsMessageWithIcon(t *testing.T) {
	sender := &fakeSender{}
	q := NewQueue(sender, zap.NewNop(), 3, time.Minute)
	defer q.Shutdown()

	id := q.Push(context.Background(), 1, KindSuccess, "Запись отменена", "Математика")

	require.NotEmpty(t, id)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "✅ Запись отменена\nМатематика", sender.sent[0])

	active := q.Active()
	require.Len(t, active, 1)
	assert.Equal(t, KindSuccess, active[0].Kind)
}

func TestQueueEvictsOldestAtLimit(t *testing.T) {
	sender := &fakeSender{}
	q := NewQueue(sender, zap.NewNop(), 2, time.Minute)
	defer q.Shutdown()

	ctx := context.Background()
	q.Push(ctx, 1, KindInfo, "first", "")
	q.Push(ctx, 1, KindInfo, "second", "")
	q.Push(ctx, 1, KindInfo, "third", "")

	active := q.Active()
	require.Len(t, active, 2)
	assert.Equal(t, "second", active[0].Title)
	assert.Equal(t, "third", active[1].Title)

	// Самое старое сообщение удалено из чата
	require.Len(t, sender.deleted, 1)
	assert.Equal(t, 1, sender.deleted[0])
}

func TestQueueDismiss(t *testing.T) {
	sender := &fakeSender{}
	q := NewQueue(sender, zap.NewNop(), 3, time.Minute)
	defer q.Shutdown()

	ctx := context.Background()
	id := q.Push(ctx, 1, KindError, "boom", "")
	require.Len(t, q.Active(), 1)

	q.Dismiss(ctx, id)

	assert.Empty(t, q.Active())
	assert.Equal(t, 1, sender.deletedCount())

	// Повторный Dismiss безопасен
	q.Dismiss(ctx, id)
	assert.Equal(t, 1, sender.deletedCount())
}

func TestQueueAutoDismissAfterTTL(t *testing.T) {
	sender := &fakeSender{}
	q := NewQueue(sender, zap.NewNop(), 3, 20*time.Millisecond)
	defer q.Shutdown()

	q.Push(context.Background(), 1, KindWarning, "ephemeral", "")
	require.Len(t, q.Active(), 1)

	assert.Eventually(t, func() bool {
		return len(q.Active()) == 0 && sender.deletedCount() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestQueueShutdownStopsTimers(t *testing.T) {
	sender := &fakeSender{}
	q := NewQueue(sender, zap.NewNop(), 3, time.Minute)

	q.Push(context.Background(), 1, KindInfo, "a", "")
	q.Push(context.Background(), 1, KindInfo, "b", "")

	q.Shutdown()

	assert.Empty(t, q.Active())
}

// Конкурентные Push на заполненной очереди не выводят её за предел
func TestQueuePushConcurrentKeepsBound(t *testing.T) {
	sender := &fakeSender{}
	q := NewQueue(sender, zap.NewNop(), 3, time.Minute)
	defer q.Shutdown()

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-done:
				return
			default:
				assert.LessOrEqual(t, len(q.Active()), 3)
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			q.Push(context.Background(), 1, KindInfo, "уведомление", "")
		}()
	}
	wg.Wait()
	close(done)

	assert.Len(t, q.Active(), 3)
	assert.Equal(t, 17, sender.deletedCount())
}
