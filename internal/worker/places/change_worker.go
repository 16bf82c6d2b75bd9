package places

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
	"github.com/place-discovery/internal/worker"
)

const retryPause = 200 * time.Millisecond

// ChangeHandler реагирует на изменение заведения; возвращает число обновлённых сессий
type ChangeHandler interface {
	NotifyPlaceChanged(ctx context.Context, event domain.PlaceChangedEvent) (int, error)
}

// ChangeWorker читает stream:places:changed и перезапрашивает затронутые выдачи
type ChangeWorker struct {
	*worker.BaseWorker
	streamRepo    repository.StreamRepository
	handler       ChangeHandler
	consumerGroup string
	consumerName  string
	maxRetries    int
}

func NewChangeWorker(
	streamRepo repository.StreamRepository,
	handler ChangeHandler,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *ChangeWorker {
	hostname, _ := os.Hostname()
	if maxRetries <= 0 {
		maxRetries = 1
	}

	return &ChangeWorker{
		BaseWorker:    worker.NewBaseWorker("place-changes", logger),
		streamRepo:    streamRepo,
		handler:       handler,
		consumerGroup: consumerGroup,
		consumerName:  fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		maxRetries:    maxRetries,
	}
}

// Start блокирует до Stop или отмены ctx
func (w *ChangeWorker) Start(ctx context.Context) error {
	logger := w.Logger()

	ctx, cancel := w.RunContext(ctx)
	defer cancel()

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamPlaceChanged, w.consumerGroup); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	messages, err := w.streamRepo.ConsumeStream(ctx, domain.StreamPlaceChanged, w.consumerGroup, w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	logger.Info("Consuming place changes",
		zap.String("consumer_group", w.consumerGroup),
		zap.String("consumer_name", w.consumerName))

	for msg := range messages {
		w.process(ctx, msg)
	}

	logger.Info("Worker stopped")
	return nil
}

// process всегда подтверждает сообщение: битое или не обработанное за maxRetries
// иначе навсегда осталось бы в pending
func (w *ChangeWorker) process(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	var event domain.PlaceChangedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil || event.PlaceID == "" {
		logger.Warn("Skipping malformed place change", zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}

	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		refreshed, err := w.handler.NotifyPlaceChanged(ctx, event)
		if err == nil {
			logger.Info("Place change applied",
				zap.String("place_id", event.PlaceID),
				zap.String("op", string(event.Op)),
				zap.Int("sessions_refreshed", refreshed))
			break
		}

		logger.Warn("Place change failed",
			zap.String("place_id", event.PlaceID),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt == w.maxRetries || ctx.Err() != nil {
			logger.Error("Giving up on place change", zap.String("place_id", event.PlaceID))
			break
		}

		select {
		case <-time.After(retryPause * time.Duration(attempt)):
		case <-ctx.Done():
		}
	}

	w.ack(ctx, msg.ID)
}

func (w *ChangeWorker) ack(ctx context.Context, id string) {
	// после отмены ctx подтверждаем с отдельным таймаутом
	ackCtx := ctx
	if ctx.Err() != nil {
		var cancel context.CancelFunc
		ackCtx, cancel = context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
	}

	if err := w.streamRepo.AckMessage(ackCtx, domain.StreamPlaceChanged, w.consumerGroup, id); err != nil {
		w.Logger().Error("Failed to ack place change", zap.String("message_id", id), zap.Error(err))
	}
}
