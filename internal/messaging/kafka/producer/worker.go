package producer

import (
	"context"
	"time"

	"go-bizdocs/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	DefaultBatchSize    = 50
	DefaultPollInterval = 3 * time.Second
)

// Relay moves outbox rows to Kafka. A full batch is followed straight away by
// the next one, so a backlog drains without waiting a tick per batch.
type Relay struct {
	repo      kafka.OutboxRepository
	writer    MessageWriter
	logger    *zap.Logger
	batchSize int
	interval  time.Duration
}

func NewRelay(repo kafka.OutboxRepository, writer MessageWriter, batchSize int, interval time.Duration, logger ...*zap.Logger) *Relay {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	l := zap.L().Named("kafka.producer.relay")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.producer.relay")
	}
	return &Relay{repo: repo, writer: writer, logger: l, batchSize: batchSize, interval: interval}
}

// Run blocks until ctx is done.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("outbox relay started",
		zap.Duration("poll_interval", r.interval),
		zap.Int("batch_size", r.batchSize),
	)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if _, err := r.Drain(ctx); err != nil {
				r.logger.Error("drain outbox failed", zap.Error(err))
			}
		}
	}
}

// Drain publishes batches until one comes back short and returns the number
// of events sent.
func (r *Relay) Drain(ctx context.Context) (int, error) {
	total := 0
	for ctx.Err() == nil {
		sent, listed, err := r.publishBatch(ctx)
		total += sent
		if err != nil {
			return total, err
		}
		// A batch with failures is left for the next tick so a broken broker
		// is not hammered in a tight loop.
		if listed < r.batchSize || sent < listed {
			break
		}
	}
	return total, nil
}

func (r *Relay) publishBatch(ctx context.Context) (sent, listed int, err error) {
	events, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		return 0, 0, err
	}
	if len(events) == 0 {
		return 0, 0, nil
	}

	r.logger.Debug("publishing outbox batch", zap.Int("count", len(events)))

	for _, event := range events {
		if ctx.Err() != nil {
			break
		}
		log := r.logger.With(
			zap.String("outbox_id", event.ID),
			zap.String("request_id", event.RequestID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)

		if err := publishEvent(ctx, r.writer, event); err != nil {
			log.Error("publish outbox event failed", zap.Int("retry_count", event.RetryCount), zap.Error(err))
			if markErr := r.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				log.Error("mark outbox event failed", zap.Error(markErr))
			}
			if event.RetryCount+1 >= kafka.MaxOutboxRetries {
				log.Warn("outbox event moved to dead letter")
			}
			continue
		}

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			log.Error("mark outbox event sent failed", zap.Error(err))
			continue
		}
		sent++
		log.Info("outbox event sent")
	}

	return sent, len(events), nil
}
