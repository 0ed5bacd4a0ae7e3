// Package kafka publishes the loan event log to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"nft-lending-backend/internal/domain/event"
	"nft-lending-backend/internal/domain/uow"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageWriter is the part of *kafka.Writer the relay needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireAll,
		MaxAttempts:            5,
		WriteBackoffMin:        100 * time.Millisecond,
		WriteBackoffMax:        time.Second,
	}
}

// Relay drains unpublished events in id order. Delivery is at-least-once: a
// batch written to Kafka is marked published in the same transaction, and a
// failed commit replays it on the next flush.
type Relay struct {
	uow   uow.UnitOfWork
	w     MessageWriter
	batch int
	now   func() time.Time
	log   *zap.Logger
}

func NewRelay(tx uow.UnitOfWork, w MessageWriter, batch int, log *zap.Logger) *Relay {
	if log == nil {
		log = zap.NewNop()
	}
	if batch <= 0 {
		batch = 100
	}
	return &Relay{uow: tx, w: w, batch: batch, now: func() time.Time { return time.Now().UTC() }, log: log}
}

// Flush publishes one batch and returns how many events went out.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	var n int
	err := r.uow.WithinTx(ctx, func(repos uow.Repos) error {
		evs, err := repos.Events.ListUnpublished(ctx, r.batch)
		if err != nil {
			return err
		}
		if len(evs) == 0 {
			return nil
		}
		msgs := make([]kafka.Message, 0, len(evs))
		ids := make([]uint64, 0, len(evs))
		for i := range evs {
			m, err := toMessage(&evs[i])
			if err != nil {
				return err
			}
			msgs = append(msgs, m)
			ids = append(ids, evs[i].ID)
		}
		if err := r.w.WriteMessages(ctx, msgs...); err != nil {
			return fmt.Errorf("kafka write: %w", err)
		}
		if err := repos.Events.MarkPublished(ctx, ids, r.now()); err != nil {
			return err
		}
		n = len(evs)
		return nil
	})
	if err != nil {
		r.log.Error("event relay flush failed", zap.Error(err))
		return 0, err
	}
	if n > 0 {
		r.log.Info("events published", zap.Int("count", n))
	}
	return n, nil
}

// Close flushes what is buffered in the writer.
func (r *Relay) Close() error { return r.w.Close() }

// Keyed by loan so one loan's events stay ordered within a partition.
func toMessage(e *event.Event) (kafka.Message, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal event %s: %w", e.EventID, err)
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatUint(e.LoanID, 10)),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(e.EventID)},
			{Key: "kind", Value: []byte(e.Kind)},
		},
		Time: e.CreatedAt,
	}, nil
}
