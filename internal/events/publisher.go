// Package events publishes contact-change notifications to kafka.
// Publishing is strictly best-effort: a mutation must never fail or
// block for long because the broker is down.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"
)

const produceTimeout = 3 * time.Second

type Event struct {
	ID  string    `json:"id"`
	Op  string    `json:"op"` // added | updated | deleted
	Key string    `json:"key"`
	At  time.Time `json:"at"`
}

type Publisher struct {
	log   *slog.Logger
	kc    *kgo.Client
	topic string
}

func NewClient(brokers []string) (*kgo.Client, error) {
	return kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
}

func NewPublisher(log *slog.Logger, kc *kgo.Client, topic string) *Publisher {
	return &Publisher{log: log, kc: kc, topic: topic}
}

func (p *Publisher) ContactChanged(ctx context.Context, op, key string) {
	ev := Event{
		ID:  uuid.NewString(),
		Op:  op,
		Key: key,
		At:  time.Now().UTC(),
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		p.log.Error("events: encode failed", slog.Any("err", err))
		return
	}

	pctx, cancel := context.WithTimeout(ctx, produceTimeout)
	defer cancel()

	rec := &kgo.Record{Topic: p.topic, Key: []byte(key), Value: payload}
	if err := p.kc.ProduceSync(pctx, rec).FirstErr(); err != nil {
		p.log.Warn("events: produce failed",
			slog.String("op", op),
			slog.String("key", key),
			slog.Any("err", err),
		)
		return
	}
	p.log.Debug("events: published", slog.String("op", op), slog.String("key", key))
}

func (p *Publisher) Close() { p.kc.Close() }
