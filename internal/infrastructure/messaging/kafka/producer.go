package kafka

import (
	"context"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/Hala-ashour/Restaurant98/internal/config"
	"github.com/Hala-ashour/Restaurant98/internal/domain/order"
	"github.com/Hala-ashour/Restaurant98/pkg/logger"
)

// EventEncoder turns a status change into the record payload.
type EventEncoder interface {
	Encode(evt order.StatusChanged) ([]byte, error)
}

type recordProducer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// OrderEventProducer publishes committed order status changes, keyed by order id.
type OrderEventProducer struct {
	client  recordProducer
	topic   string
	encoder EventEncoder
	logger  logger.Logger
}

func NewOrderEventProducer(cfg config.KafkaConfig, encoder EventEncoder, log logger.Logger) (*OrderEventProducer, error) {
	log.Info("Connecting Kafka producer",
		logger.Strings("brokers", cfg.Brokers),
		logger.String("topic", cfg.EventsTopic),
	)

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.EventsTopic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.DisableIdempotentWrite(),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return &OrderEventProducer{
		client:  client,
		topic:   cfg.EventsTopic,
		encoder: encoder,
		logger:  log,
	}, nil
}

func (p *OrderEventProducer) PublishStatusChanged(ctx context.Context, evt order.StatusChanged) error {
	if evt.OrderID == "" {
		return fmt.Errorf("event has no order id")
	}
	payload, err := p.encoder.Encode(evt)
	if err != nil {
		return fmt.Errorf("encode status event: %w", err)
	}

	rec := &kgo.Record{
		Topic:     p.topic,
		Key:       []byte(evt.OrderID),
		Value:     payload,
		Timestamp: time.Now().UTC(),
	}

	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		p.logger.WithContext(ctx).Error("Failed to publish order event",
			logger.String("topic", p.topic),
			logger.String("order_id", evt.OrderID),
			logger.Int("payload_bytes", len(payload)),
			logger.Error(err),
		)
		return fmt.Errorf("publish to kafka topic %s: %w", p.topic, err)
	}

	p.logger.WithContext(ctx).Debug("Order event published",
		logger.String("topic", p.topic),
		logger.String("order_id", evt.OrderID),
	)
	return nil
}

func (p *OrderEventProducer) Close(ctx context.Context) error {
	p.logger.Info("Closing Kafka producer", logger.String("topic", p.topic))
	if p.client != nil {
		p.client.Close()
	}
	return nil
}
