package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/Hala-ashour/Restaurant98/internal/config"
	"github.com/Hala-ashour/Restaurant98/internal/domain/apperr"
	"github.com/Hala-ashour/Restaurant98/pkg/logger"
)

// KitchenHandler applies a status command coming from the kitchen.
type KitchenHandler interface {
	HandleKitchenCommand(ctx context.Context, orderID, status string) error
}

// KitchenCommand is the JSON payload on the kitchen topic.
type KitchenCommand struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

type KitchenConsumer struct {
	reader  messageReader
	handler KitchenHandler
	logger  logger.Logger
}

func NewKitchenConsumer(cfg config.KafkaConfig, handler KitchenHandler, log logger.Logger) *KitchenConsumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  cfg.Brokers,
		GroupID:  cfg.ConsumerGroup,
		Topic:    cfg.KitchenTopic,
		MinBytes: 1e3,
		MaxBytes: 1e6,
	})

	return &KitchenConsumer{
		reader:  reader,
		handler: handler,
		logger:  log,
	}
}

// Start blocks until ctx is done or an infrastructure error occurs.
// Commands that fail validation or point at a missing order are logged and committed.
func (c *KitchenConsumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		if err := c.handle(ctx, msg); err != nil {
			return err
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit message: %w", err)
		}
	}
}

func (c *KitchenConsumer) handle(ctx context.Context, msg kafkago.Message) error {
	var cmd KitchenCommand
	if err := json.Unmarshal(msg.Value, &cmd); err != nil {
		c.logger.Warn("Skipping undecodable kitchen command",
			logger.Int("partition", msg.Partition),
			logger.Any("offset", msg.Offset),
			logger.Error(err),
		)
		return nil
	}

	err := c.handler.HandleKitchenCommand(ctx, cmd.OrderID, cmd.Status)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrNotFound):
		c.logger.Warn("Skipping rejected kitchen command",
			logger.String("order_id", cmd.OrderID),
			logger.String("status", cmd.Status),
			logger.Error(err),
		)
		return nil
	default:
		return fmt.Errorf("handle kitchen command for order %s: %w", cmd.OrderID, err)
	}
}

func (c *KitchenConsumer) Close() error {
	return c.reader.Close()
}
