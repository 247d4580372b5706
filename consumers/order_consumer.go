package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/romilkhanna/turing-backend/config"
	"github.com/romilkhanna/turing-backend/middlewares"
	"github.com/romilkhanna/turing-backend/models"
	"github.com/romilkhanna/turing-backend/repository"
)

const (
	outcomeAcked        = "acked"
	outcomeRequeued     = "requeued"
	outcomeDeadLettered = "dead_lettered"
)

type OrderLookup interface {
	FindForCustomer(ctx context.Context, orderID, customerID int) (*models.Order, error)
}

// OrderConsumer confirms order events against the database. Events that can
// never be processed go to the dead-letter queue.
type OrderConsumer struct {
	cfg    *config.Config
	orders OrderLookup
	log    *zap.Logger
}

func NewOrderConsumer(cfg *config.Config, orders OrderLookup, log *zap.Logger) *OrderConsumer {
	return &OrderConsumer{cfg: cfg, orders: orders, log: log}
}

// Start registers on the order queue and the dead-letter queue and processes
// deliveries until ctx is cancelled or the channel closes.
func (oc *OrderConsumer) Start(ctx context.Context, ch *amqp.Channel) error {
	msgs, err := ch.Consume(
		oc.cfg.OrderQueue,
		"turing-backend", // consumer tag
		false,            // auto-ack
		false,            // exclusive
		false,            // no-local
		false,            // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("register order consumer: %w", err)
	}

	dlqMsgs, err := ch.Consume(
		oc.cfg.DeadLetterQueue,
		"turing-backend-dlq",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("register dead-letter consumer: %w", err)
	}

	go oc.drain(ctx, msgs, oc.processOrderMessage)
	go oc.drain(ctx, dlqMsgs, oc.processDeadLetter)
	return nil
}

func (oc *OrderConsumer) drain(ctx context.Context, msgs <-chan amqp.Delivery, handle func(context.Context, amqp.Delivery)) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			handle(ctx, msg)
		}
	}
}

func (oc *OrderConsumer) processOrderMessage(ctx context.Context, msg amqp.Delivery) {
	defer func() {
		if r := recover(); r != nil {
			oc.log.Error("panic while processing order event", zap.Any("panic", r))
			oc.reject(msg, false)
		}
	}()

	var event models.OrderEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil || event.OrderID <= 0 || event.Type == "" {
		oc.log.Warn("malformed order event", zap.ByteString("body", msg.Body), zap.Error(err))
		oc.reject(msg, false)
		return
	}

	switch event.Type {
	case models.OrderEventCreated:
		oc.handleOrderCreated(ctx, msg, event)
	default:
		oc.log.Warn("unknown order event type", zap.String("type", event.Type), zap.Int("order_id", event.OrderID))
		oc.ack(msg)
	}
}

func (oc *OrderConsumer) handleOrderCreated(ctx context.Context, msg amqp.Delivery, event models.OrderEvent) {
	order, err := oc.orders.FindForCustomer(ctx, event.OrderID, event.CustomerID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		oc.log.Warn("order event for unknown order", zap.Int("order_id", event.OrderID))
		oc.reject(msg, false)
		return
	case err != nil:
		// One retry through the broker, then the dead-letter queue.
		oc.log.Error("order lookup failed", zap.Int("order_id", event.OrderID), zap.Error(err))
		oc.reject(msg, !msg.Redelivered)
		return
	}

	oc.log.Info("order confirmed",
		zap.Int("order_id", order.ID),
		zap.Int("customer_id", order.CustomerID),
		zap.String("total_amount", order.TotalAmount.StringFixed(2)))
	oc.ack(msg)
}

func (oc *OrderConsumer) processDeadLetter(_ context.Context, msg amqp.Delivery) {
	oc.log.Warn("dead-lettered order event", zap.ByteString("body", msg.Body), zap.Any("headers", msg.Headers))
	if err := msg.Ack(false); err != nil {
		oc.log.Error("ack dead letter failed", zap.Error(err))
		return
	}
	middlewares.RecordEventConsumed(oc.cfg.DeadLetterQueue, outcomeAcked)
}

func (oc *OrderConsumer) ack(msg amqp.Delivery) {
	if err := msg.Ack(false); err != nil {
		oc.log.Error("ack failed", zap.Error(err))
		return
	}
	middlewares.RecordEventConsumed(oc.cfg.OrderQueue, outcomeAcked)
}

func (oc *OrderConsumer) reject(msg amqp.Delivery, requeue bool) {
	if err := msg.Nack(false, requeue); err != nil {
		oc.log.Error("nack failed", zap.Error(err))
		return
	}
	outcome := outcomeDeadLettered
	if requeue {
		outcome = outcomeRequeued
	}
	middlewares.RecordEventConsumed(oc.cfg.OrderQueue, outcome)
}
