package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/xuanmo666/order-management-system/internal/usecase"
)

const (
	routingOrderCreated   = "order.created"
	routingOrderCancelled = "order.cancelled"
	routingStockLow       = "stock.low"
)

// RabbitPublisher implements usecase.EventPublisher over a topic exchange.
// Consumers (alerting, analytics) bind their own queues.
type RabbitPublisher struct {
	ch       *amqp.Channel
	exchange string
}

// NewRabbitPublisher declares the exchange once at startup.
func NewRabbitPublisher(ch *amqp.Channel, exchange string) (*RabbitPublisher, error) {
	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	if err := ch.Confirm(false); err != nil {
		return nil, fmt.Errorf("enable confirm mode: %w", err)
	}
	return &RabbitPublisher{ch: ch, exchange: exchange}, nil
}

func (p *RabbitPublisher) publish(ctx context.Context, routingKey string, msg any) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	}
	if err := p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, pub); err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}

func (p *RabbitPublisher) PublishOrderCreated(ctx context.Context, msg usecase.OrderCreatedMsg) error {
	return p.publish(ctx, routingOrderCreated, msg)
}

func (p *RabbitPublisher) PublishOrderCancelled(ctx context.Context, msg usecase.OrderCancelledMsg) error {
	return p.publish(ctx, routingOrderCancelled, msg)
}

func (p *RabbitPublisher) PublishLowStock(ctx context.Context, msg usecase.LowStockMsg) error {
	return p.publish(ctx, routingStockLow, msg)
}

var _ usecase.EventPublisher = (*RabbitPublisher)(nil)
