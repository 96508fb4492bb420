package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"canteen_service/internal/domain"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const (
	ordersExchange   = "orders_topic"
	orderPlacedKey   = "order.placed"
	publishTimeout   = 10 * time.Second
	contentTypeJSON  = "application/json"
	deliveryModeSafe = amqp091.Persistent
)

var _ domain.OrderNotifier = (*Publisher)(nil)

// Publisher announces placed orders on a RabbitMQ topic exchange so the
// kitchen/fulfillment side can consume them.
type Publisher struct {
	conn *amqp091.Connection
	ch   *amqp091.Channel
	log  *logrus.Logger
}

func NewPublisher(url string, logger *logrus.Logger) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		ordersExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Publisher{
		conn: conn,
		ch:   ch,
		log:  logger,
	}, nil
}

func (p *Publisher) OrderPlaced(ctx context.Context, event domain.OrderPlacedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order-placed event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.ch.PublishWithContext(
		ctx,
		ordersExchange,
		orderPlacedKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  contentTypeJSON,
			Body:         body,
			DeliveryMode: deliveryModeSafe,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish order-placed event: %w", err)
	}

	p.log.Debugf("Published order-placed event for order %s", event.OrderID)
	return nil
}

func (p *Publisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.log.Warnf("Failed to close RabbitMQ channel: %v", err)
	}
	return p.conn.Close()
}
