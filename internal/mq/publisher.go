package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher отправляет JSON-события в topic exchange RabbitMQ
type Publisher struct {
	mu       sync.Mutex // amqp.Channel не потокобезопасен для publish
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	logger   *zap.Logger
}

func NewPublisher(url, exchange string, logger *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	logger.Info("RabbitMQ publisher ready", zap.String("exchange", exchange))

	return &Publisher{conn: conn, ch: ch, exchange: exchange, logger: logger}, nil
}

// PublishJSON публикует v с routing key = key
func (p *Publisher) PublishJSON(ctx context.Context, key string, v any) error {
	msg, err := encode(v)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, p.exchange, key, false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}

	p.logger.Debug("Event published", zap.String("key", key))
	return nil
}

func encode(v any) (amqp.Publishing, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         b,
	}, nil
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
