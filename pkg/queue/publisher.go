package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Publisher sends JSON events to a message broker.
type Publisher interface {
	Publish(ctx context.Context, event any) error
	Close() error
}

// NewPublisher dials url and declares a durable queue. An empty url returns a
// publisher that drops every event.
func NewPublisher(url, queue string, log *zap.Logger) (Publisher, error) {
	log = log.With(zap.String("component", "publisher"), zap.String("queue", queue))
	if url == "" {
		log.Info("AMQP_URL not set, order events disabled")
		return NopPublisher{}, nil
	}

	p := &amqpPublisher{url: url, queue: queue, log: log}
	if err := p.connect(); err != nil {
		return nil, err
	}
	return p, nil
}

type amqpPublisher struct {
	url   string
	queue string
	log   *zap.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// connect must be called with mu held or before the publisher is shared.
func (p *amqpPublisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("open amqp channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		p.queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("declare queue %s: %w", p.queue, err)
	}

	p.conn, p.ch = conn, ch
	return nil
}

func (p *amqpPublisher) Publish(ctx context.Context, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.ch.IsClosed() {
		p.log.Warn("AMQP channel closed, reconnecting")
		p.closeLocked()
		if err := p.connect(); err != nil {
			return err
		}
	}

	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", p.queue, err)
	}
	return nil
}

func (p *amqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeLocked()
}

func (p *amqpPublisher) closeLocked() error {
	var errs []error
	if p.ch != nil {
		if err := p.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
		p.ch = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
		p.conn = nil
	}
	return errors.Join(errs...)
}

// NopPublisher drops events.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, any) error { return nil }
func (NopPublisher) Close() error                       { return nil }
