package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	QueueReservationCreated   = "reservation.created"
	QueueReservationCancelled = "reservation.cancelled"
)

var (
	// ErrNotConnected возвращается при публикации через закрытый publisher
	ErrNotConnected = errors.New("queue: publisher is not connected")

	// ErrPublish возвращается при ошибке публикации сообщения
	ErrPublish = errors.New("queue: failed to publish message")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует доменные события в RabbitMQ
// Соединение и канал создаются один раз при старте сервиса
// Ошибки публикации логируются и возвращаются: вызывающая сторона сама решает,
// прерывать ли основной поток (для бронирований - никогда)
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	log  Logger
}

// NewPublisher подключается к RabbitMQ и объявляет очереди событий
// Очереди durable, сообщения persistent - события переживают рестарт брокера
func NewPublisher(url string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("queue: dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("queue: open channel: %w", err)
	}

	for _, name := range []string{QueueReservationCreated, QueueReservationCancelled} {
		if _, err := ch.QueueDeclare(
			name,
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,   // args
		); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("queue: declare %s: %w", name, err)
		}
	}

	return &Publisher{conn: conn, ch: ch, log: log}, nil
}

// Close закрывает канал и соединение
func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// PublishReservationCreated публикует событие о созданном бронировании
func (p *Publisher) PublishReservationCreated(ctx context.Context, event ReservationCreatedEvent) error {
	return p.publish(ctx, QueueReservationCreated, event)
}

// PublishReservationCancelled публикует событие об отменённом бронировании
func (p *Publisher) PublishReservationCancelled(ctx context.Context, event ReservationCancelledEvent) error {
	return p.publish(ctx, QueueReservationCancelled, event)
}

func (p *Publisher) publish(ctx context.Context, queueName string, event interface{}) error {
	if p.ch == nil {
		return ErrNotConnected
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("queue: marshal event for %s: %v", queueName, err)
		return fmt.Errorf("%w: marshal: %v", ErrPublish, err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = queue name
		false,     // mandatory
		false,     // immediate
		pub,
	); err != nil {
		p.log.Error("queue: publish to %s: %v", queueName, err)
		return fmt.Errorf("%w: %s: %v", ErrPublish, queueName, err)
	}

	return nil
}
