// Package messaging publishes and consumes support messages over AMQP.
package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"expensetracker/internal/logger"
)

// Publisher sends contact messages to the support queue.
type Publisher interface {
	PublishContactMessage(ctx context.Context, msg *ContactMessage) error
}

// Handler processes one delivered contact message. Returning an error
// requeues the message.
type Handler func(ctx context.Context, msg *ContactMessage) error

// Client wraps one AMQP connection and channel bound to a durable direct
// exchange and queue.
type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

var _ Publisher = (*Client)(nil)

// NewClient dials url and declares the exchange and queue.
func NewClient(url, exchangeName, queueName string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := client.setup(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	if err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := c.channel.QueueDeclare(
		c.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// The routing key is the queue name.
	if err := c.channel.QueueBind(c.queueName, c.queueName, c.exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// PublishContactMessage publishes msg as a persistent JSON message.
func (c *Client) PublishContactMessage(ctx context.Context, msg *ContactMessage) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		c.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    msg.ID,
			Timestamp:    msg.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	logger.Get().Infow("published contact message",
		"id", msg.ID,
		"exchange", c.exchangeName,
		"queue", c.queueName,
	)
	return nil
}

// ConsumeContactMessages delivers messages to handler until ctx is done or
// the channel closes. Acks are manual: undecodable messages are dropped,
// handler failures are requeued.
func (c *Client) ConsumeContactMessages(ctx context.Context, handler Handler) error {
	msgs, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	log := logger.Get()
	log.Infow("started consuming contact messages", "queue", c.queueName)

	for {
		select {
		case <-ctx.Done():
			log.Infow("stopping message consumption", "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return errChannelClosed
			}
			process(ctx, delivery.Body, delivery, handler)
		}
	}
}

// acknowledger is the part of amqp091.Delivery used after handling.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func process(ctx context.Context, body []byte, ack acknowledger, handler Handler) {
	log := logger.Get()

	msg, err := ContactMessageFromJSON(body)
	if err != nil {
		log.Errorw("failed to unmarshal contact message", "error", err)
		_ = ack.Nack(false, false)
		return
	}

	if err := handler(ctx, msg); err != nil {
		log.Errorw("failed to handle contact message", "error", err, "id", msg.ID)
		_ = ack.Nack(false, true)
		return
	}

	_ = ack.Ack(false)
	log.Infow("processed contact message", "id", msg.ID)
}

// Close closes the channel and the connection.
func (c *Client) Close() error {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

var errChannelClosed = errors.New("message channel closed")

// Consume keeps a consumer running across broker restarts, reconnecting with
// exponential backoff whenever the connection drops. It returns when ctx is
// done or on a non-connection error.
func Consume(ctx context.Context, url, exchangeName, queueName string, handler Handler) error {
	log := logger.Get()

	for attempt := 0; ; attempt++ {
		client, err := NewClient(url, exchangeName, queueName)
		if err == nil {
			attempt = 0
			err = client.ConsumeContactMessages(ctx, handler)
			_ = client.Close()
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !isConnectionError(err) {
			return err
		}

		wait := exponentialBackoff(attempt)
		log.Warnw("AMQP connection lost, reconnecting", "error", err, "retry_in", wait.String())
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

const maxBackoff = 30 * time.Second

func exponentialBackoff(attempt int) time.Duration {
	if attempt > 5 {
		return maxBackoff
	}
	d := time.Second << attempt
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, errChannelClosed) || errors.Is(err, amqp091.ErrClosed) {
		return true
	}
	s := strings.ToLower(err.Error())
	for _, marker := range []string{"connection", "eof", "broken pipe", "closed network", "dial"} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
