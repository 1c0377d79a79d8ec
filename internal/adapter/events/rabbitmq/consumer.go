// Package rabbitmq feeds domain events from a RabbitMQ queue into the
// webhook dispatcher.
package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"webhook-gateway/config"
	"webhook-gateway/internal/core/ports"
	"webhook-gateway/internal/telemetry"
	"webhook-gateway/pkg/apperror"
	"webhook-gateway/pkg/logger"

	"github.com/rs/zerolog"
	"github.com/streadway/amqp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"
	"go.opentelemetry.io/otel/trace"
)

// DefaultActor is recorded when a message carries no actor.
const DefaultActor = "amqp"

// ErrChannelClosed is returned by Run when the broker closes the delivery channel.
var ErrChannelClosed = errors.New("amqp delivery channel closed")

// Channel is the subset of *amqp.Channel the consumer uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// EventMessage is the JSON body of a queued event.
type EventMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Actor string          `json:"actor,omitempty"`
}

// Consumer reads EventMessages and dispatches them.
// Valid messages are acked after Dispatch succeeds, malformed ones are
// dropped, and transient dispatch failures are requeued.
type Consumer struct {
	ch         Channel
	conn       *amqp.Connection
	dispatcher ports.DispatcherService
	cfg        config.AMQPConfig
	tracer     trace.Tracer
	log        zerolog.Logger
}

// NewConsumer wraps an open channel.
func NewConsumer(ch Channel, dispatcher ports.DispatcherService, cfg config.AMQPConfig, log zerolog.Logger) *Consumer {
	return &Consumer{
		ch:         ch,
		dispatcher: dispatcher,
		cfg:        cfg,
		tracer:     otel.Tracer(telemetry.TracerName),
		log:        logger.Component(log, "amqp_consumer").With().Str("queue", cfg.Queue).Logger(),
	}
}

// Dial connects to cfg.URL, opens a channel and declares the topology.
func Dial(cfg config.AMQPConfig, dispatcher ports.DispatcherService, log zerolog.Logger) (*Consumer, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	c := NewConsumer(ch, dispatcher, cfg, log)
	c.conn = conn

	notifyClose := make(chan *amqp.Error, 1)
	conn.NotifyClose(notifyClose)
	go func() {
		for err := range notifyClose {
			c.log.Warn().Str("reason", err.Reason).Int("code", err.Code).Msg("RabbitMQ connection closed")
		}
	}()

	if err := c.Setup(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

// Setup declares a durable topic exchange and queue and binds them.
// Declarations are idempotent. An empty exchange consumes the queue directly.
func (c *Consumer) Setup() error {
	if c.cfg.Exchange != "" {
		if err := c.ch.ExchangeDeclare(c.cfg.Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare exchange: %w", err)
		}
	}
	if _, err := c.ch.QueueDeclare(c.cfg.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if c.cfg.Exchange != "" {
		if err := c.ch.QueueBind(c.cfg.Queue, c.cfg.RoutingKey, c.cfg.Exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue: %w", err)
		}
	}
	if c.cfg.Prefetch > 0 {
		if err := c.ch.Qos(c.cfg.Prefetch, 0, false); err != nil {
			return fmt.Errorf("failed to set prefetch: %w", err)
		}
	}
	return nil
}

// Run consumes until ctx is cancelled (nil) or the broker closes the
// channel (ErrChannelClosed).
func (c *Consumer) Run(ctx context.Context) error {
	msgs, err := c.ch.Consume(c.cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}
	c.log.Info().Str("exchange", c.cfg.Exchange).Str("routing_key", c.cfg.RoutingKey).Msg("consuming events")

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return ErrChannelClosed
			}
			c.handle(ctx, msg)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, msg amqp.Delivery) {
	ctx = otel.GetTextMapPropagator().Extract(ctx, headerCarrier(msg.Headers))
	ctx, span := c.tracer.Start(ctx, "webhook.consume", trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			semconv.MessagingSystemKey.String("rabbitmq"),
			semconv.MessagingDestinationKey.String(c.cfg.Queue),
			semconv.MessagingRabbitmqRoutingKeyKey.String(msg.RoutingKey),
			semconv.MessagingOperationProcess,
		))
	defer span.End()

	log := c.log.With().Str("message_id", msg.MessageId).Logger()

	var event EventMessage
	if err := json.Unmarshal(msg.Body, &event); err != nil || strings.TrimSpace(event.Event) == "" {
		if err == nil {
			err = errors.New("missing event type")
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed message")
		log.Warn().Err(err).Msg("dropping malformed event message")
		c.settle(log, msg.Nack(false, false))
		return
	}

	actor := event.Actor
	if actor == "" {
		actor = DefaultActor
	}
	var payload any
	if len(event.Data) > 0 {
		payload = event.Data
	}

	n, err := c.dispatcher.Dispatch(ctx, event.Event, payload, actor)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		requeue := !isPermanent(err)
		log.Error().Err(err).Str("event", event.Event).Bool("requeue", requeue).Msg("event dispatch failed")
		c.settle(log, msg.Nack(false, requeue))
		return
	}

	log.Debug().Str("event", event.Event).Int("deliveries", n).Msg("event dispatched")
	c.settle(log, msg.Ack(false))
}

func (c *Consumer) settle(log zerolog.Logger, err error) {
	if err != nil {
		log.Warn().Err(err).Msg("failed to settle message")
	}
}

// Close closes the channel and, when dialled, the connection.
func (c *Consumer) Close() error {
	var errs []error
	if c.ch != nil {
		if err := c.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// isPermanent reports whether redelivering the message cannot succeed.
func isPermanent(err error) bool {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus >= http.StatusBadRequest && appErr.HTTPStatus < http.StatusInternalServerError
	}
	return false
}

// headerCarrier exposes string AMQP headers to the otel propagator.
func headerCarrier(headers amqp.Table) propagation.MapCarrier {
	out := make(propagation.MapCarrier, len(headers))
	for k, v := range headers {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
