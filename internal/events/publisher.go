package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"

	"razzrel/internal/model"
)

// Routing keys published on the booking exchange.
const (
	BookingCreated   = "booking.created"
	BookingAccepted  = "booking.accepted"
	BookingDeclined  = "booking.declined"
	BookingCancelled = "booking.cancelled"
)

// RoutingKeyFor returns the routing key announcing a booking in status s.
func RoutingKeyFor(s model.BookingStatus) string {
	switch s {
	case model.BookingStatusAccepted:
		return BookingAccepted
	case model.BookingStatusDeclined:
		return BookingDeclined
	case model.BookingStatusCancelled:
		return BookingCancelled
	default:
		return BookingCreated
	}
}

// BookingEvent is the message body of every booking event.
type BookingEvent struct {
	BookingID  uint                `json:"bookingId"`
	UserID     uint                `json:"userId"`
	PackageID  uint                `json:"packageId"`
	EventType  string              `json:"eventType"`
	EventDate  string              `json:"eventDate"`
	Status     model.BookingStatus `json:"status"`
	OccurredAt time.Time           `json:"occurredAt"`
}

// NewBookingEvent describes the current state of b.
func NewBookingEvent(b *model.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		BookingID:  b.ID,
		UserID:     b.UserID,
		PackageID:  b.PackageID,
		EventType:  b.EventType,
		EventDate:  b.EventDate.Format("2006-01-02"),
		Status:     b.Status,
		OccurredAt: at,
	}
}

// Publisher sends domain events to downstream consumers.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
	Close() error
}

// RabbitPublisher publishes JSON messages to a durable topic exchange.
type RabbitPublisher struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

// NewRabbitPublisher dials url and declares exchange.
func NewRabbitPublisher(url, exchange string) (*RabbitPublisher, error) {
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
	return &RabbitPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *RabbitPublisher) PublishJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         b,
	})
}

func (p *RabbitPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishJSON(context.Context, string, any) error { return nil }
func (NopPublisher) Close() error                                 { return nil }

// Connect returns a RabbitPublisher for url, or a NopPublisher when url is
// empty or the broker is unreachable. Events are never required for a request
// to succeed.
func Connect(url, exchange string) Publisher {
	if url == "" {
		return NopPublisher{}
	}
	p, err := NewRabbitPublisher(url, exchange)
	if err != nil {
		log.Warnf("events: rabbitmq unavailable, booking events disabled: %v", err)
		return NopPublisher{}
	}
	return p
}
