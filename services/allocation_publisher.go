package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"hotel-pricing/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

// RoomAllocatedEvent is published after a room has been reserved.
type RoomAllocatedEvent struct {
	RoomID          int                    `json:"room_id"`
	RoomType        models.RoomType        `json:"room_type"`
	Season          models.Season          `json:"season"`
	Nights          int                    `json:"nights"`
	NightlyPrice    float64                `json:"nightly_price"`
	TotalPrice      float64                `json:"total_price"`
	SpecialRequests models.SpecialRequests `json:"special_requests"`
	Source          string                 `json:"source"`
	AllocatedAt     string                 `json:"allocated_at"`
}

// AllocationPublisher delivers allocation events. Failed deliveries never
// undo an allocation; callers log and move on.
type AllocationPublisher interface {
	PublishRoomAllocated(ctx context.Context, event RoomAllocatedEvent) error
}

// NoopAllocationPublisher drops every event.
type NoopAllocationPublisher struct{}

func (NoopAllocationPublisher) PublishRoomAllocated(context.Context, RoomAllocatedEvent) error {
	return nil
}

// AMQPAllocationPublisher publishes persistent JSON messages to a durable
// RabbitMQ queue through the default exchange.
type AMQPAllocationPublisher struct {
	url   string
	queue string
	log   *slog.Logger
}

func NewAMQPAllocationPublisher(url, queue string, logger *slog.Logger) *AMQPAllocationPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	if queue == "" {
		queue = "room.allocated"
	}
	return &AMQPAllocationPublisher{url: url, queue: queue, log: logger}
}

func (p *AMQPAllocationPublisher) PublishRoomAllocated(ctx context.Context, event RoomAllocatedEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Error("rabbitmq dial failed", "error", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		p.log.Error("rabbitmq channel open failed", "error", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		p.log.Error("rabbitmq queue declare failed", "queue", p.queue, "error", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		p.log.Error("rabbitmq publish failed", "queue", p.queue, "error", err)
		return err
	}
	p.log.Debug("room allocated event published", "queue", p.queue, "room_id", event.RoomID)
	return nil
}

// NewRoomAllocatedEvent builds the event for a successful allocation.
func NewRoomAllocatedEvent(resp models.RoomAllocationResponse, season models.Season, nights int, nightly float64, source string) RoomAllocatedEvent {
	return RoomAllocatedEvent{
		RoomID:          resp.AllocatedRoomID,
		RoomType:        resp.RoomType,
		Season:          season,
		Nights:          nights,
		NightlyPrice:    nightly,
		TotalPrice:      resp.TotalPrice,
		SpecialRequests: resp.SpecialRequests,
		Source:          source,
		AllocatedAt:     time.Now().UTC().Format(time.RFC3339),
	}
}
