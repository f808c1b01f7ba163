package notify

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/finboard/finboard/internal/event_bus"
	"github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

const publishTimeout = 5 * time.Second

// Channel is the part of *amqp091.Channel the publisher uses.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

// Publisher forwards store change events to a durable topic exchange, routed by event type.
type Publisher struct {
	mu       sync.Mutex
	conn     *amqp091.Connection
	channel  Channel
	exchange string
}

// Dial connects to the broker and declares the exchange.
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	log.Infof("Publishing store events to AMQP exchange %s", exchange)
	return &Publisher{conn: conn, channel: channel, exchange: exchange}, nil
}

func NewPublisher(channel Channel, exchange string) *Publisher {
	return &Publisher{channel: channel, exchange: exchange}
}

// Attach subscribes the publisher to every income, expense and goal event on bus.
// A failed publish is logged and never reaches the request that changed the store.
func (p *Publisher) Attach(bus *event_bus.EventBus) (unsubscribe func()) {
	events := append(slices.Clone(event_bus.TransactionEvents), event_bus.GoalEvents...)
	return bus.SubscribeMany(events, func(e event_bus.Event) error {
		if err := p.Publish(e.Context(), e); err != nil {
			log.WithField("event", e.Type).Errorf("failed to publish event to AMQP: %v", err)
		}
		return nil
	})
}

func (p *Publisher) Publish(ctx context.Context, e event_bus.Event) error {
	msg, ok := NewEventMessage(e)
	if !ok {
		return nil
	}
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.PublishWithContext(
		ctx,
		p.exchange, // exchange
		msg.Type,   // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    msg.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	log.WithFields(log.Fields{"event": msg.Type, "id": msg.Id}).Debug("Published event to AMQP")
	return nil
}

func (p *Publisher) Close() error {
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
