// Package events carries observation-write notifications between the API
// process and the recalculation consumer over RabbitMQ. Every new intake or
// exercise write publishes one message; the consumer funnels each into the
// unified recalculation entry point.
package events

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"caloria/internal/services"
	"caloria/internal/utils"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

// ObservationQueue is the queue observation events travel on.
const ObservationQueue = "calorie.observation.logged"

// ObservationEvent is the wire shape of a logged-observation notification.
// Date is the civil calendar date in YYYY-MM-DD form.
type ObservationEvent struct {
	UserID uint   `json:"user_id"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %v", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %v", err)
	}

	_, err = channel.QueueDeclare(
		ObservationQueue, // name
		true,             // durable
		false,            // delete when unused
		false,            // exclusive
		false,            // no-wait
		nil,              // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %v", err)
	}

	return &Publisher{conn: conn, channel: channel, queue: ObservationQueue}, nil
}

// ObservationLogged publishes a notification that (user, date) gained new
// observation data. Delivery is at-least-once; the downstream recalculation
// is an idempotent upsert, so duplicates are harmless.
func (p *Publisher) ObservationLogged(userID uint, date time.Time, reason string) error {
	event := ObservationEvent{
		UserID: userID,
		Date:   utils.FormatCivilDate(date),
		Reason: reason,
	}
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %v", err)
	}

	return p.channel.Publish(
		"",      // exchange
		p.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:   "application/json",
			CorrelationId: uuid.New().String(),
			DeliveryMode:  amqp.Persistent,
			Body:          body,
		})
}

func (p *Publisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// Consumer drains observation events and re-runs metrics for each affected
// (user, date).
type Consumer struct {
	conn         *amqp.Connection
	channel      *amqp.Channel
	recalculator *services.Recalculator
	stopChan     chan struct{}
	wg           sync.WaitGroup
}

func NewConsumer(url string, recalculator *services.Recalculator) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %v", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %v", err)
	}

	if _, err := channel.QueueDeclare(ObservationQueue, true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %v", err)
	}

	return &Consumer{
		conn:         conn,
		channel:      channel,
		recalculator: recalculator,
		stopChan:     make(chan struct{}),
	}, nil
}

func (c *Consumer) Start() error {
	msgs, err := c.channel.Consume(
		ObservationQueue,      // queue
		"metrics_recalculate", // consumer tag
		false,                 // auto-ack
		false,                 // exclusive
		false,                 // no-local
		false,                 // no-wait
		nil,                   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %v", err)
	}

	c.wg.Add(1)
	go c.handle(msgs)
	return nil
}

func (c *Consumer) handle(msgs <-chan amqp.Delivery) {
	defer c.wg.Done()

	for {
		select {
		case <-c.stopChan:
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}

			var event ObservationEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				log.Printf("dropping malformed observation event: %v", err)
				msg.Nack(false, false)
				continue
			}

			date, err := utils.ParseCivilDate(event.Date)
			if err != nil {
				log.Printf("dropping observation event with bad date: %v", err)
				msg.Nack(false, false)
				continue
			}

			if _, err := c.recalculator.Recalculate(event.UserID, date, services.ReasonObservationEvent); err != nil {
				log.Printf("recalculation failed for user %d on %s: %v", event.UserID, event.Date, err)
			}
			_ = msg.Ack(false)
		}
	}
}

func (c *Consumer) Stop() {
	close(c.stopChan)
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
	c.wg.Wait()
}
