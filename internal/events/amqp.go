package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// DefaultPublishTimeout bound dialing and publishing of one event
const DefaultPublishTimeout = 2 * time.Second

// AMQPPublisher publish events as persistent JSON messages on the default exchange,
// routing key being the queue name. Connection is opened lazily and reopened after it drop.
type AMQPPublisher struct {
	url string
	log logrus.FieldLogger
	// Timeout cap each Publish call including connection handshake
	Timeout time.Duration

	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	declared map[string]bool
}

// NewAMQPPublisher does not dial until the first Publish
func NewAMQPPublisher(url string, log logrus.FieldLogger) *AMQPPublisher {
	return &AMQPPublisher{
		url:      url,
		log:      log,
		Timeout:  DefaultPublishTimeout,
		declared: map[string]bool{},
	}
}

// NewPublisher return AMQPPublisher for url, or NopPublisher when url is empty
func NewPublisher(url string, log logrus.FieldLogger) Publisher {
	if url == "" {
		return NopPublisher{}
	}
	return NewAMQPPublisher(url, log)
}

// dial open a connection whose TCP connect and AMQP handshake both end by ctx deadline
func (p *AMQPPublisher) dial(ctx context.Context) (*amqp.Connection, error) {
	deadline, _ := ctx.Deadline()
	return amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial: func(network, addr string) (net.Conn, error) {
			var d net.Dialer
			conn, err := d.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			// cleared by amqp once handshake complete
			if err := conn.SetDeadline(deadline); err != nil {
				_ = conn.Close()
				return nil, err
			}
			return conn, nil
		},
	})
}

// connection return open connection, dialing without holding p.mu
func (p *AMQPPublisher) connection(ctx context.Context) (*amqp.Connection, error) {
	p.mu.Lock()
	conn := p.conn
	p.mu.Unlock()
	if conn != nil && !conn.IsClosed() {
		return conn, nil
	}

	dialed, err := p.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial failed: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn != nil && !p.conn.IsClosed() {
		// another publisher won the race
		_ = dialed.Close()
		return p.conn, nil
	}
	p.conn = dialed
	p.ch = nil
	return dialed, nil
}

// channel must be called with p.mu held
func (p *AMQPPublisher) channel(conn *amqp.Connection) (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: channel open failed: %w", err)
	}
	p.ch = ch
	p.declared = map[string]bool{}
	return ch, nil
}

// Publish implements Publisher. It never take longer than Timeout.
func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal event failed: %w", err)
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	queue := event.Queue()
	conn, err := p.connection(ctx)
	if err != nil {
		p.log.WithError(err).WithField("queue", queue).Warn("event dropped")
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel(conn)
	if err != nil {
		p.log.WithError(err).WithField("queue", queue).Warn("event dropped")
		return err
	}

	if !p.declared[queue] {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			p.log.WithError(err).WithField("queue", queue).Warn("event dropped")
			return fmt.Errorf("rabbitmq: queue declare failed: %w", err)
		}
		p.declared[queue] = true
	}

	err = ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		p.log.WithError(err).WithField("queue", queue).Warn("event dropped")
		return fmt.Errorf("rabbitmq: publish failed: %w", err)
	}
	return nil
}

// Close the channel and connection if open
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	if p.ch != nil && !p.ch.IsClosed() {
		errs = append(errs, p.ch.Close())
	}
	if p.conn != nil && !p.conn.IsClosed() {
		errs = append(errs, p.conn.Close())
	}
	p.ch, p.conn = nil, nil
	return errors.Join(errs...)
}
