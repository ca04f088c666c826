package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/CamelliaGh/voiceFrame-sub002/internal/config"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/domain"
	"github.com/CamelliaGh/voiceFrame-sub002/internal/core/port"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Consumer pulls payment gateway events from a JetStream stream. The
// consumer is durable and acks explicitly so redeliveries cover worker
// crashes.
type Consumer struct {
	logger *slog.Logger
	conn   *nats.Conn
	js     jetstream.JetStream
	config config.NATSConfig
	iter   jetstream.MessagesContext
	wg     sync.WaitGroup
}

// NewNATSConsumer creates a new consumer
func NewNATSConsumer(cfg config.NATSConfig, logger *slog.Logger) (*Consumer, error) {

	opts := []nats.Option{
		nats.Name(cfg.ConsumerName),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	}
	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to JetStream: %w", err)
	}

	return &Consumer{
		conn:   conn,
		js:     js,
		config: cfg,
		logger: logger,
	}, nil
}

// Subscribe subscribes to the payment stream and feeds each message to
// the handler. A handler error naks the message so JetStream redelivers
// it; the handler is responsible for being idempotent.
func (n *Consumer) Subscribe(ctx context.Context, handler port.MessageService) error {
	consumerCfg := jetstream.ConsumerConfig{
		Durable:       n.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		FilterSubject: n.config.Subject,
		AckWait:       30 * time.Second,
		MaxDeliver:    5,
		BackOff:       []time.Duration{1 * time.Second, 5 * time.Second},
	}

	cons, err := n.js.CreateOrUpdateConsumer(ctx, n.config.StreamName, consumerCfg)
	if err != nil {
		return err
	}

	iter, err := cons.Messages()
	if err != nil {
		return err
	}
	n.iter = iter

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.logger.Info("payment event subscription started", "stream", n.config.StreamName, "subject", n.config.Subject)
		for {
			select {
			case <-ctx.Done():
				n.logger.Info("payment event subscription stopped")
				return
			default:
				msg, err := iter.Next()
				if err != nil {
					if ctx.Err() != nil {
						n.logger.Info("payment event subscription stopped")
						return
					}
					n.logger.Error("failed to receive message", "error", err)
					return
				}

				if handleErr := handler.HandleMessage(ctx, msg.Data()); handleErr != nil {
					errNak := msg.Nak()
					if errNak != nil {
						n.logger.Error("failed to nak message", "error", errNak)
					}
					n.logger.Warn("failed to handle payment event", "error", handleErr)
					continue
				}
				ackErr := msg.Ack()
				if ackErr != nil {
					n.logger.Error("failed to ack message", "error", ackErr)
				}
			}
		}
	}()
	return nil
}

// Close graceful shutdown
func (n *Consumer) Close() error {
	if n.iter != nil {
		n.iter.Stop()
	}

	n.wg.Wait()

	if n.conn != nil {
		n.conn.Close()
	}
	return nil
}

// Publisher publishes domain events over JetStream.
type Publisher struct {
	conn   *nats.Conn
	js     jetstream.JetStream
	logger *slog.Logger
}

// NewNATSPublisher creates a new publisher
func NewNATSPublisher(cfg config.NATSConfig, logger *slog.Logger) (*Publisher, error) {
	conn, err := nats.Connect(cfg.URL, nats.Name(cfg.ConsumerName+"-publisher"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to connect to JetStream: %w", err)
	}

	return &Publisher{conn: conn, js: js, logger: logger}, nil
}

// Publish sends data to subject with an ack from the stream.
func (p *Publisher) Publish(ctx context.Context, subject string, data []byte) error {
	_, err := p.js.Publish(ctx, subject, data)
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

// Close disconnects the publisher
func (p *Publisher) Close() error {
	if p.conn != nil {
		p.conn.Close()
	}
	return nil
}

// Notifier announces completed migrations so downstream fulfilment
// (rendering, customer email) can pick the order up.
type Notifier struct {
	publisher port.EventPublisher
	subject   string
}

// NewFulfillmentNotifier creates a notifier publishing on cfg.PublishSubject
func NewFulfillmentNotifier(publisher port.EventPublisher, cfg config.NATSConfig) port.FulfillmentNotifier {
	return &Notifier{publisher: publisher, subject: cfg.PublishSubject}
}

func (f *Notifier) OrderMigrated(ctx context.Context, order domain.Order, refs map[domain.FileRole]string) error {
	migratedAt := time.Now().UTC()
	if order.MigrationCompletedAt != nil {
		migratedAt = *order.MigrationCompletedAt
	}

	event := domain.OrderMigratedEvent{
		OrderID:       order.ID.String(),
		PermanentRefs: refs,
		MigratedAt:    migratedAt,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal order migrated event: %w", err)
	}

	return f.publisher.Publish(ctx, f.subject, data)
}
