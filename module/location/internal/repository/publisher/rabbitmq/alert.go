package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nandanugg/hrms-integrity/module/location/domain"
	"github.com/nandanugg/hrms-integrity/module/location/internal/repository/publisher"
)

var _ publisher.AlertPublisher = (*AlertPublisher)(nil)

const (
	ExchangeName = "hrms.integrity"
	QueueName    = "location_alerts"
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type topologyDeclarer interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
}

type publishChannel interface {
	channel
	topologyDeclarer
	Close() error
}

type AlertPublisher struct {
	ch channel
}

func NewAlertPublisher(conn *amqp.Connection) (*AlertPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	return newAlertPublisher(ch)
}

// newAlertPublisher takes ownership of ch and closes it if the topology
// cannot be declared.
func newAlertPublisher(ch publishChannel) (*AlertPublisher, error) {
	if err := DeclareTopology(ch); err != nil {
		_ = ch.Close()
		return nil, err
	}
	return &AlertPublisher{ch: ch}, nil
}

// DeclareTopology declares the alert exchange and queue and binds them. It is
// shared with consumers so both sides agree on the names.
func DeclareTopology(ch topologyDeclarer) error {
	if err := ch.ExchangeDeclare(ExchangeName, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(QueueName, "", ExchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

func (p *AlertPublisher) PublishAlert(ctx context.Context, alert *domain.LocationAlert) error {
	body, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshal alert: %w", err)
	}

	return p.ch.PublishWithContext(ctx, ExchangeName, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    alert.VerificationID,
		Timestamp:    time.Now(),
		Body:         body,
	})
}
