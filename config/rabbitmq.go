package config

import (
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// NewRabbitMQ dials the broker; name shows up in the management UI.
func NewRabbitMQ(cfg *Config, name string) (*amqp.Connection, error) {
	props := amqp.NewConnectionProperties()
	props.SetClientConnectionName(name)

	conn, err := amqp.DialConfig(cfg.RabbitMQURL, amqp.Config{
		Properties: props,
		Heartbeat:  10 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("rabbitmq connect: %w", err)
	}
	return conn, nil
}
