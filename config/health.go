package config

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

type dbPinger interface {
	PingContext(ctx context.Context) error
}

type amqpConn interface {
	IsClosed() bool
}

type mqttConn interface {
	IsConnected() bool
}

type HealthChecker struct {
	db   dbPinger
	amqp amqpConn
	mqtt mqttConn
}

func NewHealthChecker(db dbPinger, amqp amqpConn, mqtt mqttConn) *HealthChecker {
	return &HealthChecker{db: db, amqp: amqp, mqtt: mqtt}
}

func (h *HealthChecker) Register(r *gin.Engine) {
	r.GET("/healthz", h.Handle)
}

func (h *HealthChecker) Handle(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	status := http.StatusOK
	deps := gin.H{}
	report := func(name string, err string) {
		if err == "" {
			deps[name] = gin.H{"status": "up"}
			return
		}
		deps[name] = gin.H{"status": "down", "error": err}
		status = http.StatusServiceUnavailable
	}

	if err := h.db.PingContext(ctx); err != nil {
		report("postgres", err.Error())
	} else {
		report("postgres", "")
	}

	if h.amqp.IsClosed() {
		report("rabbitmq", "connection closed")
	} else {
		report("rabbitmq", "")
	}

	if !h.mqtt.IsConnected() {
		report("mqtt", "not connected")
	} else {
		report("mqtt", "")
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":       overall,
		"dependencies": deps,
	})
}
