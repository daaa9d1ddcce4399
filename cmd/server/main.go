package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/nandanugg/hrms-integrity/config"
	"github.com/nandanugg/hrms-integrity/module/location"
)

func main() {
	cfg := config.Load()

	thresholds, err := config.LoadThresholds(cfg.ThresholdsFile)
	if err != nil {
		log.Fatalf("thresholds: %v", err)
	}

	db, err := config.NewPostgres(cfg)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer func() { _ = db.Close() }()

	if err := config.Migrate(context.Background(), db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	amqpConn, err := config.NewRabbitMQ(cfg, "hrms-integrity-server")
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer func() { _ = amqpConn.Close() }()

	mqttClient, err := config.NewMQTT(cfg, cfg.MQTTClientID)
	if err != nil {
		log.Fatalf("mqtt: %v", err)
	}
	defer mqttClient.Disconnect(250)

	locationModule, err := location.Build(db, amqpConn, mqttClient, location.Options{
		Thresholds:         thresholds,
		OpenRouterURL:      cfg.OpenRouterURL,
		OpenRouterAPIKey:   cfg.OpenRouterAPIKey,
		OpenRouterModel:    cfg.OpenRouterModel,
		JWTSecret:          cfg.JWTSecret,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})
	if err != nil {
		log.Fatalf("location module: %v", err)
	}

	if err := locationModule.StartSubscribers(); err != nil {
		log.Fatalf("start subscribers: %v", err)
	}

	if cfg.OpenRouterAPIKey == "" {
		log.Printf("OPENROUTER_API_KEY not set, AI explanations disabled")
	}
	if cfg.JWTSecret == "" {
		log.Printf("JWT_SECRET not set, API is unauthenticated")
	}

	r := gin.New()
	r.Use(gin.Recovery())

	health := config.NewHealthChecker(db, amqpConn, mqttClient)
	health.Register(r)

	locationModule.RegisterRoutes(&r.RouterGroup)

	log.Printf("listening on :%s", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatalf("server: %v", err)
	}
}
