package location

import (
	"database/sql"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"

	handler "github.com/nandanugg/hrms-integrity/module/location/internal/handler/http"
	"github.com/nandanugg/hrms-integrity/module/location/internal/handler/subscriber"
	"github.com/nandanugg/hrms-integrity/module/location/internal/repository/database/postgres"
	"github.com/nandanugg/hrms-integrity/module/location/internal/repository/llm/openrouter"
	"github.com/nandanugg/hrms-integrity/module/location/internal/repository/publisher/rabbitmq"
	"github.com/nandanugg/hrms-integrity/module/location/service"
)

type Options struct {
	Thresholds service.Thresholds
	// The OpenRouter client backs explanations and pattern analysis when
	// OpenRouterAPIKey is set.
	OpenRouterURL    string
	OpenRouterAPIKey string
	OpenRouterModel  string
	// JWTSecret enables the bearer-token guard when non-empty.
	JWTSecret          string
	RateLimitPerMinute int
}

type Module struct {
	PingSvc         *service.PingService
	VerificationSvc *service.VerificationService
	PatternSvc      *service.PatternService
	pingHandler     *handler.PingHandler
	verifyHandler   *handler.VerificationHandler
	subscriber      *subscriber.PingSubscriber
	opts            Options
}

func Build(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client, opts Options) (*Module, error) {
	pingRepo := postgres.NewPingRepo(db)
	verificationRepo := postgres.NewVerificationRepo(db)

	alertPub, err := rabbitmq.NewAlertPublisher(amqpConn)
	if err != nil {
		return nil, fmt.Errorf("alert publisher: %w", err)
	}

	var (
		explainer service.Explainer
		analyzer  service.PatternAnalyzer
	)
	if opts.OpenRouterAPIKey != "" {
		client := openrouter.NewClient(openrouter.Config{
			URL:    opts.OpenRouterURL,
			APIKey: opts.OpenRouterAPIKey,
			Model:  opts.OpenRouterModel,
		})
		explainer = client
		analyzer = client
	}

	pingSvc := service.NewPingService(pingRepo)
	verificationSvc := service.NewVerificationService(verificationRepo, pingRepo, alertPub, explainer, opts.Thresholds)
	patternSvc := service.NewPatternService(analyzer)

	return &Module{
		PingSvc:         pingSvc,
		VerificationSvc: verificationSvc,
		PatternSvc:      patternSvc,
		pingHandler:     handler.NewPingHandler(pingSvc),
		verifyHandler:   handler.NewVerificationHandler(verificationSvc, patternSvc),
		subscriber:      subscriber.NewPingSubscriber(mqttClient, pingSvc),
		opts:            opts,
	}, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	r.Use(handler.RequestLogger())
	if m.opts.JWTSecret != "" {
		r.Use(handler.BearerAuth(m.opts.JWTSecret))
	}

	var writeMiddleware []gin.HandlerFunc
	if m.opts.RateLimitPerMinute > 0 {
		limiter := handler.NewRateLimiter(m.opts.RateLimitPerMinute, time.Minute)
		writeMiddleware = append(writeMiddleware, limiter.Middleware())
	}

	m.pingHandler.Register(r)
	m.verifyHandler.Register(r, writeMiddleware...)
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}

// AlertQueue is the durable queue that receives every location alert.
const AlertQueue = rabbitmq.QueueName

// OpenAlertChannel opens a channel on conn with the alert exchange and queue
// declared, ready for consuming AlertQueue.
func OpenAlertChannel(conn *amqp.Connection) (*amqp.Channel, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	if err := rabbitmq.DeclareTopology(ch); err != nil {
		_ = ch.Close()
		return nil, err
	}
	return ch, nil
}
