package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nandanugg/hrms-integrity/config"
	"github.com/nandanugg/hrms-integrity/module/location"
	"github.com/nandanugg/hrms-integrity/module/location/domain"
)

const prefetch = 16

func main() {
	cfg := config.Load()

	conn, err := config.NewRabbitMQ(cfg, "hrms-integrity-listener")
	if err != nil {
		log.Fatalf("rabbitmq: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := location.OpenAlertChannel(conn)
	if err != nil {
		log.Fatalf("alert channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(prefetch, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	msgs, err := ch.Consume(location.AlertQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	log.Printf("consuming from queue '%s', waiting for location alerts...", location.AlertQueue)

	go func() {
		for msg := range msgs {
			handle(msg)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("shutting down")
}

func handle(msg amqp.Delivery) {
	var alert domain.LocationAlert
	if err := json.Unmarshal(msg.Body, &alert); err != nil {
		log.Printf("dropping malformed alert %s: %v", msg.MessageId, err)
		_ = msg.Nack(false, false)
		return
	}

	findings := append(append([]string{}, alert.RiskFactors...), alert.SpoofingIndicators...)
	fmt.Printf("%s [%s] employee=%d (%s) confidence=%d verification=%s\n",
		alert.CheckedAt.Format("2006-01-02 15:04:05Z07:00"), alert.Status, alert.EmployeeID,
		alert.EmployeeName, alert.Confidence, alert.VerificationID)
	if len(findings) > 0 {
		fmt.Printf("    %s\n", strings.Join(findings, "\n    "))
	}
	_ = msg.Ack(false)
}
