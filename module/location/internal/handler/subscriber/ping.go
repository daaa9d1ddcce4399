package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/nandanugg/hrms-integrity/module/location/domain"
)

const (
	TopicPattern  = "/hrms/employee/+/location"
	handleTimeout = 10 * time.Second
)

type pingService interface {
	SaveLocation(ctx context.Context, ping *domain.EmployeePing) error
}

type pingMessage struct {
	EmployeeID int64    `json:"employee_id"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Timestamp  int64    `json:"timestamp"`
	Accuracy   *float64 `json:"accuracy,omitempty"`
	Altitude   *float64 `json:"altitude,omitempty"`
	Speed      *float64 `json:"speed,omitempty"`
}

type PingSubscriber struct {
	client  mqtt.Client
	pingSvc pingService
}

func NewPingSubscriber(client mqtt.Client, pingSvc pingService) *PingSubscriber {
	return &PingSubscriber{
		client:  client,
		pingSvc: pingSvc,
	}
}

func (s *PingSubscriber) Start() error {
	token := s.client.Subscribe(TopicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *PingSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw pingMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		log.Printf("invalid ping message on %s: %v", msg.Topic(), err)
		return
	}

	if err := validatePingMessage(&raw); err != nil {
		log.Printf("validation error on %s: %v", msg.Topic(), err)
		return
	}

	ping := &domain.EmployeePing{
		EmployeeID: raw.EmployeeID,
		Ping: domain.LocationPing{
			Lat:       raw.Latitude,
			Lng:       raw.Longitude,
			Timestamp: time.Unix(raw.Timestamp, 0).UTC(),
			Accuracy:  raw.Accuracy,
			Altitude:  raw.Altitude,
			Speed:     raw.Speed,
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	if err := s.pingSvc.SaveLocation(ctx, ping); err != nil {
		log.Printf("save ping for employee %d: %v", ping.EmployeeID, err)
	}
}

func validatePingMessage(msg *pingMessage) error {
	if msg.EmployeeID <= 0 {
		return fmt.Errorf("employee_id: must be positive")
	}
	if err := domain.ValidateCoordinates(msg.Latitude, msg.Longitude); err != nil {
		return err
	}
	if msg.Timestamp <= 0 {
		return fmt.Errorf("timestamp: must be positive")
	}
	if msg.Accuracy != nil && *msg.Accuracy < 0 {
		return fmt.Errorf("accuracy: must not be negative")
	}
	return nil
}
