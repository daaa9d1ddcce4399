package config

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakePinger struct{ err error }

func (f fakePinger) PingContext(context.Context) error { return f.err }

type fakeAMQP struct{ closed bool }

func (f fakeAMQP) IsClosed() bool { return f.closed }

type fakeMQTT struct{ connected bool }

func (f fakeMQTT) IsConnected() bool { return f.connected }

type healthResponse struct {
	Status       string                       `json:"status"`
	Dependencies map[string]map[string]string `json:"dependencies"`
}

func serveHealth(t *testing.T, h *HealthChecker) (int, healthResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.Register(r)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/healthz", nil)
	r.ServeHTTP(w, req)

	var resp healthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	return w.Code, resp
}

func TestHealthz_AllUp(t *testing.T) {
	code, resp := serveHealth(t, NewHealthChecker(fakePinger{}, fakeAMQP{}, fakeMQTT{connected: true}))

	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if resp.Status != "healthy" {
		t.Errorf("expected healthy, got %s", resp.Status)
	}
	for _, dep := range []string{"postgres", "rabbitmq", "mqtt"} {
		if resp.Dependencies[dep]["status"] != "up" {
			t.Errorf("expected %s up, got %v", dep, resp.Dependencies[dep])
		}
	}
}

func TestHealthz_DependencyDown(t *testing.T) {
	code, resp := serveHealth(t, NewHealthChecker(
		fakePinger{err: errors.New("dial tcp: connection refused")},
		fakeAMQP{closed: true},
		fakeMQTT{connected: true},
	))

	if code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", code)
	}
	if resp.Status != "unhealthy" {
		t.Errorf("expected unhealthy, got %s", resp.Status)
	}
	if resp.Dependencies["postgres"]["error"] != "dial tcp: connection refused" {
		t.Errorf("unexpected postgres report %v", resp.Dependencies["postgres"])
	}
	if resp.Dependencies["rabbitmq"]["status"] != "down" {
		t.Errorf("expected rabbitmq down, got %v", resp.Dependencies["rabbitmq"])
	}
	if resp.Dependencies["mqtt"]["status"] != "up" {
		t.Errorf("expected mqtt up, got %v", resp.Dependencies["mqtt"])
	}
}
