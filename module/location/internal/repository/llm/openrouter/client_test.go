package openrouter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/nandanugg/hrms-integrity/module/location/domain"
)

func newTestServer(t *testing.T, status int, reply string, seen *chatRequest) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("unexpected authorization header: %q", r.Header.Get("Authorization"))
		}
		if seen != nil {
			if err := json.NewDecoder(r.Body).Decode(seen); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExplain_Success(t *testing.T) {
	var seen chatRequest
	srv := newTestServer(t, http.StatusOK,
		`{"choices":[{"message":{"role":"assistant","content":"  Likely present at the office.  "}}]}`, &seen)

	c := NewClient(Config{URL: srv.URL, APIKey: "test-key"})
	got, err := c.Explain(context.Background(),
		domain.Metrics{TotalPings: 6, PingsInZone: 6, ZonePercentage: 100},
		domain.Findings{RiskFactors: []string{}, SpoofingIndicators: []string{}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Likely present at the office." {
		t.Errorf("unexpected explanation: %q", got)
	}
	if seen.Model != DefaultModel {
		t.Errorf("expected model %s, got %s", DefaultModel, seen.Model)
	}
	if seen.MaxTokens != explainMaxTokens {
		t.Errorf("expected max_tokens %d, got %d", explainMaxTokens, seen.MaxTokens)
	}
	if len(seen.Messages) != 1 || !strings.Contains(seen.Messages[0].Content, "Pings in work zone: 6/6") {
		t.Errorf("prompt missing metrics: %+v", seen.Messages)
	}
}

func TestExplain_HTTPError(t *testing.T) {
	srv := newTestServer(t, http.StatusTooManyRequests, `{"error":"rate limited"}`, nil)

	c := NewClient(Config{URL: srv.URL, APIKey: "test-key"})
	_, err := c.Explain(context.Background(), domain.Metrics{}, domain.Findings{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("expected status in error, got %v", err)
	}
}

func TestExplain_EmptyChoices(t *testing.T) {
	srv := newTestServer(t, http.StatusOK, `{"choices":[]}`, nil)

	c := NewClient(Config{URL: srv.URL, APIKey: "test-key"})
	_, err := c.Explain(context.Background(), domain.Metrics{}, domain.Findings{})
	if err != errEmptyReply {
		t.Fatalf("expected errEmptyReply, got %v", err)
	}
}

func TestAnalyzePattern_SendsEveryPing(t *testing.T) {
	var seen chatRequest
	srv := newTestServer(t, http.StatusOK, `{"choices":[{"message":{"content":"{\"legitimacy_score\": 90}"}}]}`, &seen)

	pings := make([]domain.LocationPing, 12)
	for i := range pings {
		pings[i] = domain.LocationPing{
			Lat:       28.61394 + float64(i)*0.00001,
			Lng:       77.20902,
			Timestamp: time.Unix(1715000000+int64(i)*900, 0).UTC(),
		}
	}

	c := NewClient(Config{URL: srv.URL, APIKey: "test-key"})
	got, err := c.AnalyzePattern(context.Background(), &domain.VerificationRequest{
		EmployeeName: "R. Sharma",
		Office:       domain.Office{Lat: 28.6139, Lng: 77.209, RadiusKm: 0.5},
		Pings:        pings,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"legitimacy_score": 90}` {
		t.Errorf("unexpected reply: %q", got)
	}
	if n := strings.Count(seen.Messages[0].Content, `"lat"`); n != len(pings) {
		t.Errorf("expected %d pings in prompt, got %d", len(pings), n)
	}
}
