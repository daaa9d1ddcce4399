package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/golang/geo/s2"

	"github.com/nandanugg/hrms-integrity/config"
)

type pingMessage struct {
	EmployeeID int64    `json:"employee_id"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	Timestamp  int64    `json:"timestamp"`
	Accuracy   *float64 `json:"accuracy,omitempty"`
}

// device produces the next position for one simulated employee.
type device interface {
	next() (lat, lng float64, accuracy *float64)
}

// walker wanders between random waypoints inside the office zone, with GPS
// jitter on every fix.
type walker struct {
	office   s2.LatLng
	from, to s2.Point
	step     int
	steps    int
}

func newWalker(office s2.LatLng) *walker {
	w := &walker{office: office, steps: 8}
	w.from = s2.PointFromLatLng(w.waypoint())
	w.to = s2.PointFromLatLng(w.waypoint())
	return w
}

func (w *walker) waypoint() s2.LatLng {
	// within ~80 m of the office
	return s2.LatLngFromDegrees(
		w.office.Lat.Degrees()+(rand.Float64()-0.5)*0.0014,
		w.office.Lng.Degrees()+(rand.Float64()-0.5)*0.0014,
	)
}

func (w *walker) next() (float64, float64, *float64) {
	if w.step == w.steps {
		w.from, w.to, w.step = w.to, s2.PointFromLatLng(w.waypoint()), 0
	}
	w.step++
	pos := s2.LatLngFromPoint(s2.Interpolate(float64(w.step)/float64(w.steps), w.from, w.to))
	accuracy := 5 + rand.Float64()*15
	return pos.Lat.Degrees() + (rand.Float64()-0.5)*0.00002,
		pos.Lng.Degrees() + (rand.Float64()-0.5)*0.00002,
		&accuracy
}

// spoofer reports a fixed, hand-typed coordinate with no accuracy.
type spoofer struct {
	lat, lng float64
}

func (s *spoofer) next() (float64, float64, *float64) {
	return s.lat, s.lng, nil
}

// teleporter alternates between the office and a point ~25 km away.
type teleporter struct {
	office, away s2.LatLng
	flip         bool
}

func (t *teleporter) next() (float64, float64, *float64) {
	t.flip = !t.flip
	pos := t.office
	if t.flip {
		pos = t.away
	}
	accuracy := 8.0
	return pos.Lat.Degrees(), pos.Lng.Degrees(), &accuracy
}

func main() {
	mode := flag.String("mode", "genuine", "ping pattern: genuine, spoof or teleport")
	interval := flag.Duration("interval", 15*time.Second, "delay between pings")
	employeeID := flag.Int64("employee", 1042, "employee id to publish as")
	officeLat := flag.Float64("office-lat", 28.6139, "office latitude")
	officeLng := flag.Float64("office-lng", 77.209, "office longitude")
	flag.Parse()

	if *interval <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be positive\n")
		os.Exit(1)
	}

	office := s2.LatLngFromDegrees(*officeLat, *officeLng)
	if !office.IsValid() {
		fmt.Fprintf(os.Stderr, "error: invalid office coordinates\n")
		os.Exit(1)
	}

	var dev device
	switch *mode {
	case "genuine":
		dev = newWalker(office)
	case "spoof":
		dev = &spoofer{lat: 28.6, lng: 77.2}
	case "teleport":
		dev = &teleporter{office: office, away: s2.LatLngFromDegrees(*officeLat+0.225, *officeLng)}
	default:
		fmt.Fprintf(os.Stderr, "error: unknown mode %q\n", *mode)
		os.Exit(1)
	}

	cfg := config.Load()
	client, err := config.NewMQTT(cfg, fmt.Sprintf("hrms-mock-device-%d", *employeeID))
	if err != nil {
		log.Fatalf("mqtt: %v", err)
	}
	defer client.Disconnect(250)

	topic := fmt.Sprintf("/hrms/employee/%d/location", *employeeID)
	log.Printf("connected to %s, publishing %s pings to %s every %v...", cfg.MQTTBroker, *mode, topic, *interval)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for range ticker.C {
		lat, lng, accuracy := dev.next()
		msg := pingMessage{
			EmployeeID: *employeeID,
			Latitude:   lat,
			Longitude:  lng,
			Timestamp:  time.Now().Unix(),
			Accuracy:   accuracy,
		}

		payload, err := json.Marshal(msg)
		if err != nil {
			log.Printf("marshal ping: %v", err)
			continue
		}
		if token := client.Publish(topic, 1, false, payload); token.Wait() && token.Error() != nil {
			log.Printf("publish to %s: %v", topic, token.Error())
			continue
		}

		log.Printf("published to %s: %s", topic, payload)
	}
}
