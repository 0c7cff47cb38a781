// Package telemetry follows live GPS fixes published over MQTT and moves
// vehicles to them instead of the random simulation.
package telemetry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"kaard/entities"
	"kaard/pkg/view"
)

const DefaultTopic = "kaard/vehicles/+/location"

var ErrNoFix = errors.New("telemetry: no position received for vehicle")

var _ view.Mover = (*Feed)(nil)

type Config struct {
	Broker   string
	ClientID string
	Topic    string
}

type fix struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type Fix struct {
	view.Position
	At time.Time
}

// Feed keeps the latest fix per vehicle id.
type Feed struct {
	log    *zap.Logger
	client mqtt.Client
	topic  string
	now    func() time.Time

	mu    sync.RWMutex
	fixes map[string]Fix
}

func NewFeed(log *zap.Logger) *Feed {
	if log == nil {
		log = zap.NewNop()
	}
	return &Feed{log: log, now: time.Now, fixes: map[string]Fix{}}
}

// Connect dials the broker and subscribes to the location topic.
func Connect(cfg Config, log *zap.Logger) (*Feed, error) {
	f := NewFeed(log)
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to mqtt broker: %w", token.Error())
	}
	if token := client.Subscribe(cfg.Topic, 0, f.onMessage); token.Wait() && token.Error() != nil {
		client.Disconnect(250)
		return nil, fmt.Errorf("subscribe %s: %w", cfg.Topic, token.Error())
	}
	f.client = client
	f.topic = cfg.Topic
	f.log.Info("location feed connected", zap.String("broker", cfg.Broker), zap.String("topic", cfg.Topic))
	return f, nil
}

func (f *Feed) onMessage(_ mqtt.Client, msg mqtt.Message) {
	if err := f.Handle(msg.Topic(), msg.Payload()); err != nil {
		f.log.Warn("dropping location message", zap.String("topic", msg.Topic()), zap.Error(err))
	}
}

// Handle records one message. The vehicle id is the topic segment before
// "location".
func (f *Feed) Handle(topic string, payload []byte) error {
	id := vehicleID(topic)
	if id == "" {
		return fmt.Errorf("no vehicle id in topic %q", topic)
	}
	var in fix
	if err := json.Unmarshal(payload, &in); err != nil {
		return fmt.Errorf("decode fix: %w", err)
	}
	if in.Lat == nil || in.Lng == nil {
		return errors.New("fix needs lat and lng")
	}
	f.mu.Lock()
	f.fixes[id] = Fix{Position: view.Position{Lat: *in.Lat, Lng: *in.Lng}, At: f.now()}
	f.mu.Unlock()
	return nil
}

func vehicleID(topic string) string {
	parts := strings.Split(topic, "/")
	for i := len(parts) - 1; i > 0; i-- {
		if parts[i] == "location" {
			return parts[i-1]
		}
	}
	return ""
}

// Latest returns the last fix for id.
func (f *Feed) Latest(id string) (Fix, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	fx, ok := f.fixes[id]
	return fx, ok
}

// Move implements view.Mover.
func (f *Feed) Move(_ context.Context, v entities.Vehicle) (view.Position, error) {
	fx, ok := f.Latest(v.ID)
	if !ok {
		return view.Position{}, ErrNoFix
	}
	return fx.Position, nil
}

func (f *Feed) Close() {
	if f.client == nil {
		return
	}
	f.client.Unsubscribe(f.topic).Wait()
	f.client.Disconnect(250)
}
