package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	domain "github.com/oshokin/engine-supervisor/internal/domain/alert"
	"github.com/oshokin/engine-supervisor/internal/logger"
)

const (
	// connectTimeout bounds the initial broker handshake.
	connectTimeout = 5 * time.Second
	// publishTimeout bounds the background wait used only for failure logging.
	publishTimeout = 2 * time.Second
	// publishQoS is at-most-once: the sink contract is fire-and-forget.
	publishQoS = 0
	// disconnectQuiesceMs is the grace period paho waits for in-flight work.
	disconnectQuiesceMs = 250
)

// errConnectTimeout is returned when the broker does not answer in time.
var errConnectTimeout = errors.New("mqtt broker connect timed out")

// Event is the JSON payload published for every accepted escalation.
type Event struct {
	// Level is the severity name of the alert.
	Level string `json:"level"`
	// Code is the fault code name of the alert.
	Code string `json:"code"`
	// RaisedAt is when the escalation was accepted.
	RaisedAt time.Time `json:"raised_at"`
}

// Sink publishes alert events to a single MQTT topic.
type Sink struct {
	// client is the connected MQTT client.
	client paho.Client
	// topic is the destination topic for alert events.
	topic string
}

// NewSink connects to the broker and returns a ready sink.
func NewSink(brokerURL, clientID, topic string) (*Sink, error) {
	options := paho.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetAutoReconnect(true)

	client := paho.NewClient(options)

	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, errConnectTimeout
	}

	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect broker: %w", err)
	}

	return &Sink{
		client: client,
		topic:  topic,
	}, nil
}

// SendAlert publishes the escalation as a JSON event. The call never blocks
// on the broker and never reports failure to the caller; a failed publish is
// logged in the background and dropped.
func (s *Sink) SendAlert(ctx context.Context, level domain.Level, code domain.Code) {
	payload, err := json.Marshal(Event{
		Level:    level.String(),
		Code:     code.String(),
		RaisedAt: time.Now().UTC(),
	})
	if err != nil {
		logger.WarnKV(ctx, "Failed to encode alert event", "error", err)

		return
	}

	token := s.client.Publish(s.topic, publishQoS, false, payload)

	go func() {
		if token.WaitTimeout(publishTimeout) {
			if err := token.Error(); err != nil {
				logger.WarnKV(ctx, "Failed to publish alert event", "error", err)
			}
		}
	}()
}

// Close disconnects from the broker after a short quiesce period.
func (s *Sink) Close() {
	s.client.Disconnect(disconnectQuiesceMs)
}
