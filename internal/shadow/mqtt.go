package shadow

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cuni-ai/cuni-control-skill/internal/config"
	"github.com/cuni-ai/cuni-control-skill/internal/logger"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MQTTClient reaches the shadow service over its reserved shadow topics.
// Each operation publishes to the topic and waits for the matching
// accepted or rejected reply.
type MQTTClient struct {
	client  mqtt.Client
	timeout time.Duration
	mu      sync.Mutex
}

func NewMQTTClient(cfg config.MqttConfig, timeoutSec int) (*MQTTClient, error) {
	if cfg.Tls {
		return nil, fmt.Errorf("TLS not yet supported")
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port))
	opts.SetClientID("cuni-skill-" + uuid.NewString()[:8])
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}

	return &MQTTClient{
		client:  client,
		timeout: time.Duration(timeoutSec) * time.Second,
	}, nil
}

func (c *MQTTClient) GetProperty(ctx context.Context, thing, property string) (string, error) {
	payload, err := c.roundTrip(ctx, getTopic(thing), nil)
	if err != nil {
		return "", fmt.Errorf("get shadow %s: %w", thing, err)
	}

	var doc Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return "", fmt.Errorf("get shadow %s: decode: %w", thing, ErrRemoteUnavailable)
	}

	raw, ok := doc.State.Reported[property]
	if !ok {
		return "", fmt.Errorf("shadow %s has no reported %q: %w", thing, property, ErrPropertyMissing)
	}

	value, ok := formatValue(raw)
	if !ok {
		return "", fmt.Errorf("shadow %s reported %q is not a scalar: %w", thing, property, ErrPropertyMissing)
	}

	return value, nil
}

func (c *MQTTClient) SetProperty(ctx context.Context, thing, property, value string) error {
	body, err := json.Marshal(desiredDelta(property, value))
	if err != nil {
		return fmt.Errorf("update shadow %s: encode: %w", thing, err)
	}

	logger.Log.Debug("shadow update",
		zap.String("thing", thing),
		zap.String("property", property),
		zap.String("value", value),
	)

	if _, err := c.roundTrip(ctx, updateTopic(thing), body); err != nil {
		return fmt.Errorf("update shadow %s: %w", thing, err)
	}
	return nil
}

// roundTrip publishes to topic and returns the payload delivered on
// topic/accepted, subscribing to both reply topics beforehand.
// One operation in flight per client: the reply subscriptions are keyed by
// topic only, so a second turn on the same thing would tear down the first
// one's and replies carry no token to tell the two apart.
func (c *MQTTClient) roundTrip(ctx context.Context, topic string, body []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	accepted := make(chan []byte, 1)
	rejected := make(chan []byte, 1)

	if err := c.subscribe(topic+"/accepted", accepted); err != nil {
		return nil, err
	}
	defer c.client.Unsubscribe(topic + "/accepted")

	if err := c.subscribe(topic+"/rejected", rejected); err != nil {
		return nil, err
	}
	defer c.client.Unsubscribe(topic + "/rejected")

	token := c.client.Publish(topic, 1, false, body)
	if !token.WaitTimeout(c.timeout) || token.Error() != nil {
		return nil, ErrRemoteUnavailable
	}

	select {
	case payload := <-accepted:
		return payload, nil
	case <-rejected:
		return nil, ErrRemoteRejected
	case <-ctx.Done():
		return nil, ErrRemoteUnavailable
	case <-time.After(c.timeout):
		return nil, ErrRemoteUnavailable
	}
}

func (c *MQTTClient) subscribe(topic string, replies chan<- []byte) error {
	token := c.client.Subscribe(topic, 1, func(_ mqtt.Client, msg mqtt.Message) {
		select {
		case replies <- msg.Payload():
		default:
		}
	})
	if !token.WaitTimeout(c.timeout) || token.Error() != nil {
		return ErrRemoteUnavailable
	}
	return nil
}

func getTopic(thing string) string {
	return fmt.Sprintf("$aws/things/%s/shadow/get", thing)
}

func updateTopic(thing string) string {
	return fmt.Sprintf("$aws/things/%s/shadow/update", thing)
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	logger.Log.Debug("mqtt client connected")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	logger.Log.Debug("mqtt client connection lost", zap.Error(err))
}
