// internal/trace/mqtt.go
package trace

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/frankenbubble/twc3-modbus/internal/dispatch"
	"github.com/frankenbubble/twc3-modbus/internal/logger"
)

// Config mirrors the trace section of the config file.
type Config struct {
	Enabled  bool   `yaml:"enabled"`
	Broker   string `yaml:"broker"`
	ClientID string `yaml:"client_id"`
	Topic    string `yaml:"topic"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	QoS      byte   `yaml:"qos"`
}

// record is the JSON shape published per request.
type record struct {
	Time      string   `json:"time"`
	Function  uint8    `json:"function"`
	Address   uint16   `json:"address"`
	Quantity  uint16   `json:"quantity"`
	Outcome   string   `json:"outcome"`
	Values    []uint16 `json:"values,omitempty"`
	Frame     string   `json:"frame,omitempty"`
	Available int      `json:"available,omitempty"`
	Error     string   `json:"error,omitempty"`
}

func encodeRecord(rec dispatch.Record) ([]byte, error) {
	r := record{
		Time:      time.Now().UTC().Format(time.RFC3339Nano),
		Function:  rec.Function,
		Address:   rec.Address,
		Quantity:  rec.Quantity,
		Outcome:   string(rec.Outcome),
		Values:    rec.Values,
		Frame:     rec.Frame,
		Available: rec.Available,
	}
	if rec.Err != nil {
		r.Error = rec.Err.Error()
	}
	return json.Marshal(r)
}

// MQTTObserver publishes one JSON record per request to a fixed topic.
//
// Publishing is fire and forget: a slow or dead broker must never
// stall the serve loop, so tokens are not waited on.
type MQTTObserver struct {
	client paho.Client
	topic  string
	qos    byte
	log    *logger.Logger
}

// NewMQTTObserver connects to the broker and returns the observer.
func NewMQTTObserver(cfg Config, log *logger.Logger) (*MQTTObserver, error) {
	if cfg.Broker == "" {
		return nil, errors.New("trace: broker required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("trace: topic required")
	}

	opts := paho.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s", cfg.Broker))
	opts.SetClientID(cfg.ClientID)
	opts.SetUsername(cfg.Username)
	opts.SetPassword(cfg.Password)
	opts.SetAutoReconnect(true)
	opts.SetKeepAlive(30 * time.Second)
	opts.SetOnConnectHandler(func(paho.Client) {
		log.Infof("trace: connected to broker %s", cfg.Broker)
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		log.Warnf("trace: broker connection lost: %v", err)
	})

	client := paho.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("trace: connect %s: %w", cfg.Broker, token.Error())
	}

	return &MQTTObserver{
		client: client,
		topic:  cfg.Topic,
		qos:    cfg.QoS,
		log:    log,
	}, nil
}

func (o *MQTTObserver) Observe(rec dispatch.Record) {
	payload, err := encodeRecord(rec)
	if err != nil {
		o.log.Errorf("trace: encode record: %v", err)
		return
	}
	o.client.Publish(o.topic, o.qos, false, payload)
}

// Close disconnects from the broker.
func (o *MQTTObserver) Close() {
	o.client.Disconnect(250)
}
