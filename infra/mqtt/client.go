package mqtt

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	coremqtt "github.com/kilianp07/transitplan/core/mqtt"
	"github.com/kilianp07/transitplan/infra/logger"
)

const (
	defaultTopicPrefix = "transit/schedule"
	defaultMaxRetries  = 3
	defaultBackoff     = 100 * time.Millisecond
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Broker      string          `json:"broker"`
	ClientID    string          `json:"client_id"`
	Username    string          `json:"username"`
	Password    string          `json:"password"`
	TopicPrefix string          `json:"topic_prefix"`
	AckTopic    string          `json:"ack_topic"`
	Retained    bool            `json:"retained"`
	PerVehicle  bool            `json:"per_vehicle"`
	UseTLS      bool            `json:"use_tls"`
	ClientCert  string          `json:"client_cert"`
	ClientKey   string          `json:"client_key"`
	CABundle    string          `json:"ca_bundle"`
	AuthMethod  string          `json:"auth_method"`
	QoS         map[string]byte `json:"qos"`
	LWTTopic    string          `json:"lwt_topic"`
	LWTPayload  string          `json:"lwt_payload"`
	LWTQoS      byte            `json:"lwt_qos"`
	LWTRetain   bool            `json:"lwt_retain"`
	MaxRetries  int             `json:"max_retries"`
	BackoffMS   int             `json:"backoff_ms"`
	TLSConfig   *tls.Config     `json:"-"`
}

// Enabled reports whether a broker is configured.
func (c Config) Enabled() bool { return c.Broker != "" }

func (c Config) prefix() string {
	if c.TopicPrefix == "" {
		return defaultTopicPrefix
	}
	return strings.TrimSuffix(c.TopicPrefix, "/")
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
	Subscribe(topic string, qos byte, callback paho.MessageHandler) paho.Token
}

// PahoPublisher publishes schedules using Eclipse Paho.
type PahoPublisher struct {
	cli        pahoClient
	cfg        Config
	prefix     string
	logger     logger.Logger
	maxRetries int
	backoff    time.Duration

	mu       sync.Mutex
	ackChans map[string]chan struct{}
}

var _ coremqtt.Publisher = (*PahoPublisher)(nil)

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// NewPahoPublisher connects to the broker and, when an ack topic is set,
// subscribes to depot confirmations.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}

	log := logger.New("mqtt_publisher")
	pp := &PahoPublisher{
		cfg:        cfg,
		prefix:     cfg.prefix(),
		logger:     log,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMS) * time.Millisecond,
		ackChans:   make(map[string]chan struct{}),
	}
	if pp.maxRetries <= 0 {
		pp.maxRetries = defaultMaxRetries
	}
	if pp.backoff <= 0 {
		pp.backoff = defaultBackoff
	}

	opts.OnConnect = func(c paho.Client) {
		log.Infof("MQTT connected")
		if cfg.AckTopic == "" {
			return
		}
		if token := c.Subscribe(cfg.AckTopic, pp.qos("ack"), pp.onAck); token.Wait() && token.Error() != nil {
			log.Errorf("subscribe error: %v", token.Error())
		}
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	pp.cli = c
	return pp, nil
}

// NewClientOptions builds mqtt client options from Config.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.AuthMethod == "username_password" || cfg.AuthMethod == "both" || cfg.AuthMethod == "" {
		if cfg.Username != "" {
			opts.SetUsername(cfg.Username)
		}
		if cfg.Password != "" {
			opts.SetPassword(cfg.Password)
		}
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	if cfg.LWTTopic != "" {
		opts.SetWill(cfg.LWTTopic, cfg.LWTPayload, cfg.LWTQoS, cfg.LWTRetain)
	}
	return opts, nil
}

// LoadTLSConfig loads the TLS configuration from the file paths in the config.
func (c Config) LoadTLSConfig() (*tls.Config, error) {
	if c.TLSConfig != nil {
		return c.TLSConfig, nil
	}
	if c.ClientCert == "" || c.ClientKey == "" || c.CABundle == "" {
		return nil, fmt.Errorf("tls config requires client_cert, client_key and ca_bundle")
	}
	cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("load cert: %w", err)
	}
	caBytes, err := os.ReadFile(c.CABundle)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caBytes) {
		return nil, fmt.Errorf("ca bundle %s holds no certificates", c.CABundle)
	}
	return &tls.Config{Certificates: []tls.Certificate{cert}, RootCAs: pool, MinVersion: tls.VersionTLS12}, nil
}

func (p *PahoPublisher) qos(kind string) byte {
	if q, ok := p.cfg.QoS[kind]; ok {
		return q
	}
	return 0
}

// ScheduleTopic is the topic a run's full timetable is published to.
func (p *PahoPublisher) ScheduleTopic(runID string) string {
	return p.prefix + "/" + runID
}

// VehicleTopic is the topic carrying the duty of one vehicle.
func (p *PahoPublisher) VehicleTopic(runID, vehicleID string) string {
	return p.prefix + "/" + runID + "/vehicles/" + vehicleID
}

func (p *PahoPublisher) onAck(_ paho.Client, msg paho.Message) {
	var m struct {
		MessageID string `json:"message_id"`
	}
	if err := json.Unmarshal(msg.Payload(), &m); err != nil {
		p.logger.Errorf("failed to decode ack: %v", err)
		return
	}
	p.mu.Lock()
	if ch, ok := p.ackChans[m.MessageID]; ok {
		select {
		case ch <- struct{}{}:
		default:
		}
		p.logger.Infof("received ack %s", m.MessageID)
	}
	p.mu.Unlock()
}

// PublishSchedule sends msg to the run topic and, when enabled, each vehicle
// duty to its own topic. A fresh message id is assigned when msg has none.
func (p *PahoPublisher) PublishSchedule(ctx context.Context, msg coremqtt.ScheduleMessage) error {
	if p.cli == nil || !p.cli.IsConnected() {
		return coremqtt.ErrNotConnected
	}
	if msg.MessageID == "" {
		msg.MessageID = uuid.NewString()
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.ackChans[msg.MessageID] = make(chan struct{}, 1)
	p.mu.Unlock()

	if err := p.publish(ctx, p.ScheduleTopic(msg.RunID), p.qos("schedule"), payload); err != nil {
		return err
	}
	if !p.cfg.PerVehicle {
		return nil
	}
	for id, trips := range msg.Duties() {
		duty := struct {
			MessageID string                 `json:"message_id"`
			RunID     string                 `json:"run_id"`
			VehicleID string                 `json:"vehicle_id"`
			Trips     []coremqtt.TripMessage `json:"trips"`
		}{msg.MessageID, msg.RunID, id, trips}
		b, err := json.Marshal(duty)
		if err != nil {
			return err
		}
		if err := p.publish(ctx, p.VehicleTopic(msg.RunID, id), p.qos("vehicle"), b); err != nil {
			return err
		}
	}
	return nil
}

func (p *PahoPublisher) publish(ctx context.Context, topic string, qos byte, payload []byte) error {
	var publishErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		token := p.cli.Publish(topic, qos, p.cfg.Retained, payload)
		token.Wait()
		publishErr = token.Error()
		if publishErr == nil {
			p.logger.Debugf("published %d bytes to %s", len(payload), topic)
			return nil
		}
		p.logger.Errorf("publish attempt %d on %s failed: %v", attempt+1, topic, publishErr)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.backoff * time.Duration(1<<attempt)):
		}
	}
	return fmt.Errorf("publish %s: %w", topic, publishErr)
}

// WaitForAck blocks until a depot confirms messageID or the timeout elapses.
func (p *PahoPublisher) WaitForAck(messageID string, timeout time.Duration) (bool, error) {
	p.mu.Lock()
	ch := p.ackChans[messageID]
	p.mu.Unlock()
	if ch == nil {
		return false, fmt.Errorf("unknown message %s", messageID)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	defer func() {
		p.mu.Lock()
		delete(p.ackChans, messageID)
		p.mu.Unlock()
	}()
	select {
	case <-ch:
		return true, nil
	case <-timer.C:
		return false, fmt.Errorf("%w: %s", coremqtt.ErrAckTimeout, messageID)
	}
}

// Close gracefully closes the MQTT connection.
func (p *PahoPublisher) Close() {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}
