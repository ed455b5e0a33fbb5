package mqtt

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/mamaeo/pandora-mqtt/internal/infrastructure/config"
)

// Client is a paho connection scoped to one interactive session.
//
// Subscriptions are tracked so they survive an automatic reconnect; the
// session uses a clean session, so the broker forgets them on disconnect.
// All methods are safe for concurrent use.
type Client struct {
	client pahomqtt.Client
	cfg    config.MQTTConfig

	subscriptions map[string]subscription
	subMu         sync.RWMutex

	connected atomic.Bool

	hooksMu sync.RWMutex
	hooks   hooks
}

// hooks are the optional observers installed after Connect.
type hooks struct {
	onConnect    func()
	onDisconnect func(err error)
	logger       Logger
}

// Logger is the subset of logging.Logger (and slog.Logger) the client needs.
type Logger interface {
	Debug(msg string, args ...any)
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
}

type subscription struct {
	qos     byte
	handler MessageHandler
}

// MessageHandler receives one message. paho calls it on its own
// goroutines. A returned error is logged and otherwise ignored.
type MessageHandler func(topic string, payload []byte) error

// Connect dials the broker described by cfg.
//
// A client ID is generated when cfg leaves it empty. The first connection
// attempt is not retried: an unreachable broker is reported immediately.
// Connections lost later are re-established in the background.
//
// Parameters:
//   - cfg: MQTT configuration
//
// Returns:
//   - *Client: Connected client
//   - error: ErrConnectionFailed if the broker refused or did not answer
func Connect(cfg config.MQTTConfig) (*Client, error) {
	if cfg.Broker.ClientID == "" {
		cfg.Broker.ClientID = NewClientID()
	}

	c := &Client{
		cfg:           cfg,
		subscriptions: make(map[string]subscription),
	}

	opts := buildClientOptions(cfg)
	opts.SetOnConnectHandler(func(pahomqtt.Client) { c.handleConnect() })
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) { c.handleDisconnect(err) })
	opts.SetReconnectingHandler(func(_ pahomqtt.Client, o *pahomqtt.ClientOptions) {
		if log := c.log(); log != nil {
			log.Debug("reconnecting to MQTT broker", "client_id", o.ClientID)
		}
	})

	c.client = pahomqtt.NewClient(opts)
	if err := await(c.client.Connect(), defaultConnectTimeout, ErrConnectionFailed); err != nil {
		return nil, err
	}

	// OnConnect fires asynchronously; don't make callers wait for it.
	c.connected.Store(true)
	return c, nil
}

// await waits for a paho token, wrapping timeouts and failures in sentinel.
func await(token pahomqtt.Token, timeout time.Duration, sentinel error) error {
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("%w: timeout after %v", sentinel, timeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return nil
}

// ClientID returns the identifier presented to the broker.
func (c *Client) ClientID() string {
	return c.cfg.Broker.ClientID
}

// BrokerURL returns the broker address the client was configured with.
func (c *Client) BrokerURL() string {
	return brokerURL(c.cfg)
}

func (c *Client) handleConnect() {
	c.connected.Store(true)
	c.restoreSubscriptions()

	c.hooksMu.RLock()
	fn := c.hooks.onConnect
	c.hooksMu.RUnlock()
	if fn != nil {
		fn()
	}
}

func (c *Client) handleDisconnect(err error) {
	c.connected.Store(false)

	c.hooksMu.RLock()
	fn := c.hooks.onDisconnect
	c.hooksMu.RUnlock()
	if fn != nil {
		fn(err)
	}
}

// restoreSubscriptions re-subscribes every tracked topic. Failures are
// logged; the topic stays tracked and is retried on the next reconnect.
func (c *Client) restoreSubscriptions() {
	c.subMu.RLock()
	defer c.subMu.RUnlock()

	for topic, sub := range c.subscriptions {
		token := c.client.Subscribe(topic, sub.qos, c.wrapHandler(sub.handler))
		if err := await(token, defaultPublishTimeout, ErrSubscribeFailed); err != nil {
			if log := c.log(); log != nil {
				log.Warn("restoring subscription failed", "topic", topic, "error", err)
			}
		}
	}
}

// Close disconnects, giving in-flight operations a short quiesce period.
// Closing a client that never connected is a no-op.
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}

	c.client.Disconnect(defaultDisconnectQuiesce)
	c.connected.Store(false)
	return nil
}

// HealthCheck reports ErrNotConnected while the broker connection is down.
func (c *Client) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mqtt health check: %w", err)
	}
	if !c.IsConnected() {
		return ErrNotConnected
	}
	return nil
}

// IsConnected returns the current connection state.
func (c *Client) IsConnected() bool {
	return c.client != nil && c.connected.Load() && c.client.IsConnected()
}

// SetOnConnect sets a callback run after the initial connect and after
// every reconnect.
func (c *Client) SetOnConnect(fn func()) {
	c.hooksMu.Lock()
	c.hooks.onConnect = fn
	c.hooksMu.Unlock()
}

// SetOnDisconnect sets a callback run when the connection is lost.
func (c *Client) SetOnDisconnect(fn func(err error)) {
	c.hooksMu.Lock()
	c.hooks.onDisconnect = fn
	c.hooksMu.Unlock()
}

// SetLogger sets the logger for handler failures and reconnect events.
// Without one they are dropped silently.
func (c *Client) SetLogger(logger Logger) {
	c.hooksMu.Lock()
	c.hooks.logger = logger
	c.hooksMu.Unlock()
}

func (c *Client) log() Logger {
	c.hooksMu.RLock()
	defer c.hooksMu.RUnlock()
	return c.hooks.logger
}

func (c *Client) wrapHandler(handler MessageHandler) pahomqtt.MessageHandler {
	return func(_ pahomqtt.Client, msg pahomqtt.Message) {
		c.deliver(handler, msg.Topic(), msg.Payload())
	}
}

// deliver invokes handler, recovering panics so one bad frame cannot take
// down paho's delivery goroutine.
func (c *Client) deliver(handler MessageHandler, topic string, payload []byte) {
	defer func() {
		if r := recover(); r != nil {
			if log := c.log(); log != nil {
				log.Error("MQTT handler panic recovered", "topic", topic, "panic", r)
			}
		}
	}()

	if err := handler(topic, payload); err != nil {
		if log := c.log(); log != nil {
			log.Warn("MQTT handler returned error", "topic", topic, "error", err)
		}
	}
}
