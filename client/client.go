// Package client provides the synchronous facade over the native engine.
// It owns the connection handle through a guard, runs every native round
// trip under the execution lock it shares with the dispatch bridge, and
// surfaces only typed errors and owned values to callers.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/c360/iecbridge/config"
	"github.com/c360/iecbridge/errors"
	"github.com/c360/iecbridge/event"
	"github.com/c360/iecbridge/guard"
	"github.com/c360/iecbridge/metric"
	"github.com/c360/iecbridge/native"
	"github.com/c360/iecbridge/pkg/retry"
)

// Identity is the server identity returned by Identity.
type Identity struct {
	Vendor   string
	Model    string
	Revision string
}

// Client is the facade over one engine connection. All exported methods
// are safe for concurrent use: foreground native calls and callback
// dispatch serialize on the same execution lock, so a handler trigger and
// a synchronous request never interleave.
type Client struct {
	cfg     config.Config
	engine  native.Engine
	logger  *slog.Logger
	metrics *metric.Metrics
	id      string

	mu       sync.Mutex // execution lock, shared with the bridge
	state    State
	conn     *guard.Guard
	registry *event.Registry
	bridge   *event.Bridge

	// reporting maps an rcb reference to the subscriber id it activates,
	// so DisableReporting can unregister the matching handler.
	reporting map[string]string
	controls  map[*Control]struct{}
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the instruments the client and its bridge record into.
// Defaults to unregistered instruments.
func WithMetrics(m *metric.Metrics) Option {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}

// New creates a disconnected client over the given engine.
func New(engine native.Engine, cfg config.Config, opts ...Option) (*Client, error) {
	if engine == nil {
		return nil, errors.WrapInvalid(errors.ErrEmptyArgument, "Client", "New", "engine validation")
	}
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:       cfg,
		engine:    engine,
		logger:    slog.Default(),
		metrics:   metric.NewMetrics(),
		id:        uuid.NewString(),
		state:     StateClosed,
		registry:  event.NewRegistry(),
		reporting: make(map[string]string),
		controls:  make(map[*Control]struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("client_id", c.id)
	c.bridge = event.NewBridge(&c.mu, c.registry, engine, c.logger, c.metrics)
	return c, nil
}

// ID returns the client's unique id, used as the logging correlation key.
func (c *Client) ID() string {
	return c.id
}

// State returns the current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Bridge returns the dispatch bridge bound to this client's registry and
// execution lock.
func (c *Client) Bridge() *event.Bridge {
	return c.bridge
}

// observe records one synchronous operation's outcome and latency.
func (c *Client) observe(op string, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.RequestsTotal.WithLabelValues(op, outcome).Inc()
	c.metrics.RequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// requireConnected returns the live connection handle. Callers must hold
// the execution lock.
func (c *Client) requireConnected(op string) (native.Handle, error) {
	if c.state != StateConnected || c.conn == nil || c.conn.IsEmpty() {
		return native.NullHandle, errors.WrapInvalid(errors.ErrNotConnected, "Client", op, "connection state check")
	}
	return c.conn.Handle(), nil
}

// Connect establishes the connection. The native connect round trip is
// bounded by Config.ConnectTimeout; refusal and timeout both surface as
// ErrConnectionFailed and leave the client Closed. Transient failures are
// retried per Config.Retry; ctx cancels the backoff between attempts.
// Connecting an already-connected client fails with ErrAlreadyConnected.
func (c *Client) Connect(ctx context.Context, host string, port int) (err error) {
	start := time.Now()
	defer func() { c.observe("connect", start, err) }()

	if err = config.ValidateEndpoint(host, port); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateClosed {
		return errors.WrapInvalid(errors.ErrAlreadyConnected, "Client", "Connect", "connection state check")
	}
	c.state = StateConnecting

	h := c.engine.CreateConnection()
	if h.IsNull() {
		c.state = StateClosed
		return errors.WrapFatal(errors.ErrAllocationFailed, "Client", "Connect", "connection allocation")
	}
	conn := guard.Acquire(h, c.engine.DestroyConnection).WithLogger(c.logger)

	c.engine.SetConnectTimeout(h, c.cfg.ConnectTimeout)
	c.engine.SetRequestTimeout(h, c.cfg.RequestTimeout)

	err = retry.Do(ctx, c.cfg.Retry, func() error {
		code := c.engine.Connect(h, host, port)
		cause := code.Err()
		if cause == nil {
			return nil
		}
		if !errors.IsTransient(cause) {
			return retry.NonRetryable(cause)
		}
		return cause
	})
	if err != nil {
		conn.Release()
		c.state = StateClosed
		c.logger.Warn("connect failed", "host", host, "port", port, "error", err)
		return errors.WrapTransient(
			fmt.Errorf("%w to %s:%d: %v", errors.ErrConnectionFailed, host, port, err),
			"Client", "Connect", "native connect")
	}

	c.conn = conn
	c.state = StateConnected
	c.metrics.ConnectionsActive.Inc()
	c.logger.Info("connected", "host", host, "port", port)
	return nil
}

// Disconnect closes the connection and returns the client to Closed. It is
// idempotent: disconnecting a Closed client is a no-op. Teardown releases
// every control object still open, clears the subscriber registry, and
// releases the connection guard exactly once.
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disconnectLocked()
}

func (c *Client) disconnectLocked() {
	if c.state == StateClosed {
		return
	}

	for ctl := range c.controls {
		ctl.releaseLocked()
	}
	c.controls = make(map[*Control]struct{})
	c.registry.Clear()
	c.reporting = make(map[string]string)

	if c.conn != nil && !c.conn.IsEmpty() {
		c.engine.Close(c.conn.Handle())
		c.conn.Release()
		c.metrics.ConnectionsActive.Dec()
	}
	c.conn = nil
	c.state = StateClosed
	c.logger.Info("disconnected")
}

// Identity reads the server identity.
func (c *Client) Identity() (ident Identity, err error) {
	start := time.Now()
	defer func() { c.observe("identity", start, err) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.requireConnected("Identity")
	if err != nil {
		return Identity{}, err
	}

	h, code := c.engine.Identify(conn)
	g := guard.Acquire(h, c.engine.DestroyIdentity).WithLogger(c.logger)
	defer g.Release()

	if cause := code.Err(); cause != nil {
		return Identity{}, errors.WrapTransient(cause, "Client", "Identity", "identify request")
	}
	if g.IsEmpty() {
		return Identity{}, errors.WrapInvalid(errors.ErrNullHandle, "Client", "Identity", "identity decode")
	}

	return Identity{
		Vendor:   c.engine.IdentityVendor(g.Handle()),
		Model:    c.engine.IdentityModel(g.Handle()),
		Revision: c.engine.IdentityRevision(g.Handle()),
	}, nil
}

// InstallHandler binds a handler to a subscriber id in this client's
// registry. Registration on an occupied id fails with
// ErrDuplicateSubscriber and leaves the existing handler active.
//
// For the control-action and information-report categories the engine
// callback slot is wired immediately when the client is connected; report
// handlers become active through EnableReporting, command-termination
// handlers through Control.OnTermination. For GOOSE the subscriber id is
// also used as the control block reference the engine subscribes to.
func (c *Client) InstallHandler(category event.Category, id string, handler any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.registry.Register(id, category, handler); err != nil {
		return err
	}
	if c.state != StateConnected {
		return nil
	}

	conn := c.conn.Handle()
	switch category {
	case event.CategoryControlAction:
		c.engine.InstallControlActionCallback(conn, c.bridge.OnControlAction, id)
	case event.CategoryInformationReport:
		c.engine.InstallInformationReportCallback(conn, c.bridge.OnInformationReport, id)
	case event.CategoryGoose:
		c.engine.InstallGooseCallback(conn, id, c.bridge.OnGoose, id)
	}
	return nil
}

// UninstallHandler removes the subscriber; no-op if absent. The engine
// callback slot for connection-scoped categories is cleared when the
// removed subscriber was the one wired into it.
func (c *Client) UninstallHandler(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	sub, ok := c.registry.Lookup(id)
	c.registry.Unregister(id)
	if !ok || c.state != StateConnected {
		return
	}

	conn := c.conn.Handle()
	switch sub.Category {
	case event.CategoryControlAction:
		c.engine.InstallControlActionCallback(conn, nil, nil)
	case event.CategoryInformationReport:
		c.engine.InstallInformationReportCallback(conn, nil, nil)
	case event.CategoryGoose:
		c.engine.InstallGooseCallback(conn, id, nil, nil)
	}
}

// encodeValue constructs an engine value handle from an owned value. The
// returned guard owns the handle. Only scalar kinds have engine
// constructors; composite kinds fail with ErrServiceNotSupported.
func (c *Client) encodeValue(op string, v native.Value) (*guard.Guard, error) {
	var h native.Handle
	switch v.Kind {
	case native.KindBool:
		h = c.engine.NewBoolValue(v.Bool)
	case native.KindInt:
		h = c.engine.NewIntValue(v.Int)
	case native.KindFloat:
		h = c.engine.NewFloatValue(v.Float)
	case native.KindString:
		h = c.engine.NewStringValue(v.Str)
	default:
		return nil, errors.WrapInvalid(
			errors.Describe(errors.ErrServiceNotSupported, fmt.Sprintf("cannot encode %s values", v.Kind)),
			"Client", op, "value encoding")
	}
	if h.IsNull() {
		return nil, errors.WrapFatal(errors.ErrAllocationFailed, "Client", op, "value allocation")
	}
	return guard.Acquire(h, c.engine.DeleteValue).WithLogger(c.logger), nil
}
