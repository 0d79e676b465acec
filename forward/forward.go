// Package forward publishes bridge events to NATS. Handlers built by a
// Forwarder run inside the dispatch path, so they do nothing but enqueue
// the event on a worker pool; the pool's goroutines marshal and publish
// outside the execution lock. A Forwarder built without a NATS connection
// is disabled: its handlers drop events silently, which keeps wiring
// unconditional in applications where forwarding is optional.
package forward

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/iecbridge/event"
	"github.com/c360/iecbridge/pkg/worker"
)

// DefaultSubjectPrefix is the subject root events are published under:
// <prefix>.<category>.<subscriber-id>.
const DefaultSubjectPrefix = "iecbridge.events"

type envelope struct {
	subject string
	payload any
}

// Forwarder publishes events to NATS through a worker pool.
type Forwarder struct {
	conn   *nats.Conn
	prefix string
	logger *slog.Logger
	pool   *worker.Pool[envelope]

	workers   int
	queueSize int
	promReg   prometheus.Registerer
}

// Option configures a Forwarder.
type Option func(*Forwarder)

// WithSubjectPrefix overrides the subject root.
func WithSubjectPrefix(prefix string) Option {
	return func(f *Forwarder) {
		if prefix != "" {
			f.prefix = prefix
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Forwarder) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithPool sizes the hand-off pool.
func WithPool(workers, queueSize int) Option {
	return func(f *Forwarder) {
		f.workers = workers
		f.queueSize = queueSize
	}
}

// WithPrometheus registers the pool's metrics on the given registerer.
func WithPrometheus(reg prometheus.Registerer) Option {
	return func(f *Forwarder) {
		f.promReg = reg
	}
}

// New creates a forwarder over the given NATS connection. A nil conn
// yields a disabled forwarder.
func New(conn *nats.Conn, opts ...Option) *Forwarder {
	f := &Forwarder{
		conn:   conn,
		prefix: DefaultSubjectPrefix,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}

	poolOpts := []worker.Option[envelope]{}
	if f.promReg != nil {
		poolOpts = append(poolOpts, worker.WithPrometheus[envelope](f.promReg, "iecbridge_forward"))
	}
	f.pool = worker.NewPool(f.workers, f.queueSize, f.publish, poolOpts...)
	return f
}

// Enabled reports whether the forwarder has a NATS connection to publish on.
func (f *Forwarder) Enabled() bool {
	return f.conn != nil
}

// Start starts the publishing workers.
func (f *Forwarder) Start(ctx context.Context) error {
	return f.pool.Start(ctx)
}

// Stop drains the queue and stops the workers.
func (f *Forwarder) Stop(timeout time.Duration) error {
	return f.pool.Stop(timeout)
}

// Stats returns the hand-off pool's statistics.
func (f *Forwarder) Stats() worker.PoolStats {
	return f.pool.Stats()
}

// publish is the pool processor: marshal and publish one event.
func (f *Forwarder) publish(_ context.Context, env envelope) error {
	data, err := json.Marshal(env.payload)
	if err != nil {
		f.logger.Error("event marshal failed", "subject", env.subject, "error", err)
		return err
	}
	if err := f.conn.Publish(env.subject, data); err != nil {
		f.logger.Error("event publish failed", "subject", env.subject, "error", err)
		return err
	}
	return nil
}

// enqueue submits one event for publishing. Runs inside the dispatch path:
// never blocks, drops on a full queue.
func (f *Forwarder) enqueue(category event.Category, id string, payload any) {
	if f.conn == nil {
		return
	}
	subject := f.prefix + "." + string(category) + "." + id
	if err := f.pool.Submit(envelope{subject: subject, payload: payload}); err != nil {
		f.logger.Warn("event forwarding dropped", "subject", subject, "error", err)
	}
}

// ReportHandler returns a handler that forwards reports for subscriber id.
func (f *Forwarder) ReportHandler(id string) event.ReportHandler {
	return event.ReportHandlerFunc(func(r event.Report) {
		f.enqueue(event.CategoryReport, id, r)
	})
}

// GooseHandler returns a handler that forwards GOOSE state changes.
func (f *Forwarder) GooseHandler(id string) event.GooseHandler {
	return event.GooseHandlerFunc(func(g event.Goose) {
		f.enqueue(event.CategoryGoose, id, g)
	})
}

// CommandTerminationHandler returns a handler that forwards control
// sequence completions.
func (f *Forwarder) CommandTerminationHandler(id string) event.CommandTerminationHandler {
	return event.CommandTerminationHandlerFunc(func(ct event.CommandTermination) {
		f.enqueue(event.CategoryCommandTermination, id, ct)
	})
}

// InformationReportHandler returns a handler that forwards information
// reports.
func (f *Forwarder) InformationReportHandler(id string) event.InformationReportHandler {
	return event.InformationReportHandlerFunc(func(ir event.InformationReport) {
		f.enqueue(event.CategoryInformationReport, id, ir)
	})
}
