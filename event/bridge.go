package event

import (
	"log/slog"
	"sync"
	"time"

	"github.com/c360/iecbridge/guard"
	"github.com/c360/iecbridge/metric"
	"github.com/c360/iecbridge/native"
)

// Bridge is the dispatch path invoked by the engine's callback mechanism.
// Its On* methods match the engine's callback signatures and are the only
// code the engine's worker goroutines run inside this module.
//
// Dispatch holds the shared execution lock for the whole trigger, copies
// borrowed payload handles into owned values before the trigger sees
// them, and contains every panic a handler raises: unwinding into the
// engine's stack frames would be undefined behavior, so failures are
// logged and counted instead. For Decide handlers an internal failure
// resolves to Deny. An unregistered subscriber id is a logged, non-fatal
// dropped event, never an error surfaced toward the engine.
type Bridge struct {
	lock     *sync.Mutex
	registry *Registry
	engine   native.Engine
	logger   *slog.Logger
	metrics  *metric.Metrics
}

// NewBridge creates a bridge over the given registry and engine. The lock
// is the process-wide execution lock shared with the facade's foreground
// request path; passing nil creates a private lock (useful in tests that
// exercise the bridge alone). A nil logger falls back to slog.Default; a
// nil metrics falls back to unregistered instruments.
func NewBridge(lock *sync.Mutex, registry *Registry, engine native.Engine, logger *slog.Logger, metrics *metric.Metrics) *Bridge {
	if lock == nil {
		lock = &sync.Mutex{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = metric.NewMetrics()
	}
	return &Bridge{
		lock:     lock,
		registry: registry,
		engine:   engine,
		logger:   logger,
		metrics:  metrics,
	}
}

// Registry returns the registry this bridge dispatches through.
func (b *Bridge) Registry() *Registry {
	return b.registry
}

// subscriberID extracts the subscriber id from the opaque user parameter
// the engine passes back to the callback.
func subscriberID(user any) (string, bool) {
	id, ok := user.(string)
	return id, ok && id != ""
}

// resolve looks up the subscriber under the execution lock and records a
// dropped event when it is absent.
func (b *Bridge) resolve(category Category, id string) (Subscriber, bool) {
	sub, ok := b.registry.Lookup(id)
	if !ok {
		b.logger.Warn("event dropped: subscriber not registered",
			"category", string(category), "subscriber_id", id)
		b.metrics.EventsDropped.WithLabelValues(string(category), "unregistered").Inc()
		return Subscriber{}, false
	}
	return sub, true
}

// dropMismatch records a subscriber whose handler does not implement the
// dispatched category's interface.
func (b *Bridge) dropMismatch(category Category, id string) {
	b.logger.Warn("event dropped: handler does not match category",
		"category", string(category), "subscriber_id", id)
	b.metrics.EventsDropped.WithLabelValues(string(category), "category-mismatch").Inc()
}

// dropBadUser records a callback invocation whose user parameter did not
// carry a subscriber id.
func (b *Bridge) dropBadUser(category Category) {
	b.logger.Warn("event dropped: callback user parameter is not a subscriber id",
		"category", string(category))
	b.metrics.EventsDropped.WithLabelValues(string(category), "bad-user-parameter").Inc()
}

// run invokes a Notify trigger with panic containment and timing.
func (b *Bridge) run(category Category, id string, trigger func()) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler trigger panicked",
				"category", string(category), "subscriber_id", id, "panic", r)
			b.metrics.HandlerFailures.WithLabelValues(string(category)).Inc()
		}
		b.metrics.DispatchDuration.WithLabelValues(string(category)).Observe(time.Since(start).Seconds())
	}()
	trigger()
	b.metrics.EventsDispatched.WithLabelValues(string(category)).Inc()
}

// DispatchReport routes one report event to the subscriber id.
func (b *Bridge) DispatchReport(id string, raw native.RawReport) {
	b.lock.Lock()
	defer b.lock.Unlock()

	sub, ok := b.resolve(CategoryReport, id)
	if !ok {
		return
	}
	h, ok := sub.Handler.(ReportHandler)
	if !ok {
		b.dropMismatch(CategoryReport, id)
		return
	}

	rpt := Report{
		RcbRef:       raw.RcbRef,
		RptID:        raw.RptID,
		DataSetName:  raw.DataSetName,
		SeqNum:       raw.SeqNum,
		ReasonBitmap: raw.ReasonBitmap,
		BufOverflow:  raw.BufOverflow,
		HasTimestamp: raw.HasTimestamp,
		Timestamp:    raw.Timestamp,
		Values:       guard.CopyValues(b.engine, raw.Values),
	}
	b.run(CategoryReport, id, func() { h.Trigger(rpt) })
}

// DispatchGoose routes one GOOSE state change to the subscriber id.
func (b *Bridge) DispatchGoose(id string, raw native.RawGoose) {
	b.lock.Lock()
	defer b.lock.Unlock()

	sub, ok := b.resolve(CategoryGoose, id)
	if !ok {
		return
	}
	h, ok := sub.Handler.(GooseHandler)
	if !ok {
		b.dropMismatch(CategoryGoose, id)
		return
	}

	ev := Goose{
		GocbRef:           raw.GocbRef,
		DataSetName:       raw.DataSetName,
		StNum:             raw.StNum,
		SqNum:             raw.SqNum,
		TimeAllowedToLive: raw.TimeAllowedToLive,
		Values:            guard.CopyValues(b.engine, raw.Values),
	}
	b.run(CategoryGoose, id, func() { h.Trigger(ev) })
}

// DispatchCommandTermination routes one control-sequence completion to
// the subscriber id.
func (b *Bridge) DispatchCommandTermination(id string, raw native.RawCommandTermination) {
	b.lock.Lock()
	defer b.lock.Unlock()

	sub, ok := b.resolve(CategoryCommandTermination, id)
	if !ok {
		return
	}
	h, ok := sub.Handler.(CommandTerminationHandler)
	if !ok {
		b.dropMismatch(CategoryCommandTermination, id)
		return
	}

	ct := CommandTermination{
		ObjectRef:      raw.ObjectRef,
		Success:        raw.Success,
		LastApplError:  raw.LastApplError,
		OriginCategory: raw.OriginCategory,
	}
	b.run(CategoryCommandTermination, id, func() { h.Trigger(ct) })
}

// DispatchControlAction routes one proposed control action to the
// subscriber id and returns the decision. A missing subscriber, a
// mismatched handler, or a panicking trigger all resolve to Deny so the
// native decision point never blocks and never observes a failure.
func (b *Bridge) DispatchControlAction(id string, raw native.RawControlAction) Decision {
	b.lock.Lock()
	defer b.lock.Unlock()

	sub, ok := b.resolve(CategoryControlAction, id)
	if !ok {
		return Deny
	}
	h, ok := sub.Handler.(ControlActionHandler)
	if !ok {
		b.dropMismatch(CategoryControlAction, id)
		return Deny
	}

	var ctlVal native.Value
	if !raw.CtlVal.IsNull() {
		vg := guard.BorrowValue(b.engine, raw.CtlVal)
		ctlVal, _ = vg.Owned()
		vg.Release()
	}
	act := ControlAction{
		ObjectRef:      raw.ObjectRef,
		Action:         raw.Action,
		OriginCategory: raw.OriginCategory,
		InterlockCheck: raw.InterlockCheck,
		CtlVal:         ctlVal,
	}

	decision := Deny
	panicked := false
	start := time.Now()
	func() {
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("control decision trigger panicked, denying",
					"subscriber_id", id, "object_ref", raw.ObjectRef, "panic", r)
				b.metrics.HandlerFailures.WithLabelValues(string(CategoryControlAction)).Inc()
				decision = Deny
				panicked = true
			}
		}()
		decision = h.Trigger(act)
	}()
	b.metrics.DispatchDuration.WithLabelValues(string(CategoryControlAction)).Observe(time.Since(start).Seconds())
	if !panicked {
		b.metrics.EventsDispatched.WithLabelValues(string(CategoryControlAction)).Inc()
	}
	return decision
}

// DispatchInformationReport routes one information report to the
// subscriber id.
func (b *Bridge) DispatchInformationReport(id string, raw native.RawInformationReport) {
	b.lock.Lock()
	defer b.lock.Unlock()

	sub, ok := b.resolve(CategoryInformationReport, id)
	if !ok {
		return
	}
	h, ok := sub.Handler.(InformationReportHandler)
	if !ok {
		b.dropMismatch(CategoryInformationReport, id)
		return
	}

	var value native.Value
	if !raw.Value.IsNull() {
		vg := guard.BorrowValue(b.engine, raw.Value)
		value, _ = vg.Owned()
		vg.Release()
	}
	ir := InformationReport{
		DomainName:         raw.DomainName,
		VariableListName:   raw.VariableListName,
		IsVariableListName: raw.IsVariableListName,
		Value:              value,
	}
	b.run(CategoryInformationReport, id, func() { h.Trigger(ir) })
}

// Engine-facing callback adapters. These are the static entry points
// handed to the engine's registration functions; the opaque user
// parameter carries the subscriber id, which keeps the registry
// connection-scoped instead of relying on a single global slot.

// OnReport is the native.ReportCallback entry point.
func (b *Bridge) OnReport(user any, raw native.RawReport) {
	id, ok := subscriberID(user)
	if !ok {
		b.dropBadUser(CategoryReport)
		return
	}
	b.DispatchReport(id, raw)
}

// OnGoose is the native.GooseCallback entry point.
func (b *Bridge) OnGoose(user any, raw native.RawGoose) {
	id, ok := subscriberID(user)
	if !ok {
		b.dropBadUser(CategoryGoose)
		return
	}
	b.DispatchGoose(id, raw)
}

// OnCommandTermination is the native.CommandTerminationCallback entry point.
func (b *Bridge) OnCommandTermination(user any, raw native.RawCommandTermination) {
	id, ok := subscriberID(user)
	if !ok {
		b.dropBadUser(CategoryCommandTermination)
		return
	}
	b.DispatchCommandTermination(id, raw)
}

// OnControlAction is the native.ControlActionCallback entry point. The
// boolean it returns is the accept/deny decision the engine consumes.
func (b *Bridge) OnControlAction(user any, raw native.RawControlAction) bool {
	id, ok := subscriberID(user)
	if !ok {
		b.dropBadUser(CategoryControlAction)
		return false
	}
	return b.DispatchControlAction(id, raw) == Allow
}

// OnInformationReport is the native.InformationReportCallback entry point.
func (b *Bridge) OnInformationReport(user any, raw native.RawInformationReport) {
	id, ok := subscriberID(user)
	if !ok {
		b.dropBadUser(CategoryInformationReport)
		return
	}
	b.DispatchInformationReport(id, raw)
}
