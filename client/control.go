package client

import (
	"fmt"
	"time"

	"github.com/c360/iecbridge/errors"
	"github.com/c360/iecbridge/event"
	"github.com/c360/iecbridge/guard"
	"github.com/c360/iecbridge/native"
)

// Control is a guarded control object bound to one controllable data
// object. It stays valid until Close or the client disconnects, whichever
// comes first; the client releases still-open controls during teardown.
type Control struct {
	client        *Client
	objectRef     string
	guard         *guard.Guard
	terminationID string
}

// Control creates a control object for the given object reference.
func (c *Client) Control(objectRef string) (ctl *Control, err error) {
	start := time.Now()
	defer func() { c.observe("control-create", start, err) }()

	if objectRef == "" {
		return nil, errors.WrapInvalid(errors.ErrEmptyArgument, "Client", "Control", "reference validation")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.requireConnected("Control")
	if err != nil {
		return nil, err
	}

	h := c.engine.CreateControlObject(conn, objectRef)
	if h.IsNull() {
		return nil, errors.WrapFatal(errors.ErrAllocationFailed, "Client", "Control", "control object allocation")
	}

	ctl = &Control{
		client:    c,
		objectRef: objectRef,
		guard:     guard.Acquire(h, c.engine.DestroyControlObject).WithLogger(c.logger),
	}
	c.controls[ctl] = struct{}{}
	return ctl, nil
}

// ObjectRef returns the controlled object reference.
func (ctl *Control) ObjectRef() string {
	return ctl.objectRef
}

// Model returns the control model configured for the object.
func (ctl *Control) Model() (native.ControlModel, error) {
	ctl.client.mu.Lock()
	defer ctl.client.mu.Unlock()

	if ctl.guard.IsEmpty() {
		return native.ControlStatusOnly, errors.WrapInvalid(errors.ErrNullHandle, "Control", "Model", "control handle check")
	}
	return ctl.client.engine.ControlModelOf(ctl.guard.Handle()), nil
}

// require returns the live control handle. Callers must hold the client's
// execution lock.
func (ctl *Control) require(op string) (native.Handle, error) {
	if ctl.guard.IsEmpty() {
		return native.NullHandle, errors.WrapInvalid(errors.ErrNullHandle, "Control", op, "control handle check")
	}
	return ctl.guard.Handle(), nil
}

// rejected builds the error for a negative control response, attaching the
// additional-cause diagnosis the server reported.
func (ctl *Control) rejected(op string, h native.Handle) error {
	lastErr := ctl.client.engine.LastApplError(h)
	cause := errors.Describe(errors.ErrObject,
		fmt.Sprintf("%s rejected for %s, last application error %d", op, ctl.objectRef, lastErr))
	return errors.WrapTransient(cause, "Control", op, "control request")
}

// Select reserves the object for operation (SBO control models).
func (ctl *Control) Select() (err error) {
	start := time.Now()
	defer func() { ctl.client.observe("control-select", start, err) }()

	ctl.client.mu.Lock()
	defer ctl.client.mu.Unlock()

	h, err := ctl.require("Select")
	if err != nil {
		return err
	}
	if !ctl.client.engine.Select(h) {
		return ctl.rejected("Select", h)
	}
	return nil
}

// SelectWithValue reserves the object with the intended control value
// (enhanced-security SBO control models).
func (ctl *Control) SelectWithValue(v native.Value) (err error) {
	start := time.Now()
	defer func() { ctl.client.observe("control-select", start, err) }()

	ctl.client.mu.Lock()
	defer ctl.client.mu.Unlock()

	h, err := ctl.require("SelectWithValue")
	if err != nil {
		return err
	}

	vg, err := ctl.client.encodeValue("SelectWithValue", v)
	if err != nil {
		return err
	}
	defer vg.Release()

	if !ctl.client.engine.SelectWithValue(h, vg.Handle()) {
		return ctl.rejected("SelectWithValue", h)
	}
	return nil
}

// Operate executes the control with the given value. operTime is the
// optional scheduled operation time in ms since epoch; zero operates
// immediately.
func (ctl *Control) Operate(v native.Value, operTime uint64) (err error) {
	start := time.Now()
	defer func() { ctl.client.observe("control-operate", start, err) }()

	ctl.client.mu.Lock()
	defer ctl.client.mu.Unlock()

	h, err := ctl.require("Operate")
	if err != nil {
		return err
	}

	vg, err := ctl.client.encodeValue("Operate", v)
	if err != nil {
		return err
	}
	defer vg.Release()

	if !ctl.client.engine.Operate(h, vg.Handle(), operTime) {
		return ctl.rejected("Operate", h)
	}
	return nil
}

// Cancel cancels a previous select or a scheduled operate.
func (ctl *Control) Cancel() (err error) {
	start := time.Now()
	defer func() { ctl.client.observe("control-cancel", start, err) }()

	ctl.client.mu.Lock()
	defer ctl.client.mu.Unlock()

	h, err := ctl.require("Cancel")
	if err != nil {
		return err
	}
	if !ctl.client.engine.Cancel(h) {
		return ctl.rejected("Cancel", h)
	}
	return nil
}

// OnTermination registers a command-termination handler for this control
// object under the given subscriber id and wires the engine callback.
func (ctl *Control) OnTermination(id string, handler event.CommandTerminationHandler) error {
	ctl.client.mu.Lock()
	defer ctl.client.mu.Unlock()

	h, err := ctl.require("OnTermination")
	if err != nil {
		return err
	}
	if err := ctl.client.registry.Register(id, event.CategoryCommandTermination, handler); err != nil {
		return err
	}
	ctl.client.engine.InstallCommandTerminationCallback(h, ctl.client.bridge.OnCommandTermination, id)
	ctl.terminationID = id
	return nil
}

// Close releases the control object and unregisters its termination
// handler. Idempotent.
func (ctl *Control) Close() {
	ctl.client.mu.Lock()
	defer ctl.client.mu.Unlock()

	ctl.releaseLocked()
	delete(ctl.client.controls, ctl)
}

// releaseLocked tears the control down. Callers must hold the client's
// execution lock.
func (ctl *Control) releaseLocked() {
	if ctl.terminationID != "" {
		ctl.client.registry.Unregister(ctl.terminationID)
		ctl.terminationID = ""
	}
	ctl.guard.Release()
}
