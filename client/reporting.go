package client

import (
	"time"

	"github.com/c360/iecbridge/errors"
	"github.com/c360/iecbridge/event"
	"github.com/c360/iecbridge/guard"
)

// EnableReporting activates a report control block and routes its reports
// to the given handler: the handler is registered under id, the RCB is
// read, updated with the report id and enabled through a read-modify-write,
// and the engine's report callback is wired to the bridge. On any failure
// the registration is rolled back and nothing stays active.
func (c *Client) EnableReporting(rcbRef, rptID, id string, handler event.ReportHandler) (err error) {
	start := time.Now()
	defer func() { c.observe("enable-reporting", start, err) }()

	if rcbRef == "" {
		return errors.WrapInvalid(errors.ErrEmptyArgument, "Client", "EnableReporting", "rcb reference validation")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.requireConnected("EnableReporting")
	if err != nil {
		return err
	}
	if err = c.registry.Register(id, event.CategoryReport, handler); err != nil {
		return err
	}

	h, code := c.engine.ReadRCB(conn, rcbRef)
	g := guard.Acquire(h, c.engine.DestroyRCB).WithLogger(c.logger)
	defer g.Release()

	if cause := code.Err(); cause != nil {
		c.registry.Unregister(id)
		return errors.WrapTransient(cause, "Client", "EnableReporting", "rcb read")
	}
	if g.IsEmpty() {
		c.registry.Unregister(id)
		return errors.WrapInvalid(errors.ErrNullHandle, "Client", "EnableReporting", "rcb decode")
	}

	if rptID != "" {
		c.engine.SetRCBReportID(g.Handle(), rptID)
	}
	c.engine.SetRCBEnabled(g.Handle(), true)

	if cause := c.engine.WriteRCB(conn, g.Handle()).Err(); cause != nil {
		c.registry.Unregister(id)
		return errors.WrapTransient(cause, "Client", "EnableReporting", "rcb write")
	}

	c.engine.InstallReportCallback(conn, rcbRef, c.bridge.OnReport, id)
	c.reporting[rcbRef] = id
	c.logger.Info("reporting enabled", "rcb_ref", rcbRef, "subscriber_id", id)
	return nil
}

// DisableReporting deactivates a report control block previously enabled
// by EnableReporting: the RCB is disabled on the server, the engine
// callback slot cleared, and the subscriber unregistered. Disabling an
// rcb that was never enabled only performs the server-side disable.
func (c *Client) DisableReporting(rcbRef string) (err error) {
	start := time.Now()
	defer func() { c.observe("disable-reporting", start, err) }()

	if rcbRef == "" {
		return errors.WrapInvalid(errors.ErrEmptyArgument, "Client", "DisableReporting", "rcb reference validation")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.requireConnected("DisableReporting")
	if err != nil {
		return err
	}

	h, code := c.engine.ReadRCB(conn, rcbRef)
	g := guard.Acquire(h, c.engine.DestroyRCB).WithLogger(c.logger)
	defer g.Release()

	if cause := code.Err(); cause != nil {
		return errors.WrapTransient(cause, "Client", "DisableReporting", "rcb read")
	}
	if g.IsEmpty() {
		return errors.WrapInvalid(errors.ErrNullHandle, "Client", "DisableReporting", "rcb decode")
	}

	c.engine.SetRCBEnabled(g.Handle(), false)
	if cause := c.engine.WriteRCB(conn, g.Handle()).Err(); cause != nil {
		return errors.WrapTransient(cause, "Client", "DisableReporting", "rcb write")
	}

	c.engine.InstallReportCallback(conn, rcbRef, nil, nil)
	if id, ok := c.reporting[rcbRef]; ok {
		c.registry.Unregister(id)
		delete(c.reporting, rcbRef)
	}
	c.logger.Info("reporting disabled", "rcb_ref", rcbRef)
	return nil
}
