package client

import (
	"time"

	"github.com/c360/iecbridge/errors"
	"github.com/c360/iecbridge/guard"
	"github.com/c360/iecbridge/native"
)

// ReadValue reads one data attribute and returns an owned copy of the
// decoded value. The engine's value handle is guarded and released before
// return; nothing native leaks to the caller.
func (c *Client) ReadValue(ref string, fc native.FunctionalConstraint) (v native.Value, err error) {
	start := time.Now()
	defer func() { c.observe("read", start, err) }()

	if ref == "" {
		return native.Value{}, errors.WrapInvalid(errors.ErrEmptyArgument, "Client", "ReadValue", "reference validation")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.requireConnected("ReadValue")
	if err != nil {
		return native.Value{}, err
	}

	h, code := c.engine.ReadObject(conn, ref, fc)
	vg := guard.AcquireValue(c.engine, h).WithLogger(c.logger)
	defer vg.Release()

	if cause := code.Err(); cause != nil {
		return native.Value{}, errors.WrapTransient(cause, "Client", "ReadValue", "read request")
	}
	return vg.Owned()
}

// WriteValue writes one data attribute. The encoded value handle is owned
// by this call and released before return.
func (c *Client) WriteValue(ref string, fc native.FunctionalConstraint, v native.Value) (err error) {
	start := time.Now()
	defer func() { c.observe("write", start, err) }()

	if ref == "" {
		return errors.WrapInvalid(errors.ErrEmptyArgument, "Client", "WriteValue", "reference validation")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.requireConnected("WriteValue")
	if err != nil {
		return err
	}

	vg, err := c.encodeValue("WriteValue", v)
	if err != nil {
		return err
	}
	defer vg.Release()

	if cause := c.engine.WriteObject(conn, ref, fc, vg.Handle()).Err(); cause != nil {
		return errors.WrapTransient(cause, "Client", "WriteValue", "write request")
	}
	return nil
}

// DataSetValues reads a data set and returns owned copies of its member
// values. The data set handle and the borrowed values behind it are
// released before return.
func (c *Client) DataSetValues(ref string) (values []native.Value, err error) {
	start := time.Now()
	defer func() { c.observe("dataset", start, err) }()

	if ref == "" {
		return nil, errors.WrapInvalid(errors.ErrEmptyArgument, "Client", "DataSetValues", "reference validation")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.requireConnected("DataSetValues")
	if err != nil {
		return nil, err
	}

	ds, code := c.engine.ReadDataSetValues(conn, ref)
	g := guard.Acquire(ds, c.engine.DestroyDataSet).WithLogger(c.logger)
	defer g.Release()

	if cause := code.Err(); cause != nil {
		return nil, errors.WrapTransient(cause, "Client", "DataSetValues", "dataset read request")
	}
	if g.IsEmpty() {
		return nil, errors.WrapInvalid(errors.ErrNullHandle, "Client", "DataSetValues", "dataset decode")
	}

	return guard.CopyValues(c.engine, c.engine.DataSetValues(g.Handle())), nil
}

// browse runs one list-producing engine call and copies the names out of
// the guarded list before releasing it.
func (c *Client) browse(op string, list func(conn native.Handle) (native.Handle, native.ErrorCode)) (names []string, err error) {
	start := time.Now()
	defer func() { c.observe(op, start, err) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.requireConnected(op)
	if err != nil {
		return nil, err
	}

	h, code := list(conn)
	lg := guard.AcquireList(c.engine, h).WithLogger(c.logger)
	defer lg.Release()

	if cause := code.Err(); cause != nil {
		return nil, errors.WrapTransient(cause, "Client", op, "browse request")
	}
	return lg.Strings(), nil
}

// LogicalDevices lists the server's logical devices.
func (c *Client) LogicalDevices() ([]string, error) {
	return c.browse("browse-devices", c.engine.LogicalDeviceList)
}

// LogicalNodes lists the logical nodes of a logical device.
func (c *Client) LogicalNodes(device string) ([]string, error) {
	if device == "" {
		return nil, errors.WrapInvalid(errors.ErrEmptyArgument, "Client", "LogicalNodes", "device validation")
	}
	return c.browse("browse-nodes", func(conn native.Handle) (native.Handle, native.ErrorCode) {
		return c.engine.LogicalNodeList(conn, device)
	})
}

// DataObjects lists the data objects of a logical node.
func (c *Client) DataObjects(device, node string) ([]string, error) {
	if device == "" || node == "" {
		return nil, errors.WrapInvalid(errors.ErrEmptyArgument, "Client", "DataObjects", "reference validation")
	}
	ref := device + "/" + node
	return c.browse("browse-objects", func(conn native.Handle) (native.Handle, native.ErrorCode) {
		return c.engine.LogicalNodeDirectory(conn, ref, native.ClassDataObject)
	})
}

// DataAttributes lists the data attributes of a data object.
func (c *Client) DataAttributes(device, node, object string) ([]string, error) {
	if device == "" || node == "" || object == "" {
		return nil, errors.WrapInvalid(errors.ErrEmptyArgument, "Client", "DataAttributes", "reference validation")
	}
	ref := device + "/" + node + "." + object
	return c.browse("browse-attributes", func(conn native.Handle) (native.Handle, native.ErrorCode) {
		return c.engine.LogicalNodeDirectory(conn, ref, native.ClassDataAttribute)
	})
}
