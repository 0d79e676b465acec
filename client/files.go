package client

import (
	"time"

	"github.com/c360/iecbridge/errors"
	"github.com/c360/iecbridge/native"
)

// GetFile downloads a file from the server.
func (c *Client) GetFile(name string) (data []byte, err error) {
	start := time.Now()
	defer func() { c.observe("get-file", start, err) }()

	if name == "" {
		return nil, errors.WrapInvalid(errors.ErrEmptyArgument, "Client", "GetFile", "file name validation")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.requireConnected("GetFile")
	if err != nil {
		return nil, err
	}

	data, code := c.engine.GetFile(conn, name)
	if cause := code.Err(); cause != nil {
		return nil, errors.WrapTransient(cause, "Client", "GetFile", "file read")
	}
	return data, nil
}

// SetFile asks the server to fetch a file from source into destination.
func (c *Client) SetFile(source, destination string) (err error) {
	start := time.Now()
	defer func() { c.observe("set-file", start, err) }()

	if source == "" || destination == "" {
		return errors.WrapInvalid(errors.ErrEmptyArgument, "Client", "SetFile", "file name validation")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.requireConnected("SetFile")
	if err != nil {
		return err
	}

	if cause := c.engine.SetFile(conn, source, destination).Err(); cause != nil {
		return errors.WrapTransient(cause, "Client", "SetFile", "file write")
	}
	return nil
}

// DeleteFile deletes a file on the server.
func (c *Client) DeleteFile(name string) (err error) {
	start := time.Now()
	defer func() { c.observe("delete-file", start, err) }()

	if name == "" {
		return errors.WrapInvalid(errors.ErrEmptyArgument, "Client", "DeleteFile", "file name validation")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.requireConnected("DeleteFile")
	if err != nil {
		return err
	}

	if cause := c.engine.DeleteFile(conn, name).Err(); cause != nil {
		return errors.WrapTransient(cause, "Client", "DeleteFile", "file delete")
	}
	return nil
}

// FileDirectory lists the server's file directory.
func (c *Client) FileDirectory(dir string) (entries []native.FileEntry, err error) {
	start := time.Now()
	defer func() { c.observe("file-directory", start, err) }()

	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.requireConnected("FileDirectory")
	if err != nil {
		return nil, err
	}

	entries, code := c.engine.FileDirectory(conn, dir)
	if cause := code.Err(); cause != nil {
		return nil, errors.WrapTransient(cause, "Client", "FileDirectory", "directory read")
	}
	return entries, nil
}
