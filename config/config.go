// Package config holds the client configuration and its validation.
package config

import (
	"fmt"
	"time"

	"github.com/c360/iecbridge/errors"
	"github.com/c360/iecbridge/pkg/retry"
)

// Config configures a bridge client.
type Config struct {
	// ConnectTimeout bounds the native connect round trip.
	ConnectTimeout time.Duration `json:"connect_timeout"`

	// RequestTimeout bounds each synchronous service round trip.
	RequestTimeout time.Duration `json:"request_timeout"`

	// Retry controls connection attempt backoff.
	Retry retry.Config `json:"retry"`

	// DispatchWorkers and DispatchQueueSize size the hand-off pool used by
	// forwarding handlers.
	DispatchWorkers   int `json:"dispatch_workers"`
	DispatchQueueSize int `json:"dispatch_queue_size"`
}

// DefaultConfig returns the defaults used when a zero Config is given.
func DefaultConfig() Config {
	return Config{
		ConnectTimeout:    10 * time.Second,
		RequestTimeout:    5 * time.Second,
		Retry:             retry.DefaultConfig(),
		DispatchWorkers:   4,
		DispatchQueueSize: 256,
	}
}

// Normalize fills zero fields with defaults.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.ConnectTimeout == 0 {
		c.ConnectTimeout = def.ConnectTimeout
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = def.RequestTimeout
	}
	if c.Retry.MaxAttempts == 0 {
		c.Retry = def.Retry
	}
	if c.DispatchWorkers == 0 {
		c.DispatchWorkers = def.DispatchWorkers
	}
	if c.DispatchQueueSize == 0 {
		c.DispatchQueueSize = def.DispatchQueueSize
	}
	return c
}

// Validate checks the configuration for values that cannot work.
func (c Config) Validate() error {
	if c.ConnectTimeout < 0 {
		return errors.WrapInvalid(
			fmt.Errorf("connect timeout %v is negative", c.ConnectTimeout),
			"Config", "Validate", "timeout validation")
	}
	if c.RequestTimeout < 0 {
		return errors.WrapInvalid(
			fmt.Errorf("request timeout %v is negative", c.RequestTimeout),
			"Config", "Validate", "timeout validation")
	}
	if c.DispatchWorkers < 0 {
		return errors.WrapInvalid(
			fmt.Errorf("dispatch workers %d is negative", c.DispatchWorkers),
			"Config", "Validate", "worker pool validation")
	}
	if c.DispatchQueueSize < 0 {
		return errors.WrapInvalid(
			fmt.Errorf("dispatch queue size %d is negative", c.DispatchQueueSize),
			"Config", "Validate", "worker pool validation")
	}
	return nil
}

// ValidateEndpoint checks a host/port pair ahead of a connection attempt.
func ValidateEndpoint(host string, port int) error {
	if host == "" {
		return errors.WrapInvalid(errors.ErrEmptyArgument, "Config", "ValidateEndpoint", "host validation")
	}
	if port < 1 || port > 65535 {
		return errors.WrapInvalid(
			fmt.Errorf("port %d outside valid range 1-65535", port),
			"Config", "ValidateEndpoint", "port validation")
	}
	return nil
}
