package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/iecbridge/errors"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
}

func TestNormalizeFillsZeroFields(t *testing.T) {
	cfg := Config{}.Normalize()
	assert.Equal(t, DefaultConfig(), cfg)

	cfg = Config{ConnectTimeout: time.Second}.Normalize()
	assert.Equal(t, time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestValidateRejectsNegatives(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"negative connect timeout", Config{ConnectTimeout: -time.Second}},
		{"negative request timeout", Config{RequestTimeout: -time.Second}},
		{"negative workers", Config{DispatchWorkers: -1}},
		{"negative queue size", Config{DispatchQueueSize: -1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err))
		})
	}
}

func TestValidateEndpoint(t *testing.T) {
	require.NoError(t, ValidateEndpoint("10.0.0.5", 102))
	require.NoError(t, ValidateEndpoint("ied.example.net", 65535))

	tests := []struct {
		name string
		host string
		port int
	}{
		{"empty host", "", 102},
		{"port zero", "h", 0},
		{"port negative", "h", -1},
		{"port too large", "h", 65536},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateEndpoint(tc.host, tc.port)
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err))
		})
	}
}
