package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/iecbridge/errors"
	"github.com/c360/iecbridge/event"
)

func noopReport() event.ReportHandler {
	return event.ReportHandlerFunc(func(event.Report) {})
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := event.NewRegistry()
	h := noopReport()

	require.NoError(t, r.Register("rcb1", event.CategoryReport, h))

	sub, ok := r.Lookup("rcb1")
	require.True(t, ok)
	assert.Equal(t, "rcb1", sub.ID)
	assert.Equal(t, event.CategoryReport, sub.Category)
	assert.NotNil(t, sub.Handler)
}

// A second registration on an occupied id is rejected and the original
// handler stays active.
func TestRegistryRejectsDuplicateID(t *testing.T) {
	r := event.NewRegistry()

	var firstCalls int
	first := event.ReportHandlerFunc(func(event.Report) { firstCalls++ })
	second := event.ReportHandlerFunc(func(event.Report) { t.Fatal("replaced handler must never run") })

	require.NoError(t, r.Register("rcb1", event.CategoryReport, first))

	err := r.Register("rcb1", event.CategoryReport, second)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDuplicateSubscriber))
	assert.True(t, errors.IsInvalid(err))

	sub, ok := r.Lookup("rcb1")
	require.True(t, ok)
	sub.Handler.(event.ReportHandler).Trigger(event.Report{})
	assert.Equal(t, 1, firstCalls)
}

func TestRegistryRegisterValidation(t *testing.T) {
	r := event.NewRegistry()

	tests := []struct {
		name     string
		id       string
		category event.Category
		handler  any
		sentinel error
	}{
		{"empty id", "", event.CategoryReport, noopReport(), errors.ErrEmptyArgument},
		{"nil handler", "x", event.CategoryReport, nil, errors.ErrEmptyArgument},
		{"unknown category", "x", event.Category("bogus"), noopReport(), nil},
		{"handler type mismatch", "x", event.CategoryGoose, noopReport(), nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := r.Register(tc.id, tc.category, tc.handler)
			require.Error(t, err)
			assert.True(t, errors.IsInvalid(err))
			if tc.sentinel != nil {
				assert.True(t, errors.Is(err, tc.sentinel))
			}
		})
	}
	assert.Empty(t, r.IDs())
}

func TestRegistryUnregisterAbsentIsNoop(t *testing.T) {
	r := event.NewRegistry()
	r.Unregister("never-registered")
	r.Unregister("")

	require.NoError(t, r.Register("a", event.CategoryReport, noopReport()))
	r.Unregister("a")
	_, ok := r.Lookup("a")
	assert.False(t, ok)

	r.Unregister("a")
}

func TestRegistryClear(t *testing.T) {
	r := event.NewRegistry()
	require.NoError(t, r.Register("a", event.CategoryReport, noopReport()))
	require.NoError(t, r.Register("b", event.CategoryGoose, event.GooseHandlerFunc(func(event.Goose) {})))
	assert.Len(t, r.IDs(), 2)

	r.Clear()
	assert.Empty(t, r.IDs())
}
