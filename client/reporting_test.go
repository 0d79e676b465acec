package client_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/iecbridge/errors"
	"github.com/c360/iecbridge/event"
	"github.com/c360/iecbridge/native"
	"github.com/c360/iecbridge/testutil"
)

const rcbRef = "ied1LD0/LLN0.RP.urcb01"

func TestEnableReportingActivatesRCBAndHandler(t *testing.T) {
	eng := testutil.NewFakeEngine()
	c := newConnected(t, eng)

	var got event.Report
	require.NoError(t, c.EnableReporting(rcbRef, "rpt-1", "sub-1",
		event.ReportHandlerFunc(func(r event.Report) { got = r })))

	enabled, ok := eng.RCBEnabled(rcbRef)
	require.True(t, ok)
	assert.True(t, enabled)
	rptID, _ := eng.RCBReportID(rcbRef)
	assert.Equal(t, "rpt-1", rptID)

	installedRef, installed := eng.ReportCallbackInstalled()
	require.True(t, installed)
	assert.Equal(t, rcbRef, installedRef)

	// A report fired by the engine reaches the handler with owned values.
	values := eng.MakeBorrowedValues(native.NewBool(true), native.NewInt(42))
	eng.FireReport(native.RawReport{
		RcbRef:       rcbRef,
		ReasonBitmap: 0b00010,
		Values:       values,
	})
	assert.Equal(t, uint32(0b00010), got.ReasonBitmap)
	require.Len(t, got.Values, 2)
	assert.Equal(t, native.NewInt(42), got.Values[1])

	assert.Equal(t, 1, eng.LiveHandles(), "rcb handle released, connection still live")
	assert.Empty(t, eng.Violations())
}

func TestEnableReportingRollsBackOnWriteFailure(t *testing.T) {
	eng := testutil.NewFakeEngine()
	eng.WriteRCBCode = native.CodeAccessDenied
	c := newConnected(t, eng)

	err := c.EnableReporting(rcbRef, "rpt-1", "sub-1", event.ReportHandlerFunc(func(event.Report) {}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrAccessDenied))

	// Rollback freed the id for a later registration.
	eng.WriteRCBCode = native.CodeOK
	require.NoError(t, c.EnableReporting(rcbRef, "rpt-1", "sub-1",
		event.ReportHandlerFunc(func(event.Report) {})))
	assert.Empty(t, eng.Violations())
}

func TestEnableReportingDuplicateSubscriber(t *testing.T) {
	eng := testutil.NewFakeEngine()
	c := newConnected(t, eng)

	h := event.ReportHandlerFunc(func(event.Report) {})
	require.NoError(t, c.EnableReporting(rcbRef, "", "sub-1", h))

	err := c.EnableReporting("ied1LD0/LLN0.RP.urcb02", "", "sub-1", h)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDuplicateSubscriber))
}

func TestDisableReportingDeactivatesAndUnregisters(t *testing.T) {
	eng := testutil.NewFakeEngine()
	c := newConnected(t, eng)

	require.NoError(t, c.EnableReporting(rcbRef, "rpt-1", "sub-1",
		event.ReportHandlerFunc(func(event.Report) {})))
	require.NoError(t, c.DisableReporting(rcbRef))

	enabled, ok := eng.RCBEnabled(rcbRef)
	require.True(t, ok)
	assert.False(t, enabled)

	_, installed := eng.ReportCallbackInstalled()
	assert.False(t, installed)

	// The subscriber id is free again.
	require.NoError(t, c.EnableReporting(rcbRef, "rpt-1", "sub-1",
		event.ReportHandlerFunc(func(event.Report) {})))
	assert.Empty(t, eng.Violations())
}

func TestReportingRequiresConnection(t *testing.T) {
	c := newClient(t, testutil.NewFakeEngine())

	err := c.EnableReporting(rcbRef, "", "sub-1", event.ReportHandlerFunc(func(event.Report) {}))
	assert.True(t, errors.Is(err, errors.ErrNotConnected))
	assert.True(t, errors.Is(c.DisableReporting(rcbRef), errors.ErrNotConnected))
}

func TestReportingValidatesRef(t *testing.T) {
	c := newConnected(t, testutil.NewFakeEngine())

	err := c.EnableReporting("", "", "sub-1", event.ReportHandlerFunc(func(event.Report) {}))
	assert.True(t, errors.Is(err, errors.ErrEmptyArgument))
	assert.True(t, errors.Is(c.DisableReporting(""), errors.ErrEmptyArgument))
}
