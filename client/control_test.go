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

func TestControlSelectOperateCancel(t *testing.T) {
	eng := testutil.NewFakeEngine()
	eng.ControlModel = native.ControlSBONormal
	eng.SelectResult = true
	eng.OperateResult = true
	eng.CancelResult = true
	c := newConnected(t, eng)

	ctl, err := c.Control("ied1LD0/CSWI1.Pos")
	require.NoError(t, err)
	assert.Equal(t, "ied1LD0/CSWI1.Pos", ctl.ObjectRef())

	model, err := ctl.Model()
	require.NoError(t, err)
	assert.Equal(t, native.ControlSBONormal, model)

	require.NoError(t, ctl.Select())
	require.NoError(t, ctl.Operate(native.NewBool(true), 0))
	require.NoError(t, ctl.Cancel())

	require.Len(t, eng.ControlOps, 3)
	assert.Equal(t, "select", eng.ControlOps[0].Op)
	assert.Equal(t, "operate", eng.ControlOps[1].Op)
	assert.Equal(t, native.NewBool(true), eng.ControlOps[1].Value)
	assert.Equal(t, "cancel", eng.ControlOps[2].Op)

	ctl.Close()
	assert.Equal(t, 1, eng.LiveHandles(), "control object released, connection still live")
	assert.Empty(t, eng.Violations())
}

func TestControlSelectWithValue(t *testing.T) {
	eng := testutil.NewFakeEngine()
	eng.SelectResult = true
	c := newConnected(t, eng)

	ctl, err := c.Control("ied1LD0/CSWI1.Pos")
	require.NoError(t, err)
	defer ctl.Close()

	require.NoError(t, ctl.SelectWithValue(native.NewBool(true)))
	require.Len(t, eng.ControlOps, 1)
	assert.Equal(t, "select-with-value", eng.ControlOps[0].Op)
	assert.Equal(t, native.NewBool(true), eng.ControlOps[0].Value)
}

func TestControlNegativeResponse(t *testing.T) {
	eng := testutil.NewFakeEngine()
	eng.OperateResult = false
	eng.LastApplErrorCode = 3
	c := newConnected(t, eng)

	ctl, err := c.Control("ied1LD0/CSWI1.Pos")
	require.NoError(t, err)
	defer ctl.Close()

	err = ctl.Operate(native.NewBool(true), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrObject))
	assert.Contains(t, err.Error(), "last application error 3")
}

func TestControlRequiresConnection(t *testing.T) {
	c := newClient(t, testutil.NewFakeEngine())
	_, err := c.Control("ref")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotConnected))
}

func TestControlAfterCloseFails(t *testing.T) {
	eng := testutil.NewFakeEngine()
	c := newConnected(t, eng)

	ctl, err := c.Control("ied1LD0/CSWI1.Pos")
	require.NoError(t, err)

	ctl.Close()
	ctl.Close()

	require.Error(t, ctl.Select())
	assert.True(t, errors.Is(ctl.Select(), errors.ErrNullHandle))
	assert.Empty(t, eng.Violations(), "double close must not double destroy")
}

func TestControlOnTermination(t *testing.T) {
	eng := testutil.NewFakeEngine()
	c := newConnected(t, eng)

	ctl, err := c.Control("ied1LD0/CSWI1.Pos")
	require.NoError(t, err)

	var got event.CommandTermination
	require.NoError(t, ctl.OnTermination("pos-term",
		event.CommandTerminationHandlerFunc(func(ct event.CommandTermination) { got = ct })))

	eng.FireCommandTermination(native.RawCommandTermination{
		ObjectRef: "ied1LD0/CSWI1.Pos",
		Success:   true,
	})
	assert.Equal(t, "ied1LD0/CSWI1.Pos", got.ObjectRef)
	assert.True(t, got.Success)

	// Close unregisters the termination subscriber.
	ctl.Close()
	require.NoError(t, c.InstallHandler(event.CategoryCommandTermination, "pos-term",
		event.CommandTerminationHandlerFunc(func(event.CommandTermination) {})))
}

// Disconnect releases still-open control objects during teardown.
func TestDisconnectReleasesOpenControls(t *testing.T) {
	eng := testutil.NewFakeEngine()
	c := newConnected(t, eng)

	_, err := c.Control("ied1LD0/CSWI1.Pos")
	require.NoError(t, err)
	_, err = c.Control("ied1LD0/CSWI2.Pos")
	require.NoError(t, err)

	c.Disconnect()
	assert.Equal(t, 0, eng.LiveHandles())
	assert.Empty(t, eng.Violations())
}
