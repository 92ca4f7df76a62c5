package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponse(t *testing.T) {
	r := Reading{Sample: Sample{X: -12, Y: 40, Z: 1003}, NewData: true}
	assert.Equal(t, "Acceleration: x -12 y 40 z 1003\r\n", Response(Cmd_Accelerometer, r))
	assert.Equal(t, "Magnetic Field: x -12 y 40 z 1003\r\n", Response(Cmd_Magnetometer, r))

	r.NewData = false
	assert.Equal(t, "Acceleration: no new data\r\n", Response(Cmd_Accelerometer, r))
	assert.Equal(t, "Magnetic Field: no new data\r\n", Response(Cmd_Magnetometer, r))
}

func TestServeStaleData(t *testing.T) {
	sensors := &stubSensors{
		fresh:   map[Command]bool{},
		samples: map[Command]Sample{Cmd_Magnetometer: {X: 1, Y: 2, Z: 3}},
	}
	c := newScriptedConsole("magnetometer\r")
	require.NoError(t, NewDispatcher(c, sensors).Serve())

	assert.Equal(t, "magnetometer\r\r\nMagnetic Field: no new data\r\n", c.out.String())
	assert.Zero(t, sensors.dataCalls)
}

func TestServeFreshData(t *testing.T) {
	sensors := &stubSensors{
		fresh:   map[Command]bool{Cmd_Accelerometer: true},
		samples: map[Command]Sample{Cmd_Accelerometer: {X: 7, Y: -8, Z: 9}},
	}
	c := newScriptedConsole("accelerometer\r")
	require.NoError(t, NewDispatcher(c, sensors).Serve())
	assert.Equal(t, "accelerometer\r\r\nAcceleration: x 7 y -8 z 9\r\n", c.out.String())
}

func TestRunSensorConsoleIdentityMismatch(t *testing.T) {
	bus := newLSM303Bus()
	bus.set(AccelAddress, AccelIDRegister, 0x32)
	c := newScriptedConsole("accelerometer\r")

	err := RunSensorConsole(Settings{Role: SensorConsole}, c, bus)
	require.ErrorIs(t, err, ErrIdentityMismatch)
	assert.Zero(t, c.pos, "console was read before the identity check")
	assert.Zero(t, c.out.Len())
}

func TestRunSensorConsole(t *testing.T) {
	bus := newLSM303Bus()
	bus.set(AccelAddress, AccelStatusRegister, 0x08)
	c := newScriptedConsole("accelerometer\rmagnetometer\r")

	err := RunSensorConsole(Settings{Role: SensorConsole}, c, bus)
	require.ErrorIs(t, err, errNoMoreInput)
	assert.Equal(t,
		"accelerometer\r\r\nAcceleration: x 0 y 0 z 0\r\n"+
			"magnetometer\r\r\nMagnetic Field: no new data\r\n",
		c.out.String())
}

// sinkConsole cycles over its input and discards output without growing
// any buffer.
type sinkConsole struct {
	in  []byte
	pos int
}

func (c *sinkConsole) ReadByte() (byte, error) {
	b := c.in[c.pos%len(c.in)]
	c.pos++
	return b, nil
}

func (c *sinkConsole) Write(p []byte) (int, error) { return len(p), nil }
func (c *sinkConsole) Flush() error                { return nil }

func TestServeDoesNotAllocate(t *testing.T) {
	sensors := &stubSensors{
		fresh:   map[Command]bool{Cmd_Accelerometer: true},
		samples: map[Command]Sample{Cmd_Accelerometer: {X: -2147483648, Y: 40, Z: 1003}},
	}
	c := &sinkConsole{in: []byte("xyz\raccelerometer\rmagnetometer\r")}
	d := NewDispatcher(c, sensors)

	allocs := testing.AllocsPerRun(50, func() {
		if err := d.Serve(); err != nil {
			t.Fatal(err)
		}
	})
	assert.Zero(t, allocs)
}

func TestAppendResponseReusesBuffer(t *testing.T) {
	var line [64]byte
	r := Reading{Sample: Sample{X: -2147483648, Y: -2147483648, Z: -2147483648}, NewData: true}
	out := AppendResponse(line[:0], Cmd_Magnetometer, r)
	assert.Equal(t, "Magnetic Field: x -2147483648 y -2147483648 z -2147483648\r\n", string(out))
	assert.Same(t, &line[0], &out[0])
}
