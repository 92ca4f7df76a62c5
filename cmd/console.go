package cmd

import (
	"fmt"
	"strconv"

	"tinygo.org/x/drivers"
)

var (
	accelLabel = []byte("Acceleration")
	magLabel   = []byte("Magnetic Field")
	noNewData  = []byte(": no new data")
	axisX      = []byte(": x ")
	axisY      = []byte(" y ")
	axisZ      = []byte(" z ")
)

// AppendResponse appends the reply line for one command to dst.
func AppendResponse(dst []byte, kind Command, r Reading) []byte {
	label := accelLabel
	if kind == Cmd_Magnetometer {
		label = magLabel
	}
	dst = append(dst, label...)
	if !r.NewData {
		dst = append(dst, noNewData...)
		return append(dst, lineBreak...)
	}
	dst = append(dst, axisX...)
	dst = strconv.AppendInt(dst, int64(r.X), 10)
	dst = append(dst, axisY...)
	dst = strconv.AppendInt(dst, int64(r.Y), 10)
	dst = append(dst, axisZ...)
	dst = strconv.AppendInt(dst, int64(r.Z), 10)
	return append(dst, lineBreak...)
}

// Response formats the reply line for one command.
func Response(kind Command, r Reading) string {
	return string(AppendResponse(nil, kind, r))
}

// Query reads one sensor. Data is only fetched when the status register
// says there is something new.
func Query(sensors Sensors, kind Command) (Reading, error) {
	fresh, err := sensors.Status(kind)
	if err != nil || !fresh {
		return Reading{}, err
	}
	s, err := sensors.Data(kind)
	if err != nil {
		return Reading{}, err
	}
	return Reading{Sample: s, NewData: true}, nil
}

// Dispatcher answers commands read from the console.
type Dispatcher struct {
	reader  *CommandReader
	console Console
	sensors Sensors
	line    [64]byte
}

func NewDispatcher(console Console, sensors Sensors) *Dispatcher {
	return &Dispatcher{
		reader:  NewCommandReader(console),
		console: console,
		sensors: sensors,
	}
}

// Serve answers one command.
func (d *Dispatcher) Serve() error {
	kind, err := d.reader.ReadCommand()
	if err != nil {
		return err
	}
	r, err := Query(d.sensors, kind)
	if err != nil {
		return err
	}
	if err := writeBytes(d.console, AppendResponse(d.line[:0], kind, r)); err != nil {
		return fmt.Errorf("console write: %w", err)
	}
	return nil
}

// RunSensorConsole brings up the sensor bus and then answers commands
// forever. It returns only on a fatal error, and never reads the console
// when the sensors fail their identity check.
func RunSensorConsole(config Settings, console Console, bus drivers.I2C) error {
	fmt.Println("Starting Sensor Console Loop")

	sensors, err := NewSensorBus(bus)
	if err != nil {
		return err
	}
	if err := sensors.StartMagContinuous(); err != nil {
		return err
	}

	d := NewDispatcher(console, sensors)
	for {
		if err := d.Serve(); err != nil {
			return err
		}
	}
}
