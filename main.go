//go:build tinygo

package main

import (
	"fmt"
	"machine"
	"time"

	"tinygo.org/x/drivers/microbitmatrix"

	"microbit/exercises/cmd"
)

// buildRole is set at compile time via -ldflags
// e.g. -ldflags="-X main.buildRole=sensors"
var buildRole string

var config = cmd.Settings{
	Role:      cmd.ParseRole(buildRole),
	FrameHold: cmd.DefaultFrameHold,
}

// matrix adapts the microbitmatrix driver to cmd.Display. The driver only
// multiplexes one refresh per Display call, so it is called until the hold
// time is over.
type matrix struct {
	dev microbitmatrix.Device
}

func (m *matrix) Show(frame cmd.Frame, hold time.Duration) error {
	for row := range frame {
		for col, v := range frame[row] {
			c := microbitmatrix.BrightnessOff
			if v != 0 {
				c = microbitmatrix.BrightnessFull
			}
			m.dev.SetPixel(int16(col), int16(row), c)
		}
	}

	deadline := time.Now().Add(hold)
	for time.Now().Before(deadline) {
		if err := m.dev.Display(); err != nil {
			return err
		}
	}
	return nil
}

// halt parks the CPU after a fatal error.
func halt(err error) {
	fmt.Println("halted:", err)
	for {
		time.Sleep(time.Second)
	}
}

func main() {
	var err error

	switch config.Role {
	case cmd.Roulette:
		m := &matrix{dev: microbitmatrix.New()}
		m.dev.Configure(microbitmatrix.Config{Rotation: microbitmatrix.RotationNormal})
		err = cmd.RunRoulette(config, m)

	case cmd.SensorConsole:
		var uart *machine.UART = machine.UART0
		uart.Configure(machine.UARTConfig{
			BaudRate: cmd.BaudRate,
			TX:       machine.UART_TX_PIN,
			RX:       machine.UART_RX_PIN,
		})

		i2c := machine.I2C0
		if err := i2c.Configure(machine.I2CConfig{
			SDA:       machine.Pin(cmd.InternalSDAPin),
			SCL:       machine.Pin(cmd.InternalSCLPin),
			Frequency: 100 * machine.KHz,
		}); err != nil {
			halt(err)
		}

		err = cmd.RunSensorConsole(config, cmd.NewSerialConsole(uart), i2c)
	}

	halt(err)
}
