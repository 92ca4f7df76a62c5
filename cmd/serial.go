package cmd

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// Console is the byte level side of the serial link.
type Console interface {
	ReadByte() (byte, error)
	Write(p []byte) (int, error)
	Flush() error
}

type flusher interface {
	Flush() error
}

var errShortWrite = errors.New("serial: short write")

// SerialConsole makes a polled UART blocking by sleeping until Buffered()
// reports data.
type SerialConsole struct {
	uart drivers.UART
	poll time.Duration
	one  [1]byte
}

func NewSerialConsole(uart drivers.UART) *SerialConsole {
	return &SerialConsole{uart: uart, poll: time.Millisecond}
}

func (s *SerialConsole) ReadByte() (byte, error) {
	for {
		for s.uart.Buffered() == 0 {
			time.Sleep(s.poll)
		}
		n, err := s.uart.Read(s.one[:])
		if err != nil {
			return 0, err
		}
		if n > 0 {
			return s.one[0], nil
		}
	}
}

func (s *SerialConsole) Write(p []byte) (int, error) {
	n, err := s.uart.Write(p)
	if err == nil && n < len(p) {
		err = errShortWrite
	}
	return n, err
}

// Flush is a no-op for transports that write synchronously.
func (s *SerialConsole) Flush() error {
	if f, ok := s.uart.(flusher); ok {
		return f.Flush()
	}
	return nil
}

func writeBytes(c Console, p []byte) error {
	if _, err := c.Write(p); err != nil {
		return err
	}
	return c.Flush()
}
