package cmd

import (
	"bytes"
	"errors"
	"io"
)

var errNoMoreInput = errors.New("test: no more input")

// scriptedConsole feeds a fixed input and records everything written.
type scriptedConsole struct {
	in      []byte
	pos     int
	out     bytes.Buffer
	flushes int
}

func newScriptedConsole(in string) *scriptedConsole {
	return &scriptedConsole{in: []byte(in)}
}

func (c *scriptedConsole) ReadByte() (byte, error) {
	if c.pos >= len(c.in) {
		return 0, errNoMoreInput
	}
	b := c.in[c.pos]
	c.pos++
	return b, nil
}

func (c *scriptedConsole) Write(p []byte) (int, error) {
	return c.out.Write(p)
}

func (c *scriptedConsole) Flush() error {
	c.flushes++
	return nil
}

// fakeUART is a drivers.UART backed by in-memory buffers.
type fakeUART struct {
	rx      bytes.Buffer
	tx      bytes.Buffer
	flushed int
}

func (u *fakeUART) Read(p []byte) (int, error) {
	if u.rx.Len() == 0 {
		return 0, io.EOF
	}
	return u.rx.Read(p)
}

func (u *fakeUART) Write(p []byte) (int, error) { return u.tx.Write(p) }
func (u *fakeUART) Buffered() int               { return u.rx.Len() }
func (u *fakeUART) Flush() error                { u.flushed++; return nil }

// registerBus is a drivers.I2C with one register file per device address.
// Reads auto-increment from the register in w[0] with the MSB cleared.
type registerBus struct {
	regs   map[uint16]*[256]byte
	writes []busWrite
	reads  int
	fail   error
}

type busWrite struct {
	addr uint16
	reg  uint8
	data []byte
}

func newRegisterBus() *registerBus {
	return &registerBus{regs: map[uint16]*[256]byte{}}
}

// newLSM303Bus answers with the real chip ids.
func newLSM303Bus() *registerBus {
	b := newRegisterBus()
	b.set(AccelAddress, AccelIDRegister, AccelChipID)
	b.set(MagAddress, MagIDRegister, MagChipID)
	return b
}

func (b *registerBus) file(addr uint16) *[256]byte {
	f, ok := b.regs[addr]
	if !ok {
		f = &[256]byte{}
		b.regs[addr] = f
	}
	return f
}

func (b *registerBus) set(addr, reg uint8, data ...byte) {
	f := b.file(uint16(addr))
	copy(f[reg:], data)
}

func (b *registerBus) Tx(addr uint16, w, r []byte) error {
	if b.fail != nil {
		return b.fail
	}
	if len(w) == 0 {
		return errors.New("test: empty write")
	}
	f := b.file(addr)
	reg := w[0] &^ 0x80
	if len(r) > 0 {
		b.reads++
		copy(r, f[reg:])
		return nil
	}
	data := append([]byte(nil), w[1:]...)
	copy(f[reg:], data)
	b.writes = append(b.writes, busWrite{addr: addr, reg: reg, data: data})
	return nil
}

// stubSensors returns fixed samples and status flags.
type stubSensors struct {
	fresh     map[Command]bool
	samples   map[Command]Sample
	dataCalls int
}

func (s *stubSensors) Status(kind Command) (bool, error) {
	return s.fresh[kind], nil
}

func (s *stubSensors) Data(kind Command) (Sample, error) {
	s.dataCalls++
	return s.samples[kind], nil
}
