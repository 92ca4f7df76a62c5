package cmd

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

var ErrInvalidByte = errors.New("console: received byte is not valid utf-8")

// CommandBuffer holds one request line. It never grows past CommandSize.
type CommandBuffer struct {
	data [CommandSize]byte
	n    int
}

// Push appends c, reporting false when the buffer is already full.
func (b *CommandBuffer) Push(c byte) bool {
	if b.n == len(b.data) {
		return false
	}
	b.data[b.n] = c
	b.n++
	return true
}

func (b *CommandBuffer) Bytes() []byte { return b.data[:b.n] }
func (b *CommandBuffer) Len() int      { return b.n }
func (b *CommandBuffer) Clear()        { b.n = 0 }

// CommandReader turns console bytes into commands.
type CommandReader struct {
	console Console
	buf     CommandBuffer
	echo    [1]byte
}

func NewCommandReader(console Console) *CommandReader {
	return &CommandReader{console: console}
}

// Pending exposes the partially typed line.
func (r *CommandReader) Pending() []byte {
	return r.buf.Bytes()
}

// ReadCommand blocks until a known command followed by a carriage return
// arrives. Unknown lines and overflows are reported on the console and the
// read continues. Any returned error is fatal.
func (r *CommandReader) ReadCommand() (Command, error) {
	for {
		b, err := r.console.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("console read: %w", err)
		}
		if b >= utf8.RuneSelf {
			return 0, fmt.Errorf("%w: 0x%02X", ErrInvalidByte, b)
		}

		r.echo[0] = b
		if _, err := r.console.Write(r.echo[:]); err != nil {
			return 0, fmt.Errorf("console echo: %w", err)
		}
		if err := r.console.Flush(); err != nil {
			return 0, fmt.Errorf("console flush: %w", err)
		}

		if b == EnterKey {
			cmd, ok := ParseCommand(r.buf.Bytes())
			r.buf.Clear()
			if ok {
				if err := writeBytes(r.console, lineBreak); err != nil {
					return 0, fmt.Errorf("console write: %w", err)
				}
				return cmd, nil
			}
			if err := writeBytes(r.console, msgUnknownCommand); err != nil {
				return 0, fmt.Errorf("console write: %w", err)
			}
			continue
		}

		if !r.buf.Push(b) {
			// b is dropped along with the buffered bytes
			if _, err := r.console.Write(msgBufferFull); err != nil {
				return 0, fmt.Errorf("console write: %w", err)
			}
			r.buf.Clear()
		}
	}
}
