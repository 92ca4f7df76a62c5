package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/shlex"
)

var errTimeout = errors.New("sensorquery: board did not answer in time")

// Session sends requests to the board's sensor console and collects the
// reply lines.
type Session struct {
	w io.Writer
	r *bufio.Reader
}

func NewSession(port io.ReadWriter) *Session {
	return &Session{w: port, r: bufio.NewReader(timeoutReader{port})}
}

// Query sends one request terminated by a carriage return. The echo of the
// request is dropped from the returned lines.
func (s *Session) Query(request string) ([]string, error) {
	if _, err := io.WriteString(s.w, request+"\r"); err != nil {
		return nil, fmt.Errorf("write %q: %w", request, err)
	}

	var lines []string
	for {
		raw, err := s.r.ReadString('\n')
		if err != nil {
			return lines, fmt.Errorf("read reply to %q: %w", request, err)
		}
		line := strings.TrimRight(raw, "\r\n")
		if line == "" || line == request {
			continue
		}
		lines = append(lines, line)
		if finalLine(line) {
			return lines, nil
		}
	}
}

// finalLine reports whether the board is done answering.
func finalLine(line string) bool {
	return line == "Unknown command" ||
		strings.HasPrefix(line, "Acceleration: ") ||
		strings.HasPrefix(line, "Magnetic Field: ")
}

// Script splits a shell quoted request list, e.g. `accelerometer magnetometer`.
func Script(s string) ([]string, error) {
	return shlex.Split(s)
}

// timeoutReader turns the (0, nil) a serial port returns on read timeout
// into an error.
type timeoutReader struct {
	r io.Reader
}

func (t timeoutReader) Read(p []byte) (int, error) {
	n, err := t.r.Read(p)
	if n == 0 && err == nil {
		return 0, errTimeout
	}
	return n, err
}
