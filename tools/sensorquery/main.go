// Command sensorquery talks to a micro:bit running the sensor console
// firmware over its USB serial port.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.bug.st/serial"
)

type options struct {
	port    string
	baud    int
	exec    string
	timeout time.Duration
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:          "sensorquery",
		Short:        "Query the accelerometer and magnetometer of a micro:bit",
		SilenceUsage: true,
		RunE: func(c *cobra.Command, args []string) error {
			return run(opts, c.InOrStdin(), c.OutOrStdout())
		},
	}

	f := root.Flags()
	f.StringVarP(&opts.port, "port", "p", "/dev/ttyACM0", "serial port of the board")
	f.IntVarP(&opts.baud, "baud", "b", 115200, "baud rate")
	f.StringVarP(&opts.exec, "exec", "e", "", "requests to send, shell quoted; reads stdin when empty")
	f.DurationVar(&opts.timeout, "timeout", 2*time.Second, "read timeout per reply")
	return root
}

func run(opts *options, in io.Reader, out io.Writer) error {
	port, err := serial.Open(opts.port, &serial.Mode{
		BaudRate: opts.baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return fmt.Errorf("open %s: %w", opts.port, err)
	}
	defer port.Close()

	if err := port.SetReadTimeout(opts.timeout); err != nil {
		return err
	}

	return serve(NewSession(port), opts.exec, in, out)
}

func serve(s *Session, exec string, in io.Reader, out io.Writer) error {
	if exec != "" {
		requests, err := Script(exec)
		if err != nil {
			return fmt.Errorf("parse --exec: %w", err)
		}
		for _, req := range requests {
			if err := ask(s, req, out); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ask(s, scanner.Text(), out); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func ask(s *Session, req string, out io.Writer) error {
	lines, err := s.Query(req)
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
	return err
}
