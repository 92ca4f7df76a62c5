package cmd

import "bytes"

var (
	accelerometerWord = []byte("accelerometer")
	magnetometerWord  = []byte("magnetometer")
)

func ParseRole(r string) Role {
	switch r {
	case "sensors":
		return SensorConsole
	default:
		return Roulette
	}
}

// ParseCommand matches a complete request line, case sensitive and without
// any whitespace tolerance.
func ParseCommand(line []byte) (Command, bool) {
	switch {
	case bytes.Equal(line, accelerometerWord):
		return Cmd_Accelerometer, true
	case bytes.Equal(line, magnetometerWord):
		return Cmd_Magnetometer, true
	default:
		return 0, false
	}
}
