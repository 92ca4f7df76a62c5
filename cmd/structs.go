package cmd

import "time"

type Role int

const (
	Roulette Role = 0x00 + iota
	SensorConsole
)

type Command int

const (
	Cmd_Accelerometer Command = 0x00 + iota
	Cmd_Magnetometer
)

func (c Command) String() string {
	switch c {
	case Cmd_Accelerometer:
		return "accelerometer"
	case Cmd_Magnetometer:
		return "magnetometer"
	default:
		return "unknown"
	}
}

type Settings struct {
	Role      Role
	FrameHold time.Duration
}

const (
	BaudRate = 115200

	// Roulette hold time for a single frame.
	DefaultFrameHold = 1000 * time.Millisecond

	MatrixSize = 5
)

// Frame is one picture for the 5x5 LED matrix, 1 = lit.
type Frame [MatrixSize][MatrixSize]uint8

// Cursor is the lit position of the roulette.
type Cursor struct {
	Row int
	Col int
}

// Sample is one (x, y, z) reading from a sensor.
type Sample struct {
	X int32
	Y int32
	Z int32
}

// Reading is a Sample plus the status register's new data flag.
type Reading struct {
	Sample
	NewData bool
}

// Sensor bus constants
const (
	AccelAddress uint8 = 0b0011001
	MagAddress   uint8 = 0b0011110

	AccelIDRegister uint8 = 0x0F // WHO_AM_I_A
	MagIDRegister   uint8 = 0x4F // WHO_AM_I_M

	AccelChipID uint8 = 0b110011
	MagChipID   uint8 = 0b1000000

	AccelStatusRegister uint8 = 0x27 // STATUS_REG_A
	MagStatusRegister   uint8 = 0x67 // STATUS_REG_M

	// ZYXDA bit, same position on both status registers.
	statusXYZNewData uint8 = 0x08

	// The LSM303AGR hangs off the internal I2C bus of the micro:bit v2,
	// not the edge connector one (P19/P20).
	InternalSDAPin uint8 = 16 // P0_16
	InternalSCLPin uint8 = 8  // P0_08
)

// Console protocol
const (
	EnterKey    byte = 0x0D
	CommandSize      = 13 // len("accelerometer")
)

var (
	lineBreak         = []byte("\r\n")
	msgUnknownCommand = []byte("\r\nUnknown command\r\n")
	msgBufferFull     = []byte("error: buffer full\r\n")
)
