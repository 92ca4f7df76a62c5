package cmd

import (
	"errors"
	"fmt"

	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/lsm303agr"
)

var (
	ErrIdentityMismatch = errors.New("sensor: chip id mismatch")
	errUnknownSensor    = errors.New("sensor: unknown sensor")
)

// Sensors is what the dispatch loop needs from the sensor bus.
type Sensors interface {
	Status(kind Command) (bool, error)
	Data(kind Command) (Sample, error)
}

// SensorBus talks to the LSM303AGR accelerometer/magnetometer package.
type SensorBus struct {
	bus           drivers.I2C
	dev           *lsm303agr.Device
	magContinuous bool
	reg           [1]byte
	buf           [6]byte
}

// VerifyIdentity reads the who-am-i register of both sub-sensors.
func VerifyIdentity(bus drivers.I2C) error {
	checks := []struct {
		name     string
		addr     uint8
		reg      uint8
		expected uint8
	}{
		{"accelerometer", AccelAddress, AccelIDRegister, AccelChipID},
		{"magnetometer", MagAddress, MagIDRegister, MagChipID},
	}

	id := []byte{0}
	for _, c := range checks {
		if err := bus.Tx(uint16(c.addr), []byte{c.reg}, id); err != nil {
			return fmt.Errorf("%s id read: %w", c.name, err)
		}
		if id[0] != c.expected {
			return fmt.Errorf("%w: %s at 0x%02X reported 0x%02X, expected 0x%02X",
				ErrIdentityMismatch, c.name, c.addr, id[0], c.expected)
		}
	}
	return nil
}

// NewSensorBus checks both chip ids and configures the sensor package with
// a 50Hz output data rate. The magnetometer starts in single shot mode; see
// StartMagContinuous.
func NewSensorBus(bus drivers.I2C) (*SensorBus, error) {
	if err := VerifyIdentity(bus); err != nil {
		return nil, err
	}

	dev := lsm303agr.New(bus)
	dev.AccelAddress = AccelAddress
	dev.MagAddress = MagAddress
	err := dev.Configure(lsm303agr.Configuration{
		AccelDataRate: lsm303agr.ACCEL_DATARATE_50HZ,
		MagDataRate:   lsm303agr.MAG_DATARATE_50HZ,
		MagSystemMode: lsm303agr.MAG_SYSTEM_SINGLE,
	})
	if err != nil {
		return nil, fmt.Errorf("sensor configure: %w", err)
	}

	return &SensorBus{bus: bus, dev: dev}, nil
}

// StartMagContinuous puts the magnetometer in continuous mode. There is no
// way back to single shot mode.
func (s *SensorBus) StartMagContinuous() error {
	if s.magContinuous {
		return nil
	}
	d := s.dev
	mode := []byte{
		lsm303agr.MAG_MR_REG_M,
		0x80 | d.MagPowerMode<<4 | d.MagDataRate<<2 | lsm303agr.MAG_SYSTEM_CONTINUOUS,
	}
	if err := s.bus.Tx(uint16(d.MagAddress), mode, nil); err != nil {
		return fmt.Errorf("magnetometer mode: %w", err)
	}
	d.MagSystemMode = lsm303agr.MAG_SYSTEM_CONTINUOUS
	s.magContinuous = true
	return nil
}

func (s *SensorBus) MagContinuous() bool {
	return s.magContinuous
}

// Status reports whether a new xyz sample arrived since the last read.
func (s *SensorBus) Status(kind Command) (bool, error) {
	var addr, reg uint8
	switch kind {
	case Cmd_Accelerometer:
		addr, reg = AccelAddress, AccelStatusRegister
	case Cmd_Magnetometer:
		addr, reg = MagAddress, MagStatusRegister
	default:
		return false, errUnknownSensor
	}

	s.reg[0] = reg
	if err := s.bus.Tx(uint16(addr), s.reg[:], s.buf[:1]); err != nil {
		return false, fmt.Errorf("%s status: %w", kind, err)
	}
	return s.buf[0]&statusXYZNewData != 0, nil
}

// Data returns the latest latched sample, stale or not. Acceleration is in
// mg, the magnetic field in mG.
func (s *SensorBus) Data(kind Command) (Sample, error) {
	var (
		x, y, z int32
		err     error
	)
	switch kind {
	case Cmd_Accelerometer:
		x, y, z, err = s.dev.ReadAcceleration()
		x, y, z = x/1000, y/1000, z/1000
	case Cmd_Magnetometer:
		x, y, z, err = s.readMagneticField()
	default:
		return Sample{}, errUnknownSensor
	}
	if err != nil {
		return Sample{}, fmt.Errorf("%s data: %w", kind, err)
	}
	return Sample{X: x, Y: y, Z: z}, nil
}

// readMagneticField reads the six output registers in one burst. The
// driver's ReadMagneticField drops the bus error, so it is not used here.
func (s *SensorBus) readMagneticField() (x, y, z int32, err error) {
	data := s.buf[:6]
	s.reg[0] = lsm303agr.MAG_OUT_AUTO_INC
	if err = s.bus.Tx(uint16(s.dev.MagAddress), s.reg[:], data); err != nil {
		return
	}
	x = int32(int16(uint16(data[1])<<8 | uint16(data[0])))
	y = int32(int16(uint16(data[3])<<8 | uint16(data[2])))
	z = int32(int16(uint16(data[5])<<8 | uint16(data[4])))
	return
}
