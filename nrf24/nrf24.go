// Package nrf24 drives an nRF24L01(+) 2.4GHz transceiver over SPI as a transmit-only endpoint.
//
// The CSN and CE lines are passed as functions so the driver does not depend on the machine
// package, for example:
//
//	radio := nrf24.New(machine.SPI1, csnPin.Set, cePin.Set)
package nrf24

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

const (
	// MaxChannel is the highest RF channel (2400 + 125 MHz)
	MaxChannel = 125

	// MaxPayloadSize is the size of the TX FIFO entries
	MaxPayloadSize = 32

	// AddressWidth is the only address width used by this driver
	AddressWidth = 5

	DefaultChannel   = 76
	DefaultTxTimeout = 95 * time.Millisecond

	powerUpDelay = 5 * time.Millisecond
	cePulse      = 15 * time.Microsecond
	pollInterval = 50 * time.Microsecond
)

var (
	ErrNotConnected       = errors.New("nRF24L01 is not responding")
	ErrMaxRetries         = errors.New("no acknowledgement after maximum retries")
	ErrTimeout            = errors.New("timed out waiting for transmit status")
	ErrInvalidChannel     = errors.New("channel must be between 0 and 125")
	ErrInvalidPayloadSize = errors.New("payload size must be between 1 and 32")
	ErrPayloadTooLarge    = errors.New("payload is larger than the configured payload size")
)

// Address is a 5 byte pipe address. Bytes are written to the chip in order
type Address [AddressWidth]byte

// PALevel is the power amplifier output level
type PALevel uint8

const (
	PALevelMin  PALevel = iota // -18dBm
	PALevelLow                 // -12dBm
	PALevelHigh                // -6dBm
	PALevelMax                 // 0dBm
)

// DataRate is the on-air data rate
type DataRate uint8

const (
	DataRate1Mbps DataRate = iota
	DataRate2Mbps
	DataRate250Kbps
)

func (r DataRate) bits() byte {
	switch r {
	case DataRate2Mbps:
		return rfSetupDRHigh
	case DataRate250Kbps:
		return rfSetupDRLow
	default:
		return 0
	}
}

// Config has the radio settings applied by Configure
type Config struct {
	Channel  uint8
	PALevel  PALevel
	DataRate DataRate
	AutoAck  bool

	// PayloadSize is the static payload size. Shorter writes are padded with zeros
	PayloadSize uint8

	// RetryDelay is the auto retransmit delay in steps of 250us (0-15 means 250-4000us)
	RetryDelay uint8
	// RetryCount is the number of auto retransmits (0-15)
	RetryCount uint8

	// TxTimeout bounds how long Write waits for the chip to report a result
	TxTimeout time.Duration
}

// DefaultConfig returns the power-on defaults used by the RF24 Arduino library
func DefaultConfig() Config {
	return Config{
		Channel:     DefaultChannel,
		PALevel:     PALevelMax,
		DataRate:    DataRate1Mbps,
		AutoAck:     true,
		PayloadSize: MaxPayloadSize,
		RetryDelay:  5,
		RetryCount:  15,
		TxTimeout:   DefaultTxTimeout,
	}
}

// Device is an nRF24L01 connected over SPI
type Device struct {
	bus drivers.SPI
	csn func(bool)
	ce  func(bool)

	cfg    Config
	config byte
	status byte

	tx [MaxPayloadSize + 1]byte
	rx [MaxPayloadSize + 1]byte
}

// New creates a Device. Configure must be called before use
func New(bus drivers.SPI, csn, ce func(bool)) *Device {
	return &Device{
		bus: bus,
		csn: csn,
		ce:  ce,
		cfg: DefaultConfig(),
	}
}

// Configure resets the chip into transmit mode with the provided settings.
// ErrNotConnected is returned when the chip does not read back what was written
func (d *Device) Configure(cfg Config) error {
	if cfg.PayloadSize == 0 || cfg.PayloadSize > MaxPayloadSize {
		return ErrInvalidPayloadSize
	}
	if cfg.Channel > MaxChannel {
		return ErrInvalidChannel
	}
	if cfg.TxTimeout == 0 {
		cfg.TxTimeout = DefaultTxTimeout
	}

	d.ce(false)
	d.csn(true)
	time.Sleep(powerUpDelay)

	err := d.writeRegister(RegSetupAW, setupAW5Bytes)
	if err != nil {
		return err
	}
	if !d.Connected() {
		return ErrNotConnected
	}

	var autoAck byte
	if cfg.AutoAck {
		autoAck = 0x3F
	}

	writes := []struct {
		reg   byte
		value byte
	}{
		{RegSetupRetr, (cfg.RetryDelay&0x0F)<<4 | cfg.RetryCount&0x0F},
		{RegRFSetup, byte(cfg.PALevel&0x03)<<1 | cfg.DataRate.bits()},
		{RegFeature, 0},
		{RegDynPD, 0},
		{RegEnAA, autoAck},
		{RegEnRxAddr, 0x03},
		{RegRxPwP0, cfg.PayloadSize},
		{RegRFCh, cfg.Channel},
		{RegStatus, statusIRQMask},
	}
	for _, w := range writes {
		err := d.writeRegister(w.reg, w.value)
		if err != nil {
			return errors.New("error writing register: " + err.Error())
		}
	}

	err = d.command(cmdFlushRx)
	if err != nil {
		return err
	}
	err = d.command(cmdFlushTx)
	if err != nil {
		return err
	}

	// 16 bit CRC, powered up, PRIM_RX cleared for transmit mode
	d.config = ConfigEnCRC | ConfigCRCO | ConfigPwrUp
	err = d.writeRegister(RegConfig, d.config)
	if err != nil {
		return err
	}
	time.Sleep(powerUpDelay)

	readBack, err := d.readRegister(RegConfig)
	if err != nil {
		return err
	}
	if readBack != d.config {
		return ErrNotConnected
	}

	d.cfg = cfg
	return nil
}

// Connected checks that the chip answers with the configured address width
func (d *Device) Connected() bool {
	aw, err := d.readRegister(RegSetupAW)
	return err == nil && aw == setupAW5Bytes
}

// OpenWritingPipe sets the address written to. Pipe 0 receives on the same address so auto
// acknowledgements reach this device
func (d *Device) OpenWritingPipe(addr Address) error {
	err := d.writeRegister(RegRxAddrP0, addr[:]...)
	if err != nil {
		return err
	}
	err = d.writeRegister(RegTxAddr, addr[:]...)
	if err != nil {
		return err
	}
	return d.writeRegister(RegRxPwP0, d.cfg.PayloadSize)
}

// StopListening puts the chip in transmit mode
func (d *Device) StopListening() error {
	d.ce(false)
	d.config &^= ConfigPrimRx
	return d.writeRegister(RegConfig, d.config)
}

// SetChannel tunes to 2400 + channel MHz
func (d *Device) SetChannel(channel uint8) error {
	if channel > MaxChannel {
		return ErrInvalidChannel
	}
	err := d.writeRegister(RegRFCh, channel)
	if err != nil {
		return err
	}
	d.cfg.Channel = channel
	return nil
}

// Channel returns the RF channel last set
func (d *Device) Channel() uint8 {
	return d.cfg.Channel
}

// SetPALevel sets the power amplifier level, keeping the data rate bits
func (d *Device) SetPALevel(level PALevel) error {
	setup, err := d.readRegister(RegRFSetup)
	if err != nil {
		return err
	}
	setup = setup&^RFSetupPowerMask | byte(level&0x03)<<1
	err = d.writeRegister(RegRFSetup, setup)
	if err != nil {
		return err
	}
	d.cfg.PALevel = level
	return nil
}

// Write sends one payload and waits for the result. With auto acknowledge enabled a nil error means the
// receiver acknowledged it and ErrMaxRetries means every retransmit went unanswered
func (d *Device) Write(payload []byte) error {
	size := int(d.cfg.PayloadSize)
	if len(payload) > size {
		return ErrPayloadTooLarge
	}

	w := d.tx[:size+1]
	w[0] = cmdWriteTxPayload
	n := copy(w[1:], payload)
	clear(w[1+n:])

	_, err := d.transfer(w)
	if err != nil {
		return errors.New("error writing payload: " + err.Error())
	}

	d.ce(true)
	time.Sleep(cePulse)

	status, err := d.waitForTx()
	d.ce(false)
	if err != nil {
		_ = d.command(cmdFlushTx)
		return err
	}

	err = d.writeRegister(RegStatus, statusIRQMask)
	if err != nil {
		return err
	}

	if status&StatusMaxRT != 0 {
		err = d.command(cmdFlushTx)
		if err != nil {
			return err
		}
		return ErrMaxRetries
	}
	return nil
}

func (d *Device) waitForTx() (byte, error) {
	deadline := time.Now().Add(d.cfg.TxTimeout)
	for {
		status, err := d.Status()
		if err != nil {
			return 0, err
		}
		if status&(StatusTxDS|StatusMaxRT) != 0 {
			return status, nil
		}
		if time.Now().After(deadline) {
			return status, ErrTimeout
		}
		time.Sleep(pollInterval)
	}
}

// Status reads the STATUS register
func (d *Device) Status() (byte, error) {
	err := d.command(cmdNop)
	return d.status, err
}

// ObserveTX returns the lost packet count (since the last channel change) and the retransmit count of
// the last packet
func (d *Device) ObserveTX() (lost, retransmits uint8, err error) {
	v, err := d.readRegister(RegObserveTx)
	if err != nil {
		return 0, 0, err
	}
	return v >> 4, v & 0x0F, nil
}

// PowerDown puts the chip into its lowest power state
func (d *Device) PowerDown() error {
	d.ce(false)
	d.config &^= ConfigPwrUp
	return d.writeRegister(RegConfig, d.config)
}

func (d *Device) command(cmd byte) error {
	w := d.tx[:1]
	w[0] = cmd
	_, err := d.transfer(w)
	return err
}

func (d *Device) readRegister(reg byte) (byte, error) {
	w := d.tx[:2]
	w[0] = cmdReadRegister | reg&registerMask
	w[1] = cmdNop
	r, err := d.transfer(w)
	if err != nil {
		return 0, err
	}
	return r[1], nil
}

func (d *Device) writeRegister(reg byte, values ...byte) error {
	w := d.tx[:1+len(values)]
	w[0] = cmdWriteRegister | reg&registerMask
	copy(w[1:], values)
	_, err := d.transfer(w)
	return err
}

// transfer runs one SPI transaction with CSN held low. The first byte clocked out is always STATUS
func (d *Device) transfer(w []byte) ([]byte, error) {
	r := d.rx[:len(w)]
	d.csn(false)
	err := d.bus.Tx(w, r)
	d.csn(true)
	if err != nil {
		return nil, err
	}
	d.status = r[0]
	return r, nil
}
