package nrf24

import (
	"errors"

	"tinygo.org/x/drivers"
)

// FakeChip emulates the nRF24L01 register file behind the SPI bus. Pass SetCSN and SetCE to New
type FakeChip struct {
	Registers [0x20][]byte
	Payloads  [][]byte
	FlushedTx int

	// Ack decides the result of each transmitted payload
	Ack bool
	// Silent never reports a transmit result
	Silent bool
	// Absent behaves like a disconnected bus
	Absent bool
	// Err is returned by every transaction when set
	Err error

	CSNLow bool
	CEHigh bool

	status byte
}

var _ drivers.SPI = &FakeChip{}

// Tx implements drivers.SPI.
func (f *FakeChip) Tx(w, r []byte) error {
	if f.Err != nil {
		return f.Err
	}
	if !f.CSNLow {
		return errors.New("CSN not asserted")
	}
	if f.Absent {
		clear(r)
		return nil
	}

	r[0] = f.status
	cmd := w[0]
	switch {
	case cmd == cmdNop:
	case cmd < cmdWriteRegister:
		reg := cmd & registerMask
		if reg == RegStatus {
			r[1] = f.status
			return nil
		}
		copy(r[1:], f.Registers[reg])
	case cmd < 0x40:
		reg := cmd & registerMask
		if reg == RegStatus {
			f.status &^= w[1] & statusIRQMask
			return nil
		}
		f.Registers[reg] = append([]byte(nil), w[1:]...)
	case cmd == cmdWriteTxPayload:
		f.Payloads = append(f.Payloads, append([]byte(nil), w[1:]...))
		switch {
		case f.Silent:
		case f.Ack:
			f.status |= StatusTxDS
		default:
			f.status |= StatusMaxRT
		}
	case cmd == cmdFlushTx:
		f.FlushedTx++
	}
	return nil
}

// Transfer implements drivers.SPI.
func (f *FakeChip) Transfer(b byte) (byte, error) {
	return 0, nil
}

// Register returns the first byte of a register
func (f *FakeChip) Register(reg byte) byte {
	if len(f.Registers[reg]) == 0 {
		return 0
	}
	return f.Registers[reg][0]
}

// SetCSN drives the chip select pin
func (f *FakeChip) SetCSN(high bool) {
	f.CSNLow = !high
}

// SetCE drives the chip enable pin
func (f *FakeChip) SetCE(high bool) {
	f.CEHigh = high
}
