//go:build tinygo

package device

import (
	"machine"

	"github.com/calvinmclean/rctransmitter/nrf24"
	"github.com/calvinmclean/rctransmitter/transmitter"

	"tinygo.org/x/drivers"
)

// ADCReader reads the transmitter's inputs from ADC pins, scaled down to the configured resolution
type ADCReader struct {
	adcs  [transmitter.NumInputs]machine.ADC
	shift uint8
}

var _ transmitter.AnalogReader = &ADCReader{}

// NewADCReader configures the ADC pins. Pins are ordered by transmitter.Input
func NewADCReader(pins [transmitter.NumInputs]machine.Pin, bits uint8) *ADCReader {
	machine.InitADC()

	r := &ADCReader{shift: 16 - bits}
	for i, pin := range pins {
		r.adcs[i] = machine.ADC{Pin: pin}
		r.adcs[i].Configure(machine.ADCConfig{})
	}
	return r
}

// ReadAnalog implements transmitter.AnalogReader
func (r *ADCReader) ReadAnalog(in transmitter.Input) uint16 {
	if int(in) >= len(r.adcs) {
		return 0
	}
	return r.adcs[in].Get() >> r.shift
}

type spiBus interface {
	drivers.SPI
	Configure(machine.SPIConfig) error
}

// RadioPins has the board-specific connections to the radio
type RadioPins struct {
	Bus       spiBus
	BusConfig machine.SPIConfig
	CE        machine.Pin
	CSN       machine.Pin
}

// NewRadio configures the SPI bus and control pins, then sets up the radio for transmitting
func NewRadio(pins RadioPins, cfg RadioConfig) (*nrf24.Device, error) {
	pins.CE.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pins.CSN.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pins.CE.Low()
	pins.CSN.High()

	err := pins.Bus.Configure(pins.BusConfig)
	if err != nil {
		return nil, err
	}

	dev := nrf24.New(pins.Bus, pins.CSN.Set, pins.CE.Set)
	err = SetupRadio(dev, cfg)
	if err != nil {
		return nil, err
	}

	return dev, nil
}

type i2cBus interface {
	drivers.I2C
	Configure(machine.I2CConfig) error
}

// NewDisplay configures the I2C bus and returns an LCD on it
func NewDisplay(bus i2cBus, busCfg machine.I2CConfig, cfg LCDConfig) (*LCD, error) {
	err := bus.Configure(busCfg)
	if err != nil {
		return nil, err
	}

	w, err := NewHD44780(bus, cfg)
	if err != nil {
		return nil, err
	}

	return NewLCD(w, DefaultErrorHold), nil
}
