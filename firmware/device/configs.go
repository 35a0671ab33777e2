package device

import (
	"github.com/calvinmclean/rctransmitter"
	"github.com/calvinmclean/rctransmitter/nrf24"
	"github.com/calvinmclean/rctransmitter/transmitter"
)

// LCDConfig has the values for setting up the character display
type LCDConfig struct {
	Address uint8
	Width   uint8
	Height  uint8
}

// DefaultLCDConfig is a 16x2 display using the common PCF8574 backpack address
func DefaultLCDConfig() LCDConfig {
	return LCDConfig{
		Address: 0x27,
		Width:   transmitter.DisplayWidth,
		Height:  2,
	}
}

// RadioConfig has the radio settings used by the transmitter. The pins and bus are provided separately
// since they depend on the board
type RadioConfig struct {
	Radio   nrf24.Config
	Address nrf24.Address
}

// DefaultRadioConfig uses minimum power with auto-acknowledgement and the fixed payload size
func DefaultRadioConfig() RadioConfig {
	cfg := nrf24.DefaultConfig()
	cfg.PALevel = nrf24.PALevelMin
	cfg.AutoAck = true
	cfg.PayloadSize = rctransmitter.PayloadSize
	return RadioConfig{
		Radio:   cfg,
		Address: nrf24.Address(rctransmitter.Address),
	}
}
