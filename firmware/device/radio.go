package device

import (
	"errors"

	"github.com/calvinmclean/rctransmitter/nrf24"
)

// SetupRadio configures the radio as a transmitter writing to the receiver's address
func SetupRadio(dev *nrf24.Device, cfg RadioConfig) error {
	err := dev.Configure(cfg.Radio)
	if err != nil {
		return errors.New("error configuring radio: " + err.Error())
	}

	err = dev.OpenWritingPipe(cfg.Address)
	if err != nil {
		return errors.New("error opening writing pipe: " + err.Error())
	}

	err = dev.StopListening()
	if err != nil {
		return errors.New("error entering transmit mode: " + err.Error())
	}

	return nil
}
