//go:build esp32

package main

import "machine"

const (
	pinYaw         = machine.GPIO33
	pinThrottle    = machine.GPIO32
	pinRoll        = machine.GPIO35
	pinPitch       = machine.GPIO34
	pinSensitivity = machine.GPIO25
	pinChannel     = machine.GPIO26

	pinRadioCE  = machine.GPIO5
	pinRadioCSN = machine.GPIO4

	pinSCK = machine.GPIO18
	pinSDO = machine.GPIO23
	pinSDI = machine.GPIO19

	pinSDA = machine.GPIO21
	pinSCL = machine.GPIO22
)

// adcBits is the resolution of the ESP32 ADC
const adcBits = 12

var (
	radioSPI = machine.SPI1
	lcdI2C   = machine.I2C0
)
