//go:build tinygo

package main

import (
	"context"
	"machine"
	"time"

	"github.com/calvinmclean/rctransmitter/firmware/commands"
	"github.com/calvinmclean/rctransmitter/firmware/device"
	"github.com/calvinmclean/rctransmitter/transmitter"
)

func main() {
	// wait for the serial monitor to connect
	time.Sleep(2 * time.Second)

	console := device.NewConsole(machine.Serial, device.LevelInfo)
	console.Println("starting rc transmitter")

	cfg := transmitter.DefaultConfig()

	reader := device.NewADCReader([transmitter.NumInputs]machine.Pin{
		transmitter.InputYaw:         pinYaw,
		transmitter.InputThrottle:    pinThrottle,
		transmitter.InputRoll:        pinRoll,
		transmitter.InputPitch:       pinPitch,
		transmitter.InputSensitivity: pinSensitivity,
		transmitter.InputChannel:     pinChannel,
	}, adcBits)

	radioPins := device.RadioPins{
		Bus: radioSPI,
		BusConfig: machine.SPIConfig{
			Frequency: 4_000_000,
			SCK:       pinSCK,
			SDO:       pinSDO,
			SDI:       pinSDI,
		},
		CE:  pinRadioCE,
		CSN: pinRadioCSN,
	}
	radioCfg := device.DefaultRadioConfig()
	radioCfg.Radio.Channel = cfg.RFChannel(0)

	radio, err := device.NewRadio(radioPins, radioCfg)
	for err != nil {
		console.Errorf("error setting up radio: %s", err.Error())
		time.Sleep(time.Second)
		radio, err = device.NewRadio(radioPins, radioCfg)
	}

	var display transmitter.Display = transmitter.NoopDisplay{}
	lcd, err := device.NewDisplay(lcdI2C, machine.I2CConfig{SDA: pinSDA, SCL: pinSCL}, device.DefaultLCDConfig())
	if err != nil {
		console.Errorf("error setting up display: %s", err.Error())
	} else {
		display = lcd
	}

	session, err := transmitter.NewSession(cfg, reader, radio, display, console)
	if err != nil {
		panic(err)
	}

	err = session.Begin()
	if err != nil {
		console.Errorf("%s", err.Error())
	}

	tx := device.NewTransmitter(session, console, machine.Serial)
	handler := commands.NewHandler()

	err = session.Run(context.Background(), tx.Emit, func(transmitter.Report) {
		handler.Poll(tx)
	})
	if err != nil {
		console.Errorf("transmitter stopped: %s", err.Error())
	}
}
