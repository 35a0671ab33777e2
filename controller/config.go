package controller

import (
	"errors"
	"fmt"

	"github.com/caarlos0/env/v11"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// SerialPortNone is used to run without a transmitter attached
const SerialPortNone = "None"

// ErrNoUSBSerial is returned by GetSerialPorts when no USB serial ports are found
var ErrNoUSBSerial = errors.New("no USB serial ports found")

// Config has the settings for connecting to the transmitter's console. It is read from the environment
// with the RCTX_ prefix, like RCTX_SERIAL_PORT
type Config struct {
	SerialPort string `env:"SERIAL_PORT"`
	BaudRate   int    `env:"BAUD_RATE" envDefault:"115200"`
	// Telemetry toggles the transmitter to binary telemetry frames once it is seen printing text
	Telemetry bool `env:"TELEMETRY"`
	// Verbose enables debug output on the transmitter on start
	Verbose  bool   `env:"VERBOSE"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// ConfigFromEnv parses Config from environment variables
func ConfigFromEnv() (Config, error) {
	return env.ParseAsWithOptions[Config](env.Options{Prefix: "RCTX_"})
}

// GetSerialPorts returns the names of the USB serial ports
func GetSerialPorts() ([]string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("error listing serial ports: %w", err)
	}

	var result []string
	for _, port := range ports {
		if port.IsUSB {
			result = append(result, port.Name)
		}
	}

	if len(result) == 0 {
		return nil, ErrNoUSBSerial
	}

	return result, nil
}

// OpenSerial opens the configured serial port. If no port is configured, the first USB serial port is used
func OpenSerial(cfg Config) (serial.Port, error) {
	portName := cfg.SerialPort
	if portName == "" {
		ports, err := GetSerialPorts()
		if err != nil {
			return nil, err
		}
		portName = ports[0]
	}

	port, err := serial.Open(portName, &serial.Mode{BaudRate: cfg.BaudRate})
	if err != nil {
		return nil, fmt.Errorf("error opening serial port %q: %w", portName, err)
	}

	return port, nil
}
