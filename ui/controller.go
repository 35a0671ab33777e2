package ui

import (
	"io"

	"github.com/calvinmclean/rctransmitter"
)

// controllerWrapper sends console commands to the transmitter
type controllerWrapper struct {
	writer io.Writer
}

func (c *controllerWrapper) send(cmd byte) {
	_, _ = c.writer.Write([]byte{cmd})
}

func (c *controllerWrapper) Status() {
	c.send(rctransmitter.CommandStatus)
}

func (c *controllerWrapper) ResetLosses() {
	c.send(rctransmitter.CommandResetLosses)
}

func (c *controllerWrapper) ToggleVerbose() {
	c.send(rctransmitter.CommandVerbose)
}

func (c *controllerWrapper) ToggleTelemetry() {
	c.send(rctransmitter.CommandTelemetry)
}

func (c *controllerWrapper) Help() {
	c.send(rctransmitter.CommandHelp)
}
