package commands

import (
	"errors"

	"github.com/calvinmclean/rctransmitter"
)

type Command struct {
	Flag        byte
	InputSize   uint
	Run         func(Controller, []byte) error
	Description string
}

// Controller is used to control the transmitter from its serial console
type Controller interface {
	ToggleVerbose()
	SetLogLevel(uint8) error
	Status()
	ResetLosses()
	ToggleTelemetry()
	Println(string)

	// I/O
	ReadByte() (byte, error)
	Buffered() int
}

var (
	VerboseCommand = &Command{
		Flag:      rctransmitter.CommandVerbose,
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			c.ToggleVerbose()
			return nil
		},
		Description: "Toggle verbose output: mapped values and packet loss notices.",
	}
	LogLevelCommand = &Command{
		Flag:      rctransmitter.CommandLogLevel,
		InputSize: 1,
		Run: func(c Controller, b []byte) error {
			level := b[0] - '0'
			if level > 3 {
				return errors.New("invalid input: " + string(b))
			}
			return c.SetLogLevel(level)
		},
		Description: "Set the log level. Input: 0 (error), 1 (warn), 2 (info), 3 (debug).",
	}
	StatusCommand = &Command{
		Flag:      rctransmitter.CommandStatus,
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			c.Status()
			return nil
		},
		Description: "Print the current channel, sensitivity, values and packet loss counters.",
	}
	ResetLossesCommand = &Command{
		Flag:      rctransmitter.CommandResetLosses,
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			c.ResetLosses()
			return nil
		},
		Description: "Reset the packet loss counters.",
	}
	TelemetryCommand = &Command{
		Flag:      rctransmitter.CommandTelemetry,
		InputSize: 0,
		Run: func(c Controller, b []byte) error {
			c.ToggleTelemetry()
			return nil
		},
		Description: "Toggle binary telemetry frames. Text output is muted while enabled.",
	}
	HelpCommand = &Command{
		Flag:        rctransmitter.CommandHelp,
		InputSize:   0,
		Description: "Show all available commands and their descriptions.",
		Run: func(c Controller, b []byte) error {
			c.Println("Available Commands:")
			for _, cmd := range commands {
				c.Println(string(cmd.Flag) + ": " + cmd.Description)
			}
			return nil
		},
	}
)

var commands = []*Command{
	VerboseCommand,
	LogLevelCommand,
	StatusCommand,
	ResetLossesCommand,
	TelemetryCommand,
}

// Handler reads commands from the console without blocking so it can be polled between iterations
// of the transmit loop. Input for a command can arrive across several polls
type Handler struct {
	cmdMap  map[byte]*Command
	pending *Command
	input   []byte
}

func NewHandler() *Handler {
	cmdMap := map[byte]*Command{
		HelpCommand.Flag: HelpCommand,
	}

	for _, cmd := range commands {
		cmdMap[cmd.Flag] = cmd
	}

	return &Handler{cmdMap: cmdMap}
}

// Poll runs every command that is completely buffered. Unknown bytes are ignored
func (h *Handler) Poll(c Controller) {
	for c.Buffered() > 0 {
		b, err := c.ReadByte()
		if err != nil {
			return
		}

		if h.pending == nil {
			cmd, ok := h.cmdMap[b]
			if !ok {
				continue
			}
			h.pending = cmd
			h.input = h.input[:0]
		} else {
			h.input = append(h.input, b)
		}

		if len(h.input) < int(h.pending.InputSize) {
			continue
		}

		cmd := h.pending
		h.pending = nil
		err = cmd.Run(c, h.input)
		if err != nil {
			c.Println("error: " + err.Error())
		}
	}
}
