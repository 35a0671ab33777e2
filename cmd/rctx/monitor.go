package main

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/calvinmclean/rctransmitter/controller"
	"github.com/calvinmclean/rctransmitter/simulator"
	"github.com/calvinmclean/rctransmitter/ui"
)

type monitorFlags struct {
	port      string
	baudRate  int
	telemetry bool
	verbose   bool
	logLevel  string
	enableUI  bool
}

func newMonitorCmd() *cobra.Command {
	var flags monitorFlags

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Show the transmitter's console output and forward commands from stdin",
		Long: `Show the transmitter's console output and forward commands from stdin.

Commands are single characters: V (verbose), D (status), R (reset losses), B (binary telemetry),
L<0-3> (log level), H (help). Use --port None to monitor a simulated transmitter.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := controller.ConfigFromEnv()
			if err != nil {
				return fmt.Errorf("error parsing config: %w", err)
			}
			flags.apply(cmd, &cfg)

			if flags.enableUI {
				return runUI(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
			}

			c, err := connect(cfg)
			if err != nil {
				return err
			}
			defer c.Close()

			return c.Run(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&flags.port, "port", "p", "", "Serial port, or None for a simulated transmitter (RCTX_SERIAL_PORT)")
	cmd.Flags().IntVarP(&flags.baudRate, "baud", "b", 115200, "Baud rate (RCTX_BAUD_RATE)")
	cmd.Flags().BoolVarP(&flags.telemetry, "telemetry", "t", false, "Toggle binary telemetry on once the transmitter prints a diagnostic line, unless frames are already arriving (RCTX_TELEMETRY)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug output on the transmitter (RCTX_VERBOSE)")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "info", "Log level for this program (RCTX_LOG_LEVEL)")
	cmd.Flags().BoolVar(&flags.enableUI, "ui", false, "Show the dashboard")

	return cmd
}

// apply overrides the Config with flags that were set
func (f monitorFlags) apply(cmd *cobra.Command, cfg *controller.Config) {
	if cmd.Flags().Changed("port") {
		cfg.SerialPort = f.port
	}
	if cmd.Flags().Changed("baud") {
		cfg.BaudRate = f.baudRate
	}
	if cmd.Flags().Changed("telemetry") {
		cfg.Telemetry = f.telemetry
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
}

// connect opens the serial port, or starts a simulated transmitter for SerialPortNone
func connect(cfg controller.Config) (*controller.Controller, error) {
	if cfg.SerialPort != controller.SerialPortNone {
		return controller.NewFromConfig(cfg)
	}

	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(level)

	port, err := simulator.NewPort(simulator.DefaultConfig())
	if err != nil {
		return nil, err
	}
	logger.Info("monitoring simulated transmitter")

	return controller.New(port, cfg, logger), nil
}

func runUI(ctx context.Context, cfg controller.Config, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	transmitterUI := ui.NewTransmitterUI()

	var c *controller.Controller
	start := func(cfg controller.Config) (io.Writer, error) {
		var err error
		c, err = connect(cfg)
		if err != nil {
			return nil, err
		}
		c.OnSnapshot = transmitterUI.Update

		r, w := io.Pipe()

		// read from Stdin also
		go func() {
			_, _ = io.Copy(w, in)
		}()

		go func() {
			defer w.Close()
			err := c.Run(ctx, r, io.MultiWriter(out, transmitterUI))
			if err != nil {
				logrus.WithError(err).Error("error running controller")
			}
			cancel()
		}()

		return w, nil
	}

	transmitterUI.Run(ctx, cfg, start)
	cancel()

	if c != nil {
		return c.Close()
	}
	return nil
}
