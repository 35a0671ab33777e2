package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/calvinmclean/rctransmitter/controller"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rctx",
		Short: "Tools for the nRF24 RC transmitter",
		Long: `Tools for the nRF24 RC transmitter.

Monitor a transmitter connected over USB serial, or simulate one without hardware.
Serial settings are read from RCTX_* environment variables and can be overridden with flags.

Example usage:
  rctx monitor --port /dev/ttyUSB0 --ui
  rctx simulate --iterations 500 --drop-every 10`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newMonitorCmd(),
		newSimulateCmd(),
		newPortsCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

func newPortsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List USB serial ports",
		RunE: func(cmd *cobra.Command, args []string) error {
			ports, err := controller.GetSerialPorts()
			if errors.Is(err, controller.ErrNoUSBSerial) {
				fmt.Fprintln(cmd.OutOrStdout(), err.Error())
				return nil
			}
			if err != nil {
				return err
			}

			for _, port := range ports {
				fmt.Fprintln(cmd.OutOrStdout(), port)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rctx %s\n", version)
		},
	}
}
