package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/calvinmclean/rctransmitter/simulator"
	"github.com/calvinmclean/rctransmitter/transmitter"
)

type simulateFlags struct {
	iterations  int
	interval    time.Duration
	step        uint16
	sensitivity int
	dropEvery   int
	dropFrom    int
	dropTo      int
	maxLosses   uint32
	halt        bool
	verbose     bool
}

func newSimulateCmd() *cobra.Command {
	var flags simulateFlags

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the transmitter loop with simulated sticks and radio",
		Long: `Run the transmitter loop with simulated sticks and radio.

Every input sweeps between 0 and the ADC maximum. Packets are dropped with --drop-every or
--drop-from/--drop-to to exercise the loss counters.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.New()
			logger.SetOutput(cmd.OutOrStdout())
			if flags.verbose {
				logger.SetLevel(logrus.DebugLevel)
			}

			cfg, err := flags.config()
			if err != nil {
				return err
			}

			return simulate(cmd.Context(), cfg, flags.iterations, logger)
		},
	}

	cmd.Flags().IntVarP(&flags.iterations, "iterations", "n", 100, "Number of iterations to run, 0 to run until interrupted")
	cmd.Flags().DurationVarP(&flags.interval, "interval", "i", 0, "Time between iterations")
	cmd.Flags().Uint16Var(&flags.step, "step", simulator.DefaultStep, "Distance each input moves per iteration")
	cmd.Flags().IntVar(&flags.sensitivity, "sensitivity", -1, "Hold the sensitivity input at this raw value instead of sweeping")
	cmd.Flags().IntVar(&flags.dropEvery, "drop-every", 0, "Drop every n-th packet")
	cmd.Flags().IntVar(&flags.dropFrom, "drop-from", 0, "Drop packets starting at this index")
	cmd.Flags().IntVar(&flags.dropTo, "drop-to", 0, "Stop dropping packets at this index")
	cmd.Flags().Uint32Var(&flags.maxLosses, "max-losses", transmitter.DefaultMaxConsecutiveLosses, "Consecutive losses reported as too many, 0 to disable")
	cmd.Flags().BoolVar(&flags.halt, "halt", false, "Stop when too many packets are lost")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Log mapped values and lost packets")

	return cmd
}

func (f simulateFlags) config() (simulator.Config, error) {
	if f.iterations < 0 {
		return simulator.Config{}, errors.New("iterations cannot be negative")
	}

	cfg := simulator.DefaultConfig()
	cfg.Step = f.step
	cfg.Transmitter.Interval = f.interval
	cfg.Transmitter.MaxConsecutiveLosses = f.maxLosses
	cfg.Transmitter.HaltOnLinkLoss = f.halt

	if f.sensitivity >= 0 {
		if f.sensitivity > int(cfg.Transmitter.ADCMax) {
			return simulator.Config{}, fmt.Errorf("sensitivity must be between 0 and %d", cfg.Transmitter.ADCMax)
		}
		sensitivity := uint16(f.sensitivity)
		cfg.Sensitivity = &sensitivity
	}

	switch {
	case f.dropEvery > 0:
		cfg.Drop = transmitter.DropEvery(f.dropEvery)
	case f.dropTo > f.dropFrom:
		cfg.Drop = transmitter.DropRange(f.dropFrom, f.dropTo)
	}

	return cfg, nil
}

func simulate(ctx context.Context, cfg simulator.Config, iterations int, logger *logrus.Logger) error {
	session, radio, err := simulator.NewSession(cfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	count := 0
	err = session.Run(ctx, func(r transmitter.Report) {
		if r.ChannelChanged {
			logger.WithFields(logrus.Fields{
				"zone":       r.Channel,
				"rf_channel": cfg.Transmitter.RFChannel(r.Channel),
			}).Debug("channel changed")
		}

		count++
		if iterations > 0 && count >= iterations {
			cancel()
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("simulation stopped: %w", err)
	}

	losses := session.Losses()
	logger.WithFields(logrus.Fields{
		"iterations":       session.Iterations(),
		"delivered":        len(radio.Payloads),
		"total_lost":       losses.Total,
		"consecutive_lost": losses.Consecutive,
		"channel":          session.Channel(),
		"values":           session.Values().String(),
	}).Info("simulation finished")

	return nil
}
