// Package simulator runs the transmitter's firmware loop on a computer with simulated sticks and radio.
// Port exposes the simulated serial console so the host tools can be used without hardware
package simulator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/calvinmclean/rctransmitter/firmware/commands"
	"github.com/calvinmclean/rctransmitter/firmware/device"
	"github.com/calvinmclean/rctransmitter/transmitter"
)

const (
	DefaultStep     = 64
	DefaultInterval = 20 * time.Millisecond
)

// Config has the settings for the simulated transmitter
type Config struct {
	Transmitter transmitter.Config
	// Step is how far every simulated input moves per iteration
	Step uint16
	// Drop decides if the n-th packet is lost. Nothing is lost when nil
	Drop func(n int) bool
	// Sensitivity holds the sensitivity input at a raw value instead of sweeping it
	Sensitivity *uint16
}

func DefaultConfig() Config {
	cfg := transmitter.DefaultConfig()
	cfg.Interval = DefaultInterval
	return Config{
		Transmitter: cfg,
		Step:        DefaultStep,
	}
}

// NewSession creates a Session reading sweeping inputs and writing to a FakeRadio
func NewSession(cfg Config, logger transmitter.Logger) (*transmitter.Session, *transmitter.FakeRadio, error) {
	reader := transmitter.NewSweepReader(cfg.Transmitter.ADCMax, cfg.Step)
	reader.FixedSensitivity = cfg.Sensitivity
	radio := &transmitter.FakeRadio{Drop: cfg.Drop}

	session, err := transmitter.NewSession(cfg.Transmitter, reader, radio, nil, logger)
	if err != nil {
		return nil, nil, err
	}

	err = session.Begin()
	if err != nil {
		return nil, nil, err
	}

	return session, radio, nil
}

// Port is a simulated serial connection to a running transmitter. Reads return its console output and
// writes are handled as console commands
type Port struct {
	out  *io.PipeReader
	outW *io.PipeWriter
	in   *input

	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

var _ io.ReadWriteCloser = &Port{}

// NewPort starts a simulated transmitter
func NewPort(cfg Config) (*Port, error) {
	out, outW := io.Pipe()
	console := device.NewConsole(outW, device.LevelInfo)

	session, _, err := NewSession(cfg, console)
	if err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	in := &input{}
	tx := device.NewTransmitter(session, console, in)
	handler := commands.NewHandler()

	ctx, cancel := context.WithCancel(context.Background())
	p := &Port{
		out:    out,
		outW:   outW,
		in:     in,
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(p.done)
		err := session.Run(ctx, tx.Emit, func(transmitter.Report) {
			handler.Poll(tx)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			p.err = err
		}
	}()

	return p, nil
}

func (p *Port) Read(b []byte) (int, error) {
	return p.out.Read(b)
}

func (p *Port) Write(b []byte) (int, error) {
	return p.in.Write(b)
}

// Close stops the simulated transmitter. Pending and later reads return io.EOF
func (p *Port) Close() error {
	p.cancel()
	_ = p.outW.Close()
	<-p.done
	return p.err
}

// input buffers command bytes until the transmitter loop polls them
type input struct {
	mtx sync.Mutex
	buf bytes.Buffer
}

func (i *input) Write(b []byte) (int, error) {
	i.mtx.Lock()
	defer i.mtx.Unlock()
	return i.buf.Write(b)
}

func (i *input) ReadByte() (byte, error) {
	i.mtx.Lock()
	defer i.mtx.Unlock()
	return i.buf.ReadByte()
}

func (i *input) Buffered() int {
	i.mtx.Lock()
	defer i.mtx.Unlock()
	return i.buf.Len()
}
