// Package controller connects to the transmitter's serial console from a computer. It forwards commands and
// keeps a Snapshot of the transmitter's state from the text diagnostics or binary telemetry frames
package controller

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/calvinmclean/rctransmitter"

	"github.com/sirupsen/logrus"
)

var telemetryOff = []byte(rctransmitter.TelemetryOff + "\r\n")

// Controller reads the transmitter's console output and sends it commands
type Controller struct {
	port   io.ReadWriteCloser
	cfg    Config
	logger *logrus.Logger
	now    func() time.Time

	mtx       sync.Mutex
	writeMtx  sync.Mutex
	snapshot  Snapshot
	telemetry bool
	// enableTelemetry is set until the toggle command is sent. CommandTelemetry toggles, so it is only
	// sent once the transmitter is seen printing text
	enableTelemetry bool

	// OnSnapshot is called with a copy of the Snapshot after every update
	OnSnapshot func(Snapshot)
}

// New creates a Controller using an open port
func New(port io.ReadWriteCloser, cfg Config, logger *logrus.Logger) *Controller {
	if logger == nil {
		logger = logrus.New()
	}
	return &Controller{
		port:   port,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
}

// NewFromEnv reads Config from the environment and opens the serial port
func NewFromEnv() (*Controller, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	return NewFromConfig(cfg)
}

// NewFromConfig opens the serial port from the Config and creates a logger at the configured level
func NewFromConfig(cfg Config) (*Controller, error) {
	logger := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logger.SetLevel(level)

	port, err := OpenSerial(cfg)
	if err != nil {
		return nil, err
	}

	return New(port, cfg, logger), nil
}

// Snapshot returns a copy of the latest Snapshot
func (c *Controller) Snapshot() Snapshot {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.snapshot
}

// Telemetry returns true while the transmitter is sending binary frames
func (c *Controller) Telemetry() bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.telemetry
}

// Send writes command bytes to the transmitter
func (c *Controller) Send(cmd ...byte) error {
	c.writeMtx.Lock()
	defer c.writeMtx.Unlock()

	c.logger.WithField("command", string(cmd)).Debug("sending command")
	_, err := c.port.Write(cmd)
	if err != nil {
		return fmt.Errorf("error writing command: %w", err)
	}
	return nil
}

// Close closes the serial port
func (c *Controller) Close() error {
	return c.port.Close()
}

// Run forwards input from in to the transmitter and writes its readable output to out until the port is
// closed or the context is cancelled
func (c *Controller) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if c.cfg.Verbose {
		err := c.Send(rctransmitter.CommandVerbose)
		if err != nil {
			return err
		}
	}
	if c.cfg.Telemetry {
		c.mtx.Lock()
		c.enableTelemetry = true
		c.mtx.Unlock()
	}

	errs := make(chan error, 2)
	go func() {
		err := c.forward(in)
		if err != nil {
			errs <- err
		}
	}()
	go func() {
		errs <- c.read(out)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errs:
		return err
	}
}

func (c *Controller) forward(in io.Reader) error {
	if in == nil {
		return nil
	}

	buf := make([]byte, 64)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			sendErr := c.Send(buf[:n]...)
			if sendErr != nil {
				return sendErr
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading input: %w", err)
		}
	}
}

// read splits the port's output into text lines, or into frames while telemetry is enabled
func (c *Controller) read(out io.Writer) error {
	r := bufio.NewReader(c.port)

	var buf []byte
	for {
		b, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading from transmitter: %w", err)
		}

		buf = append(buf, b)

		if c.Telemetry() {
			switch {
			case bytes.HasSuffix(buf, telemetryOff):
				c.handleLine(rctransmitter.TelemetryOff, out)
				buf = buf[:0]
			case b == rctransmitter.FrameDelimiter:
				c.handleFrame(buf, out)
				buf = buf[:0]
			}
			continue
		}

		// text output never contains the delimiter, so frames are already being sent
		if b == rctransmitter.FrameDelimiter {
			c.logger.Debug("received frame delimiter in text mode")
			c.setTelemetry(true)
			buf = buf[:0]
			continue
		}

		if b == '\n' {
			c.handleLine(strings.TrimRight(string(buf), "\r\n"), out)
			buf = buf[:0]
		}
	}
}

func (c *Controller) handleLine(line string, out io.Writer) {
	fmt.Fprintln(out, line)

	switch line {
	case rctransmitter.TelemetryOn:
		c.setTelemetry(true)
		return
	case rctransmitter.TelemetryOff:
		c.setTelemetry(false)
		return
	}

	parsed, err := ParseLine(line)
	if errors.Is(err, ErrUnknownLine) {
		return
	}
	if err != nil {
		c.logger.WithError(err).WithField("line", line).Warn("error parsing line")
		return
	}

	c.update(func(s *Snapshot) {
		s.Apply(parsed, c.now())
	})

	c.requestTelemetry()
}

// requestTelemetry sends the telemetry toggle if it is still pending
func (c *Controller) requestTelemetry() {
	c.mtx.Lock()
	pending := c.enableTelemetry && !c.telemetry
	c.enableTelemetry = false
	c.mtx.Unlock()

	if !pending {
		return
	}

	err := c.Send(rctransmitter.CommandTelemetry)
	if err != nil {
		c.logger.WithError(err).Warn("error enabling telemetry")
	}
}

func (c *Controller) handleFrame(frame []byte, out io.Writer) {
	t, err := rctransmitter.DecodeFrame(frame)
	if err != nil {
		c.logger.WithError(err).WithField("size", len(frame)).Warn("error decoding telemetry frame")
		return
	}

	c.logger.WithFields(logrus.Fields{
		"channel":     t.Channel,
		"sensitivity": t.Sensitivity,
		"delivered":   t.Delivered,
		"lost":        t.TotalLost,
		"consecutive": t.ConsecutiveLost,
	}).Debug("telemetry")

	snapshot := c.update(func(s *Snapshot) {
		s.ApplyTelemetry(t, c.now())
	})
	fmt.Fprintln(out, snapshot.String())
}

func (c *Controller) setTelemetry(enabled bool) {
	c.mtx.Lock()
	c.telemetry = enabled
	if enabled {
		c.enableTelemetry = false
	}
	c.mtx.Unlock()

	c.logger.WithField("enabled", enabled).Info("telemetry mode changed")
}

func (c *Controller) update(f func(*Snapshot)) Snapshot {
	c.mtx.Lock()
	f(&c.snapshot)
	snapshot := c.snapshot
	c.mtx.Unlock()

	if c.OnSnapshot != nil {
		c.OnSnapshot(snapshot)
	}
	return snapshot
}
