package device

import (
	"fmt"
	"io"
)

// Level controls which messages the Console prints
type Level uint8

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

func (l Level) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarn:
		return "warn"
	case LevelInfo:
		return "info"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// Console writes diagnostic lines to the serial port. While muted, only raw frames are written so the
// binary telemetry stream is not interrupted by text
type Console struct {
	out   io.Writer
	level Level
	muted bool
}

// NewConsole creates a Console printing messages up to the provided level
func NewConsole(out io.Writer, level Level) *Console {
	return &Console{out: out, level: level}
}

func (c *Console) Level() Level {
	return c.level
}

func (c *Console) SetLevel(l Level) {
	c.level = l
}

func (c *Console) Muted() bool {
	return c.muted
}

func (c *Console) SetMuted(muted bool) {
	c.muted = muted
}

// Println writes a line regardless of the level
func (c *Console) Println(msg string) {
	if c.muted {
		return
	}
	_, _ = io.WriteString(c.out, msg+"\r\n")
}

// WriteFrame writes raw bytes, even while muted
func (c *Console) WriteFrame(frame []byte) {
	_, _ = c.out.Write(frame)
}

func (c *Console) Debugf(format string, args ...interface{}) {
	c.logf(LevelDebug, format, args...)
}

func (c *Console) Infof(format string, args ...interface{}) {
	c.logf(LevelInfo, format, args...)
}

func (c *Console) Warnf(format string, args ...interface{}) {
	c.logf(LevelWarn, format, args...)
}

func (c *Console) Errorf(format string, args ...interface{}) {
	c.logf(LevelError, format, args...)
}

func (c *Console) logf(l Level, format string, args ...interface{}) {
	if l > c.level {
		return
	}
	c.Println(fmt.Sprintf(format, args...))
}
