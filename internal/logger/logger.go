// Package logger contains a leveled log handler.
package logger

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gookit/color"
)

// Level is a log level.
type Level int

// Log levels.
const (
	Debug Level = iota + 1
	Info
	Warn
	Error
)

// ParseLevel converts "debug", "info", "warn" or "error".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	}
	return 0, fmt.Errorf("invalid log level: %q", s)
}

// Writer is the interface components log through.
type Writer interface {
	Log(Level, string, ...interface{})
}

// Destination is a log destination.
type Destination int

const (
	// DestinationStdout writes logs to the standard output.
	DestinationStdout Destination = iota

	// DestinationFile writes logs to a file.
	DestinationFile
)

// Logger is a log handler.
type Logger struct {
	Level        Level
	Destinations []Destination
	File         string

	timeNow func() time.Time
	stdout  io.Writer

	mutex  sync.Mutex
	file   *os.File
	buffer bytes.Buffer
}

// Initialize opens the destinations.
func (l *Logger) Initialize() error {
	if l.Level == 0 {
		l.Level = Info
	}
	if l.timeNow == nil {
		l.timeNow = time.Now
	}
	if l.stdout == nil {
		l.stdout = os.Stdout
	}

	for _, d := range l.Destinations {
		if d == DestinationFile {
			var err error
			l.file, err = os.OpenFile(l.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
		}
	}
	return nil
}

// Close closes the destinations.
func (l *Logger) Close() {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}
}

func writeTime(buf *bytes.Buffer, t time.Time, doColor bool) {
	s := t.Format("2006/01/02 15:04:05 ")
	if doColor {
		buf.WriteString(color.RenderString(color.Gray.Code(), s))
	} else {
		buf.WriteString(s)
	}
}

func writeLevel(buf *bytes.Buffer, level Level, doColor bool) {
	switch level {
	case Debug:
		if doColor {
			buf.WriteString(color.RenderString(color.Debug.Code(), "DEB"))
		} else {
			buf.WriteString("DEB")
		}

	case Info:
		if doColor {
			buf.WriteString(color.RenderString(color.Green.Code(), "INF"))
		} else {
			buf.WriteString("INF")
		}

	case Warn:
		if doColor {
			buf.WriteString(color.RenderString(color.Warn.Code(), "WAR"))
		} else {
			buf.WriteString("WAR")
		}

	case Error:
		if doColor {
			buf.WriteString(color.RenderString(color.Error.Code(), "ERR"))
		} else {
			buf.WriteString("ERR")
		}
	}
	buf.WriteByte(' ')
}

func writeContent(buf *bytes.Buffer, format string, args []interface{}) {
	fmt.Fprintf(buf, format, args...)
	buf.WriteByte('\n')
}

// Log writes a log entry.
func (l *Logger) Log(level Level, format string, args ...interface{}) {
	if level < l.Level {
		return
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()

	now := l.timeNow()

	for _, d := range l.Destinations {
		switch d {
		case DestinationStdout:
			doColor := l.stdout == os.Stdout && color.SupportColor()
			l.buffer.Reset()
			writeTime(&l.buffer, now, doColor)
			writeLevel(&l.buffer, level, doColor)
			writeContent(&l.buffer, format, args)
			l.stdout.Write(l.buffer.Bytes()) //nolint:errcheck

		case DestinationFile:
			if l.file == nil {
				continue
			}
			l.buffer.Reset()
			writeTime(&l.buffer, now, false)
			writeLevel(&l.buffer, level, false)
			writeContent(&l.buffer, format, args)
			l.file.Write(l.buffer.Bytes()) //nolint:errcheck
		}
	}
}

// Discard drops every entry.
type Discard struct{}

// Log implements Writer.
func (Discard) Log(Level, string, ...interface{}) {}
