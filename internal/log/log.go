// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// EnvLevel names the environment variable holding the log level.
const EnvLevel = "DEPLOYGEN_LOG"

var traceEnabled bool

// InitLogger sets up Apex with a custom handler writing to stderr and a log
// level from the DEPLOYGEN_LOG env variable. Generated artifacts may be
// written to stdout, so diagnostics never go there.
func InitLogger() {
	InitLoggerTo(os.Stderr, os.Getenv(EnvLevel))
}

// InitLoggerTo is InitLogger with an explicit writer and level string.
func InitLoggerTo(w io.Writer, level string) {
	envLevel := strings.ToLower(strings.TrimSpace(level))
	traceEnabled = envLevel == "trace"
	log.SetHandler(&CustomHandler{Writer: w})
	log.SetLevel(ParseLevel(envLevel))
}

// ParseLevel maps a level name to an Apex level. Unknown and empty names map
// to error. Trace is carried as debug with a marker prefix.
func ParseLevel(name string) log.Level {
	switch name {
	case "trace", "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.ErrorLevel
	}
}

// CustomHandler formats log messages as "timestamp L message [fields]".
type CustomHandler struct {
	Writer io.Writer
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	w := h.Writer
	if w == nil {
		w = os.Stderr
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := e.Message
	level := "?"
	if strings.HasPrefix(message, "TRACE: ") {
		level = "T"
		message = message[7:]
	} else {
		switch e.Level {
		case log.DebugLevel:
			level = "D"
		case log.InfoLevel:
			level = "I"
		case log.WarnLevel:
			level = "W"
		case log.ErrorLevel:
			level = "E"
		case log.FatalLevel:
			level = "F"
		}
	}

	var fields strings.Builder
	for _, name := range e.Fields.Names() {
		fmt.Fprintf(&fields, " %s=%v", name, e.Fields.Get(name))
	}

	_, err := fmt.Fprintf(w, "%s %s %s%s\n", timestamp, level, message, fields.String())
	return err
}

// Tracef logs at Trace level (below Debug).
func Tracef(format string, args ...interface{}) {
	if traceEnabled {
		log.Debug("TRACE: " + fmt.Sprintf(format, args...))
	}
}

// Debugf logs at Debug level.
func Debugf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

// Infof logs at Info level.
func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

// Warnf logs at Warn level.
func Warnf(format string, args ...interface{}) {
	log.Warn(fmt.Sprintf(format, args...))
}

// Errorf logs at Error level.
func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

// WithError returns an entry with error.
func WithError(err error) *log.Entry {
	return log.WithError(err)
}
