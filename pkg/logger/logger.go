/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package logger provides zerolog-backed structured logging for hwinventory
// and the OpenTelemetry pipeline that can mirror it to a collector.
package logger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	errUnknownOutput = errors.New("unknown log output")
	errUnknownFormat = errors.New("unknown log format")
)

const (
	OutputStdout = "stdout"
	OutputStderr = "stderr"

	FormatJSON    = "json"
	FormatConsole = "console"
)

// Logger is the logging surface injected into every hwinventory component.
type Logger interface {
	Trace() *zerolog.Event
	Debug() *zerolog.Event
	Info() *zerolog.Event
	Warn() *zerolog.Event
	Error() *zerolog.Event
	With() zerolog.Context
	WithComponent(component string) zerolog.Logger
	GetLevel() zerolog.Level
}

// Config controls local log output. Logs default to stderr so that a
// snapshot rendered on stdout stays machine readable.
type Config struct {
	Level      string     `json:"level"`
	Debug      bool       `json:"debug"`
	Output     string     `json:"output"`
	Format     string     `json:"format"`
	TimeFormat string     `json:"time_format"`
	OTel       OTelConfig `json:"otel"`
}

type zlog struct {
	zerolog.Logger
}

func (z *zlog) WithComponent(component string) zerolog.Logger {
	return z.Logger.With().Str("component", component).Logger()
}

// Wrap adapts a zerolog logger to Logger.
func Wrap(l zerolog.Logger) Logger {
	return &zlog{Logger: l}
}

// Scoped derives a child logger tagged with component.
func Scoped(parent Logger, component string) Logger {
	return Wrap(parent.WithComponent(component))
}

// NewTestLogger returns a Logger that discards everything.
func NewTestLogger() Logger {
	return Wrap(zerolog.Nop())
}

// New builds a Logger from config. Entries are also written to every sink;
// sinks implementing zerolog.LevelWriter receive the entry level.
func New(config *Config, sinks ...io.Writer) (Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	out, err := openOutput(config)
	if err != nil {
		return nil, err
	}

	level, err := parseLevel(config)
	if err != nil {
		return nil, err
	}

	if config.TimeFormat != "" {
		zerolog.TimeFieldFormat = config.TimeFormat
	}

	if len(sinks) > 0 {
		out = zerolog.MultiLevelWriter(append([]io.Writer{out}, sinks...)...)
	}

	return Wrap(zerolog.New(out).Level(level).With().Timestamp().Logger()), nil
}

func openOutput(config *Config) (io.Writer, error) {
	var w io.Writer

	switch strings.ToLower(config.Output) {
	case "", OutputStderr:
		w = os.Stderr
	case OutputStdout:
		w = os.Stdout
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownOutput, config.Output)
	}

	switch strings.ToLower(config.Format) {
	case "", FormatJSON:
		return w, nil
	case FormatConsole:
		return zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, config.Format)
	}
}

func parseLevel(config *Config) (zerolog.Level, error) {
	if config.Debug {
		return zerolog.DebugLevel, nil
	}

	if config.Level == "" {
		return zerolog.InfoLevel, nil
	}

	level, err := zerolog.ParseLevel(strings.ToLower(config.Level))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", config.Level, err)
	}

	return level, nil
}
