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

// Package lifecycle starts and stops the logging and telemetry of a single
// hwinventory run.
package lifecycle

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/carverauto/hwinventory/pkg/logger"
	"github.com/carverauto/hwinventory/pkg/version"
)

const shutdownTimeout = 10 * time.Second

// Runtime holds the process logger and the telemetry providers behind it.
type Runtime struct {
	Logger    logger.Logger
	telemetry *logger.Telemetry
}

// Start installs telemetry and builds the component logger. A nil config
// falls back to logger.DefaultConfig.
func Start(ctx context.Context, component string, cfg *logger.Config) (*Runtime, error) {
	if cfg == nil {
		cfg = logger.DefaultConfig()
	}

	tel, err := logger.StartTelemetry(ctx, cfg.OTel, version.GetVersion())
	if err != nil {
		return nil, fmt.Errorf("failed to start telemetry: %w", err)
	}

	var sinks []io.Writer
	if sink, ok := tel.LogSink(); ok {
		sinks = append(sinks, sink)
	}

	base, err := logger.New(cfg, sinks...)
	if err != nil {
		_ = tel.Shutdown(ctx)

		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.Scoped(base, component)

	log.Debug().
		Str("version", version.GetVersion()).
		Bool("otel_export", tel.Exporting()).
		Msg("Runtime started")

	return &Runtime{Logger: log, telemetry: tel}, nil
}

// Shutdown flushes telemetry. It runs even if ctx is already canceled, so
// a run interrupted by a signal still delivers what it recorded.
func (r *Runtime) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	return r.telemetry.Shutdown(ctx)
}
