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

// Package inventory collects every configured hardware class of the local
// host into a single Snapshot.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/v3/host"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/carverauto/hwinventory/pkg/logger"
	"github.com/carverauto/hwinventory/pkg/wmi/query"
	"github.com/carverauto/hwinventory/pkg/wmi/session"
)

const tracerName = "hwinventory.inventory"

var (
	errNilExecutor = errors.New("executor is required")
	errNilGuard    = errors.New("session guard is required")
)

// hostInfo is replaced in tests.
//
//nolint:gochecknoglobals // test seam
var hostInfo = host.InfoWithContext

// Collector gathers the configured classes through one executor.
//
// By default every class is read inside a single session. With
// PerClassSession each class takes and releases its own session. The first
// failing class aborts the collection and its error is returned.
type Collector struct {
	exec            query.Executor
	guard           *session.Guard
	logger          logger.Logger
	tracer          trace.Tracer
	backend         string
	perClassSession bool
	classes         []classEntry
	now             func() time.Time
}

// NewCollector builds a collector for cfg. cfg must already be validated.
func NewCollector(cfg *Config, exec query.Executor, guard *session.Guard, log logger.Logger) (*Collector, error) {
	if exec == nil {
		return nil, errNilExecutor
	}

	if guard == nil {
		return nil, errNilGuard
	}

	classes := make([]classEntry, 0, len(cfg.Classes))

	for _, name := range cfg.Classes {
		e, ok := lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", errUnknownClass, name)
		}

		classes = append(classes, e)
	}

	return &Collector{
		exec:            exec,
		guard:           guard,
		logger:          log,
		tracer:          otel.Tracer(tracerName),
		backend:         cfg.Backend,
		perClassSession: cfg.PerClassSession,
		classes:         classes,
		now:             time.Now,
	}, nil
}

// Collect reads every configured class and returns the snapshot.
func (c *Collector) Collect(ctx context.Context) (*Snapshot, error) {
	ctx, span := c.tracer.Start(ctx, "hwinventory.collect",
		trace.WithAttributes(
			attribute.String("backend", c.backend),
			attribute.Bool("per_class_session", c.perClassSession),
		))
	defer span.End()

	snap := &Snapshot{
		ID:          uuid.NewString(),
		Backend:     c.backend,
		CollectedAt: c.now().UTC(),
	}

	c.identifyHost(ctx, snap)

	classes := c.supported(snap)

	var err error

	if c.perClassSession {
		err = c.collectAll(ctx, classes, snap, true)
	} else if len(classes) > 0 {
		err = c.guard.Do(func() error {
			return c.collectAll(ctx, classes, snap, false)
		})
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	c.logger.Info().
		Str("snapshot_id", snap.ID).
		Strs("classes", snap.Classes).
		Strs("skipped", snap.Skipped).
		Msg("Hardware inventory collected")

	return snap, nil
}

func (c *Collector) collectAll(ctx context.Context, classes []classEntry, snap *Snapshot, managed bool) error {
	for _, e := range classes {
		if err := c.collectClass(ctx, e, snap, managed); err != nil {
			return err
		}
	}

	return nil
}

func (c *Collector) collectClass(ctx context.Context, e classEntry, snap *Snapshot, managed bool) error {
	ctx, span := c.tracer.Start(ctx, "hwinventory.collect/"+e.name,
		trace.WithAttributes(attribute.String("wmi.class", e.wmiClass)))
	defer span.End()

	start := time.Now()
	count, err := e.collect(ctx, c.exec, c.guard, managed, snap)

	recordClass(ctx, e.name, time.Since(start), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		c.logger.Error().Err(err).Str("class", e.name).Msg("Class collection failed")

		return fmt.Errorf("collect %s: %w", e.name, err)
	}

	span.SetAttributes(attribute.Int("count", count))
	snap.Classes = append(snap.Classes, e.name)

	c.logger.Debug().Str("class", e.name).Int("count", count).Msg("Class collected")

	return nil
}

// supported drops the classes the executor reports it cannot serve.
func (c *Collector) supported(snap *Snapshot) []classEntry {
	supporter, ok := c.exec.(query.ClassSupporter)
	if !ok {
		return c.classes
	}

	out := make([]classEntry, 0, len(c.classes))

	for _, e := range c.classes {
		if supporter.Supports(e.wmiClass) {
			out = append(out, e)
			continue
		}

		snap.Skipped = append(snap.Skipped, e.name)

		c.logger.Warn().
			Str("class", e.name).
			Str("backend", c.backend).
			Msg("Class not supported by backend, skipping")
	}

	return out
}

func (c *Collector) identifyHost(ctx context.Context, snap *Snapshot) {
	info, err := hostInfo(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("Failed to identify host")
	}

	if info == nil {
		return
	}

	snap.HostID = info.HostID
	snap.Hostname = info.Hostname
}
