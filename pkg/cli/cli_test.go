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

package cli

import (
	"bytes"
	"encoding/json"
	"flag"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/hwinventory/pkg/hardware/mainboard"
	"github.com/carverauto/hwinventory/pkg/hardware/processor"
	"github.com/carverauto/hwinventory/pkg/inventory"
	"github.com/carverauto/hwinventory/pkg/wmi/cast"
)

func testSnapshot() *inventory.Snapshot {
	return &inventory.Snapshot{
		ID:          "4d3c1f1a-8e0b-4b9d-9c57-0f1e2d3c4b5a",
		HostID:      "4c4c4544-0042",
		Hostname:    "bench-01",
		Backend:     inventory.BackendWMI,
		CollectedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Classes:     []string{inventory.ClassProcessor, inventory.ClassBaseboard},
		Skipped:     []string{inventory.ClassMonitor},
		Processors: []processor.Processor{{
			DeviceID:      cast.Of("CPU0"),
			Name:          cast.Of("AMD EPYC 7302P"),
			NumberOfCores: cast.Of(int32(16)),
		}},
	}
}

func TestParseFlagsOnlySetFlagsOverride(t *testing.T) {
	t.Parallel()

	cmd, err := ParseFlags("hwinventory", []string{
		"-config", "/etc/hwinventory/hwinventory.json",
		"-format", "table",
		"-classes", "processor, bios,,",
	}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "/etc/hwinventory/hwinventory.json", cmd.ConfigPath)
	assert.Nil(t, cmd.Backend)
	assert.Nil(t, cmd.PerClassSession)

	cfg := &inventory.Config{Backend: inventory.BackendHost, Format: inventory.FormatJSON, PerClassSession: true}
	cmd.Apply(cfg)

	assert.Equal(t, inventory.BackendHost, cfg.Backend)
	assert.Equal(t, inventory.FormatTable, cfg.Format)
	assert.Equal(t, []string{"processor", "bios"}, cfg.Classes)
	assert.True(t, cfg.PerClassSession)
}

func TestParseFlagsBooleans(t *testing.T) {
	t.Parallel()

	cmd, err := ParseFlags("hwinventory", []string{"-per-class-session=false", "-version"}, io.Discard)
	require.NoError(t, err)
	assert.True(t, cmd.Version)

	cfg := &inventory.Config{PerClassSession: true}
	cmd.Apply(cfg)
	assert.False(t, cfg.PerClassSession)
}

func TestParseFlagsErrors(t *testing.T) {
	t.Parallel()

	_, err := ParseFlags("hwinventory", []string{"-unknown"}, io.Discard)
	require.Error(t, err)

	_, err = ParseFlags("hwinventory", []string{"extra"}, io.Discard)
	require.ErrorIs(t, err, errUnexpectedArgs)

	var usage bytes.Buffer

	_, err = ParseFlags("hwinventory", []string{"-h"}, &usage)
	require.ErrorIs(t, err, flag.ErrHelp)
	assert.Contains(t, usage.String(), "-per-class-session")
}

func TestRenderJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, inventory.FormatJSON, testSnapshot()))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "bench-01", decoded["hostname"])

	cpus, ok := decoded["processors"].([]any)
	require.True(t, ok)
	require.Len(t, cpus, 1)

	cpu := cpus[0].(map[string]any)
	assert.Equal(t, "CPU0", cpu["device_id"])
	assert.InDelta(t, 16, cpu["number_of_cores"], 0)
	assert.Nil(t, cpu["max_clock_speed"])
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, inventory.FormatTable, testSnapshot()))

	out := buf.String()
	assert.Contains(t, out, "bench-01")
	assert.Contains(t, out, "monitor")
	assert.Contains(t, out, "processor (Win32_Processor) 1")
	assert.Contains(t, out, "device_id")
	assert.Contains(t, out, "AMD EPYC 7302P")
	assert.Contains(t, out, "baseboard (Win32_BaseBoard) 0")
	assert.Contains(t, out, "no instances")
}

func TestRenderUnknownFormat(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, Render(io.Discard, "yaml", testSnapshot()), errUnknownFormat)
}

func TestTabulate(t *testing.T) {
	t.Parallel()

	headers, rows := tabulate([]mainboard.Baseboard{{Manufacturer: cast.Of("ASUSTeK")}})
	require.NotEmpty(t, headers)
	require.Len(t, rows, 1)

	idx := -1

	for i, h := range headers {
		if h == "manufacturer" {
			idx = i
		}
	}

	require.NotEqual(t, -1, idx)
	assert.Equal(t, "ASUSTeK", rows[0][idx])
	assert.Contains(t, rows[0], nullCell)

	headers, rows = tabulate("not a slice")
	assert.Nil(t, headers)
	assert.Nil(t, rows)
}
