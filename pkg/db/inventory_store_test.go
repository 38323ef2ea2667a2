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

package db

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/hwinventory/pkg/hardware/mainboard"
	"github.com/carverauto/hwinventory/pkg/hardware/processor"
	"github.com/carverauto/hwinventory/pkg/inventory"
	"github.com/carverauto/hwinventory/pkg/logger"
	"github.com/carverauto/hwinventory/pkg/wmi/cast"
)

var (
	errFakeBatchResultsQuery = errors.New("query not implemented in fakeBatchResults")
	errFakeBatchRowScan      = errors.New("scan not implemented in fakeBatchRow")
	errBoom                  = errors.New("boom")
	errCloseFailed           = errors.New("close failed")
)

type fakeBatchResults struct {
	execCalls int
	execErrAt int
	execErr   error

	closeCalls int
	closeErr   error
}

func (f *fakeBatchResults) Exec() (pgconn.CommandTag, error) {
	defer func() { f.execCalls++ }()

	if f.execErr != nil && f.execCalls == f.execErrAt {
		return pgconn.CommandTag{}, f.execErr
	}

	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (*fakeBatchResults) Query() (pgx.Rows, error) {
	return nil, errFakeBatchResultsQuery
}

type fakeBatchRow struct{}

func (fakeBatchRow) Scan(...any) error { return errFakeBatchRowScan }

func (*fakeBatchResults) QueryRow() pgx.Row {
	return fakeBatchRow{}
}

func (f *fakeBatchResults) Close() error {
	f.closeCalls++
	return f.closeErr
}

type fakeConn struct {
	execSQL []string
	execErr error

	batches []*pgx.Batch
	results *fakeBatchResults
}

func (f *fakeConn) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	return pgconn.NewCommandTag("CREATE TABLE"), f.execErr
}

func (f *fakeConn) SendBatch(_ context.Context, b *pgx.Batch) pgx.BatchResults {
	f.batches = append(f.batches, b)
	return f.results
}

func testSnapshot() *inventory.Snapshot {
	return &inventory.Snapshot{
		ID:          "9a4f2d7e-3b61-4c1a-8f0e-2d9c5b7a6e10",
		HostID:      "4c4c4544-0042",
		Hostname:    "bench-01",
		Backend:     inventory.BackendWMI,
		CollectedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Classes:     []string{inventory.ClassProcessor, inventory.ClassBIOS},
		Processors: []processor.Processor{
			{DeviceID: cast.Of("CPU0"), NumberOfCores: cast.Of(int32(8))},
			{DeviceID: cast.Of("CPU1"), NumberOfCores: cast.Of(int32(8))},
		},
		BIOS: []mainboard.BIOS{{Manufacturer: cast.Of("Dell Inc.")}},
	}
}

func TestEnsureSchema(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}
	store := NewInventoryStore(conn, logger.NewTestLogger())

	require.NoError(t, store.EnsureSchema(context.Background()))
	require.Len(t, conn.execSQL, 2)
	assert.Contains(t, conn.execSQL[0], "CREATE TABLE IF NOT EXISTS hardware_inventory")
	assert.Contains(t, conn.execSQL[1], "CREATE INDEX IF NOT EXISTS")

	conn = &fakeConn{execErr: errBoom}
	err := NewInventoryStore(conn, logger.NewTestLogger()).EnsureSchema(context.Background())
	require.ErrorIs(t, err, errBoom)
	assert.Len(t, conn.execSQL, 1)
}

func TestSaveSnapshotQueuesOneRowPerClass(t *testing.T) {
	t.Parallel()

	results := &fakeBatchResults{}
	conn := &fakeConn{results: results}
	store := NewInventoryStore(conn, logger.NewTestLogger())

	require.NoError(t, store.SaveSnapshot(context.Background(), testSnapshot()))

	require.Len(t, conn.batches, 1)
	batch := conn.batches[0]
	require.Equal(t, 2, batch.Len())
	assert.Equal(t, 2, results.execCalls)
	assert.Equal(t, 1, results.closeCalls)

	first := batch.QueuedQueries[0]
	assert.Equal(t, insertInventorySQL, first.SQL)
	require.Len(t, first.Arguments, 9)
	assert.Equal(t, inventory.ClassProcessor, first.Arguments[1])
	assert.Equal(t, "Win32_Processor", first.Arguments[2])
	assert.Equal(t, 2, first.Arguments[7])

	var payload []map[string]any
	require.NoError(t, json.Unmarshal(first.Arguments[8].([]byte), &payload))
	require.Len(t, payload, 2)
	assert.Equal(t, "CPU1", payload[1]["device_id"])
	assert.Nil(t, payload[1]["name"])

	second := batch.QueuedQueries[1]
	assert.Equal(t, inventory.ClassBIOS, second.Arguments[1])
	assert.Equal(t, 1, second.Arguments[7])
}

func TestSaveSnapshotReportsFailingCommand(t *testing.T) {
	t.Parallel()

	results := &fakeBatchResults{execErrAt: 1, execErr: errBoom}
	conn := &fakeConn{results: results}

	err := NewInventoryStore(conn, logger.NewTestLogger()).SaveSnapshot(context.Background(), testSnapshot())
	require.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "hardware_inventory batch exec (command 1)")
	assert.Equal(t, 1, results.closeCalls)
}

func TestSaveSnapshotCloseError(t *testing.T) {
	t.Parallel()

	results := &fakeBatchResults{closeErr: errCloseFailed}
	conn := &fakeConn{results: results}

	err := NewInventoryStore(conn, logger.NewTestLogger()).SaveSnapshot(context.Background(), testSnapshot())
	require.ErrorIs(t, err, errCloseFailed)
	assert.Contains(t, err.Error(), "hardware_inventory batch close")
}

func TestSaveSnapshotEmptyDoesNotSend(t *testing.T) {
	t.Parallel()

	conn := &fakeConn{}
	store := NewInventoryStore(conn, logger.NewTestLogger())

	require.NoError(t, store.SaveSnapshot(context.Background(), &inventory.Snapshot{ID: "empty"}))
	assert.Empty(t, conn.batches)

	require.ErrorIs(t, store.SaveSnapshot(context.Background(), nil), errNilSnapshot)
}
