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
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/carverauto/hwinventory/pkg/inventory"
	"github.com/carverauto/hwinventory/pkg/logger"
)

const (
	createInventoryTableSQL = `CREATE TABLE IF NOT EXISTS hardware_inventory (
		snapshot_id  UUID        NOT NULL,
		class        TEXT        NOT NULL,
		wmi_class    TEXT        NOT NULL,
		host_id      TEXT        NOT NULL DEFAULT '',
		hostname     TEXT        NOT NULL DEFAULT '',
		backend      TEXT        NOT NULL,
		collected_at TIMESTAMPTZ NOT NULL,
		item_count   INTEGER     NOT NULL,
		payload      JSONB       NOT NULL,
		PRIMARY KEY (snapshot_id, class)
	)`

	createInventoryIndexSQL = `CREATE INDEX IF NOT EXISTS hardware_inventory_host_time_idx
		ON hardware_inventory (hostname, collected_at DESC)`

	insertInventorySQL = `INSERT INTO hardware_inventory (
		snapshot_id, class, wmi_class, host_id, hostname, backend, collected_at, item_count, payload
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (snapshot_id, class) DO UPDATE SET
		item_count = EXCLUDED.item_count,
		payload    = EXCLUDED.payload`
)

var errNilSnapshot = errors.New("snapshot is nil")

// Conn is the subset of pgxpool.Pool used by InventoryStore.
type Conn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// InventoryStore writes snapshots to the hardware_inventory table, one row
// per collected class.
type InventoryStore struct {
	conn   Conn
	logger logger.Logger
}

// NewInventoryStore returns a store over conn.
func NewInventoryStore(conn Conn, log logger.Logger) *InventoryStore {
	return &InventoryStore{conn: conn, logger: log}
}

// EnsureSchema creates the inventory table and its index when missing.
func (s *InventoryStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range []string{createInventoryTableSQL, createInventoryIndexSQL} {
		if _, err := s.conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("hardware_inventory schema: %w", err)
		}
	}

	return nil
}

// SaveSnapshot upserts every collected class of snap in one batch.
func (s *InventoryStore) SaveSnapshot(ctx context.Context, snap *inventory.Snapshot) error {
	if snap == nil {
		return errNilSnapshot
	}

	batch := &pgx.Batch{}

	for _, section := range snap.Sections() {
		payload, err := json.Marshal(section.Items)
		if err != nil {
			return fmt.Errorf("marshal %s payload: %w", section.Name, err)
		}

		batch.Queue(insertInventorySQL,
			snap.ID,
			section.Name,
			section.WMIClass,
			snap.HostID,
			snap.Hostname,
			snap.Backend,
			snap.CollectedAt,
			section.Count,
			payload,
		)
	}

	affected, err := execBatch(ctx, s.conn, batch, "hardware_inventory")
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("snapshot_id", snap.ID).
		Int64("rows", affected).
		Msg("Stored inventory snapshot")

	return nil
}

// execBatch sends batch, executes every queued command and returns the total
// rows affected. The results are always closed.
func execBatch(ctx context.Context, conn Conn, batch *pgx.Batch, operation string) (affected int64, err error) {
	if batch.Len() == 0 {
		return 0, nil
	}

	br := conn.SendBatch(ctx, batch)
	defer func() {
		if closeErr := br.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("%s batch close: %w", operation, closeErr)
		}
	}()

	for i := 0; i < batch.Len(); i++ {
		tag, execErr := br.Exec()
		if execErr != nil {
			return affected, fmt.Errorf("%s batch exec (command %d): %w", operation, i, execErr)
		}

		affected += tag.RowsAffected()
	}

	return affected, nil
}
