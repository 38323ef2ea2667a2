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

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/carverauto/hwinventory/pkg/cli"
	"github.com/carverauto/hwinventory/pkg/config"
	"github.com/carverauto/hwinventory/pkg/db"
	"github.com/carverauto/hwinventory/pkg/inventory"
	"github.com/carverauto/hwinventory/pkg/lifecycle"
	"github.com/carverauto/hwinventory/pkg/logger"
	"github.com/carverauto/hwinventory/pkg/natsutil"
	"github.com/carverauto/hwinventory/pkg/version"
	"github.com/carverauto/hwinventory/pkg/wmi/query"
	"github.com/carverauto/hwinventory/pkg/wmi/session"
)

const serviceName = "hwinventory"

var (
	errFailedToLoadConfig = errors.New("failed to load config")
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cmd, err := cli.ParseFlags(serviceName, os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}

	if err != nil {
		return err
	}

	if cmd.Version {
		fmt.Println(version.GetFullVersion())
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Step 1: Load configuration, then let flags override it.
	cfg, err := loadConfig(ctx, cmd)
	if err != nil {
		return err
	}

	// Step 2: Start logging and telemetry from loaded config
	rt, err := lifecycle.Start(ctx, serviceName, cfg.Logging)
	if err != nil {
		return err
	}

	defer func() {
		if err := rt.Shutdown(ctx); err != nil {
			log.Printf("Failed to flush telemetry: %v", err)
		}
	}()

	mainLogger := rt.Logger

	// Step 3: Collect
	exec, guard := newBackend(cfg.Backend, mainLogger)

	collector, err := inventory.NewCollector(cfg, exec, guard, logger.Scoped(mainLogger, "collector"))
	if err != nil {
		return err
	}

	snap, err := collector.Collect(ctx)
	if err != nil {
		return fmt.Errorf("inventory collection failed: %w", err)
	}

	if err := cli.Render(os.Stdout, cfg.Format, snap); err != nil {
		return err
	}

	// Step 4: Optional delivery
	if cfg.NATS != nil && cfg.NATS.Enabled {
		if err := publish(ctx, cfg, snap, logger.Scoped(mainLogger, "nats")); err != nil {
			return err
		}
	}

	if cfg.Database != nil && cfg.Database.Enabled {
		if err := persist(ctx, cfg, snap, logger.Scoped(mainLogger, "db")); err != nil {
			return err
		}
	}

	return nil
}

func loadConfig(ctx context.Context, cmd *cli.CmdConfig) (*inventory.Config, error) {
	var cfg inventory.Config

	if cmd.ConfigPath != "" || os.Getenv("CONFIG_SOURCE") == "env" {
		if err := config.NewConfig(nil).LoadAndValidate(ctx, cmd.ConfigPath, &cfg); err != nil {
			return nil, fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
		}
	}

	cmd.Apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errFailedToLoadConfig, err)
	}

	return &cfg, nil
}

// newBackend pairs an executor with the session primitive it needs. The
// host backend reads through gopsutil and has no native session.
func newBackend(backend string, log logger.Logger) (query.Executor, *session.Guard) {
	guardLogger := logger.Scoped(log, "wmi-session")

	if backend == inventory.BackendHost {
		return query.NewHostExecutor(), session.NewGuard(session.Nop{}, guardLogger)
	}

	return query.NewCOMExecutor(), session.NewGuard(session.NewCOM(), guardLogger)
}

func publish(ctx context.Context, cfg *inventory.Config, snap *inventory.Snapshot, log logger.Logger) error {
	pub, nc, err := natsutil.Connect(ctx, cfg.NATS, log)
	if err != nil {
		return err
	}
	defer nc.Close()

	return pub.PublishSnapshot(ctx, snap)
}

func persist(ctx context.Context, cfg *inventory.Config, snap *inventory.Snapshot, log logger.Logger) error {
	pool, err := db.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	store := db.NewInventoryStore(pool, log)

	if err := store.EnsureSchema(ctx); err != nil {
		return err
	}

	return store.SaveSnapshot(ctx, snap)
}
