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

package inventory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/carverauto/hwinventory/pkg/logger"
	"github.com/carverauto/hwinventory/pkg/models"
)

const (
	BackendWMI  = "wmi"
	BackendHost = "host"

	FormatJSON  = "json"
	FormatTable = "table"

	defaultNATSStream  = "HWINVENTORY"
	defaultNATSSubject = "hwinventory.snapshots"
	defaultDBPort      = 5432
)

var (
	errUnknownBackend  = errors.New("unknown backend")
	errUnknownFormat   = errors.New("unknown output format")
	errUnknownClass    = errors.New("unknown class")
	errNATSURLRequired = errors.New("nats.url is required when nats is enabled")
	errDBHostRequired  = errors.New("database.host is required when database is enabled")
	errDBNameRequired  = errors.New("database.database is required when database is enabled")
)

// Config describes one inventory run.
type Config struct {
	Backend         string                 `json:"backend"`
	Classes         []string               `json:"classes"`
	PerClassSession bool                   `json:"per_class_session"`
	Format          string                 `json:"format"`
	Logging         *logger.Config         `json:"logging,omitempty"`
	NATS            *models.NATSConfig     `json:"nats,omitempty"`
	Database        *models.DatabaseConfig `json:"database,omitempty"`
}

// ApplyDefaults fills unset fields. Class names are lower-cased and an empty
// class list selects every registered class.
func (c *Config) ApplyDefaults() {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	if c.Backend == "" {
		c.Backend = BackendWMI
	}

	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	if c.Format == "" {
		c.Format = FormatJSON
	}

	classes := make([]string, 0, len(c.Classes))

	for _, name := range c.Classes {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			classes = append(classes, name)
		}
	}

	if len(classes) == 0 {
		classes = ClassNames()
	}

	c.Classes = classes

	if c.NATS != nil {
		if c.NATS.Stream == "" {
			c.NATS.Stream = defaultNATSStream
		}

		if c.NATS.Subject == "" {
			c.NATS.Subject = defaultNATSSubject
		}
	}

	if c.Database != nil && c.Database.Port == 0 {
		c.Database.Port = defaultDBPort
	}
}

// Validate applies defaults and checks the configuration.
func (c *Config) Validate() error {
	c.ApplyDefaults()

	switch c.Backend {
	case BackendWMI, BackendHost:
	default:
		return fmt.Errorf("%w: %q", errUnknownBackend, c.Backend)
	}

	switch c.Format {
	case FormatJSON, FormatTable:
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, c.Format)
	}

	for _, name := range c.Classes {
		if _, ok := lookup(name); !ok {
			return fmt.Errorf("%w: %q (known: %s)", errUnknownClass, name, strings.Join(ClassNames(), ", "))
		}
	}

	if c.NATS != nil && c.NATS.Enabled && c.NATS.URL == "" {
		return errNATSURLRequired
	}

	if c.Database != nil && c.Database.Enabled {
		if c.Database.Host == "" {
			return errDBHostRequired
		}

		if c.Database.Database == "" {
			return errDBNameRequired
		}
	}

	return nil
}
