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

// Package models holds configuration and wire types shared across hwinventory packages.
package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var errInvalidDuration = errors.New("invalid duration")

// Duration is a time.Duration that reads JSON strings ("5s") or nanoseconds.
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		// parse numeric as nanoseconds
		*d = Duration(time.Duration(value))
		return nil
	case string:
		dur, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("%w: %w", errInvalidDuration, err)
		}

		*d = Duration(dur)

		return nil
	default:
		return errInvalidDuration
	}
}

// TLSConfig names the certificate files for a TLS client.
type TLSConfig struct {
	CertFile string `json:"cert_file"`
	KeyFile  string `json:"key_file"`
	CAFile   string `json:"ca_file"`
}

// SecurityConfig holds common security configuration. Relative TLS paths
// are resolved against CertDir when the configuration is loaded.
type SecurityConfig struct {
	CertDir    string    `json:"cert_dir"`
	ServerName string    `json:"server_name,omitempty"`
	TLS        TLSConfig `json:"tls"`
}

// NATSConfig enables publication of inventory snapshots to JetStream.
type NATSConfig struct {
	Enabled  bool            `json:"enabled"`
	URL      string          `json:"url"`
	Stream   string          `json:"stream"`
	Subject  string          `json:"subject"`
	Timeout  Duration        `json:"timeout"`
	Security *SecurityConfig `json:"security,omitempty"`
}

// DatabaseConfig enables persistence of inventory snapshots to Postgres.
type DatabaseConfig struct {
	Enabled         bool              `json:"enabled"`
	Host            string            `json:"host"`
	Port            int               `json:"port"`
	Database        string            `json:"database"`
	Username        string            `json:"username"`
	Password        string            `json:"password"`
	SSLMode         string            `json:"ssl_mode"`
	ApplicationName string            `json:"application_name"`
	MaxConnections  int32             `json:"max_connections"`
	MaxConnLifetime Duration          `json:"max_conn_lifetime"`
	RuntimeParams   map[string]string `json:"runtime_params,omitempty"`
	Security        *SecurityConfig   `json:"security,omitempty"`
}
