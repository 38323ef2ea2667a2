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

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/hwinventory/pkg/logger"
	"github.com/carverauto/hwinventory/pkg/models"
)

var errTestInvalid = errors.New("backend is required")

type testConfig struct {
	Backend  string                 `json:"backend"`
	Classes  []string               `json:"classes"`
	Managed  bool                   `json:"managed"`
	Timeout  models.Duration        `json:"timeout"`
	Limit    int32                  `json:"limit"`
	NATS     *models.NATSConfig     `json:"nats,omitempty"`
	Database models.DatabaseConfig  `json:"database"`
	Labels   map[string]string      `json:"labels"`
	Ignored  string                 `json:"-"`
	Security *models.SecurityConfig `json:"security"`
}

func (c *testConfig) Validate() error {
	if c.Backend == "" {
		return errTestInvalid
	}

	return nil
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "hwinventory.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoadAndValidateFromFile(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")

	path := writeConfig(t, `{
		"backend": "wmi",
		"classes": ["processor", "bios"],
		"timeout": "30s",
		"nats": {"enabled": true, "url": "nats://localhost:4222", "security": {"cert_dir": "/etc/hwinventory/certs", "tls": {"cert_file": "client.pem", "ca_file": "/abs/root.pem"}}}
	}`)

	var cfg testConfig
	require.NoError(t, NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), path, &cfg))

	assert.Equal(t, "wmi", cfg.Backend)
	assert.Equal(t, []string{"processor", "bios"}, cfg.Classes)
	assert.Equal(t, models.Duration(30*time.Second), cfg.Timeout)
	require.NotNil(t, cfg.NATS)
	assert.Equal(t, "/etc/hwinventory/certs/client.pem", cfg.NATS.Security.TLS.CertFile)
	assert.Equal(t, "/abs/root.pem", cfg.NATS.Security.TLS.CAFile)
	assert.Empty(t, cfg.NATS.Security.TLS.KeyFile)
}

func TestLoadAndValidateRunsValidator(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "file")

	path := writeConfig(t, `{"classes": ["processor"]}`)

	var cfg testConfig
	err := NewConfig(nil).LoadAndValidate(context.Background(), path, &cfg)
	require.ErrorIs(t, err, errTestInvalid)
}

func TestLoadAndValidateMissingFile(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "")

	var cfg testConfig
	err := NewConfig(nil).LoadAndValidate(context.Background(), filepath.Join(t.TempDir(), "absent.json"), &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoadAndValidateRejectsUnknownSource(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "kv")

	var cfg testConfig
	err := NewConfig(nil).LoadAndValidate(context.Background(), "", &cfg)
	require.ErrorIs(t, err, errInvalidConfigSource)
}

func TestEnvLoaderReadsFields(t *testing.T) {
	t.Setenv("CONFIG_SOURCE", "env")
	t.Setenv("CONFIG_ENV_PREFIX", "")
	t.Setenv("HWINVENTORY_CONFIG_JSON", "")
	t.Setenv("HWINVENTORY_BACKEND", "host")
	t.Setenv("HWINVENTORY_CLASSES", "processor, memory")
	t.Setenv("HWINVENTORY_MANAGED", "true")
	t.Setenv("HWINVENTORY_TIMEOUT", "2m")
	t.Setenv("HWINVENTORY_LIMIT", "12")
	t.Setenv("HWINVENTORY_LABELS", `{"site":"lab"}`)
	t.Setenv("HWINVENTORY_DATABASE_HOST", "db.internal")
	t.Setenv("HWINVENTORY_DATABASE_PORT", "6432")
	t.Setenv("HWINVENTORY_NATS_URL", "nats://nats:4222")

	var cfg testConfig
	require.NoError(t, NewConfig(logger.NewTestLogger()).LoadAndValidate(context.Background(), "", &cfg))

	assert.Equal(t, "host", cfg.Backend)
	assert.Equal(t, []string{"processor", "memory"}, cfg.Classes)
	assert.True(t, cfg.Managed)
	assert.Equal(t, models.Duration(2*time.Minute), cfg.Timeout)
	assert.Equal(t, int32(12), cfg.Limit)
	assert.Equal(t, map[string]string{"site": "lab"}, cfg.Labels)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 6432, cfg.Database.Port)
	require.NotNil(t, cfg.NATS)
	assert.Equal(t, "nats://nats:4222", cfg.NATS.URL)
	assert.Nil(t, cfg.Security, "untouched pointer sections stay nil")
}

func TestEnvLoaderIgnoresMalformedValues(t *testing.T) {
	t.Setenv("APP_BACKEND", "wmi")
	t.Setenv("APP_MANAGED", "sometimes")
	t.Setenv("APP_CONFIG_JSON", "")

	var cfg testConfig
	require.NoError(t, NewEnvConfigLoader(logger.NewTestLogger(), "APP_").Load(context.Background(), "", &cfg))

	assert.Equal(t, "wmi", cfg.Backend)
	assert.False(t, cfg.Managed)
}

func TestEnvLoaderConfigJSON(t *testing.T) {
	t.Setenv("APP_CONFIG_JSON", `{"backend":"wmi","limit":3}`)

	var cfg testConfig
	require.NoError(t, NewEnvConfigLoader(logger.NewTestLogger(), "APP_").Load(context.Background(), "", &cfg))

	assert.Equal(t, "wmi", cfg.Backend)
	assert.Equal(t, int32(3), cfg.Limit)
}

func TestEnvLoaderRejectsNonStruct(t *testing.T) {
	t.Setenv("APP_CONFIG_JSON", "")

	loader := NewEnvConfigLoader(logger.NewTestLogger(), "APP_")

	var s string
	require.ErrorIs(t, loader.Load(context.Background(), "", &s), ErrDstMustBePointerToStruct)

	var nilPtr *testConfig
	require.ErrorIs(t, loader.Load(context.Background(), "", nilPtr), ErrDstMustBeNonNilPointer)
}

func TestFileLoaderRejectsUnknownKeys(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `{"backend": "wmi", "clases": ["bios"]}`)

	var cfg testConfig
	err := (&FileConfigLoader{}).Load(context.Background(), path, &cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clases")
}

func TestFileLoaderRejectsTrailingData(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `{"backend": "wmi"} {"backend": "host"}`)

	var cfg testConfig
	err := (&FileConfigLoader{}).Load(context.Background(), path, &cfg)
	require.ErrorIs(t, err, errTrailingData)
}

func TestFileLoaderReadsStdin(t *testing.T) {
	t.Parallel()

	loader := &FileConfigLoader{stdin: strings.NewReader(`{"backend": "host", "limit": 2}`)}

	var cfg testConfig
	require.NoError(t, loader.Load(context.Background(), StdinPath, &cfg))
	assert.Equal(t, "host", cfg.Backend)
	assert.Equal(t, int32(2), cfg.Limit)
}
