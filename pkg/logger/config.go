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

package logger

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/carverauto/hwinventory/pkg/models"
)

const defaultServiceName = "hwinventory"

// DefaultConfig reads logging settings from HWINVENTORY_LOG_* and the
// standard OTEL_* exporter variables.
func DefaultConfig() *Config {
	return &Config{
		Level:  envOr("HWINVENTORY_LOG_LEVEL", "info"),
		Debug:  envBool("HWINVENTORY_DEBUG"),
		Output: envOr("HWINVENTORY_LOG_OUTPUT", OutputStderr),
		Format: envOr("HWINVENTORY_LOG_FORMAT", FormatJSON),
		OTel:   DefaultOTelConfig(),
	}
}

// DefaultOTelConfig enables export when OTEL_EXPORTER_OTLP_ENDPOINT is set,
// unless OTEL_SDK_DISABLED is true.
func DefaultOTelConfig() OTelConfig {
	endpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")

	return OTelConfig{
		Enabled:     endpoint != "" && !envBool("OTEL_SDK_DISABLED"),
		Endpoint:    strings.TrimPrefix(strings.TrimPrefix(endpoint, "http://"), "https://"),
		Insecure:    envBool("OTEL_EXPORTER_OTLP_INSECURE") || strings.HasPrefix(endpoint, "http://"),
		Headers:     parseHeaders(os.Getenv("OTEL_EXPORTER_OTLP_HEADERS")),
		ServiceName: envOr("OTEL_SERVICE_NAME", defaultServiceName),
		Timeout:     models.Duration(parseTimeout(os.Getenv("OTEL_EXPORTER_OTLP_TIMEOUT"))),
	}
}

// parseHeaders reads the "k1=v1,k2=v2" form.
func parseHeaders(raw string) map[string]string {
	if raw == "" {
		return nil
	}

	headers := make(map[string]string)

	for _, pair := range strings.Split(raw, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(k) == "" {
			continue
		}

		headers[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}

	return headers
}

// parseTimeout accepts milliseconds, as OTEL_EXPORTER_OTLP_TIMEOUT defines
// it, or a Go duration string.
func parseTimeout(raw string) time.Duration {
	if raw == "" {
		return 0
	}

	if ms, err := strconv.Atoi(raw); err == nil {
		return time.Duration(ms) * time.Millisecond
	}

	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}

	return 0
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func envBool(key string) bool {
	b, err := strconv.ParseBool(os.Getenv(key))

	return err == nil && b
}
