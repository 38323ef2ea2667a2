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

package natsutil

import (
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"

	"github.com/carverauto/hwinventory/pkg/models"
)

var (
	// ErrSecurityRequired is returned when TLS is requested without a security section.
	ErrSecurityRequired = errors.New("security configuration required")
	// ErrCAParsingFailed is returned when CA certificate cannot be parsed
	ErrCAParsingFailed = errors.New("failed to parse CA certificate")
)

// TLSConfig builds a tls.Config for connecting to NATS. A client certificate
// is loaded when both cert and key are set; the CA file, when set, replaces
// the system roots. Paths are expected to be resolved by the config loader.
func TLSConfig(sec *models.SecurityConfig) (*tls.Config, error) {
	if sec == nil {
		return nil, ErrSecurityRequired
	}

	conf := &tls.Config{
		ServerName: sec.ServerName,
		MinVersion: tls.VersionTLS12,
	}

	if sec.TLS.CertFile != "" && sec.TLS.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(sec.TLS.CertFile, sec.TLS.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load client certificate: %w", err)
		}

		conf.Certificates = []tls.Certificate{cert}
	}

	if sec.TLS.CAFile != "" {
		caCert, err := os.ReadFile(sec.TLS.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}

		caPool := x509.NewCertPool()
		if !caPool.AppendCertsFromPEM(caCert) {
			return nil, ErrCAParsingFailed
		}

		conf.RootCAs = caPool
	}

	return conf, nil
}
