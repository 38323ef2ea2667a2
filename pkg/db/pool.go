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

// Package db persists inventory snapshots to Postgres.
package db

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/carverauto/hwinventory/pkg/logger"
	"github.com/carverauto/hwinventory/pkg/models"
)

const (
	defaultPort       = 5432
	sslModeDisable    = "disable"
	sslModeVerifyFull = "verify-full"
)

var (
	errNilDatabaseConfig   = errors.New("database config is nil")
	errTLSWithSSLDisabled  = errors.New("database tls: ssl_mode disable conflicts with tls settings")
	errTLSFilesRequired    = errors.New("database tls: cert_file, key_file and ca_file are required")
	errCACertAppendFailure = errors.New("database tls: unable to append CA certificate")
)

// NewPool dials the configured database and returns a pgx pool.
func NewPool(ctx context.Context, cfg *models.DatabaseConfig, log logger.Logger) (*pgxpool.Pool, error) {
	connURL, err := buildConnURL(cfg)
	if err != nil {
		return nil, err
	}

	poolConfig, err := pgxpool.ParseConfig(connURL.String())
	if err != nil {
		return nil, fmt.Errorf("db: failed to parse connection string: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = cfg.MaxConnections
	}

	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime)
	}

	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = make(map[string]string)
	}

	for k, v := range cfg.RuntimeParams {
		if k == "" {
			continue
		}

		poolConfig.ConnConfig.RuntimeParams[k] = v
	}

	tlsConfig, err := buildTLSConfig(cfg)
	if err != nil {
		return nil, err
	}

	if tlsConfig != nil {
		poolConfig.ConnConfig.TLSConfig = tlsConfig
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("db: failed to initialize pool: %w", err)
	}

	log.Info().
		Str("host", cfg.Host).
		Int("port", portOrDefault(cfg.Port)).
		Int32("max_conns", poolConfig.MaxConns).
		Msg("Connected to inventory database")

	return pool, nil
}

func buildConnURL(cfg *models.DatabaseConfig) (*url.URL, error) {
	if cfg == nil {
		return nil, errNilDatabaseConfig
	}

	connURL := &url.URL{
		Scheme: "postgres",
		Host:   cfg.Host + ":" + strconv.Itoa(portOrDefault(cfg.Port)),
		Path:   "/" + cfg.Database,
	}

	if cfg.Username != "" {
		if cfg.Password != "" {
			connURL.User = url.UserPassword(cfg.Username, cfg.Password)
		} else {
			connURL.User = url.User(cfg.Username)
		}
	}

	query := connURL.Query()

	hasTLS := cfg.Security != nil

	sslMode := cfg.SSLMode

	switch {
	case sslMode == "" && hasTLS:
		sslMode = sslModeVerifyFull
	case sslMode == "":
		sslMode = sslModeDisable
	case sslMode == sslModeDisable && hasTLS:
		return nil, errTLSWithSSLDisabled
	}

	query.Set("sslmode", sslMode)

	if cfg.ApplicationName != "" {
		query.Set("application_name", cfg.ApplicationName)
	}

	connURL.RawQuery = query.Encode()

	return connURL, nil
}

func buildTLSConfig(cfg *models.DatabaseConfig) (*tls.Config, error) {
	if cfg.Security == nil {
		return nil, nil
	}

	files := cfg.Security.TLS
	if files.CertFile == "" || files.KeyFile == "" || files.CAFile == "" {
		return nil, errTLSFilesRequired
	}

	clientCert, err := tls.LoadX509KeyPair(files.CertFile, files.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("database tls: failed to load client keypair: %w", err)
	}

	caBytes, err := os.ReadFile(files.CAFile)
	if err != nil {
		return nil, fmt.Errorf("database tls: failed to read CA file: %w", err)
	}

	caPool := x509.NewCertPool()
	if !caPool.AppendCertsFromPEM(caBytes) {
		return nil, errCACertAppendFailure
	}

	serverName := cfg.Security.ServerName
	if serverName == "" {
		serverName = cfg.Host
	}

	return &tls.Config{
		Certificates: []tls.Certificate{clientCert},
		RootCAs:      caPool,
		MinVersion:   tls.VersionTLS12,
		ServerName:   serverName,
	}, nil
}

func portOrDefault(port int) int {
	if port == 0 {
		return defaultPort
	}

	return port
}
