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
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.31.0"
	"google.golang.org/grpc/credentials"

	"github.com/carverauto/hwinventory/pkg/models"
)

var errCAParse = errors.New("failed to parse OTLP CA certificate")

const (
	defaultExportTimeout  = 10 * time.Second
	defaultMetricInterval = 15 * time.Second
)

// OTelConfig configures OTLP/gRPC export of logs, traces and metrics.
type OTelConfig struct {
	Enabled        bool              `json:"enabled"`
	Endpoint       string            `json:"endpoint"`
	Insecure       bool              `json:"insecure"`
	Headers        map[string]string `json:"headers,omitempty"`
	ServiceName    string            `json:"service_name"`
	Timeout        models.Duration   `json:"timeout"`
	MetricInterval models.Duration   `json:"metric_interval"`
	TLS            *models.TLSConfig `json:"tls,omitempty"`
}

func (c OTelConfig) exporting() bool {
	return c.Enabled && c.Endpoint != ""
}

// Telemetry owns the OTel providers of one run.
//
// A tracer provider is always installed so spans carry valid contexts; it
// only exports when OTLP is configured. Log and metric providers exist only
// while exporting.
type Telemetry struct {
	logs    *sdklog.LoggerProvider
	traces  *sdktrace.TracerProvider
	metrics *sdkmetric.MeterProvider
}

// StartTelemetry installs the global OTel providers described by cfg.
func StartTelemetry(ctx context.Context, cfg OTelConfig, serviceVersion string) (*Telemetry, error) {
	res, err := newResource(ctx, cfg.ServiceName, serviceVersion)
	if err != nil {
		return nil, err
	}

	t := &Telemetry{}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	if !cfg.exporting() {
		t.traces = sdktrace.NewTracerProvider(sdktrace.WithResource(res))
		otel.SetTracerProvider(t.traces)

		return t, nil
	}

	client, err := newClientSettings(cfg)
	if err != nil {
		return nil, err
	}

	if err := t.start(ctx, res, client, cfg); err != nil {
		return nil, errors.Join(err, t.Shutdown(ctx))
	}

	return t, nil
}

func (t *Telemetry) start(ctx context.Context, res *resource.Resource, client clientSettings, cfg OTelConfig) error {
	spanExporter, err := otlptracegrpc.New(ctx, client.traceOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	t.traces = sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(spanExporter),
	)
	otel.SetTracerProvider(t.traces)

	metricExporter, err := otlpmetricgrpc.New(ctx, client.metricOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create OTLP metric exporter: %w", err)
	}

	interval := time.Duration(cfg.MetricInterval)
	if interval <= 0 {
		interval = defaultMetricInterval
	}

	t.metrics = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(interval))),
	)
	otel.SetMeterProvider(t.metrics)

	logExporter, err := otlploggrpc.New(ctx, client.logOptions()...)
	if err != nil {
		return fmt.Errorf("failed to create OTLP log exporter: %w", err)
	}

	t.logs = sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter, sdklog.WithExportTimeout(client.timeout))),
	)
	global.SetLoggerProvider(t.logs)

	return nil
}

// Exporting reports whether any signal leaves the process.
func (t *Telemetry) Exporting() bool {
	return t.metrics != nil || t.logs != nil
}

// LogSink returns the writer that mirrors log entries to OTLP, if enabled.
func (t *Telemetry) LogSink() (io.Writer, bool) {
	if t.logs == nil {
		return nil, false
	}

	return NewOTelWriter(t.logs, defaultServiceName), true
}

// Shutdown flushes and stops every provider. Logs go last so entries written
// while the other providers stop are still delivered.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error

	if t.metrics != nil {
		errs = append(errs, t.metrics.Shutdown(ctx))
		t.metrics = nil
	}

	if t.traces != nil {
		errs = append(errs, t.traces.Shutdown(ctx))
		t.traces = nil
	}

	if t.logs != nil {
		errs = append(errs, t.logs.Shutdown(ctx))
		t.logs = nil
	}

	return errors.Join(errs...)
}

func newResource(ctx context.Context, serviceName, serviceVersion string) (*resource.Resource, error) {
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	res, err := resource.New(ctx,
		resource.WithHost(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	return res, nil
}

// clientSettings is the OTLP connection shared by the three exporters.
type clientSettings struct {
	endpoint string
	insecure bool
	headers  map[string]string
	creds    credentials.TransportCredentials
	timeout  time.Duration
}

func newClientSettings(cfg OTelConfig) (clientSettings, error) {
	s := clientSettings{
		endpoint: cfg.Endpoint,
		insecure: cfg.Insecure,
		headers:  cfg.Headers,
		timeout:  time.Duration(cfg.Timeout),
	}

	if s.timeout <= 0 {
		s.timeout = defaultExportTimeout
	}

	if !cfg.Insecure && cfg.TLS != nil {
		tlsConfig, err := clientTLS(cfg.TLS)
		if err != nil {
			return s, err
		}

		s.creds = credentials.NewTLS(tlsConfig)
	}

	return s, nil
}

func (s clientSettings) traceOptions() []otlptracegrpc.Option {
	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(s.endpoint),
		otlptracegrpc.WithTimeout(s.timeout),
	}

	switch {
	case s.insecure:
		opts = append(opts, otlptracegrpc.WithInsecure())
	case s.creds != nil:
		opts = append(opts, otlptracegrpc.WithTLSCredentials(s.creds))
	}

	if len(s.headers) > 0 {
		opts = append(opts, otlptracegrpc.WithHeaders(s.headers))
	}

	return opts
}

func (s clientSettings) metricOptions() []otlpmetricgrpc.Option {
	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(s.endpoint),
		otlpmetricgrpc.WithTimeout(s.timeout),
	}

	switch {
	case s.insecure:
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	case s.creds != nil:
		opts = append(opts, otlpmetricgrpc.WithTLSCredentials(s.creds))
	}

	if len(s.headers) > 0 {
		opts = append(opts, otlpmetricgrpc.WithHeaders(s.headers))
	}

	return opts
}

func (s clientSettings) logOptions() []otlploggrpc.Option {
	opts := []otlploggrpc.Option{
		otlploggrpc.WithEndpoint(s.endpoint),
		otlploggrpc.WithTimeout(s.timeout),
	}

	switch {
	case s.insecure:
		opts = append(opts, otlploggrpc.WithInsecure())
	case s.creds != nil:
		opts = append(opts, otlploggrpc.WithTLSCredentials(s.creds))
	}

	if len(s.headers) > 0 {
		opts = append(opts, otlploggrpc.WithHeaders(s.headers))
	}

	return opts
}

// clientTLS loads an optional client certificate and an optional CA bundle.
func clientTLS(cfg *models.TLSConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}

	if cfg.CertFile != "" && cfg.KeyFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load OTLP client certificate: %w", err)
		}

		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	if cfg.CAFile != "" {
		pem, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read OTLP CA certificate: %w", err)
		}

		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, errCAParse
		}

		tlsConfig.RootCAs = pool
	}

	return tlsConfig, nil
}
