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

// Package natsutil publishes inventory snapshots to NATS JetStream.
package natsutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/carverauto/hwinventory/pkg/inventory"
	"github.com/carverauto/hwinventory/pkg/logger"
	"github.com/carverauto/hwinventory/pkg/models"
)

const eventSourcePrefix = "hwinventory/"

var errNilSnapshot = errors.New("snapshot is nil")

// Publisher is the subset of jetstream.JetStream used to publish events.
type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error)
}

// InventoryPublisher publishes snapshots as CloudEvents.
type InventoryPublisher struct {
	js      Publisher
	subject string
	timeout time.Duration
	logger  logger.Logger
}

// NewInventoryPublisher creates a publisher for subject. A zero timeout
// leaves the caller's context deadline in charge.
func NewInventoryPublisher(js Publisher, subject string, timeout time.Duration, log logger.Logger) *InventoryPublisher {
	return &InventoryPublisher{
		js:      js,
		subject: subject,
		timeout: timeout,
		logger:  log,
	}
}

// PublishSnapshot wraps snap in a CloudEvent and publishes it. The snapshot
// ID is used as the JetStream message ID so redelivery of the same snapshot
// is deduplicated by the server.
func (p *InventoryPublisher) PublishSnapshot(ctx context.Context, snap *inventory.Snapshot) error {
	if snap == nil {
		return errNilSnapshot
	}

	event := models.NewCloudEvent(eventSourcePrefix+snap.Hostname, models.EventTypeInventorySnapshot, snap.CollectedAt, snap)
	event.Subject = p.subject
	event.HostID = snap.HostID

	if err := event.Validate(); err != nil {
		return err
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory snapshot event: %w", err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	ack, err := p.js.Publish(ctx, p.subject, eventBytes, jetstream.WithMsgID(snap.ID))
	if err != nil {
		return fmt.Errorf("failed to publish inventory snapshot: %w", err)
	}

	p.logger.Info().
		Str("event_id", event.ID).
		Str("snapshot_id", snap.ID).
		Str("subject", p.subject).
		Uint64("seq", ack.Sequence).
		Bool("duplicate", ack.Duplicate).
		Msg("Published inventory snapshot")

	return nil
}

// Connect dials NATS, makes sure the stream captures cfg.Subject and returns
// a publisher. The caller owns the returned connection.
func Connect(ctx context.Context, cfg *models.NATSConfig, log logger.Logger) (*InventoryPublisher, *nats.Conn, error) {
	nc, err := ConnectWithSecurity(cfg.URL, cfg.Security, log)
	if err != nil {
		return nil, nil, err
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	if err := ensureStream(ctx, js, cfg.Stream, cfg.Subject, log); err != nil {
		nc.Close()
		return nil, nil, err
	}

	return NewInventoryPublisher(js, cfg.Subject, time.Duration(cfg.Timeout), log), nc, nil
}

// ConnectWithSecurity creates a NATS connection with optional TLS.
func ConnectWithSecurity(natsURL string, security *models.SecurityConfig, log logger.Logger, extraOpts ...nats.Option) (*nats.Conn, error) {
	var opts []nats.Option

	if security != nil {
		tlsConf, err := TLSConfig(security)
		if err != nil {
			return nil, fmt.Errorf("failed to build NATS TLS config: %w", err)
		}

		opts = append(opts, nats.Secure(tlsConf))
	}

	opts = append(opts,
		nats.Name("hwinventory"),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			log.Error().Err(err).Msg("NATS error")
		}),
		nats.ConnectHandler(func(nc *nats.Conn) {
			log.Debug().Str("url", nc.ConnectedUrl()).Msg("Connected to NATS")
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	)

	opts = append(opts, extraOpts...)

	nc, err := nats.Connect(natsURL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return nc, nil
}

func ensureStream(ctx context.Context, js jetstream.JetStream, streamName, subject string, log logger.Logger) error {
	stream, err := js.Stream(ctx, streamName)

	switch {
	case err == nil:
		info := stream.CachedInfo()
		subjects := ensureSubjectList(append([]string(nil), info.Config.Subjects...), subject)

		if len(subjects) == len(info.Config.Subjects) {
			return nil
		}

		cfg := info.Config
		cfg.Subjects = subjects

		if _, err := js.UpdateStream(ctx, cfg); err != nil {
			return fmt.Errorf("failed to add subject %s to stream %s: %w", subject, streamName, err)
		}

		log.Info().Str("stream", streamName).Str("subject", subject).Msg("Added subject to NATS stream")

		return nil
	case isStreamMissingErr(err):
		if _, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
			Name:     streamName,
			Subjects: []string{subject},
		}); err != nil {
			return fmt.Errorf("failed to create stream %s: %w", streamName, err)
		}

		log.Info().Str("stream", streamName).Msg("Created NATS JetStream stream")

		return nil
	default:
		return fmt.Errorf("failed to look up stream %s: %w", streamName, err)
	}
}

// ensureSubjectList appends subject unless an existing pattern already matches it.
func ensureSubjectList(subjects []string, subject string) []string {
	for _, pattern := range subjects {
		if matchesSubject(pattern, subject) {
			return subjects
		}
	}

	return append(subjects, subject)
}

// matchesSubject applies NATS wildcard rules: "*" matches one token and a
// trailing ">" matches one or more.
func matchesSubject(pattern, subject string) bool {
	pTokens := strings.Split(pattern, ".")
	sTokens := strings.Split(subject, ".")

	for i, p := range pTokens {
		if p == ">" {
			return i == len(pTokens)-1 && len(sTokens) > i
		}

		if i >= len(sTokens) {
			return false
		}

		if p != "*" && p != sTokens[i] {
			return false
		}
	}

	return len(pTokens) == len(sTokens)
}

func isStreamMissingErr(err error) bool {
	return errors.Is(err, jetstream.ErrStreamNotFound) ||
		errors.Is(err, jetstream.ErrNoStreamResponse) ||
		errors.Is(err, nats.ErrStreamNotFound) ||
		errors.Is(err, nats.ErrNoStreamResponse) ||
		errors.Is(err, nats.ErrNoResponders)
}
