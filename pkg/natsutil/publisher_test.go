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
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/hwinventory/pkg/inventory"
	"github.com/carverauto/hwinventory/pkg/logger"
	"github.com/carverauto/hwinventory/pkg/models"
)

var errTestFixture = errors.New("fixture error")

type fakePublisher struct {
	subject     string
	data        []byte
	optCount    int
	hasDeadline bool
	err         error
}

func (f *fakePublisher) Publish(ctx context.Context, subject string, data []byte, opts ...jetstream.PublishOpt) (*jetstream.PubAck, error) {
	f.subject = subject
	f.data = data
	f.optCount = len(opts)
	_, f.hasDeadline = ctx.Deadline()

	if f.err != nil {
		return nil, f.err
	}

	return &jetstream.PubAck{Stream: "HWINVENTORY", Sequence: 7}, nil
}

func TestPublishSnapshot(t *testing.T) {
	t.Parallel()

	fake := &fakePublisher{}
	pub := NewInventoryPublisher(fake, "hwinventory.snapshots", 5*time.Second, logger.NewTestLogger())

	collectedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	snap := &inventory.Snapshot{
		ID:          "0b9f7c3e-5d7e-4c59-9f43-62b0e0d1a001",
		HostID:      "4c4c4544-0042-3510-8052-b4c04f4d3232",
		Hostname:    "bench-01",
		Backend:     inventory.BackendWMI,
		CollectedAt: collectedAt,
		Classes:     []string{inventory.ClassProcessor},
	}

	require.NoError(t, pub.PublishSnapshot(context.Background(), snap))

	assert.Equal(t, "hwinventory.snapshots", fake.subject)
	assert.Equal(t, 1, fake.optCount)
	assert.True(t, fake.hasDeadline)

	var event struct {
		SpecVersion string             `json:"specversion"`
		ID          string             `json:"id"`
		Source      string             `json:"source"`
		Type        string             `json:"type"`
		Time        time.Time          `json:"time"`
		HostID      string             `json:"hostid"`
		Data        inventory.Snapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(fake.data, &event))

	assert.Equal(t, models.CloudEventsSpecVersion, event.SpecVersion)
	assert.Equal(t, models.EventTypeInventorySnapshot, event.Type)
	assert.Equal(t, "hwinventory/bench-01", event.Source)
	assert.NotEmpty(t, event.ID)
	assert.NotEqual(t, snap.ID, event.ID)
	assert.True(t, collectedAt.Equal(event.Time))
	assert.Equal(t, snap.HostID, event.HostID)
	assert.Equal(t, snap.ID, event.Data.ID)
	assert.Equal(t, []string{inventory.ClassProcessor}, event.Data.Classes)
}

func TestPublishSnapshotErrors(t *testing.T) {
	t.Parallel()

	fake := &fakePublisher{err: errTestFixture}
	pub := NewInventoryPublisher(fake, "hwinventory.snapshots", 0, logger.NewTestLogger())

	require.ErrorIs(t, pub.PublishSnapshot(context.Background(), nil), errNilSnapshot)

	err := pub.PublishSnapshot(context.Background(), &inventory.Snapshot{ID: "x"})
	require.ErrorIs(t, err, errTestFixture)
	assert.False(t, fake.hasDeadline)
}

func TestEnsureSubjectList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		subjects []string
		subject  string
		want     []string
	}{
		{
			name:    "adds subject when list empty",
			subject: "hwinventory.snapshots",
			want:    []string{"hwinventory.snapshots"},
		},
		{
			name:     "keeps list when wildcard matches",
			subjects: []string{"hwinventory.*"},
			subject:  "hwinventory.snapshots",
			want:     []string{"hwinventory.*"},
		},
		{
			name:     "keeps list when greater wildcard matches",
			subjects: []string{"hwinventory.>"},
			subject:  "hwinventory.snapshots.site1",
			want:     []string{"hwinventory.>"},
		},
		{
			name:     "appends when unmatched",
			subjects: []string{"events.syslog.*"},
			subject:  "hwinventory.snapshots",
			want:     []string{"events.syslog.*", "hwinventory.snapshots"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := ensureSubjectList(append([]string(nil), tc.subjects...), tc.subject)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatchesSubject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		pattern  string
		subject  string
		expected bool
	}{
		{"exact match", "hwinventory.snapshots", "hwinventory.snapshots", true},
		{"single wildcard", "hwinventory.*.site1", "hwinventory.snapshots.site1", true},
		{"greater wildcard", "hwinventory.>", "hwinventory.snapshots.site1", true},
		{"greater wildcard needs a token", "hwinventory.>", "hwinventory", false},
		{"no match length", "hwinventory.*", "hwinventory.snapshots.site1", false},
		{"no match tokens", "events.syslog.*", "hwinventory.snapshots", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, matchesSubject(tc.pattern, tc.subject))
		})
	}
}

func TestIsStreamMissingErr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{"jetstream no stream response", jetstream.ErrNoStreamResponse, true},
		{"jetstream stream not found", jetstream.ErrStreamNotFound, true},
		{"nats no stream response", nats.ErrNoStreamResponse, true},
		{"nats stream not found", nats.ErrStreamNotFound, true},
		{"nats no responders", nats.ErrNoResponders, true},
		{"other error", errTestFixture, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, isStreamMissingErr(tc.err))
		})
	}
}

func TestTLSConfig(t *testing.T) {
	t.Parallel()

	_, err := TLSConfig(nil)
	require.ErrorIs(t, err, ErrSecurityRequired)

	conf, err := TLSConfig(&models.SecurityConfig{ServerName: "nats.internal"})
	require.NoError(t, err)
	assert.Equal(t, "nats.internal", conf.ServerName)
	assert.Empty(t, conf.Certificates)
	assert.Nil(t, conf.RootCAs)

	badCA := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(badCA, []byte("not a certificate"), 0o600))

	_, err = TLSConfig(&models.SecurityConfig{TLS: models.TLSConfig{CAFile: badCA}})
	require.ErrorIs(t, err, ErrCAParsingFailed)

	_, err = TLSConfig(&models.SecurityConfig{TLS: models.TLSConfig{CAFile: filepath.Join(t.TempDir(), "missing.pem")}})
	require.Error(t, err)
}
