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

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCloudEvent(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 6, 1, 14, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	e := NewCloudEvent("hwinventory/bench-01", EventTypeInventorySnapshot, at, map[string]int{"count": 1})

	require.NoError(t, e.Validate())
	assert.Equal(t, CloudEventsSpecVersion, e.SpecVersion)
	assert.Equal(t, DataContentTypeJSON, e.DataContentType)
	assert.Len(t, e.ID, 36)
	assert.Equal(t, time.UTC, e.Time.Location())
	assert.True(t, at.Equal(*e.Time))

	other := NewCloudEvent("hwinventory/bench-01", EventTypeInventorySnapshot, at, nil)
	assert.NotEqual(t, e.ID, other.ID)

	data, err := json.Marshal(other)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"data"`)
	assert.NotContains(t, string(data), `"hostid"`)
}

func TestCloudEventValidate(t *testing.T) {
	t.Parallel()

	e := CloudEvent{SpecVersion: CloudEventsSpecVersion, ID: "1", Type: EventTypeInventorySnapshot}
	require.ErrorIs(t, e.Validate(), errIncompleteEvent)

	e.Source = "hwinventory/bench-01"
	require.NoError(t, e.Validate())
}

func TestDurationJSON(t *testing.T) {
	t.Parallel()

	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"1m30s"`), &d))
	assert.Equal(t, Duration(90*time.Second), d)

	require.NoError(t, json.Unmarshal([]byte(`2000000000`), &d))
	assert.Equal(t, Duration(2*time.Second), d)

	require.ErrorIs(t, json.Unmarshal([]byte(`"soon"`), &d), errInvalidDuration)
	require.ErrorIs(t, json.Unmarshal([]byte(`true`), &d), errInvalidDuration)

	out, err := json.Marshal(Duration(5 * time.Second))
	require.NoError(t, err)
	assert.JSONEq(t, `"5s"`, string(out))
}
