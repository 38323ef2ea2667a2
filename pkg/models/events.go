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
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	// CloudEventsSpecVersion is the CloudEvents version emitted by hwinventory.
	CloudEventsSpecVersion = "1.0"
	// EventTypeInventorySnapshot marks a complete hardware snapshot.
	EventTypeInventorySnapshot = "com.carverauto.hwinventory.snapshot"
	// DataContentTypeJSON is the only payload encoding hwinventory emits.
	DataContentTypeJSON = "application/json"
)

var errIncompleteEvent = errors.New("cloudevent requires id, source, type and specversion")

// CloudEvent is a structured-mode CloudEvents envelope. HostID is carried as
// the "hostid" extension attribute so consumers can route without decoding data.
type CloudEvent struct {
	SpecVersion     string     `json:"specversion"`
	ID              string     `json:"id"`
	Source          string     `json:"source"`
	Type            string     `json:"type"`
	DataContentType string     `json:"datacontenttype"`
	Subject         string     `json:"subject,omitempty"`
	Time            *time.Time `json:"time,omitempty"`
	HostID          string     `json:"hostid,omitempty"`
	Data            any        `json:"data,omitempty"`
}

// NewCloudEvent returns a JSON envelope with a random ID.
func NewCloudEvent(source, eventType string, at time.Time, data any) CloudEvent {
	at = at.UTC()

	return CloudEvent{
		SpecVersion:     CloudEventsSpecVersion,
		ID:              uuid.NewString(),
		Source:          source,
		Type:            eventType,
		DataContentType: DataContentTypeJSON,
		Time:            &at,
		Data:            data,
	}
}

// Validate checks the attributes CloudEvents marks as required.
func (e *CloudEvent) Validate() error {
	if e.ID == "" || e.Source == "" || e.Type == "" || e.SpecVersion == "" {
		return errIncompleteEvent
	}

	return nil
}
