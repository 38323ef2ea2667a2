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

package inventory

import (
	"time"

	"github.com/carverauto/hwinventory/pkg/hardware/display"
	"github.com/carverauto/hwinventory/pkg/hardware/mainboard"
	"github.com/carverauto/hwinventory/pkg/hardware/memory"
	"github.com/carverauto/hwinventory/pkg/hardware/processor"
)

// Snapshot is the hardware inventory of one host at one point in time.
type Snapshot struct {
	ID          string    `json:"id"`
	HostID      string    `json:"host_id,omitempty"`
	Hostname    string    `json:"hostname,omitempty"`
	Backend     string    `json:"backend"`
	CollectedAt time.Time `json:"collected_at"`
	Classes     []string  `json:"classes"`
	Skipped     []string  `json:"skipped,omitempty"`

	Processors       []processor.Processor        `json:"processors,omitempty"`
	Caches           []processor.Cache            `json:"caches,omitempty"`
	ProcessorMemory  []processor.AssociatedMemory `json:"processor_memory,omitempty"`
	PhysicalMemory   []memory.PhysicalMemory      `json:"physical_memory,omitempty"`
	VideoControllers []display.VideoController    `json:"video_controllers,omitempty"`
	Monitors         []display.Monitor            `json:"monitors,omitempty"`
	BIOS             []mainboard.BIOS             `json:"bios,omitempty"`
	Baseboards       []mainboard.Baseboard        `json:"baseboards,omitempty"`
	PortConnectors   []mainboard.PortConnector    `json:"port_connectors,omitempty"`
}

// Section is the collected entities of one class.
type Section struct {
	Name     string
	WMIClass string
	// Items is a slice of the class's entity type.
	Items any
	Count int
}

// Sections returns the collected classes in collection order.
func (s *Snapshot) Sections() []Section {
	sections := make([]Section, 0, len(s.Classes))

	for _, name := range s.Classes {
		e, ok := lookup(name)
		if !ok {
			continue
		}

		items, count := e.items(s)
		sections = append(sections, Section{Name: e.name, WMIClass: e.wmiClass, Items: items, Count: count})
	}

	return sections
}
