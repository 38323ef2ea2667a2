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
	"context"

	"github.com/carverauto/hwinventory/pkg/hardware/display"
	"github.com/carverauto/hwinventory/pkg/hardware/mainboard"
	"github.com/carverauto/hwinventory/pkg/hardware/memory"
	"github.com/carverauto/hwinventory/pkg/hardware/processor"
	"github.com/carverauto/hwinventory/pkg/wmi/query"
	"github.com/carverauto/hwinventory/pkg/wmi/service"
	"github.com/carverauto/hwinventory/pkg/wmi/session"
)

// Short class names accepted in configuration and on the command line.
const (
	ClassProcessor       = "processor"
	ClassCache           = "cache"
	ClassProcessorMemory = "processor_memory"
	ClassPhysicalMemory  = "physical_memory"
	ClassVideoController = "video_controller"
	ClassMonitor         = "monitor"
	ClassBIOS            = "bios"
	ClassBaseboard       = "baseboard"
	ClassPortConnector   = "port_connector"
)

// collectFunc retrieves one class into the snapshot and returns the entity count.
type collectFunc func(ctx context.Context, exec query.Executor, guard *session.Guard, managed bool, snap *Snapshot) (int, error)

type classEntry struct {
	name     string
	wmiClass string
	collect  collectFunc
	items    func(*Snapshot) (any, int)
}

func newEntry[E any, K query.Key](
	name string,
	class query.Class[K],
	newService func(query.Executor, *session.Guard) *service.Service[E, K],
	field func(*Snapshot) *[]E,
) classEntry {
	return classEntry{
		name:     name,
		wmiClass: class.Name,
		collect: func(ctx context.Context, exec query.Executor, guard *session.Guard, managed bool, snap *Snapshot) (int, error) {
			svc := newService(exec, guard)

			var (
				items []E
				err   error
			)

			if managed {
				items, err = svc.GetManaged(ctx)
			} else {
				items, err = svc.Get(ctx)
			}

			if err != nil {
				return 0, err
			}

			*field(snap) = items

			return len(items), nil
		},
		items: func(s *Snapshot) (any, int) {
			items := *field(s)
			return items, len(items)
		},
	}
}

//nolint:gochecknoglobals // static class registry
var registry = []classEntry{
	newEntry(ClassProcessor, processor.ProcessorClass, processor.NewProcessorService,
		func(s *Snapshot) *[]processor.Processor { return &s.Processors }),
	newEntry(ClassCache, processor.CacheClass, processor.NewCacheService,
		func(s *Snapshot) *[]processor.Cache { return &s.Caches }),
	newEntry(ClassProcessorMemory, processor.AssociatedMemoryClass, processor.NewAssociatedMemoryService,
		func(s *Snapshot) *[]processor.AssociatedMemory { return &s.ProcessorMemory }),
	newEntry(ClassPhysicalMemory, memory.PhysicalMemoryClass, memory.NewPhysicalMemoryService,
		func(s *Snapshot) *[]memory.PhysicalMemory { return &s.PhysicalMemory }),
	newEntry(ClassVideoController, display.VideoControllerClass, display.NewVideoControllerService,
		func(s *Snapshot) *[]display.VideoController { return &s.VideoControllers }),
	newEntry(ClassMonitor, display.MonitorClass, display.NewMonitorService,
		func(s *Snapshot) *[]display.Monitor { return &s.Monitors }),
	newEntry(ClassBIOS, mainboard.BIOSClass, mainboard.NewBIOSService,
		func(s *Snapshot) *[]mainboard.BIOS { return &s.BIOS }),
	newEntry(ClassBaseboard, mainboard.BaseboardClass, mainboard.NewBaseboardService,
		func(s *Snapshot) *[]mainboard.Baseboard { return &s.Baseboards }),
	newEntry(ClassPortConnector, mainboard.PortConnectorClass, mainboard.NewPortConnectorService,
		func(s *Snapshot) *[]mainboard.PortConnector { return &s.PortConnectors }),
}

// ClassNames returns every registered short class name in collection order.
func ClassNames() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.name
	}

	return names
}

// WMIClass returns the management class behind a short name.
func WMIClass(name string) (string, bool) {
	e, ok := lookup(name)
	if !ok {
		return "", false
	}

	return e.wmiClass, true
}

func lookup(name string) (classEntry, bool) {
	for _, e := range registry {
		if e.name == name {
			return e, true
		}
	}

	return classEntry{}, false
}
