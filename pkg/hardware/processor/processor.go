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

// Package processor retrieves CPU packages, their caches and the
// processor-to-cache associations.
package processor

import (
	"github.com/carverauto/hwinventory/pkg/wmi/cast"
	"github.com/carverauto/hwinventory/pkg/wmi/mapper"
	"github.com/carverauto/hwinventory/pkg/wmi/query"
	"github.com/carverauto/hwinventory/pkg/wmi/service"
	"github.com/carverauto/hwinventory/pkg/wmi/session"
)

// ProcessorProperty is a property key of Win32_Processor.
type ProcessorProperty string

const (
	ProcessorDeviceID                      ProcessorProperty = "DeviceID"
	ProcessorName                          ProcessorProperty = "Name"
	ProcessorNumberOfCores                 ProcessorProperty = "NumberOfCores"
	ProcessorThreadCount                   ProcessorProperty = "ThreadCount"
	ProcessorNumberOfLogicalProcessors     ProcessorProperty = "NumberOfLogicalProcessors"
	ProcessorManufacturer                  ProcessorProperty = "Manufacturer"
	ProcessorAddressWidth                  ProcessorProperty = "AddressWidth"
	ProcessorL2CacheSize                   ProcessorProperty = "L2CacheSize"
	ProcessorL3CacheSize                   ProcessorProperty = "L3CacheSize"
	ProcessorMaxClockSpeed                 ProcessorProperty = "MaxClockSpeed"
	ProcessorExtClock                      ProcessorProperty = "ExtClock"
	ProcessorSocketDesignation             ProcessorProperty = "SocketDesignation"
	ProcessorVersion                       ProcessorProperty = "Version"
	ProcessorCaption                       ProcessorProperty = "Caption"
	ProcessorFamily                        ProcessorProperty = "Family"
	ProcessorStepping                      ProcessorProperty = "Stepping"
	ProcessorVirtualizationFirmwareEnabled ProcessorProperty = "VirtualizationFirmwareEnabled"
	ProcessorProcessorID                   ProcessorProperty = "ProcessorId"
)

// ProcessorProperties is the full ordered key set of Win32_Processor.
var ProcessorProperties = []ProcessorProperty{
	ProcessorDeviceID,
	ProcessorName,
	ProcessorNumberOfCores,
	ProcessorThreadCount,
	ProcessorNumberOfLogicalProcessors,
	ProcessorManufacturer,
	ProcessorAddressWidth,
	ProcessorL2CacheSize,
	ProcessorL3CacheSize,
	ProcessorMaxClockSpeed,
	ProcessorExtClock,
	ProcessorSocketDesignation,
	ProcessorVersion,
	ProcessorCaption,
	ProcessorFamily,
	ProcessorStepping,
	ProcessorVirtualizationFirmwareEnabled,
	ProcessorProcessorID,
}

// ProcessorClass selects Win32_Processor.
var ProcessorClass = query.Class[ProcessorProperty]{
	Namespace:  query.DefaultNamespace,
	Name:       "Win32_Processor",
	Properties: ProcessorProperties,
}

// Processor is one physical CPU package. Cache sizes are in KiB and clock
// speeds in MHz.
type Processor struct {
	DeviceID                      cast.Nullable[string] `json:"device_id"`
	Name                          cast.Nullable[string] `json:"name"`
	NumberOfCores                 cast.Nullable[int32]  `json:"number_of_cores"`
	ThreadCount                   cast.Nullable[int32]  `json:"thread_count"`
	NumberOfLogicalProcessors     cast.Nullable[int32]  `json:"number_of_logical_processors"`
	Manufacturer                  cast.Nullable[string] `json:"manufacturer"`
	AddressWidth                  cast.Nullable[int32]  `json:"address_width"`
	L2CacheSize                   cast.Nullable[int32]  `json:"l2_cache_size"`
	L3CacheSize                   cast.Nullable[int32]  `json:"l3_cache_size"`
	MaxClockSpeed                 cast.Nullable[int32]  `json:"max_clock_speed"`
	ExtClock                      cast.Nullable[int32]  `json:"ext_clock"`
	SocketDesignation             cast.Nullable[string] `json:"socket_designation"`
	Version                       cast.Nullable[string] `json:"version"`
	Caption                       cast.Nullable[string] `json:"caption"`
	Family                        cast.Nullable[int32]  `json:"family"`
	Stepping                      cast.Nullable[string] `json:"stepping"`
	VirtualizationFirmwareEnabled cast.Nullable[bool]   `json:"virtualization_firmware_enabled"`
	ProcessorID                   cast.Nullable[string] `json:"processor_id"`
}

// ProcessorMapper binds every Win32_Processor property to its Processor field.
var ProcessorMapper = mapper.NewTable(
	mapper.String(ProcessorDeviceID, func(e *Processor) *cast.Nullable[string] { return &e.DeviceID }),
	mapper.String(ProcessorName, func(e *Processor) *cast.Nullable[string] { return &e.Name }),
	mapper.Int32(ProcessorNumberOfCores, func(e *Processor) *cast.Nullable[int32] { return &e.NumberOfCores }),
	mapper.Int32(ProcessorThreadCount, func(e *Processor) *cast.Nullable[int32] { return &e.ThreadCount }),
	mapper.Int32(ProcessorNumberOfLogicalProcessors, func(e *Processor) *cast.Nullable[int32] { return &e.NumberOfLogicalProcessors }),
	mapper.String(ProcessorManufacturer, func(e *Processor) *cast.Nullable[string] { return &e.Manufacturer }),
	mapper.Int32(ProcessorAddressWidth, func(e *Processor) *cast.Nullable[int32] { return &e.AddressWidth }),
	mapper.Int32(ProcessorL2CacheSize, func(e *Processor) *cast.Nullable[int32] { return &e.L2CacheSize }),
	mapper.Int32(ProcessorL3CacheSize, func(e *Processor) *cast.Nullable[int32] { return &e.L3CacheSize }),
	mapper.Int32(ProcessorMaxClockSpeed, func(e *Processor) *cast.Nullable[int32] { return &e.MaxClockSpeed }),
	mapper.Int32(ProcessorExtClock, func(e *Processor) *cast.Nullable[int32] { return &e.ExtClock }),
	mapper.String(ProcessorSocketDesignation, func(e *Processor) *cast.Nullable[string] { return &e.SocketDesignation }),
	mapper.String(ProcessorVersion, func(e *Processor) *cast.Nullable[string] { return &e.Version }),
	mapper.String(ProcessorCaption, func(e *Processor) *cast.Nullable[string] { return &e.Caption }),
	mapper.Int32(ProcessorFamily, func(e *Processor) *cast.Nullable[int32] { return &e.Family }),
	mapper.String(ProcessorStepping, func(e *Processor) *cast.Nullable[string] { return &e.Stepping }),
	mapper.Bool(ProcessorVirtualizationFirmwareEnabled, func(e *Processor) *cast.Nullable[bool] { return &e.VirtualizationFirmwareEnabled }),
	mapper.String(ProcessorProcessorID, func(e *Processor) *cast.Nullable[string] { return &e.ProcessorID }),
)

// NewProcessorService returns the retrieval pair for Win32_Processor.
func NewProcessorService(exec query.Executor, guard *session.Guard) *service.Service[Processor, ProcessorProperty] {
	return service.New(ProcessorClass, ProcessorMapper, exec, guard)
}
