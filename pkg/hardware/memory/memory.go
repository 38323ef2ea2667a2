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

// Package memory retrieves installed memory modules.
package memory

import (
	"github.com/carverauto/hwinventory/pkg/wmi/cast"
	"github.com/carverauto/hwinventory/pkg/wmi/mapper"
	"github.com/carverauto/hwinventory/pkg/wmi/query"
	"github.com/carverauto/hwinventory/pkg/wmi/service"
	"github.com/carverauto/hwinventory/pkg/wmi/session"
)

// PhysicalMemoryProperty is a property key of Win32_PhysicalMemory.
type PhysicalMemoryProperty string

const (
	PhysicalMemoryTag                  PhysicalMemoryProperty = "Tag"
	PhysicalMemoryName                 PhysicalMemoryProperty = "Name"
	PhysicalMemoryManufacturer         PhysicalMemoryProperty = "Manufacturer"
	PhysicalMemoryModel                PhysicalMemoryProperty = "Model"
	PhysicalMemoryOtherIdentifyingInfo PhysicalMemoryProperty = "OtherIdentifyingInfo"
	PhysicalMemoryPartNumber           PhysicalMemoryProperty = "PartNumber"
	PhysicalMemoryFormFactor           PhysicalMemoryProperty = "FormFactor"
	PhysicalMemoryBankLabel            PhysicalMemoryProperty = "BankLabel"
	PhysicalMemoryCapacity             PhysicalMemoryProperty = "Capacity"
	PhysicalMemoryDataWidth            PhysicalMemoryProperty = "DataWidth"
	PhysicalMemorySpeed                PhysicalMemoryProperty = "Speed"
	PhysicalMemoryConfiguredClockSpeed PhysicalMemoryProperty = "ConfiguredClockSpeed"
	PhysicalMemoryDeviceLocator        PhysicalMemoryProperty = "DeviceLocator"
	PhysicalMemorySerialNumber         PhysicalMemoryProperty = "SerialNumber"
)

// PhysicalMemoryProperties is the full ordered key set of Win32_PhysicalMemory.
var PhysicalMemoryProperties = []PhysicalMemoryProperty{
	PhysicalMemoryTag,
	PhysicalMemoryName,
	PhysicalMemoryManufacturer,
	PhysicalMemoryModel,
	PhysicalMemoryOtherIdentifyingInfo,
	PhysicalMemoryPartNumber,
	PhysicalMemoryFormFactor,
	PhysicalMemoryBankLabel,
	PhysicalMemoryCapacity,
	PhysicalMemoryDataWidth,
	PhysicalMemorySpeed,
	PhysicalMemoryConfiguredClockSpeed,
	PhysicalMemoryDeviceLocator,
	PhysicalMemorySerialNumber,
}

// PhysicalMemoryClass selects Win32_PhysicalMemory.
var PhysicalMemoryClass = query.Class[PhysicalMemoryProperty]{
	Namespace:  query.DefaultNamespace,
	Name:       "Win32_PhysicalMemory",
	Properties: PhysicalMemoryProperties,
}

// PhysicalMemory is one memory module. Capacity is in bytes, speeds in MHz.
type PhysicalMemory struct {
	Tag                  cast.Nullable[string] `json:"tag"`
	Name                 cast.Nullable[string] `json:"name"`
	Manufacturer         cast.Nullable[string] `json:"manufacturer"`
	Model                cast.Nullable[string] `json:"model"`
	OtherIdentifyingInfo cast.Nullable[string] `json:"other_identifying_info"`
	PartNumber           cast.Nullable[string] `json:"part_number"`
	FormFactor           cast.Nullable[int32]  `json:"form_factor"`
	BankLabel            cast.Nullable[string] `json:"bank_label"`
	Capacity             cast.Nullable[int64]  `json:"capacity"`
	DataWidth            cast.Nullable[int32]  `json:"data_width"`
	Speed                cast.Nullable[int64]  `json:"speed"`
	ConfiguredClockSpeed cast.Nullable[int64]  `json:"configured_clock_speed"`
	DeviceLocator        cast.Nullable[string] `json:"device_locator"`
	SerialNumber         cast.Nullable[string] `json:"serial_number"`
}

// PhysicalMemoryMapper binds every Win32_PhysicalMemory property to its PhysicalMemory field.
var PhysicalMemoryMapper = mapper.NewTable(
	mapper.String(PhysicalMemoryTag, func(e *PhysicalMemory) *cast.Nullable[string] { return &e.Tag }),
	mapper.String(PhysicalMemoryName, func(e *PhysicalMemory) *cast.Nullable[string] { return &e.Name }),
	mapper.String(PhysicalMemoryManufacturer, func(e *PhysicalMemory) *cast.Nullable[string] { return &e.Manufacturer }),
	mapper.String(PhysicalMemoryModel, func(e *PhysicalMemory) *cast.Nullable[string] { return &e.Model }),
	mapper.String(PhysicalMemoryOtherIdentifyingInfo, func(e *PhysicalMemory) *cast.Nullable[string] { return &e.OtherIdentifyingInfo }),
	mapper.String(PhysicalMemoryPartNumber, func(e *PhysicalMemory) *cast.Nullable[string] { return &e.PartNumber }),
	mapper.Int32(PhysicalMemoryFormFactor, func(e *PhysicalMemory) *cast.Nullable[int32] { return &e.FormFactor }),
	mapper.String(PhysicalMemoryBankLabel, func(e *PhysicalMemory) *cast.Nullable[string] { return &e.BankLabel }),
	mapper.Int64(PhysicalMemoryCapacity, func(e *PhysicalMemory) *cast.Nullable[int64] { return &e.Capacity }),
	mapper.Int32(PhysicalMemoryDataWidth, func(e *PhysicalMemory) *cast.Nullable[int32] { return &e.DataWidth }),
	mapper.Int64(PhysicalMemorySpeed, func(e *PhysicalMemory) *cast.Nullable[int64] { return &e.Speed }),
	mapper.Int64(PhysicalMemoryConfiguredClockSpeed, func(e *PhysicalMemory) *cast.Nullable[int64] { return &e.ConfiguredClockSpeed }),
	mapper.String(PhysicalMemoryDeviceLocator, func(e *PhysicalMemory) *cast.Nullable[string] { return &e.DeviceLocator }),
	mapper.String(PhysicalMemorySerialNumber, func(e *PhysicalMemory) *cast.Nullable[string] { return &e.SerialNumber }),
)

// NewPhysicalMemoryService returns the retrieval pair for Win32_PhysicalMemory.
func NewPhysicalMemoryService(exec query.Executor, guard *session.Guard) *service.Service[PhysicalMemory, PhysicalMemoryProperty] {
	return service.New(PhysicalMemoryClass, PhysicalMemoryMapper, exec, guard)
}
