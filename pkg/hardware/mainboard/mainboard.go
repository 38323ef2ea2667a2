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

// Package mainboard retrieves firmware, baseboard and port connector data.
package mainboard

import (
	"github.com/carverauto/hwinventory/pkg/wmi/cast"
	"github.com/carverauto/hwinventory/pkg/wmi/mapper"
	"github.com/carverauto/hwinventory/pkg/wmi/query"
	"github.com/carverauto/hwinventory/pkg/wmi/service"
	"github.com/carverauto/hwinventory/pkg/wmi/session"
)

// BIOSProperty is a property key of Win32_BIOS.
type BIOSProperty string

const (
	BIOSName              BIOSProperty = "Name"
	BIOSCaption           BIOSProperty = "Caption"
	BIOSManufacturer      BIOSProperty = "Manufacturer"
	BIOSReleaseDate       BIOSProperty = "ReleaseDate"
	BIOSSMBIOSPresent     BIOSProperty = "SMBIOSPresent"
	BIOSStatus            BIOSProperty = "Status"
	BIOSVersion           BIOSProperty = "Version"
	BIOSCurrentLanguage   BIOSProperty = "CurrentLanguage"
	BIOSSMBIOSBIOSVersion BIOSProperty = "SMBIOSBIOSVersion"
	BIOSPrimaryBIOS       BIOSProperty = "PrimaryBIOS"
)

// BIOSProperties is the full ordered key set of Win32_BIOS.
var BIOSProperties = []BIOSProperty{
	BIOSName,
	BIOSCaption,
	BIOSManufacturer,
	BIOSReleaseDate,
	BIOSSMBIOSPresent,
	BIOSStatus,
	BIOSVersion,
	BIOSCurrentLanguage,
	BIOSSMBIOSBIOSVersion,
	BIOSPrimaryBIOS,
}

// BIOSClass selects Win32_BIOS.
var BIOSClass = query.Class[BIOSProperty]{
	Namespace:  query.DefaultNamespace,
	Name:       "Win32_BIOS",
	Properties: BIOSProperties,
}

// BIOS describes the system firmware.
type BIOS struct {
	Name              cast.Nullable[string] `json:"name"`
	Caption           cast.Nullable[string] `json:"caption"`
	Manufacturer      cast.Nullable[string] `json:"manufacturer"`
	ReleaseDate       cast.Nullable[string] `json:"release_date"`
	SMBIOSPresent     cast.Nullable[bool]   `json:"smbios_present"`
	Status            cast.Nullable[string] `json:"status"`
	Version           cast.Nullable[string] `json:"version"`
	CurrentLanguage   cast.Nullable[string] `json:"current_language"`
	SMBIOSBIOSVersion cast.Nullable[string] `json:"smbios_bios_version"`
	PrimaryBIOS       cast.Nullable[bool]   `json:"primary_bios"`
}

// BIOSMapper binds every Win32_BIOS property to its BIOS field.
var BIOSMapper = mapper.NewTable(
	mapper.String(BIOSName, func(e *BIOS) *cast.Nullable[string] { return &e.Name }),
	mapper.String(BIOSCaption, func(e *BIOS) *cast.Nullable[string] { return &e.Caption }),
	mapper.String(BIOSManufacturer, func(e *BIOS) *cast.Nullable[string] { return &e.Manufacturer }),
	mapper.String(BIOSReleaseDate, func(e *BIOS) *cast.Nullable[string] { return &e.ReleaseDate }),
	mapper.Bool(BIOSSMBIOSPresent, func(e *BIOS) *cast.Nullable[bool] { return &e.SMBIOSPresent }),
	mapper.String(BIOSStatus, func(e *BIOS) *cast.Nullable[string] { return &e.Status }),
	mapper.String(BIOSVersion, func(e *BIOS) *cast.Nullable[string] { return &e.Version }),
	mapper.String(BIOSCurrentLanguage, func(e *BIOS) *cast.Nullable[string] { return &e.CurrentLanguage }),
	mapper.String(BIOSSMBIOSBIOSVersion, func(e *BIOS) *cast.Nullable[string] { return &e.SMBIOSBIOSVersion }),
	mapper.Bool(BIOSPrimaryBIOS, func(e *BIOS) *cast.Nullable[bool] { return &e.PrimaryBIOS }),
)

// NewBIOSService returns the retrieval pair for Win32_BIOS.
func NewBIOSService(exec query.Executor, guard *session.Guard) *service.Service[BIOS, BIOSProperty] {
	return service.New(BIOSClass, BIOSMapper, exec, guard)
}

// BaseboardProperty is a property key of Win32_BaseBoard.
type BaseboardProperty string

const (
	BaseboardManufacturer BaseboardProperty = "Manufacturer"
	BaseboardModel        BaseboardProperty = "Model"
	BaseboardProduct      BaseboardProperty = "Product"
	BaseboardSerialNumber BaseboardProperty = "SerialNumber"
	BaseboardVersion      BaseboardProperty = "Version"
)

// BaseboardProperties is the full ordered key set of Win32_BaseBoard.
var BaseboardProperties = []BaseboardProperty{
	BaseboardManufacturer,
	BaseboardModel,
	BaseboardProduct,
	BaseboardSerialNumber,
	BaseboardVersion,
}

// BaseboardClass selects Win32_BaseBoard.
var BaseboardClass = query.Class[BaseboardProperty]{
	Namespace:  query.DefaultNamespace,
	Name:       "Win32_BaseBoard",
	Properties: BaseboardProperties,
}

// Baseboard is the motherboard.
type Baseboard struct {
	Manufacturer cast.Nullable[string] `json:"manufacturer"`
	Model        cast.Nullable[string] `json:"model"`
	Product      cast.Nullable[string] `json:"product"`
	SerialNumber cast.Nullable[string] `json:"serial_number"`
	Version      cast.Nullable[string] `json:"version"`
}

// BaseboardMapper binds every Win32_BaseBoard property to its Baseboard field.
var BaseboardMapper = mapper.NewTable(
	mapper.String(BaseboardManufacturer, func(e *Baseboard) *cast.Nullable[string] { return &e.Manufacturer }),
	mapper.String(BaseboardModel, func(e *Baseboard) *cast.Nullable[string] { return &e.Model }),
	mapper.String(BaseboardProduct, func(e *Baseboard) *cast.Nullable[string] { return &e.Product }),
	mapper.String(BaseboardSerialNumber, func(e *Baseboard) *cast.Nullable[string] { return &e.SerialNumber }),
	mapper.String(BaseboardVersion, func(e *Baseboard) *cast.Nullable[string] { return &e.Version }),
)

// NewBaseboardService returns the retrieval pair for Win32_BaseBoard.
func NewBaseboardService(exec query.Executor, guard *session.Guard) *service.Service[Baseboard, BaseboardProperty] {
	return service.New(BaseboardClass, BaseboardMapper, exec, guard)
}

// PortConnectorProperty is a property key of Win32_PortConnector.
type PortConnectorProperty string

const (
	PortConnectorTag                         PortConnectorProperty = "Tag"
	PortConnectorExternalReferenceDesignator PortConnectorProperty = "ExternalReferenceDesignator"
	PortConnectorInternalReferenceDesignator PortConnectorProperty = "InternalReferenceDesignator"
)

// PortConnectorProperties is the full ordered key set of Win32_PortConnector.
var PortConnectorProperties = []PortConnectorProperty{
	PortConnectorTag,
	PortConnectorExternalReferenceDesignator,
	PortConnectorInternalReferenceDesignator,
}

var PortConnectorClass = query.Class[PortConnectorProperty]{
	Namespace:  query.DefaultNamespace,
	Name:       "Win32_PortConnector",
	Properties: PortConnectorProperties,
}

// PortConnector is a physical connector on the board.
type PortConnector struct {
	Tag                         cast.Nullable[string] `json:"tag"`
	ExternalReferenceDesignator cast.Nullable[string] `json:"external_reference_designator"`
	InternalReferenceDesignator cast.Nullable[string] `json:"internal_reference_designator"`
}

// PortConnectorMapper binds every Win32_PortConnector property to its PortConnector field.
var PortConnectorMapper = mapper.NewTable(
	mapper.String(PortConnectorTag, func(e *PortConnector) *cast.Nullable[string] { return &e.Tag }),
	mapper.String(PortConnectorExternalReferenceDesignator, func(e *PortConnector) *cast.Nullable[string] { return &e.ExternalReferenceDesignator }),
	mapper.String(PortConnectorInternalReferenceDesignator, func(e *PortConnector) *cast.Nullable[string] { return &e.InternalReferenceDesignator }),
)

// NewPortConnectorService returns the retrieval pair for Win32_PortConnector.
func NewPortConnectorService(exec query.Executor, guard *session.Guard) *service.Service[PortConnector, PortConnectorProperty] {
	return service.New(PortConnectorClass, PortConnectorMapper, exec, guard)
}
