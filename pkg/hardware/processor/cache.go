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

package processor

import (
	"github.com/carverauto/hwinventory/pkg/wmi/cast"
	"github.com/carverauto/hwinventory/pkg/wmi/mapper"
	"github.com/carverauto/hwinventory/pkg/wmi/query"
	"github.com/carverauto/hwinventory/pkg/wmi/service"
	"github.com/carverauto/hwinventory/pkg/wmi/session"
)

// CacheProperty is a property key of Win32_CacheMemory.
type CacheProperty string

const (
	CacheDeviceID      CacheProperty = "DeviceID"
	CachePurpose       CacheProperty = "Purpose"
	CacheInstalledSize CacheProperty = "InstalledSize"
	CacheAssociativity CacheProperty = "Associativity"
)

// CacheProperties is the full ordered key set of Win32_CacheMemory.
var CacheProperties = []CacheProperty{
	CacheDeviceID,
	CachePurpose,
	CacheInstalledSize,
	CacheAssociativity,
}

var CacheClass = query.Class[CacheProperty]{
	Namespace:  query.DefaultNamespace,
	Name:       "Win32_CacheMemory",
	Properties: CacheProperties,
}

// Cache is one cache level as reported by the firmware. InstalledSize is in KiB.
type Cache struct {
	DeviceID      cast.Nullable[string] `json:"device_id"`
	Purpose       cast.Nullable[string] `json:"purpose"`
	InstalledSize cast.Nullable[int64]  `json:"installed_size"`
	Associativity cast.Nullable[int32]  `json:"associativity"`
}

// CacheMapper binds every Win32_CacheMemory property to its Cache field.
var CacheMapper = mapper.NewTable(
	mapper.String(CacheDeviceID, func(e *Cache) *cast.Nullable[string] { return &e.DeviceID }),
	mapper.String(CachePurpose, func(e *Cache) *cast.Nullable[string] { return &e.Purpose }),
	mapper.Int64(CacheInstalledSize, func(e *Cache) *cast.Nullable[int64] { return &e.InstalledSize }),
	mapper.Int32(CacheAssociativity, func(e *Cache) *cast.Nullable[int32] { return &e.Associativity }),
)

// NewCacheService returns the retrieval pair for Win32_CacheMemory.
func NewCacheService(exec query.Executor, guard *session.Guard) *service.Service[Cache, CacheProperty] {
	return service.New(CacheClass, CacheMapper, exec, guard)
}

// AssociatedMemoryProperty is a property key of Win32_AssociatedProcessorMemory.
type AssociatedMemoryProperty string

const (
	AssociatedMemoryAntecedent AssociatedMemoryProperty = "Antecedent"
	AssociatedMemoryDependent  AssociatedMemoryProperty = "Dependent"
)

// AssociatedMemoryProperties is the full ordered key set of Win32_AssociatedProcessorMemory.
var AssociatedMemoryProperties = []AssociatedMemoryProperty{
	AssociatedMemoryAntecedent,
	AssociatedMemoryDependent,
}

// AssociatedMemoryClass selects the processor-cache association class.
var AssociatedMemoryClass = query.Class[AssociatedMemoryProperty]{
	Namespace:  query.DefaultNamespace,
	Name:       "Win32_AssociatedProcessorMemory",
	Properties: AssociatedMemoryProperties,
}

// AssociatedMemory links a cache (Antecedent) to the processor using it
// (Dependent). Both are object paths.
type AssociatedMemory struct {
	Antecedent cast.Nullable[string] `json:"antecedent"`
	Dependent  cast.Nullable[string] `json:"dependent"`
}

// AssociatedMemoryMapper binds every Win32_AssociatedProcessorMemory property to its AssociatedMemory field.
var AssociatedMemoryMapper = mapper.NewTable(
	mapper.String(AssociatedMemoryAntecedent, func(e *AssociatedMemory) *cast.Nullable[string] { return &e.Antecedent }),
	mapper.String(AssociatedMemoryDependent, func(e *AssociatedMemory) *cast.Nullable[string] { return &e.Dependent }),
)

// NewAssociatedMemoryService returns the retrieval pair for Win32_AssociatedProcessorMemory.
func NewAssociatedMemoryService(exec query.Executor, guard *session.Guard) *service.Service[AssociatedMemory, AssociatedMemoryProperty] {
	return service.New(AssociatedMemoryClass, AssociatedMemoryMapper, exec, guard)
}
