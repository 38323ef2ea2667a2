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

// Package display retrieves video controllers and attached monitors.
package display

import (
	"github.com/carverauto/hwinventory/pkg/wmi/cast"
	"github.com/carverauto/hwinventory/pkg/wmi/mapper"
	"github.com/carverauto/hwinventory/pkg/wmi/query"
	"github.com/carverauto/hwinventory/pkg/wmi/service"
	"github.com/carverauto/hwinventory/pkg/wmi/session"
)

// VideoControllerProperty is a property key of Win32_VideoController.
type VideoControllerProperty string

const (
	VideoControllerDeviceID                    VideoControllerProperty = "DeviceID"
	VideoControllerName                        VideoControllerProperty = "Name"
	VideoControllerPNPDeviceID                 VideoControllerProperty = "PNPDeviceID"
	VideoControllerCurrentBitsPerPixel         VideoControllerProperty = "CurrentBitsPerPixel"
	VideoControllerCurrentHorizontalResolution VideoControllerProperty = "CurrentHorizontalResolution"
	VideoControllerCurrentVerticalResolution   VideoControllerProperty = "CurrentVerticalResolution"
	VideoControllerCurrentRefreshRate          VideoControllerProperty = "CurrentRefreshRate"
	VideoControllerMaxRefreshRate              VideoControllerProperty = "MaxRefreshRate"
	VideoControllerMinRefreshRate              VideoControllerProperty = "MinRefreshRate"
	VideoControllerAdapterDACType              VideoControllerProperty = "AdapterDACType"
	VideoControllerAdapterRAM                  VideoControllerProperty = "AdapterRAM"
	VideoControllerDriverDate                  VideoControllerProperty = "DriverDate"
	VideoControllerDriverVersion               VideoControllerProperty = "DriverVersion"
	VideoControllerVideoProcessor              VideoControllerProperty = "VideoProcessor"
)

// VideoControllerProperties is the full ordered key set of Win32_VideoController.
var VideoControllerProperties = []VideoControllerProperty{
	VideoControllerDeviceID,
	VideoControllerName,
	VideoControllerPNPDeviceID,
	VideoControllerCurrentBitsPerPixel,
	VideoControllerCurrentHorizontalResolution,
	VideoControllerCurrentVerticalResolution,
	VideoControllerCurrentRefreshRate,
	VideoControllerMaxRefreshRate,
	VideoControllerMinRefreshRate,
	VideoControllerAdapterDACType,
	VideoControllerAdapterRAM,
	VideoControllerDriverDate,
	VideoControllerDriverVersion,
	VideoControllerVideoProcessor,
}

var VideoControllerClass = query.Class[VideoControllerProperty]{
	Namespace:  query.DefaultNamespace,
	Name:       "Win32_VideoController",
	Properties: VideoControllerProperties,
}

// VideoController is a GPU or display adapter. AdapterRAM is in bytes.
type VideoController struct {
	DeviceID                    cast.Nullable[string] `json:"device_id"`
	Name                        cast.Nullable[string] `json:"name"`
	PNPDeviceID                 cast.Nullable[string] `json:"pnp_device_id"`
	CurrentBitsPerPixel         cast.Nullable[int32]  `json:"current_bits_per_pixel"`
	CurrentHorizontalResolution cast.Nullable[int32]  `json:"current_horizontal_resolution"`
	CurrentVerticalResolution   cast.Nullable[int32]  `json:"current_vertical_resolution"`
	CurrentRefreshRate          cast.Nullable[int32]  `json:"current_refresh_rate"`
	MaxRefreshRate              cast.Nullable[int32]  `json:"max_refresh_rate"`
	MinRefreshRate              cast.Nullable[int32]  `json:"min_refresh_rate"`
	AdapterDACType              cast.Nullable[string] `json:"adapter_dac_type"`
	AdapterRAM                  cast.Nullable[int64]  `json:"adapter_ram"`
	DriverDate                  cast.Nullable[string] `json:"driver_date"`
	DriverVersion               cast.Nullable[string] `json:"driver_version"`
	VideoProcessor              cast.Nullable[string] `json:"video_processor"`
}

// VideoControllerMapper binds every Win32_VideoController property to its VideoController field.
var VideoControllerMapper = mapper.NewTable(
	mapper.String(VideoControllerDeviceID, func(e *VideoController) *cast.Nullable[string] { return &e.DeviceID }),
	mapper.String(VideoControllerName, func(e *VideoController) *cast.Nullable[string] { return &e.Name }),
	mapper.String(VideoControllerPNPDeviceID, func(e *VideoController) *cast.Nullable[string] { return &e.PNPDeviceID }),
	mapper.Int32(VideoControllerCurrentBitsPerPixel, func(e *VideoController) *cast.Nullable[int32] { return &e.CurrentBitsPerPixel }),
	mapper.Int32(VideoControllerCurrentHorizontalResolution, func(e *VideoController) *cast.Nullable[int32] { return &e.CurrentHorizontalResolution }),
	mapper.Int32(VideoControllerCurrentVerticalResolution, func(e *VideoController) *cast.Nullable[int32] { return &e.CurrentVerticalResolution }),
	mapper.Int32(VideoControllerCurrentRefreshRate, func(e *VideoController) *cast.Nullable[int32] { return &e.CurrentRefreshRate }),
	mapper.Int32(VideoControllerMaxRefreshRate, func(e *VideoController) *cast.Nullable[int32] { return &e.MaxRefreshRate }),
	mapper.Int32(VideoControllerMinRefreshRate, func(e *VideoController) *cast.Nullable[int32] { return &e.MinRefreshRate }),
	mapper.String(VideoControllerAdapterDACType, func(e *VideoController) *cast.Nullable[string] { return &e.AdapterDACType }),
	mapper.Int64(VideoControllerAdapterRAM, func(e *VideoController) *cast.Nullable[int64] { return &e.AdapterRAM }),
	mapper.String(VideoControllerDriverDate, func(e *VideoController) *cast.Nullable[string] { return &e.DriverDate }),
	mapper.String(VideoControllerDriverVersion, func(e *VideoController) *cast.Nullable[string] { return &e.DriverVersion }),
	mapper.String(VideoControllerVideoProcessor, func(e *VideoController) *cast.Nullable[string] { return &e.VideoProcessor }),
)

// NewVideoControllerService returns the retrieval pair for Win32_VideoController.
func NewVideoControllerService(exec query.Executor, guard *session.Guard) *service.Service[VideoController, VideoControllerProperty] {
	return service.New(VideoControllerClass, VideoControllerMapper, exec, guard)
}

// MonitorProperty is a property key of Win32_DesktopMonitor.
type MonitorProperty string

const (
	MonitorDeviceID              MonitorProperty = "DeviceID"
	MonitorName                  MonitorProperty = "Name"
	MonitorPNPDeviceID           MonitorProperty = "PNPDeviceID"
	MonitorStatus                MonitorProperty = "Status"
	MonitorMonitorManufacturer   MonitorProperty = "MonitorManufacturer"
	MonitorMonitorType           MonitorProperty = "MonitorType"
	MonitorPixelsPerXLogicalInch MonitorProperty = "PixelsPerXLogicalInch"
	MonitorPixelsPerYLogicalInch MonitorProperty = "PixelsPerYLogicalInch"
)

// MonitorProperties is the full ordered key set of Win32_DesktopMonitor.
var MonitorProperties = []MonitorProperty{
	MonitorDeviceID,
	MonitorName,
	MonitorPNPDeviceID,
	MonitorStatus,
	MonitorMonitorManufacturer,
	MonitorMonitorType,
	MonitorPixelsPerXLogicalInch,
	MonitorPixelsPerYLogicalInch,
}

var MonitorClass = query.Class[MonitorProperty]{
	Namespace:  query.DefaultNamespace,
	Name:       "Win32_DesktopMonitor",
	Properties: MonitorProperties,
}

// Monitor is a desktop monitor known to the display subsystem.
type Monitor struct {
	DeviceID              cast.Nullable[string] `json:"device_id"`
	Name                  cast.Nullable[string] `json:"name"`
	PNPDeviceID           cast.Nullable[string] `json:"pnp_device_id"`
	Status                cast.Nullable[string] `json:"status"`
	MonitorManufacturer   cast.Nullable[string] `json:"monitor_manufacturer"`
	MonitorType           cast.Nullable[string] `json:"monitor_type"`
	PixelsPerXLogicalInch cast.Nullable[int32]  `json:"pixels_per_x_logical_inch"`
	PixelsPerYLogicalInch cast.Nullable[int32]  `json:"pixels_per_y_logical_inch"`
}

// MonitorMapper binds every Win32_DesktopMonitor property to its Monitor field.
var MonitorMapper = mapper.NewTable(
	mapper.String(MonitorDeviceID, func(e *Monitor) *cast.Nullable[string] { return &e.DeviceID }),
	mapper.String(MonitorName, func(e *Monitor) *cast.Nullable[string] { return &e.Name }),
	mapper.String(MonitorPNPDeviceID, func(e *Monitor) *cast.Nullable[string] { return &e.PNPDeviceID }),
	mapper.String(MonitorStatus, func(e *Monitor) *cast.Nullable[string] { return &e.Status }),
	mapper.String(MonitorMonitorManufacturer, func(e *Monitor) *cast.Nullable[string] { return &e.MonitorManufacturer }),
	mapper.String(MonitorMonitorType, func(e *Monitor) *cast.Nullable[string] { return &e.MonitorType }),
	mapper.Int32(MonitorPixelsPerXLogicalInch, func(e *Monitor) *cast.Nullable[int32] { return &e.PixelsPerXLogicalInch }),
	mapper.Int32(MonitorPixelsPerYLogicalInch, func(e *Monitor) *cast.Nullable[int32] { return &e.PixelsPerYLogicalInch }),
)

// NewMonitorService returns the retrieval pair for Win32_DesktopMonitor.
func NewMonitorService(exec query.Executor, guard *session.Guard) *service.Service[Monitor, MonitorProperty] {
	return service.New(MonitorClass, MonitorMapper, exec, guard)
}
