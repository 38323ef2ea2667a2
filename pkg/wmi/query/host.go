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

package query

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shirou/gopsutil/v3/cpu"
)

const hostProcessorClass = "Win32_Processor"

//nolint:gochecknoglobals // seams for tests
var (
	infoWithContext   = cpu.InfoWithContext
	countsWithContext = cpu.CountsWithContext
)

// HostExecutor answers processor queries from the portable host probes in
// gopsutil. It serves only Win32_Processor and needs no native session.
type HostExecutor struct{}

// NewHostExecutor returns a HostExecutor.
func NewHostExecutor() *HostExecutor {
	return &HostExecutor{}
}

// Supports reports whether class can be answered by the host probes.
func (*HostExecutor) Supports(class string) bool {
	return class == hostProcessorClass
}

func (h *HostExecutor) Execute(ctx context.Context, namespace, class string, properties []string) (Rows, error) {
	if !h.Supports(class) {
		return nil, &Error{Namespace: namespace, Class: class, Err: ErrClassUnsupported}
	}

	infos, err := infoWithContext(ctx)
	if err != nil {
		return nil, &Error{Namespace: namespace, Class: class, Err: err}
	}

	packages := groupByPackage(infos)

	logical, err := countsWithContext(ctx, true)
	if err != nil || logical <= 0 {
		logical = 0
	}

	table := make(Table, 0, len(packages))
	for i, pkg := range packages {
		row := processorRow(i, pkg, logical/len(packages))
		table = append(table, project(row, properties))
	}

	return table, nil
}

// groupByPackage folds per-logical-CPU entries into physical packages,
// preserving first-seen order.
func groupByPackage(infos []cpu.InfoStat) [][]cpu.InfoStat {
	index := make(map[string]int)

	var packages [][]cpu.InfoStat

	for _, info := range infos {
		i, ok := index[info.PhysicalID]
		if !ok {
			i = len(packages)
			index[info.PhysicalID] = i
			packages = append(packages, nil)
		}

		packages[i] = append(packages[i], info)
	}

	return packages
}

func processorRow(i int, pkg []cpu.InfoStat, logicalHint int) map[string]any {
	first := pkg[0]

	cores := int32(len(distinctCores(pkg)))
	threads := int32(len(pkg))

	// Platforms that report one entry per package already carry a core count.
	if len(pkg) == 1 && first.Cores > 1 {
		cores = first.Cores
		threads = first.Cores
	}

	if int32(logicalHint) > threads {
		threads = int32(logicalHint)
	}

	return map[string]any{
		"DeviceID":                  fmt.Sprintf("CPU%d", i),
		"Name":                      optional(first.ModelName),
		"Manufacturer":              optional(first.VendorID),
		"NumberOfCores":             cores,
		"NumberOfLogicalProcessors": threads,
		"ThreadCount":               threads,
		"MaxClockSpeed":             clockSpeed(first.Mhz),
		"Family":                    optional(first.Family),
		"Stepping":                  stepping(first),
		"Caption":                   caption(first),
	}
}

func distinctCores(pkg []cpu.InfoStat) map[string]struct{} {
	cores := make(map[string]struct{}, len(pkg))
	for _, info := range pkg {
		cores[info.CoreID] = struct{}{}
	}

	return cores
}

func caption(info cpu.InfoStat) any {
	if info.Family == "" && info.Model == "" {
		return nil
	}

	return fmt.Sprintf("%s Family %s Model %s Stepping %d", info.VendorID, info.Family, info.Model, info.Stepping)
}

// clockSpeed is nil when the platform does not report a frequency.
func clockSpeed(mhz float64) any {
	if mhz <= 0 {
		return nil
	}

	return int32(mhz)
}

// stepping is only meaningful when the CPU identifies itself at all.
func stepping(info cpu.InfoStat) any {
	if info.Family == "" && info.Model == "" && info.Stepping == 0 {
		return nil
	}

	return strconv.Itoa(int(info.Stepping))
}

func optional(s string) any {
	if s == "" {
		return nil
	}

	return s
}

func project(row map[string]any, properties []string) map[string]any {
	if len(properties) == 0 {
		return row
	}

	out := make(map[string]any, len(properties))
	for _, p := range properties {
		if v, ok := row[p]; ok {
			out[p] = v
		}
	}

	return out
}
