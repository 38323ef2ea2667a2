//go:build windows

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

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/yusufpapurcu/wmi"
)

const locatorProgID = "WbemScripting.SWbemLocator"

// COMExecutor runs WQL queries through the SWbemLocator automation object.
//
// It assumes the calling thread already holds a COM session.
type COMExecutor struct {
	server string
}

// NewCOMExecutor returns an executor bound to the local machine.
func NewCOMExecutor() *COMExecutor {
	return &COMExecutor{server: "."}
}

func (e *COMExecutor) Execute(_ context.Context, namespace, class string, properties []string) (Rows, error) {
	rows, err := e.execute(namespace, class, properties)
	if err != nil {
		return nil, &Error{Namespace: namespace, Class: class, Err: err}
	}

	return rows, nil
}

func (e *COMExecutor) execute(namespace, class string, properties []string) (Table, error) {
	unknown, err := oleutil.CreateObject(locatorProgID)
	if err != nil {
		return nil, err
	}

	if unknown == nil {
		return nil, wmi.ErrNilCreateObject
	}
	defer unknown.Release()

	locator, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return nil, err
	}
	defer locator.Release()

	serviceRaw, err := oleutil.CallMethod(locator, "ConnectServer", e.server, namespace)
	if err != nil {
		return nil, err
	}
	defer func() { _ = serviceRaw.Clear() }()

	service := serviceRaw.ToIDispatch()

	resultRaw, err := oleutil.CallMethod(service, "ExecQuery", Statement(class, properties))
	if err != nil {
		return nil, err
	}
	defer func() { _ = resultRaw.Clear() }()

	var table Table

	err = oleutil.ForEach(resultRaw.ToIDispatch(), func(v *ole.VARIANT) error {
		item := v.ToIDispatch()
		defer item.Release()

		row, err := readRow(item, properties)
		if err != nil {
			return err
		}

		table = append(table, row)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return table, nil
}

func readRow(item *ole.IDispatch, properties []string) (map[string]any, error) {
	row := make(map[string]any, len(properties))

	for _, name := range properties {
		prop, err := oleutil.GetProperty(item, name)
		if err != nil {
			return nil, err
		}

		// Value copies out of the VARIANT, so it is safe to clear afterwards.
		row[name] = prop.Value()

		_ = prop.Clear()
	}

	return row, nil
}
