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

package session

import (
	"errors"
	"fmt"

	"github.com/go-ole/go-ole"
	"github.com/yusufpapurcu/wmi"
	"golang.org/x/sys/windows"
)

// rpcETooLate is returned by CoInitializeSecurity once the process-wide
// security settings have been applied.
const rpcETooLate = 0x80010119

// COM establishes a COM session on the calling thread.
type COM struct{}

// NewCOM returns the native primitive for this platform.
func NewCOM() Primitive {
	return COM{}
}

func (COM) Establish(threading Threading, policy SecurityPolicy) error {
	coinit := uint32(ole.COINIT_MULTITHREADED)
	if threading == ApartmentThreaded {
		coinit = ole.COINIT_APARTMENTTHREADED
	}

	if err := ole.CoInitializeEx(0, coinit); err != nil && !hasCode(err, ole.S_OK, wmi.S_FALSE) {
		return fmt.Errorf("CoInitializeEx: %w", err)
	}

	err := ole.CoInitializeSecurity(-1, policy.AuthenticationLevel, policy.ImpersonationLevel, policy.Capabilities)
	if err != nil && !hasCode(err, ole.S_OK, rpcETooLate) {
		ole.CoUninitialize()

		return fmt.Errorf("CoInitializeSecurity: %w", err)
	}

	return nil
}

func (COM) Teardown() {
	ole.CoUninitialize()
}

func hasCode(err error, codes ...uintptr) bool {
	var oleErr *ole.OleError
	if !errors.As(err, &oleErr) {
		return false
	}

	for _, code := range codes {
		if oleErr.Code() == code {
			return true
		}
	}

	return false
}

func threadID() uint32 {
	return windows.GetCurrentThreadId()
}
