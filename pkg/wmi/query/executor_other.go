//go:build !windows

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

import "context"

// COMExecutor is unavailable off Windows; Execute always fails.
type COMExecutor struct{}

// NewCOMExecutor returns the native executor for this platform.
func NewCOMExecutor() *COMExecutor {
	return &COMExecutor{}
}

func (*COMExecutor) Execute(_ context.Context, namespace, class string, _ []string) (Rows, error) {
	return nil, &Error{Namespace: namespace, Class: class, Err: ErrUnsupportedPlatform}
}
