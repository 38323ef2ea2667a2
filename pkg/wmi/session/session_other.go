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

package session

// COM is unavailable off Windows; Establish always fails.
type COM struct{}

// NewCOM returns the native primitive for this platform.
func NewCOM() Primitive {
	return COM{}
}

func (COM) Establish(Threading, SecurityPolicy) error {
	return ErrUnsupportedPlatform
}

func (COM) Teardown() {}

func threadID() uint32 {
	return 0
}
