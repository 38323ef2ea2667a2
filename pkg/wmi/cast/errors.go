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

package cast

import (
	"errors"
	"fmt"
)

var (
	// ErrCoercion matches every error produced by this package.
	ErrCoercion = errors.New("coercion failed")
	// ErrParse is returned for text that is not a base-10 integer.
	ErrParse = fmt.Errorf("%w: malformed number", ErrCoercion)
	// ErrRange is returned when a value does not fit the target width.
	ErrRange = fmt.Errorf("%w: value out of range", ErrCoercion)
)

// Error describes a raw value that could not be converted.
type Error struct {
	Target string
	Value  any
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cannot convert %v (%T) to %s: %v", e.Value, e.Value, e.Target, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
