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
	"bytes"
	"encoding/json"
	"fmt"
)

var jsonNull = []byte("null")

// Nullable is a value that may be absent. The zero value is null.
//
// Nullable stays comparable whenever T is, so entity records built from
// Nullable fields can be compared with ==.
type Nullable[T any] struct {
	Value T
	Valid bool
}

// Of returns a present value.
func Of[T any](v T) Nullable[T] {
	return Nullable[T]{Value: v, Valid: true}
}

// Null returns an absent value.
func Null[T any]() Nullable[T] {
	return Nullable[T]{}
}

// Get returns the value and whether it is present.
func (n Nullable[T]) Get() (T, bool) {
	return n.Value, n.Valid
}

// IsNull reports whether the value is absent.
func (n Nullable[T]) IsNull() bool {
	return !n.Valid
}

// OrZero returns the value, or the zero value of T when absent.
func (n Nullable[T]) OrZero() T {
	if !n.Valid {
		var zero T
		return zero
	}

	return n.Value
}

// Ptr returns a pointer to a copy of the value, or nil when absent.
func (n Nullable[T]) Ptr() *T {
	if !n.Valid {
		return nil
	}

	v := n.Value

	return &v
}

func (n Nullable[T]) String() string {
	if !n.Valid {
		return "<null>"
	}

	return fmt.Sprint(n.Value)
}

func (n Nullable[T]) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return jsonNull, nil
	}

	return json.Marshal(n.Value)
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		*n = Nullable[T]{}
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	*n = Of(v)

	return nil
}
