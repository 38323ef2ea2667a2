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

// Package mapper converts key-typed query results into entity records using
// declarative binding tables.
package mapper

import (
	"fmt"

	"github.com/carverauto/hwinventory/pkg/wmi/cast"
	"github.com/carverauto/hwinventory/pkg/wmi/query"
)

// Mapper turns every row of a result set into one entity, in row order.
//
// MapAll is all-or-nothing: it returns len(rs) entities, or nil and a
// *FieldError for the first value that failed to convert.
type Mapper[E any, K query.Key] interface {
	MapAll(rs *query.ResultSet[K]) ([]E, error)
}

// FieldError locates a conversion failure.
type FieldError struct {
	Property string
	Row      int
	Err      error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("property %s in row %d: %v", e.Property, e.Row, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Field binds one property key to one entity field.
type Field[E any, K query.Key] struct {
	key    K
	assign func(e *E, raw any) error
}

// Key returns the bound property key.
func (f Field[E, K]) Key() K {
	return f.key
}

// String binds key to a text field.
func String[E any, K query.Key](key K, field func(*E) *cast.Nullable[string]) Field[E, K] {
	return Field[E, K]{key: key, assign: func(e *E, raw any) error {
		*field(e) = cast.ToString(raw)
		return nil
	}}
}

// Int64 binds key to a wide integer field.
func Int64[E any, K query.Key](key K, field func(*E) *cast.Nullable[int64]) Field[E, K] {
	return Field[E, K]{key: key, assign: func(e *E, raw any) error {
		v, err := cast.ToInt64(raw)
		if err != nil {
			return err
		}

		*field(e) = v

		return nil
	}}
}

// Int32 binds key to a narrow integer field.
func Int32[E any, K query.Key](key K, field func(*E) *cast.Nullable[int32]) Field[E, K] {
	return Field[E, K]{key: key, assign: func(e *E, raw any) error {
		v, err := cast.ToInt32(raw)
		if err != nil {
			return err
		}

		*field(e) = v

		return nil
	}}
}

// Bool binds key to a boolean field.
func Bool[E any, K query.Key](key K, field func(*E) *cast.Nullable[bool]) Field[E, K] {
	return Field[E, K]{key: key, assign: func(e *E, raw any) error {
		*field(e) = cast.ToBool(raw)
		return nil
	}}
}

// Table is a Mapper driven by a list of field bindings.
type Table[E any, K query.Key] struct {
	fields []Field[E, K]
}

// NewTable returns a binding-table mapper. Fields are applied in order.
func NewTable[E any, K query.Key](fields ...Field[E, K]) *Table[E, K] {
	return &Table[E, K]{fields: fields}
}

// Keys returns the bound property keys in binding order.
func (t *Table[E, K]) Keys() []K {
	keys := make([]K, len(t.fields))
	for i, f := range t.fields {
		keys[i] = f.key
	}

	return keys
}

func (t *Table[E, K]) MapAll(rs *query.ResultSet[K]) ([]E, error) {
	n := rs.Len()
	out := make([]E, 0, n)

	for row := 0; row < n; row++ {
		var entity E

		for _, f := range t.fields {
			if err := f.assign(&entity, rs.Value(f.key, row)); err != nil {
				return nil, &FieldError{Property: string(f.key), Row: row, Err: err}
			}
		}

		out = append(out, entity)
	}

	return out, nil
}
