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

// ResultSet is a read-only view over query rows that can only be indexed
// with the key type of the class it was produced for.
type ResultSet[K Key] struct {
	rows Rows
}

// NewResultSet wraps rows. A nil Rows is an empty result.
func NewResultSet[K Key](rows Rows) *ResultSet[K] {
	if rows == nil {
		rows = Table(nil)
	}

	return &ResultSet[K]{rows: rows}
}

// Len returns the number of rows.
func (r *ResultSet[K]) Len() int {
	return r.rows.Len()
}

// Value returns the raw value of key in row, or nil when absent.
func (r *ResultSet[K]) Value(key K, row int) any {
	return r.rows.Value(string(key), row)
}

// Table is an in-memory Rows keyed by property name.
type Table []map[string]any

func (t Table) Len() int {
	return len(t)
}

func (t Table) Value(property string, row int) any {
	if row < 0 || row >= len(t) {
		return nil
	}

	return t[row][property]
}
