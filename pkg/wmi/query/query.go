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

//go:generate mockgen -destination=mock_executor.go -package=query github.com/carverauto/hwinventory/pkg/wmi/query Executor

// Package query runs management-class queries through a pluggable executor
// and returns their rows as key-typed result sets.
package query

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// DefaultNamespace is the management namespace that hosts the hardware classes.
const DefaultNamespace = "root/cimv2"

var (
	// ErrQuery matches failures reported by an executor backend.
	ErrQuery = errors.New("management query failed")
	// ErrClassUnsupported is returned when a backend cannot serve a class.
	ErrClassUnsupported = errors.New("class not supported by executor")
	// ErrUnsupportedPlatform is returned by native executors on platforms
	// without a management subsystem.
	ErrUnsupportedPlatform = errors.New("native management queries are not supported on this platform")
)

// Key is the constraint satisfied by every per-class property key type.
type Key interface {
	~string
}

// Rows is the raw, untyped output of one query.
type Rows interface {
	// Len returns the number of rows.
	Len() int
	// Value returns the raw scalar for property in row, or nil when absent.
	Value(property string, row int) any
}

// Executor runs a query for the named properties of one class.
type Executor interface {
	Execute(ctx context.Context, namespace, class string, properties []string) (Rows, error)
}

// ClassSupporter is implemented by executors that serve only some classes.
type ClassSupporter interface {
	Supports(class string) bool
}

// Error wraps a backend failure with the class it was running.
type Error struct {
	Namespace string
	Class     string
	Err       error
}

func (e *Error) Error() string {
	return fmt.Sprintf("query %s:%s: %v", e.Namespace, e.Class, e.Err)
}

func (e *Error) Unwrap() []error {
	return []error{ErrQuery, e.Err}
}

// Class names a management class and the property keys registered for it.
type Class[K Key] struct {
	Namespace  string
	Name       string
	Properties []K
}

// PropertyNames returns the registered keys as plain strings, in order.
func (c Class[K]) PropertyNames() []string {
	names := make([]string, len(c.Properties))
	for i, p := range c.Properties {
		names[i] = string(p)
	}

	return names
}

func (c Class[K]) namespace() string {
	if c.Namespace == "" {
		return DefaultNamespace
	}

	return c.Namespace
}

// Statement renders the WQL statement selecting properties from class.
func Statement(class string, properties []string) string {
	if len(properties) == 0 {
		return "SELECT * FROM " + class
	}

	return "SELECT " + strings.Join(properties, ", ") + " FROM " + class
}

// Execute performs exactly one executor call for class. An empty result is
// valid. Executor errors are returned unchanged.
func Execute[K Key](ctx context.Context, exec Executor, class Class[K]) (*ResultSet[K], error) {
	rows, err := exec.Execute(ctx, class.namespace(), class.Name, class.PropertyNames())
	if err != nil {
		return nil, err
	}

	return NewResultSet[K](rows), nil
}
