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

// Package service provides the retrieval pair shared by every hardware class:
// an unmanaged Get that runs inside a session the caller already holds, and
// GetManaged which acquires and releases the session itself.
package service

import (
	"context"

	"github.com/carverauto/hwinventory/pkg/wmi/mapper"
	"github.com/carverauto/hwinventory/pkg/wmi/query"
	"github.com/carverauto/hwinventory/pkg/wmi/session"
)

// Retriever returns every instance of one hardware class.
type Retriever[E any] interface {
	// Get requires an active session on the calling goroutine.
	Get(ctx context.Context) ([]E, error)
	// GetManaged runs Get inside a session of its own.
	GetManaged(ctx context.Context) ([]E, error)
}

// Service implements Retriever for class K with entity E.
type Service[E any, K query.Key] struct {
	class  query.Class[K]
	mapper mapper.Mapper[E, K]
	exec   query.Executor
	guard  *session.Guard
}

// New returns a Service.
func New[E any, K query.Key](class query.Class[K], m mapper.Mapper[E, K], exec query.Executor, guard *session.Guard) *Service[E, K] {
	return &Service[E, K]{
		class:  class,
		mapper: m,
		exec:   exec,
		guard:  guard,
	}
}

// ClassName returns the management class served.
func (s *Service[E, K]) ClassName() string {
	return s.class.Name
}

// Get queries and maps the class. The context is only checked before the
// query starts; a running query is not interrupted.
func (s *Service[E, K]) Get(ctx context.Context) ([]E, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rs, err := query.Execute(ctx, s.exec, s.class)
	if err != nil {
		return nil, err
	}

	return s.mapper.MapAll(rs)
}

// GetManaged performs Get between session acquire and release. The session
// is released on every path and the original error is returned.
func (s *Service[E, K]) GetManaged(ctx context.Context) ([]E, error) {
	var out []E

	err := s.guard.Do(func() error {
		var err error

		out, err = s.Get(ctx)

		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}
