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

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/carverauto/hwinventory/pkg/logger"
	"github.com/carverauto/hwinventory/pkg/wmi/cast"
	"github.com/carverauto/hwinventory/pkg/wmi/mapper"
	"github.com/carverauto/hwinventory/pkg/wmi/query"
	"github.com/carverauto/hwinventory/pkg/wmi/session"
)

var errTestBackend = errors.New("RPC server unavailable")

type cpuProperty string

const cpuName cpuProperty = "Name"

type cpu struct {
	Name cast.Nullable[string]
}

var cpuClass = query.Class[cpuProperty]{
	Name:       "Win32_Processor",
	Properties: []cpuProperty{cpuName},
}

func newCPUService(exec query.Executor, primitive session.Primitive) *Service[cpu, cpuProperty] {
	table := mapper.NewTable(
		mapper.String(cpuName, func(c *cpu) *cast.Nullable[string] { return &c.Name }),
	)

	return New(cpuClass, table, exec, session.NewGuard(primitive, logger.NewTestLogger()))
}

func TestGetMapsRows(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	exec := query.NewMockExecutor(ctrl)
	primitive := session.NewMockPrimitive(ctrl)

	exec.EXPECT().
		Execute(gomock.Any(), query.DefaultNamespace, "Win32_Processor", []string{"Name"}).
		Return(query.Table{{"Name": "CPU0"}, {"Name": nil}}, nil)

	svc := newCPUService(exec, primitive)
	assert.Equal(t, "Win32_Processor", svc.ClassName())

	got, err := svc.Get(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, cast.Of("CPU0"), got[0].Name)
	assert.True(t, got[1].Name.IsNull())
}

func TestGetHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	exec := query.NewMockExecutor(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newCPUService(exec, session.Nop{}).Get(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGetManagedPairsSessionAcrossFailures(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	exec := query.NewMockExecutor(ctrl)
	primitive := session.NewMockPrimitive(ctrl)

	establish := 0
	teardown := 0

	primitive.EXPECT().Establish(session.MultiThreaded, session.DefaultSecurity).
		DoAndReturn(func(session.Threading, session.SecurityPolicy) error {
			establish++
			return nil
		}).Times(3)
	primitive.EXPECT().Teardown().Do(func() { teardown++ }).Times(3)

	gomock.InOrder(
		exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(query.Table{{"Name": "CPU0"}}, nil),
		exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errTestBackend),
		exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(query.Table{{"Name": "CPU1"}}, nil),
	)

	svc := newCPUService(exec, primitive)

	first, err := svc.GetManaged(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []cpu{{Name: cast.Of("CPU0")}}, first)

	second, err := svc.GetManaged(context.Background())
	require.ErrorIs(t, err, errTestBackend)
	assert.Nil(t, second)

	third, err := svc.GetManaged(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []cpu{{Name: cast.Of("CPU1")}}, third)

	assert.Equal(t, 3, establish)
	assert.Equal(t, establish, teardown)
}

func TestGetManagedReleasesOnCoercionFailure(t *testing.T) {
	t.Parallel()

	type sizeProperty string

	type sized struct {
		Size cast.Nullable[int64]
	}

	ctrl := gomock.NewController(t)
	exec := query.NewMockExecutor(ctrl)
	primitive := session.NewMockPrimitive(ctrl)

	primitive.EXPECT().Establish(gomock.Any(), gomock.Any()).Return(nil)
	primitive.EXPECT().Teardown()
	exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(query.Table{{"Capacity": "lots"}}, nil)

	svc := New(
		query.Class[sizeProperty]{Name: "Win32_PhysicalMemory", Properties: []sizeProperty{"Capacity"}},
		mapper.NewTable(mapper.Int64(sizeProperty("Capacity"), func(s *sized) *cast.Nullable[int64] { return &s.Size })),
		exec,
		session.NewGuard(primitive, logger.NewTestLogger()),
	)

	got, err := svc.GetManaged(context.Background())
	assert.Nil(t, got)

	var fieldErr *mapper.FieldError
	require.ErrorAs(t, err, &fieldErr)
	require.ErrorIs(t, err, cast.ErrCoercion)
}

func TestGetManagedSessionFailureSkipsQuery(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	exec := query.NewMockExecutor(ctrl)
	primitive := session.NewMockPrimitive(ctrl)

	primitive.EXPECT().Establish(gomock.Any(), gomock.Any()).Return(errTestBackend)

	_, err := newCPUService(exec, primitive).GetManaged(context.Background())
	require.ErrorIs(t, err, session.ErrSession)
}

func TestServiceSatisfiesRetriever(t *testing.T) {
	t.Parallel()

	var _ Retriever[cpu] = newCPUService(nil, session.Nop{})
}
