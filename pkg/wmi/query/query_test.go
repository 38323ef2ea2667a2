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

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testProperty string

const (
	testName  testProperty = "Name"
	testCores testProperty = "NumberOfCores"
)

var testClass = Class[testProperty]{
	Name:       "Win32_Processor",
	Properties: []testProperty{testName, testCores},
}

func TestExecuteUsesDefaultNamespace(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	exec := NewMockExecutor(ctrl)

	exec.EXPECT().
		Execute(gomock.Any(), DefaultNamespace, "Win32_Processor", []string{"Name", "NumberOfCores"}).
		Return(Table{
			{"Name": "CPU A", "NumberOfCores": int32(8)},
			{"Name": nil},
		}, nil).
		Times(1)

	rs, err := Execute(context.Background(), exec, testClass)
	require.NoError(t, err)
	require.Equal(t, 2, rs.Len())
	assert.Equal(t, "CPU A", rs.Value(testName, 0))
	assert.Equal(t, int32(8), rs.Value(testCores, 0))
	assert.Nil(t, rs.Value(testName, 1))
	assert.Nil(t, rs.Value(testCores, 1))
	assert.Nil(t, rs.Value(testName, 5))
}

func TestExecuteEmptyResult(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	exec := NewMockExecutor(ctrl)
	exec.EXPECT().Execute(gomock.Any(), "root/wmi", gomock.Any(), gomock.Any()).Return(nil, nil)

	class := testClass
	class.Namespace = "root/wmi"

	rs, err := Execute(context.Background(), exec, class)
	require.NoError(t, err)
	assert.Equal(t, 0, rs.Len())
}

func TestExecuteReturnsExecutorErrorUnchanged(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	exec := NewMockExecutor(ctrl)

	errBackend := errors.New("WBEM_E_INVALID_CLASS")
	exec.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errBackend)

	rs, err := Execute(context.Background(), exec, testClass)
	assert.Nil(t, rs)
	assert.Same(t, errBackend, err)
}

func TestStatement(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "SELECT Name, NumberOfCores FROM Win32_Processor",
		Statement("Win32_Processor", testClass.PropertyNames()))
	assert.Equal(t, "SELECT * FROM Win32_BIOS", Statement("Win32_BIOS", nil))
}

func TestErrorUnwrap(t *testing.T) {
	t.Parallel()

	errBackend := errors.New("access denied")
	err := error(&Error{Namespace: DefaultNamespace, Class: "Win32_BIOS", Err: errBackend})

	require.ErrorIs(t, err, ErrQuery)
	require.ErrorIs(t, err, errBackend)
	assert.Equal(t, "query root/cimv2:Win32_BIOS: access denied", err.Error())
}
