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

package lifecycle

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carverauto/hwinventory/pkg/logger"
)

func TestStart(t *testing.T) {
	rt, err := Start(context.Background(), "hwinventory", &logger.Config{Level: "warn"})
	require.NoError(t, err)
	require.NotNil(t, rt.Logger)

	assert.Equal(t, zerolog.WarnLevel, rt.Logger.GetLevel())

	require.NoError(t, rt.Shutdown(context.Background()))
}

func TestStartBadLevel(t *testing.T) {
	_, err := Start(context.Background(), "hwinventory", &logger.Config{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialize logger")
}

func TestShutdownAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	rt, err := Start(ctx, "hwinventory", &logger.Config{})
	require.NoError(t, err)

	cancel()

	require.NoError(t, rt.Shutdown(ctx))
}
