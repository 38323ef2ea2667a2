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

package inventory

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	inventoryMeterName      = "hwinventory.inventory"
	metricClassQueriesName  = "hwinventory.class.queries"
	metricClassDurationName = "hwinventory.class.duration"

	outcomeOK    = "ok"
	outcomeError = "error"
)

var (
	metricsOnce sync.Once

	classQueries  metric.Int64Counter
	classDuration metric.Float64Histogram
)

func initMetrics() {
	meter := otel.Meter(inventoryMeterName)

	if counter, err := meter.Int64Counter(
		metricClassQueriesName,
		metric.WithDescription("Class retrievals performed by the inventory collector"),
	); err != nil {
		otel.Handle(err)
	} else {
		classQueries = counter
	}

	if hist, err := meter.Float64Histogram(
		metricClassDurationName,
		metric.WithDescription("Time spent retrieving and mapping one class"),
		metric.WithUnit("ms"),
	); err != nil {
		otel.Handle(err)
	} else {
		classDuration = hist
	}
}

func recordClass(ctx context.Context, class string, elapsed time.Duration, err error) {
	metricsOnce.Do(initMetrics)

	outcome := outcomeOK
	if err != nil {
		outcome = outcomeError
	}

	attrs := metric.WithAttributes(
		attribute.String("class", class),
		attribute.String("outcome", outcome),
	)

	if classQueries != nil {
		classQueries.Add(ctx, 1, attrs)
	}

	if classDuration != nil {
		classDuration.Record(ctx, float64(elapsed)/float64(time.Millisecond), attrs)
	}
}
