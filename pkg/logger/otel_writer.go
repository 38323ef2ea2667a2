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

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	otellog "go.opentelemetry.io/otel/log"
)

const maxAttributeLength = 4096

// OTelWriter re-emits zerolog JSON entries as OTel log records. It is a
// zerolog.LevelWriter, so severity comes from the entry level rather than
// from parsing the line.
type OTelWriter struct {
	logger otellog.Logger
}

var _ zerolog.LevelWriter = (*OTelWriter)(nil)

// NewOTelWriter emits through the named logger of provider.
func NewOTelWriter(provider otellog.LoggerProvider, scope string) *OTelWriter {
	return &OTelWriter{logger: provider.Logger(scope)}
}

func (w *OTelWriter) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.NoLevel, p)
}

// WriteLevel never fails: a line that is not a JSON object is dropped so
// local logging is unaffected.
func (w *OTelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	dec := json.NewDecoder(bytes.NewReader(p))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return len(p), nil
	}

	var rec otellog.Record

	rec.SetObservedTimestamp(time.Now())
	rec.SetSeverity(severity(level))
	rec.SetSeverityText(level.String())

	if msg, ok := fields[zerolog.MessageFieldName].(string); ok {
		rec.SetBody(otellog.StringValue(msg))
	}

	if ts, ok := fields[zerolog.TimestampFieldName].(string); ok {
		if parsed, err := time.Parse(zerolog.TimeFieldFormat, ts); err == nil {
			rec.SetTimestamp(parsed)
		}
	}

	delete(fields, zerolog.MessageFieldName)
	delete(fields, zerolog.TimestampFieldName)
	delete(fields, zerolog.LevelFieldName)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		rec.AddAttributes(otellog.KeyValue{Key: k, Value: attributeValue(fields[k])})
	}

	w.logger.Emit(context.Background(), rec)

	return len(p), nil
}

func attributeValue(v any) otellog.Value {
	switch x := v.(type) {
	case string:
		return otellog.StringValue(truncate(x))
	case bool:
		return otellog.BoolValue(x)
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return otellog.Int64Value(i)
		}

		f, _ := x.Float64()

		return otellog.Float64Value(f)
	case []any:
		values := make([]otellog.Value, len(x))
		for i, item := range x {
			values[i] = attributeValue(item)
		}

		return otellog.SliceValue(values...)
	case map[string]any:
		kvs := make([]otellog.KeyValue, 0, len(x))
		for k, item := range x {
			kvs = append(kvs, otellog.KeyValue{Key: k, Value: attributeValue(item)})
		}

		sort.Slice(kvs, func(i, j int) bool { return kvs[i].Key < kvs[j].Key })

		return otellog.MapValue(kvs...)
	default:
		return otellog.Value{}
	}
}

func severity(level zerolog.Level) otellog.Severity {
	switch level {
	case zerolog.TraceLevel:
		return otellog.SeverityTrace
	case zerolog.DebugLevel:
		return otellog.SeverityDebug
	case zerolog.WarnLevel:
		return otellog.SeverityWarn
	case zerolog.ErrorLevel:
		return otellog.SeverityError
	case zerolog.FatalLevel:
		return otellog.SeverityFatal
	case zerolog.PanicLevel:
		return otellog.SeverityFatal4
	default:
		return otellog.SeverityInfo
	}
}

func truncate(s string) string {
	if len(s) <= maxAttributeLength {
		return s
	}

	cut := s[:maxAttributeLength]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}

	return cut + "..."
}
