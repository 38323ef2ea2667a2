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

// Package cast converts the loosely typed scalars returned by a management
// query into nullable typed values.
//
// Management providers frequently report unsigned properties through signed
// native types (a uint32 arrives as a 32-bit signed integer), so integers
// narrower than the requested width are reinterpreted as unsigned before they
// are widened. A nil raw value always converts to null.
package cast

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	targetInt64  = "int64"
	targetInt32  = "int32"
	maxInt64Real = float64(1 << 63)
	maxInt32Real = float64(1 << 31)
)

// ToInt64 converts a raw value to a wide integer.
//
// int8, int16 and int32 are unsigned-widened. Other integers and floats keep
// their numeric value (floats truncate toward zero). Anything else is parsed
// from its trimmed text form as a base-10 integer.
func ToInt64(v any) (Nullable[int64], error) {
	switch n := v.(type) {
	case nil:
		return Null[int64](), nil
	case int8:
		return Of(int64(uint8(n))), nil
	case int16:
		return Of(int64(uint16(n))), nil
	case int32:
		return Of(int64(uint32(n))), nil
	case int64:
		return Of(n), nil
	case int:
		return Of(int64(n)), nil
	case uint8:
		return Of(int64(n)), nil
	case uint16:
		return Of(int64(n)), nil
	case uint32:
		return Of(int64(n)), nil
	case uint64:
		if n > math.MaxInt64 {
			return Null[int64](), rangeError(targetInt64, v)
		}

		return Of(int64(n)), nil
	case uint:
		if uint64(n) > math.MaxInt64 {
			return Null[int64](), rangeError(targetInt64, v)
		}

		return Of(int64(n)), nil
	case float32:
		return floatToInt64(float64(n), v)
	case float64:
		return floatToInt64(n, v)
	default:
		parsed, err := strconv.ParseInt(text(v), 10, 64)
		if err != nil {
			return Null[int64](), parseError(targetInt64, v, err)
		}

		return Of(parsed), nil
	}
}

// ToInt32 converts a raw value to a narrow integer.
//
// int8 and int16 are unsigned-widened. Wider values must fit in an int32.
func ToInt32(v any) (Nullable[int32], error) {
	switch n := v.(type) {
	case nil:
		return Null[int32](), nil
	case int8:
		return Of(int32(uint8(n))), nil
	case int16:
		return Of(int32(uint16(n))), nil
	case int32:
		return Of(n), nil
	case uint8:
		return Of(int32(n)), nil
	case uint16:
		return Of(int32(n)), nil
	case int64:
		return narrow(n, v)
	case int:
		return narrow(int64(n), v)
	case uint32:
		return narrow(int64(n), v)
	case uint64:
		if n > math.MaxInt32 {
			return Null[int32](), rangeError(targetInt32, v)
		}

		return Of(int32(n)), nil
	case uint:
		if uint64(n) > math.MaxInt32 {
			return Null[int32](), rangeError(targetInt32, v)
		}

		return Of(int32(n)), nil
	case float32:
		return floatToInt32(float64(n), v)
	case float64:
		return floatToInt32(n, v)
	default:
		parsed, err := strconv.ParseInt(text(v), 10, 32)
		if err != nil {
			return Null[int32](), parseError(targetInt32, v, err)
		}

		return Of(int32(parsed)), nil
	}
}

// ToString returns the trimmed text form of a raw value.
func ToString(v any) Nullable[string] {
	if v == nil {
		return Null[string]()
	}

	return Of(text(v))
}

// ToBool converts a raw value to a boolean.
//
// Native booleans pass through. Any other value is true only when its trimmed
// text equals "true" ignoring case; every other text, including malformed
// input such as "yes" or "1", is false.
func ToBool(v any) Nullable[bool] {
	switch b := v.(type) {
	case nil:
		return Null[bool]()
	case bool:
		return Of(b)
	default:
		return Of(strings.EqualFold(text(v), "true"))
	}
}

func text(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case time.Time:
		return s.Format(time.RFC3339)
	case fmt.Stringer:
		return strings.TrimSpace(s.String())
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

func narrow(n int64, raw any) (Nullable[int32], error) {
	if n < math.MinInt32 || n > math.MaxInt32 {
		return Null[int32](), rangeError(targetInt32, raw)
	}

	return Of(int32(n)), nil
}

func floatToInt64(f float64, raw any) (Nullable[int64], error) {
	if math.IsNaN(f) || f < -maxInt64Real || f >= maxInt64Real {
		return Null[int64](), rangeError(targetInt64, raw)
	}

	return Of(int64(f)), nil
}

func floatToInt32(f float64, raw any) (Nullable[int32], error) {
	if math.IsNaN(f) || f < -maxInt32Real || f >= maxInt32Real {
		return Null[int32](), rangeError(targetInt32, raw)
	}

	return Of(int32(f)), nil
}

func rangeError(target string, raw any) error {
	return &Error{Target: target, Value: raw, Err: ErrRange}
}

func parseError(target string, raw any, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return &Error{Target: target, Value: raw, Err: fmt.Errorf("%w: %w", ErrRange, err)}
	}

	return &Error{Target: target, Value: raw, Err: fmt.Errorf("%w: %w", ErrParse, err)}
}
