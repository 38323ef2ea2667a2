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

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

var errTrailingData = errors.New("unexpected data after configuration object")

// StdinPath makes FileConfigLoader read the document from standard input.
const StdinPath = "-"

// FileConfigLoader loads a JSON document from disk or stdin. Unknown keys
// are rejected so a misspelled class or section fails loudly.
type FileConfigLoader struct {
	stdin io.Reader
}

// Load implements ConfigLoader.
func (f *FileConfigLoader) Load(_ context.Context, path string, dst interface{}) error {
	data, err := f.read(path)
	if err != nil {
		return fmt.Errorf("failed to read config %q: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("failed to decode config %q: %w", path, err)
	}

	if dec.More() {
		return fmt.Errorf("failed to decode config %q: %w", path, errTrailingData)
	}

	return nil
}

func (f *FileConfigLoader) read(path string) ([]byte, error) {
	if path != StdinPath {
		return os.ReadFile(path)
	}

	if f.stdin != nil {
		return io.ReadAll(f.stdin)
	}

	return io.ReadAll(os.Stdin)
}
