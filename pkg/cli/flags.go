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

// Package cli holds the hwinventory command-line flags and output renderers.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/carverauto/hwinventory/pkg/inventory"
)

var errUnexpectedArgs = errors.New("unexpected positional arguments")

// CmdConfig holds the parsed command line. Pointer fields are nil when the
// flag was not given, so they only override the loaded configuration when set.
type CmdConfig struct {
	ConfigPath      string
	Backend         *string
	Format          *string
	Classes         []string
	PerClassSession *bool
	Version         bool
}

// ParseFlags parses args (without the program name). -h and -help print the
// usage to output and return flag.ErrHelp.
func ParseFlags(name string, args []string, output io.Writer) (*CmdConfig, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	configPath := fs.String("config", "", "path to the JSON configuration file (\"-\" reads stdin)")
	backend := fs.String("backend", "", "query backend: wmi or host")
	format := fs.String("format", "", "output format: json or table")
	classes := fs.String("classes", "", "comma separated classes to collect ("+strings.Join(inventory.ClassNames(), ", ")+")")
	perClass := fs.Bool("per-class-session", false, "establish a separate management session for every class")
	version := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: %s", errUnexpectedArgs, strings.Join(fs.Args(), " "))
	}

	cfg := &CmdConfig{
		ConfigPath: *configPath,
		Version:    *version,
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = backend
		case "format":
			cfg.Format = format
		case "classes":
			cfg.Classes = splitList(*classes)
		case "per-class-session":
			cfg.PerClassSession = perClass
		}
	})

	return cfg, nil
}

// Apply overrides cfg with the flags that were set.
func (c *CmdConfig) Apply(cfg *inventory.Config) {
	if c.Backend != nil {
		cfg.Backend = *c.Backend
	}

	if c.Format != nil {
		cfg.Format = *c.Format
	}

	if c.Classes != nil {
		cfg.Classes = c.Classes
	}

	if c.PerClassSession != nil {
		cfg.PerClassSession = *c.PerClassSession
	}
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
