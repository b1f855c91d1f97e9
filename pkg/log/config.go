// Copyright 2020 Anapaya Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"io"

	"github.com/netsimlab/topogen/pkg/private/serrors"
	"github.com/netsimlab/topogen/private/config"
)

const (
	// DefaultConsoleLevel is the default log level for the console.
	DefaultConsoleLevel = "info"
	// DefaultStacktraceLevel is the default log level from which on stack
	// traces are attached to the entries.
	DefaultStacktraceLevel = "none"
)

const consoleConfigSample = `
# Console logging level (debug|info|error) (default info)
level = "info"

# Console logging format (human|json) (default human)
format = "human"

# Console logging level from which on stack traces are attached to the
# entries (none|debug|info|error) (default none)
stacktrace_level = "none"
`

// Config is the configuration of the logging facade.
type Config struct {
	// Console is the configuration of the console logger.
	Console ConsoleConfig `toml:"console,omitempty"`
}

// InitDefaults populates unset fields to their default values.
func (c *Config) InitDefaults() {
	c.Console.InitDefaults()
}

// Validate validates the config.
func (c *Config) Validate() error {
	return c.Console.validate()
}

// Sample writes the sample configuration to the dst writer.
func (c *Config) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	config.WriteSample(dst, path, ctx, &c.Console)
}

// ConfigName returns the name this config should have in a struct embedding
// it.
func (c *Config) ConfigName() string {
	return "log"
}

// ConsoleConfig is the configuration of the console logger.
type ConsoleConfig struct {
	// Level of the console logger.
	Level string `toml:"level,omitempty"`
	// Format of the console logger entries (human|json).
	Format string `toml:"format,omitempty"`
	// StacktraceLevel is the level from which on entries carry stack traces.
	StacktraceLevel string `toml:"stacktrace_level,omitempty"`
	// DisableCaller stops annotating entries with the calling file and line.
	DisableCaller bool `toml:"disable_caller,omitempty"`
}

// InitDefaults populates unset fields to their default values.
func (c *ConsoleConfig) InitDefaults() {
	if c.Level == "" {
		c.Level = DefaultConsoleLevel
	}
	if c.Format == "" {
		c.Format = "human"
	}
	if c.StacktraceLevel == "" {
		c.StacktraceLevel = DefaultStacktraceLevel
	}
}

func (c *ConsoleConfig) validate() error {
	if c.Format != "human" && c.Format != "json" {
		return serrors.New("unsupported log format", "format", c.Format)
	}
	return nil
}

// Sample writes the sample configuration of the console logger to dst.
func (c *ConsoleConfig) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, consoleConfigSample)
}

// ConfigName returns the name this config should have in a struct embedding
// it.
func (c *ConsoleConfig) ConfigName() string {
	return "console"
}
