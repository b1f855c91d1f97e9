// Copyright 2025 Anapaya Systems
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

package launcher

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netsimlab/topogen/pkg/log"
	"github.com/netsimlab/topogen/private/config"
	"github.com/netsimlab/topogen/private/env"
)

type fakeConfig struct {
	General env.General `toml:"general,omitempty"`
	Logging log.Config  `toml:"log,omitempty"`
	Name    string      `toml:"name,omitempty"`

	initialized bool
}

func (c *fakeConfig) InitDefaults() { c.initialized = true }

func (c *fakeConfig) Validate() error { return nil }

func (c *fakeConfig) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, "name = \"sample\"\n")
}

func TestNewCommandTemplate(t *testing.T) {
	cmd := newCommandTemplate("topogen", "Topology Generator", &fakeConfig{})
	assert.Equal(t, "topogen", cmd.Use)
	assert.Equal(t, "Topology Generator", cmd.Short)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"completion", "sample", "version"}, names)

	flag := cmd.Flags().Lookup("config")
	require.NotNil(t, flag)
	assert.Contains(t, flag.Annotations, cobra.BashCompOneRequiredFlag)
}

func TestApplicationRun(t *testing.T) {
	file := filepath.Join(t.TempDir(), "topogen.toml")
	raw := `
name = "lab"

[general]
id = "topogen-1"

[log.console]
level = "debug"
`
	require.NoError(t, os.WriteFile(file, []byte(raw), 0o644))

	cfg := &fakeConfig{}
	var mainCtx context.Context
	a := &Application{
		TOMLConfig: cfg,
		ShortName:  "Topology Generator",
		Main: func(ctx context.Context) error {
			mainCtx = ctx
			return nil
		},
	}
	a.cmd = newCommandTemplate("topogen", a.ShortName, cfg)
	a.config = viper.New()
	a.config.Set(cfgConfigFile, file)

	require.NoError(t, a.executeCommand(context.Background(), a.ShortName))
	require.NotNil(t, mainCtx)
	assert.NoError(t, mainCtx.Err())
	assert.True(t, cfg.initialized)
	assert.Equal(t, "lab", cfg.Name)
	assert.Equal(t, "topogen-1", a.config.GetString(cfgGeneralID))
	assert.Equal(t, "debug", a.config.GetString(cfgLogConsoleLevel))
}

func TestApplicationConfigErrors(t *testing.T) {
	testCases := map[string]struct {
		file func(t *testing.T) string
	}{
		"missing config file": {
			file: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "missing.toml")
			},
		},
		"malformed config file": {
			file: func(t *testing.T) string {
				file := filepath.Join(t.TempDir(), "topogen.toml")
				require.NoError(t, os.WriteFile(file, []byte("name = [[["), 0o644))
				return file
			},
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			cfg := &fakeConfig{}
			a := &Application{TOMLConfig: cfg}
			a.cmd = newCommandTemplate("topogen", "topogen", cfg)
			a.config = viper.New()
			a.config.Set(cfgConfigFile, tc.file(t))
			assert.Error(t, a.executeCommand(context.Background(), "topogen"))
		})
	}
}
