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

// Package manifest lays out the on-disk shape of a generated lab: the
// per-router directory skeleton, the artifact naming conventions and the
// containerlab topology description that wires the containers together.
package manifest

import (
	"io"
	"regexp"

	"github.com/netsimlab/topogen/pkg/private/serrors"
	"github.com/netsimlab/topogen/pkg/private/util"
	"github.com/netsimlab/topogen/private/config"
)

// DefaultImage is the FRR container image used when none is configured.
const DefaultImage = "quay.io/frrouting/frr:10.3.1"

var cpuSetRegexp = regexp.MustCompile(`^\d+(-\d+)?$`)

const paramsSample = `
# Container image run for every router node
# (default "quay.io/frrouting/frr:10.3.1")
image = "quay.io/frrouting/frr:10.3.1"

# Keep the runtime's default container network instead of running the
# nodes detached (default false)
podman = false

# Transmission delay added on every wired interface via netem. Zero
# leaves the interfaces untouched (default 0s)
link_delay = "0s"

# CPU range the containers are pinned to. The value "auto" derives the
# range from the host (default "auto")
cpu_set = "auto"

# Per-container CPU limit (default 2.0)
cpu_limit = 2.0

# Per-container memory limit (default "2Gb")
memory_limit = "2Gb"

# Output directory. Empty derives the conventional name from the
# topology and the enabled protocols (default "")
output_dir = ""
`

// Params configures the emulation containers of a lab.
type Params struct {
	// Image is the container image run for every router node.
	Image string `toml:"image,omitempty"`
	// Podman keeps the runtime's default container network.
	Podman bool `toml:"podman,omitempty"`
	// LinkDelay is the transmission delay added on every wired
	// interface. Zero leaves the interfaces untouched.
	LinkDelay util.DurWrap `toml:"link_delay,omitempty"`
	// CPUSet is the CPU range the containers are pinned to, or "auto".
	CPUSet string `toml:"cpu_set,omitempty"`
	// CPULimit is the per-container CPU limit.
	CPULimit float64 `toml:"cpu_limit,omitempty"`
	// MemoryLimit is the per-container memory limit.
	MemoryLimit string `toml:"memory_limit,omitempty"`
	// OutputDir overrides the conventional output directory name.
	OutputDir string `toml:"output_dir,omitempty"`
}

// InitDefaults populates unset fields to their default values.
func (cfg *Params) InitDefaults() {
	if cfg.Image == "" {
		cfg.Image = DefaultImage
	}
	if cfg.CPUSet == "" {
		cfg.CPUSet = "auto"
	}
	if cfg.CPULimit == 0 {
		cfg.CPULimit = 2
	}
	if cfg.MemoryLimit == "" {
		cfg.MemoryLimit = "2Gb"
	}
}

// Validate validates the config.
func (cfg *Params) Validate() error {
	if cfg.Image == "" {
		return serrors.New("image must be set")
	}
	if cfg.LinkDelay.Duration < 0 {
		return serrors.New("link delay must not be negative",
			"link_delay", cfg.LinkDelay)
	}
	if cfg.CPUSet != "auto" && !cpuSetRegexp.MatchString(cfg.CPUSet) {
		return serrors.New("malformed cpu set", "cpu_set", cfg.CPUSet)
	}
	if cfg.CPULimit <= 0 {
		return serrors.New("cpu limit must be positive", "cpu_limit", cfg.CPULimit)
	}
	if cfg.MemoryLimit == "" {
		return serrors.New("memory limit must be set")
	}
	return nil
}

// Sample writes the sample configuration to dst.
func (cfg *Params) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, paramsSample)
}

// ConfigName returns the name this config should have in a struct
// embedding it.
func (cfg *Params) ConfigName() string {
	return "lab"
}
