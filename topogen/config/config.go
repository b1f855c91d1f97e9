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

// Package config describes the configuration of the lab generator.
package config

import (
	"io"
	"net/netip"

	"github.com/netsimlab/topogen/pkg/log"
	"github.com/netsimlab/topogen/pkg/private/serrors"
	"github.com/netsimlab/topogen/private/addrgen"
	"github.com/netsimlab/topogen/private/config"
	"github.com/netsimlab/topogen/private/env"
	"github.com/netsimlab/topogen/private/manifest"
	"github.com/netsimlab/topogen/private/render"
	"github.com/netsimlab/topogen/private/topology"
)

// SpecialSize is the lattice dimension of the built-in partitioned topology.
const SpecialSize = 6

type Config struct {
	General   env.General       `toml:"general,omitempty"`
	Features  env.Features      `toml:"features,omitempty"`
	Logging   log.Config        `toml:"log,omitempty"`
	Metrics   env.Metrics       `toml:"metrics,omitempty"`
	Tracing   env.Tracing       `toml:"tracing,omitempty"`
	Topology  Topology          `toml:"topology,omitempty"`
	Network   Network           `toml:"network,omitempty"`
	Protocols Protocols         `toml:"protocols,omitempty"`
	OSPF      render.OSPFParams `toml:"ospf6,omitempty"`
	ISIS      render.ISISParams `toml:"isis,omitempty"`
	BGP       render.BGPParams  `toml:"bgp,omitempty"`
	BFD       render.BFDParams  `toml:"bfd,omitempty"`
	Lab       manifest.Params   `toml:"lab,omitempty"`
	Modes     Modes             `toml:"modes,omitempty"`
}

func (cfg *Config) InitDefaults() {
	config.InitAll(
		&cfg.General,
		&cfg.Features,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.Tracing,
		&cfg.Topology,
		&cfg.Network,
		&cfg.Protocols,
		&cfg.OSPF,
		&cfg.ISIS,
		&cfg.BGP,
		&cfg.BFD,
		&cfg.Lab,
		&cfg.Modes,
	)
}

func (cfg *Config) Validate() error {
	return config.ValidateAll(
		&cfg.General,
		&cfg.Features,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.Tracing,
		&cfg.Topology,
		&cfg.Network,
		&cfg.Protocols,
		&cfg.OSPF,
		&cfg.ISIS,
		&cfg.BGP,
		&cfg.BFD,
		&cfg.Lab,
		&cfg.Modes,
	)
}

func (cfg *Config) Sample(dst io.Writer, path config.Path, _ config.CtxMap) {
	config.WriteSample(dst, path, config.CtxMap{config.ID: "topogen"},
		&cfg.General,
		&cfg.Features,
		&cfg.Logging,
		&cfg.Metrics,
		&cfg.Tracing,
		&cfg.Topology,
		&cfg.Network,
		&cfg.Protocols,
		&cfg.OSPF,
		&cfg.ISIS,
		&cfg.BGP,
		&cfg.BFD,
		&cfg.Lab,
		&cfg.Modes,
	)
}

var _ config.Config = (*Topology)(nil)

// Topology selects the shape of the generated lattice.
type Topology struct {
	config.NoDefaulter

	// Variant is the lattice family.
	Variant topology.Variant `toml:"variant,omitempty"`
	// Size is the lattice dimension. Generated labs are always square.
	Size int `toml:"size,omitempty"`
	// MultiArea splits the lattice into area bands instead of a single
	// backbone area.
	MultiArea bool `toml:"multi_area,omitempty"`
	// AreaSize is the band width in lattice rows and columns. Required when
	// MultiArea is set.
	AreaSize int `toml:"area_size,omitempty"`
}

func (cfg *Topology) Validate() error {
	if cfg.Size < topology.MinSize || cfg.Size > topology.MaxSize {
		return serrors.New("size out of range",
			"size", cfg.Size, "min", topology.MinSize, "max", topology.MaxSize)
	}
	if cfg.Variant == topology.Special && cfg.Size != SpecialSize {
		return serrors.New("the built-in partition requires a fixed size",
			"size", cfg.Size, "expected", SpecialSize)
	}
	if cfg.MultiArea && (cfg.AreaSize < 2 || cfg.AreaSize > cfg.Size) {
		return serrors.New("area size out of range",
			"area_size", cfg.AreaSize, "size", cfg.Size)
	}
	return nil
}

// Build constructs the configured topology.
func (cfg *Topology) Build() (*topology.Topology, error) {
	if cfg.Variant == topology.Special {
		return topology.NewSpecial(cfg.Size, topology.Sample6x6())
	}
	return topology.New(cfg.Variant, cfg.Size)
}

func (cfg *Topology) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	config.WriteString(dst, topologySample)
}

func (cfg *Topology) ConfigName() string {
	return "topology"
}

var _ config.Config = (*Network)(nil)

// Network holds the global prefixes addresses are derived in.
type Network struct {
	// LoopbackPrefix is the prefix loopback addresses are derived in.
	LoopbackPrefix netip.Prefix `toml:"loopback_prefix,omitempty"`
	// LinkPrefix is the prefix per-link networks are derived in.
	LinkPrefix netip.Prefix `toml:"link_prefix,omitempty"`
}

func (cfg *Network) InitDefaults() {
	def := addrgen.Default()
	if !cfg.LoopbackPrefix.IsValid() {
		cfg.LoopbackPrefix = def.Loopbacks
	}
	if !cfg.LinkPrefix.IsValid() {
		cfg.LinkPrefix = def.Links
	}
}

func (cfg *Network) Validate() error {
	return cfg.Plan().Validate()
}

// Plan returns the address plan described by the section.
func (cfg *Network) Plan() addrgen.Plan {
	return addrgen.Plan{
		Loopbacks: cfg.LoopbackPrefix,
		Links:     cfg.LinkPrefix,
	}
}

func (cfg *Network) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	config.WriteString(dst, networkSample)
}

func (cfg *Network) ConfigName() string {
	return "network"
}

var _ config.Config = (*Protocols)(nil)

// Protocols selects the routing protocols rendered into the lab.
type Protocols struct {
	// Enabled lists the rendered protocols (ospf6, isis, bgp, bfd). An
	// explicit empty list produces a lab that runs zebra only.
	Enabled []string `toml:"enabled,omitempty"`
}

func (cfg *Protocols) InitDefaults() {
	if cfg.Enabled == nil {
		cfg.Enabled = []string{"ospf6"}
	}
}

func (cfg *Protocols) Validate() error {
	seen := make(map[string]bool, len(cfg.Enabled))
	for _, p := range cfg.Enabled {
		switch p {
		case "ospf6", "isis", "bgp", "bfd":
		default:
			return serrors.New("unknown protocol", "protocol", p)
		}
		if seen[p] {
			return serrors.New("duplicate protocol", "protocol", p)
		}
		seen[p] = true
	}
	return nil
}

// Active reports whether the named protocol is rendered.
func (cfg *Protocols) Active(name string) bool {
	for _, p := range cfg.Enabled {
		if p == name {
			return true
		}
	}
	return false
}

func (cfg *Protocols) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	config.WriteString(dst, protocolsSample)
}

func (cfg *Protocols) ConfigName() string {
	return "protocols"
}

var _ config.Config = (*Modes)(nil)

// Modes tweaks the rendered lab for failure experiments.
type Modes struct {
	config.NoDefaulter

	// DisableLogging drops the log file statements from all daemon files.
	DisableLogging bool `toml:"disable_logging,omitempty"`
	// DaemonsOff marks every routing daemon disabled in the daemons file.
	DaemonsOff bool `toml:"daemons_off,omitempty"`
	// DaemonsDisabled lists daemons marked disabled individually (ospf6d,
	// isisd, bgpd, bfdd).
	DaemonsDisabled []string `toml:"daemons_disabled,omitempty"`
	// DummyConfig lists daemons whose configuration is diverted to a -bak
	// file, leaving an empty live file behind.
	DummyConfig []string `toml:"dummy_config,omitempty"`
	// NoConfig lists daemons that get an empty live file.
	NoConfig []string `toml:"no_config,omitempty"`
	// NoLinks builds routers without links or interface assignments.
	NoLinks bool `toml:"no_links,omitempty"`
}

func (cfg *Modes) Validate() error {
	for _, d := range cfg.DaemonsDisabled {
		switch d {
		case "ospf6d", "isisd", "bgpd", "bfdd":
		default:
			return serrors.New("unknown daemon in disabled list", "daemon", d)
		}
	}
	for _, d := range cfg.DummyConfig {
		if !render.Configurable(d) {
			return serrors.New("unknown daemon in dummy list", "daemon", d)
		}
	}
	for _, d := range cfg.NoConfig {
		if !render.Configurable(d) {
			return serrors.New("unknown daemon in no-config list", "daemon", d)
		}
	}
	return nil
}

func (cfg *Modes) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	config.WriteString(dst, modesSample)
}

func (cfg *Modes) ConfigName() string {
	return "modes"
}
