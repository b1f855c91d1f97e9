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

package manifest_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/netsimlab/topogen/pkg/private/util"
	"github.com/netsimlab/topogen/pkg/private/xtest"
	"github.com/netsimlab/topogen/private/addrgen"
	"github.com/netsimlab/topogen/private/lab"
	"github.com/netsimlab/topogen/private/manifest"
	"github.com/netsimlab/topogen/private/topology"
)

var update = xtest.UpdateGoldenFiles()

func TestNaming(t *testing.T) {
	grid := func(size int) *topology.Topology {
		topo, err := topology.New(topology.Grid, size)
		require.NoError(t, err)
		return topo
	}
	torus8, err := topology.New(topology.Torus, 8)
	require.NoError(t, err)
	strip4, err := topology.New(topology.Strip, 4)
	require.NoError(t, err)
	special, err := topology.NewSpecial(6, topology.Sample6x6())
	require.NoError(t, err)
	pureCfg := topology.Sample6x6()
	pureCfg.IncludeBase = false
	pure, err := topology.NewSpecial(6, pureCfg)
	require.NoError(t, err)

	testCases := map[string]struct {
		naming    manifest.Naming
		topo      *topology.Topology
		outputDir string
		clabFile  string
		labName   string
	}{
		"ospf": {
			naming:    manifest.Naming{OSPF: true},
			topo:      grid(6),
			outputDir: "ospf6_grid6x6",
			clabFile:  "ospf6_grid6x6.clab.yaml",
			labName:   "ospf6-grid6x6",
		},
		"no protocol": {
			naming:    manifest.Naming{},
			topo:      grid(2),
			outputDir: "ospf6_grid2x2",
			clabFile:  "ospf6_grid2x2.clab.yaml",
			labName:   "ospf6-grid2x2",
		},
		"isis": {
			naming:    manifest.Naming{ISIS: true},
			topo:      strip4,
			outputDir: "isis_strip4x4",
			clabFile:  "isis_strip4x4.clab.yaml",
			labName:   "isis-strip4x4",
		},
		"both with lsa freeze": {
			naming:    manifest.Naming{OSPF: true, ISIS: true, LSAOnly: true},
			topo:      torus8,
			outputDir: "ospf6_isis_torus8x8_lsa_only",
			clabFile:  "ospf6_isis_torus8x8.clab.yaml",
			labName:   "ospf6-isis-torus8x8",
		},
		"partitioned": {
			naming:    manifest.Naming{OSPF: true},
			topo:      special,
			outputDir: "ospf6_special6x6",
			clabFile:  "ospf6_special6x6.clab.yaml",
			labName:   "ospf6-grid_special6x6",
		},
		"pure partitioned": {
			naming:    manifest.Naming{OSPF: true},
			topo:      pure,
			outputDir: "ospf6_special6x6",
			clabFile:  "ospf6_special6x6.clab.yaml",
			labName:   "ospf6-pure_special6x6",
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.outputDir, tc.naming.OutputDir(tc.topo))
			assert.Equal(t, tc.clabFile, tc.naming.ClabFile(tc.topo))
			assert.Equal(t, tc.labName, tc.naming.LabName(tc.topo))
		})
	}
}

func TestParamsSample(t *testing.T) {
	var sample bytes.Buffer
	var cfg manifest.Params
	cfg.Sample(&sample, nil, nil)

	dec := toml.NewDecoder(bytes.NewReader(sample.Bytes()))
	dec.DisallowUnknownFields()
	require.NoError(t, dec.Decode(&cfg))

	defaults := manifest.Params{}
	defaults.InitDefaults()
	assert.Equal(t, defaults, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestParamsValidate(t *testing.T) {
	testCases := map[string]struct {
		modify    func(*manifest.Params)
		assertErr assert.ErrorAssertionFunc
	}{
		"defaults": {
			modify:    func(*manifest.Params) {},
			assertErr: assert.NoError,
		},
		"explicit range": {
			modify:    func(p *manifest.Params) { p.CPUSet = "0-7" },
			assertErr: assert.NoError,
		},
		"single cpu": {
			modify:    func(p *manifest.Params) { p.CPUSet = "3" },
			assertErr: assert.NoError,
		},
		"malformed cpu set": {
			modify:    func(p *manifest.Params) { p.CPUSet = "all" },
			assertErr: assert.Error,
		},
		"negative delay": {
			modify:    func(p *manifest.Params) { p.LinkDelay.Duration = -time.Second },
			assertErr: assert.Error,
		},
		"negative cpu limit": {
			modify:    func(p *manifest.Params) { p.CPULimit = -1 },
			assertErr: assert.Error,
		},
		"missing memory": {
			modify:    func(p *manifest.Params) { p.MemoryLimit = "" },
			assertErr: assert.Error,
		},
		"missing image": {
			modify:    func(p *manifest.Params) { p.Image = "" },
			assertErr: assert.Error,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			cfg := manifest.Params{}
			cfg.InitDefaults()
			tc.modify(&cfg)
			tc.assertErr(t, cfg.Validate())
		})
	}
}

func TestScaffold(t *testing.T) {
	l := gridLab(t)
	dir := t.TempDir()
	require.NoError(t, manifest.Scaffold(dir, l))

	logNames := []string{
		"zebra.log", "ospf6d.log", "bgpd.log", "bfdd.log",
		"staticd.log", "route.json", "isisd.log",
	}
	for _, r := range l.Routers {
		assert.DirExists(t, filepath.Join(dir, "etc", r.Name, "conf"))
		for _, name := range logNames {
			info, err := os.Stat(filepath.Join(dir, "etc", r.Name, "log", name))
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o777), info.Mode().Perm())
		}
	}

	// Regenerating in place must not wipe logs from earlier runs.
	kept := filepath.Join(dir, "etc", "router_00_00", "log", "zebra.log")
	require.NoError(t, os.WriteFile(kept, []byte("previous run"), 0o777))
	require.NoError(t, manifest.Scaffold(dir, l))
	content, err := os.ReadFile(kept)
	require.NoError(t, err)
	assert.Equal(t, "previous run", string(content))
}

func TestClab(t *testing.T) {
	l := gridLab(t)
	testCases := map[string]struct {
		golden string
		naming manifest.Naming
		params manifest.Params
	}{
		"docker": {
			golden: "grid.clab.yaml",
			naming: manifest.Naming{OSPF: true},
			params: manifest.Params{
				Image:       "quay.io/frrouting/frr:10.3.1",
				CPUSet:      "0-3",
				CPULimit:    2,
				MemoryLimit: "2Gb",
			},
		},
		"podman with delay": {
			golden: "delay.clab.yaml",
			naming: manifest.Naming{OSPF: true, ISIS: true},
			params: manifest.Params{
				Image:       "quay.io/frrouting/frr:10.3.1",
				Podman:      true,
				LinkDelay:   util.DurWrap{Duration: 10 * time.Millisecond},
				CPUSet:      "0-3",
				CPULimit:    1.5,
				MemoryLimit: "2Gb",
			},
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			raw, err := manifest.Clab(l, tc.naming, tc.params)
			require.NoError(t, err)
			goldenFile := xtest.ExpandPath(tc.golden)
			if *update {
				require.NoError(t, os.WriteFile(goldenFile, raw, 0o644))
			}
			xtest.AssertGolden(t, goldenFile, raw)
		})
	}
}

func TestClabSpecialLinks(t *testing.T) {
	topo, err := topology.NewSpecial(6, topology.Sample6x6())
	require.NoError(t, err)
	l, err := lab.Builder{Plan: addrgen.Default(), AssignASNs: true, BaseAS: 65000}.Build(topo)
	require.NoError(t, err)

	raw, err := manifest.Clab(l, manifest.Naming{OSPF: true}, manifest.Params{
		Image:       manifest.DefaultImage,
		CPUSet:      "0-3",
		CPULimit:    2,
		MemoryLimit: "2Gb",
	})
	require.NoError(t, err)

	var doc struct {
		Name     string `yaml:"name"`
		Topology struct {
			Nodes map[string]struct {
				Kind string `yaml:"kind"`
			} `yaml:"nodes"`
			Links []struct {
				Endpoints []string `yaml:"endpoints"`
			} `yaml:"links"`
		} `yaml:"topology"`
	}
	require.NoError(t, yaml.Unmarshal(raw, &doc))

	assert.Equal(t, "ospf6-grid_special6x6", doc.Name)
	assert.Len(t, doc.Topology.Nodes, 36)
	assert.Len(t, doc.Topology.Links, 52)

	var endpoints []string
	for _, link := range doc.Topology.Links {
		endpoints = append(endpoints, link.Endpoints...)
	}
	// The wired quadrant bridge shows up, the wraparound bridge exists in
	// the routing tables only.
	assert.Contains(t, endpoints, "router_01_02:eth4")
	assert.NotContains(t, endpoints, "router_00_01:eth1")
}

func TestClabDefaultImage(t *testing.T) {
	l := gridLab(t)
	raw, err := manifest.Clab(l, manifest.Naming{OSPF: true}, manifest.Params{
		CPUSet:      "0-3",
		CPULimit:    2,
		MemoryLimit: "2Gb",
	})
	require.NoError(t, err)
	assert.Contains(t, string(raw), "image: "+manifest.DefaultImage)
}

func TestClabAutoCPUSet(t *testing.T) {
	l := gridLab(t)
	raw, err := manifest.Clab(l, manifest.Naming{OSPF: true}, manifest.Params{
		Image:       manifest.DefaultImage,
		CPUSet:      "auto",
		CPULimit:    2,
		MemoryLimit: "2Gb",
	})
	require.NoError(t, err)
	assert.Regexp(t, `cpu-set: 0-\d+`, string(raw))
}

func TestClabDeterminism(t *testing.T) {
	l := gridLab(t)
	naming := manifest.Naming{OSPF: true}
	params := manifest.Params{
		Image:       manifest.DefaultImage,
		CPUSet:      "0-1",
		CPULimit:    1,
		MemoryLimit: "1Gb",
	}
	first, err := manifest.Clab(l, naming, params)
	require.NoError(t, err)
	for i := 0; i < 16; i++ {
		again, err := manifest.Clab(l, naming, params)
		require.NoError(t, err)
		require.Equal(t, string(first), string(again))
	}
}

func TestWriteClab(t *testing.T) {
	l := gridLab(t)
	dir := filepath.Join(t.TempDir(), "out")
	naming := manifest.Naming{OSPF: true}
	params := manifest.Params{
		Image:       manifest.DefaultImage,
		CPUSet:      "0-3",
		CPULimit:    2,
		MemoryLimit: "2Gb",
	}
	file, err := manifest.WriteClab(dir, l, naming, params)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "ospf6_grid2x2.clab.yaml"), file)

	raw, err := os.ReadFile(file)
	require.NoError(t, err)
	expected, err := manifest.Clab(l, naming, params)
	require.NoError(t, err)
	assert.Equal(t, expected, raw)
}

func gridLab(t *testing.T) *lab.Lab {
	topo, err := topology.New(topology.Grid, 2)
	require.NoError(t, err)
	l, err := lab.Builder{Plan: addrgen.Default()}.Build(topo)
	require.NoError(t, err)
	return l
}
