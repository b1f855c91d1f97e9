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

// Package configtest contains helpers for testing the generator
// configuration sections.
package configtest

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/netsimlab/topogen/private/addrgen"
	"github.com/netsimlab/topogen/private/manifest"
	"github.com/netsimlab/topogen/private/render"
	"github.com/netsimlab/topogen/private/topology"
	"github.com/netsimlab/topogen/topogen/config"
)

func InitTopology(cfg *config.Topology) {
	cfg.Variant = topology.Torus
	cfg.MultiArea = true
}

func CheckTopology(t *testing.T, cfg *config.Topology) {
	assert.Equal(t, topology.Grid, cfg.Variant)
	assert.Equal(t, 5, cfg.Size)
	assert.False(t, cfg.MultiArea)
	assert.Zero(t, cfg.AreaSize)
}

func InitNetwork(cfg *config.Network) {
	cfg.LoopbackPrefix = netip.MustParsePrefix("2001:db8:aaaa::/48")
	cfg.LinkPrefix = netip.MustParsePrefix("2001:db8:bbbb::/48")
}

func CheckNetwork(t *testing.T, cfg *config.Network) {
	def := addrgen.Default()
	assert.Equal(t, def.Loopbacks, cfg.LoopbackPrefix)
	assert.Equal(t, def.Links, cfg.LinkPrefix)
}

func InitProtocols(cfg *config.Protocols) {
	cfg.Enabled = []string{"isis"}
}

func CheckProtocols(t *testing.T, cfg *config.Protocols) {
	assert.Equal(t, []string{"ospf6"}, cfg.Enabled)
}

func InitModes(cfg *config.Modes) {
	cfg.DisableLogging = true
	cfg.DaemonsOff = true
	cfg.NoLinks = true
}

func CheckModes(t *testing.T, cfg *config.Modes) {
	assert.False(t, cfg.DisableLogging)
	assert.False(t, cfg.DaemonsOff)
	assert.Empty(t, cfg.DaemonsDisabled)
	assert.Empty(t, cfg.DummyConfig)
	assert.Empty(t, cfg.NoConfig)
	assert.False(t, cfg.NoLinks)
}

func InitOSPF(cfg *render.OSPFParams) {
	cfg.MaximumPaths = 7
	cfg.LSAOnly = true
}

func CheckOSPF(t *testing.T, cfg *render.OSPFParams) {
	assert.Equal(t, 10*time.Second, cfg.HelloInterval.Duration)
	assert.Equal(t, 40*time.Second, cfg.DeadInterval.Duration)
	assert.Equal(t, 5*time.Second, cfg.RetransmitInterval.Duration)
	assert.Equal(t, time.Second, cfg.TransmitDelay.Duration)
	assert.Equal(t, 1, cfg.Priority)
	assert.Equal(t, 20, cfg.VerticalCost)
	assert.Equal(t, 40, cfg.HorizontalCost)
	assert.Equal(t, 20*time.Millisecond, cfg.SPFDelay.Duration)
	assert.Equal(t, time.Second, cfg.LSAMinArrival.Duration)
	assert.Equal(t, 1, cfg.MaximumPaths)
	assert.False(t, cfg.LSAOnly)
}

func InitISIS(cfg *render.ISISParams) {
	cfg.Area = "49.0002"
	cfg.LevelType = "level-2"
}

func CheckISIS(t *testing.T, cfg *render.ISISParams) {
	assert.Equal(t, "49.0001", cfg.Area)
	assert.Equal(t, "level-1", cfg.LevelType)
	assert.Equal(t, "wide", cfg.MetricStyle)
	assert.Equal(t, 10, cfg.VerticalMetric)
	assert.Equal(t, 20, cfg.HorizontalMetric)
	assert.Equal(t, 3*time.Second, cfg.HelloInterval.Duration)
	assert.Equal(t, 10, cfg.HelloMultiplier)
	assert.Equal(t, 10*time.Second, cfg.CSNPInterval.Duration)
	assert.Equal(t, 2*time.Second, cfg.PSNPInterval.Duration)
	assert.Equal(t, 5*time.Second, cfg.LSPGenInterval.Duration)
	assert.Equal(t, 15*time.Minute, cfg.LSPRefreshInterval.Duration)
	assert.Equal(t, 20*time.Minute, cfg.MaxLSPLifetime.Duration)
	assert.Equal(t, time.Second, cfg.SPFInterval.Duration)
	assert.Equal(t, 50*time.Millisecond, cfg.SPFInitDelay.Duration)
	assert.Equal(t, 200*time.Millisecond, cfg.SPFShortDelay.Duration)
	assert.Equal(t, 5*time.Second, cfg.SPFLongDelay.Duration)
	assert.Equal(t, 100*time.Millisecond, cfg.SPFHolddown.Duration)
	assert.Equal(t, 500*time.Millisecond, cfg.SPFTimeToLearn.Duration)
}

func InitBGP(cfg *render.BGPParams) {
	cfg.BaseAS = 1
}

func CheckBGP(t *testing.T, cfg *render.BGPParams) {
	assert.Equal(t, uint32(65000), cfg.BaseAS)
}

func InitBFD(cfg *render.BFDParams) {
	cfg.DetectMultiplier = 9
	cfg.EchoMode = true
}

func CheckBFD(t *testing.T, cfg *render.BFDParams) {
	assert.Equal(t, 3, cfg.DetectMultiplier)
	assert.Equal(t, 300*time.Millisecond, cfg.ReceiveInterval.Duration)
	assert.Equal(t, 300*time.Millisecond, cfg.TransmitInterval.Duration)
	assert.False(t, cfg.EchoMode)
}

func InitLab(cfg *manifest.Params) {
	cfg.Podman = true
	cfg.OutputDir = "garbage"
}

func CheckLab(t *testing.T, cfg *manifest.Params) {
	assert.Equal(t, manifest.DefaultImage, cfg.Image)
	assert.False(t, cfg.Podman)
	assert.Zero(t, cfg.LinkDelay.Duration)
	assert.Equal(t, "auto", cfg.CPUSet)
	assert.Equal(t, 2.0, cfg.CPULimit)
	assert.Equal(t, "2Gb", cfg.MemoryLimit)
	assert.Empty(t, cfg.OutputDir)
}
