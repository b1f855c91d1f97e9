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

package render

import (
	"io"
	"time"

	"github.com/netsimlab/topogen/pkg/private/serrors"
	"github.com/netsimlab/topogen/pkg/private/util"
	"github.com/netsimlab/topogen/private/config"
)

const ospfSample = `
# Interval between hello packets on every interface (default 10s)
hello_interval = "10s"

# Interval after which a silent neighbor is declared down. Must be at
# least three times the hello interval (default 40s)
dead_interval = "40s"

# Interval between LSA retransmissions (default 5s)
retransmit_interval = "5s"

# Estimated transmission delay advertised on every interface (default 1s)
transmit_delay = "1s"

# Router priority advertised on every interface (default 1)
priority = 1

# Cost of north and south facing interfaces (default 20)
vertical_cost = 20

# Cost of east and west facing interfaces (default 40)
horizontal_cost = 40

# SPF throttle delay and hold times (default 20ms)
spf_delay = "20ms"

# Minimum interval between arrivals of the same LSA (default 1s)
lsa_min_arrival = "1s"

# Number of equal-cost paths installed per destination (default 1)
maximum_paths = 1

# Freeze SPF on every router but the origin corner so that only LSA
# flooding remains observable (default false)
lsa_only = false
`

// OSPFParams configures the ospf6d instances of a lab.
type OSPFParams struct {
	// HelloInterval is the interval between hello packets.
	HelloInterval util.DurWrap `toml:"hello_interval,omitempty"`
	// DeadInterval is the interval after which a neighbor is declared down.
	DeadInterval util.DurWrap `toml:"dead_interval,omitempty"`
	// RetransmitInterval is the interval between LSA retransmissions.
	RetransmitInterval util.DurWrap `toml:"retransmit_interval,omitempty"`
	// TransmitDelay is the advertised transmission delay.
	TransmitDelay util.DurWrap `toml:"transmit_delay,omitempty"`
	// Priority is the router priority advertised on every interface.
	Priority int `toml:"priority,omitempty"`
	// VerticalCost is the cost of north and south facing interfaces.
	VerticalCost int `toml:"vertical_cost,omitempty"`
	// HorizontalCost is the cost of east and west facing interfaces.
	HorizontalCost int `toml:"horizontal_cost,omitempty"`
	// SPFDelay is used for the delay and both hold times of the SPF
	// throttle.
	SPFDelay util.DurWrap `toml:"spf_delay,omitempty"`
	// LSAMinArrival is the minimum accepted interval between arrivals of
	// the same LSA.
	LSAMinArrival util.DurWrap `toml:"lsa_min_arrival,omitempty"`
	// MaximumPaths is the number of equal-cost paths installed per
	// destination.
	MaximumPaths int `toml:"maximum_paths,omitempty"`
	// LSAOnly freezes SPF on every router but the origin corner.
	LSAOnly bool `toml:"lsa_only,omitempty"`
}

// InitDefaults populates unset fields to their default values.
func (cfg *OSPFParams) InitDefaults() {
	if cfg.HelloInterval.Duration == 0 {
		cfg.HelloInterval.Duration = 10 * time.Second
	}
	if cfg.DeadInterval.Duration == 0 {
		cfg.DeadInterval.Duration = 40 * time.Second
	}
	if cfg.RetransmitInterval.Duration == 0 {
		cfg.RetransmitInterval.Duration = 5 * time.Second
	}
	if cfg.TransmitDelay.Duration == 0 {
		cfg.TransmitDelay.Duration = time.Second
	}
	if cfg.Priority == 0 {
		cfg.Priority = 1
	}
	if cfg.VerticalCost == 0 {
		cfg.VerticalCost = 20
	}
	if cfg.HorizontalCost == 0 {
		cfg.HorizontalCost = 40
	}
	if cfg.SPFDelay.Duration == 0 {
		cfg.SPFDelay.Duration = 20 * time.Millisecond
	}
	if cfg.LSAMinArrival.Duration == 0 {
		cfg.LSAMinArrival.Duration = time.Second
	}
	if cfg.MaximumPaths == 0 {
		cfg.MaximumPaths = 1
	}
}

// Validate validates the config.
func (cfg *OSPFParams) Validate() error {
	if cfg.HelloInterval.Duration <= 0 {
		return serrors.New("hello interval must be positive",
			"hello_interval", cfg.HelloInterval)
	}
	if cfg.DeadInterval.Duration < 3*cfg.HelloInterval.Duration {
		return serrors.New("dead interval below three hello intervals",
			"dead_interval", cfg.DeadInterval, "hello_interval", cfg.HelloInterval)
	}
	if cfg.RetransmitInterval.Duration <= 0 {
		return serrors.New("retransmit interval must be positive",
			"retransmit_interval", cfg.RetransmitInterval)
	}
	if cfg.TransmitDelay.Duration <= 0 {
		return serrors.New("transmit delay must be positive",
			"transmit_delay", cfg.TransmitDelay)
	}
	if cfg.Priority < 0 || cfg.Priority > 255 {
		return serrors.New("priority out of range", "priority", cfg.Priority)
	}
	if cfg.VerticalCost <= 0 || cfg.VerticalCost > 65535 {
		return serrors.New("vertical cost out of range", "cost", cfg.VerticalCost)
	}
	if cfg.HorizontalCost <= 0 || cfg.HorizontalCost > 65535 {
		return serrors.New("horizontal cost out of range", "cost", cfg.HorizontalCost)
	}
	if cfg.SPFDelay.Duration <= 0 {
		return serrors.New("spf delay must be positive", "spf_delay", cfg.SPFDelay)
	}
	if cfg.LSAMinArrival.Duration <= 0 {
		return serrors.New("lsa min-arrival must be positive",
			"lsa_min_arrival", cfg.LSAMinArrival)
	}
	if cfg.MaximumPaths < 1 || cfg.MaximumPaths > 64 {
		return serrors.New("maximum paths out of range", "maximum_paths", cfg.MaximumPaths)
	}
	return nil
}

// Sample writes the sample configuration to dst.
func (cfg *OSPFParams) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, ospfSample)
}

// ConfigName returns the name this config should have in a struct embedding
// it.
func (cfg *OSPFParams) ConfigName() string {
	return "ospf6"
}

const isisSample = `
# Area part of the network entity title (default "49.0001")
area = "49.0001"

# Circuit and router level (level-1|level-2|level-1-2) (default "level-1")
level_type = "level-1"

# Metric style advertised in LSPs (narrow|wide|transition) (default "wide")
metric_style = "wide"

# Metric of north and south facing interfaces (default 10)
vertical_metric = 10

# Metric of east and west facing interfaces (default 20)
horizontal_metric = 20

# Interval between hello PDUs (default 3s)
hello_interval = "3s"

# Multiplier for the hello holding time (default 10)
hello_multiplier = 10

# Interval between CSNP transmissions (default 10s)
csnp_interval = "10s"

# Interval between PSNP transmissions (default 2s)
psnp_interval = "2s"

# Minimum interval between LSP regenerations (default 5s)
lsp_gen_interval = "5s"

# Interval between periodic LSP refreshes (default 15m)
lsp_refresh_interval = "15m"

# Maximum LSP lifetime. Must exceed the refresh interval by at least
# five minutes (default 20m)
max_lsp_lifetime = "20m"

# Minimum interval between SPF runs (default 1s)
spf_interval = "1s"

# IETF SPF back-off initial delay (default 50ms)
spf_init_delay = "50ms"

# IETF SPF back-off short delay (default 200ms)
spf_short_delay = "200ms"

# IETF SPF back-off long delay (default 5s)
spf_long_delay = "5s"

# IETF SPF back-off holddown (default 100ms)
spf_holddown = "100ms"

# IETF SPF back-off time to learn (default 500ms)
spf_time_to_learn = "500ms"
`

// ISISParams configures the isisd instances of a lab.
type ISISParams struct {
	// Area is the area part of the network entity title.
	Area string `toml:"area,omitempty"`
	// LevelType is the circuit and router level.
	LevelType string `toml:"level_type,omitempty"`
	// MetricStyle is the metric style advertised in LSPs.
	MetricStyle string `toml:"metric_style,omitempty"`
	// VerticalMetric is the metric of north and south facing interfaces.
	VerticalMetric int `toml:"vertical_metric,omitempty"`
	// HorizontalMetric is the metric of east and west facing interfaces.
	HorizontalMetric int `toml:"horizontal_metric,omitempty"`
	// HelloInterval is the interval between hello PDUs.
	HelloInterval util.DurWrap `toml:"hello_interval,omitempty"`
	// HelloMultiplier scales the hello interval into the holding time.
	HelloMultiplier int `toml:"hello_multiplier,omitempty"`
	// CSNPInterval is the interval between CSNP transmissions.
	CSNPInterval util.DurWrap `toml:"csnp_interval,omitempty"`
	// PSNPInterval is the interval between PSNP transmissions.
	PSNPInterval util.DurWrap `toml:"psnp_interval,omitempty"`
	// LSPGenInterval is the minimum interval between LSP regenerations.
	LSPGenInterval util.DurWrap `toml:"lsp_gen_interval,omitempty"`
	// LSPRefreshInterval is the interval between periodic LSP refreshes.
	LSPRefreshInterval util.DurWrap `toml:"lsp_refresh_interval,omitempty"`
	// MaxLSPLifetime is the maximum LSP lifetime.
	MaxLSPLifetime util.DurWrap `toml:"max_lsp_lifetime,omitempty"`
	// SPFInterval is the minimum interval between SPF runs.
	SPFInterval util.DurWrap `toml:"spf_interval,omitempty"`
	// SPFInitDelay is the IETF SPF back-off initial delay.
	SPFInitDelay util.DurWrap `toml:"spf_init_delay,omitempty"`
	// SPFShortDelay is the IETF SPF back-off short delay.
	SPFShortDelay util.DurWrap `toml:"spf_short_delay,omitempty"`
	// SPFLongDelay is the IETF SPF back-off long delay.
	SPFLongDelay util.DurWrap `toml:"spf_long_delay,omitempty"`
	// SPFHolddown is the IETF SPF back-off holddown.
	SPFHolddown util.DurWrap `toml:"spf_holddown,omitempty"`
	// SPFTimeToLearn is the IETF SPF back-off time to learn.
	SPFTimeToLearn util.DurWrap `toml:"spf_time_to_learn,omitempty"`
}

// InitDefaults populates unset fields to their default values.
func (cfg *ISISParams) InitDefaults() {
	if cfg.Area == "" {
		cfg.Area = "49.0001"
	}
	if cfg.LevelType == "" {
		cfg.LevelType = "level-1"
	}
	if cfg.MetricStyle == "" {
		cfg.MetricStyle = "wide"
	}
	if cfg.VerticalMetric == 0 {
		cfg.VerticalMetric = 10
	}
	if cfg.HorizontalMetric == 0 {
		cfg.HorizontalMetric = 20
	}
	if cfg.HelloInterval.Duration == 0 {
		cfg.HelloInterval.Duration = 3 * time.Second
	}
	if cfg.HelloMultiplier == 0 {
		cfg.HelloMultiplier = 10
	}
	if cfg.CSNPInterval.Duration == 0 {
		cfg.CSNPInterval.Duration = 10 * time.Second
	}
	if cfg.PSNPInterval.Duration == 0 {
		cfg.PSNPInterval.Duration = 2 * time.Second
	}
	if cfg.LSPGenInterval.Duration == 0 {
		cfg.LSPGenInterval.Duration = 5 * time.Second
	}
	if cfg.LSPRefreshInterval.Duration == 0 {
		cfg.LSPRefreshInterval.Duration = 15 * time.Minute
	}
	if cfg.MaxLSPLifetime.Duration == 0 {
		cfg.MaxLSPLifetime.Duration = 20 * time.Minute
	}
	if cfg.SPFInterval.Duration == 0 {
		cfg.SPFInterval.Duration = time.Second
	}
	if cfg.SPFInitDelay.Duration == 0 {
		cfg.SPFInitDelay.Duration = 50 * time.Millisecond
	}
	if cfg.SPFShortDelay.Duration == 0 {
		cfg.SPFShortDelay.Duration = 200 * time.Millisecond
	}
	if cfg.SPFLongDelay.Duration == 0 {
		cfg.SPFLongDelay.Duration = 5 * time.Second
	}
	if cfg.SPFHolddown.Duration == 0 {
		cfg.SPFHolddown.Duration = 100 * time.Millisecond
	}
	if cfg.SPFTimeToLearn.Duration == 0 {
		cfg.SPFTimeToLearn.Duration = 500 * time.Millisecond
	}
}

// Validate validates the config.
func (cfg *ISISParams) Validate() error {
	if cfg.Area == "" {
		return serrors.New("area must be set")
	}
	switch cfg.LevelType {
	case "level-1", "level-2", "level-1-2":
	default:
		return serrors.New("unsupported level type", "level_type", cfg.LevelType)
	}
	switch cfg.MetricStyle {
	case "narrow", "wide", "transition":
	default:
		return serrors.New("unsupported metric style", "metric_style", cfg.MetricStyle)
	}
	if cfg.VerticalMetric <= 0 || cfg.HorizontalMetric <= 0 {
		return serrors.New("metrics must be positive",
			"vertical", cfg.VerticalMetric, "horizontal", cfg.HorizontalMetric)
	}
	if cfg.HelloInterval.Duration <= 0 {
		return serrors.New("hello interval must be positive",
			"hello_interval", cfg.HelloInterval)
	}
	if cfg.HelloMultiplier < 2 || cfg.HelloMultiplier > 100 {
		return serrors.New("hello multiplier out of range",
			"hello_multiplier", cfg.HelloMultiplier)
	}
	if cfg.MaxLSPLifetime.Duration < cfg.LSPRefreshInterval.Duration+5*time.Minute {
		return serrors.New("lsp lifetime too close to refresh interval",
			"max_lsp_lifetime", cfg.MaxLSPLifetime,
			"lsp_refresh_interval", cfg.LSPRefreshInterval)
	}
	return nil
}

// Sample writes the sample configuration to dst.
func (cfg *ISISParams) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, isisSample)
}

// ConfigName returns the name this config should have in a struct embedding
// it.
func (cfg *ISISParams) ConfigName() string {
	return "isis"
}

const bgpSample = `
# First autonomous system number handed out to routers. Partitioned
# topologies consume the four numbers following it, one per lattice
# quadrant (default 65000)
base_as = 65000
`

// BGPParams configures the bgpd instances of a lab.
type BGPParams struct {
	// BaseAS is the first autonomous system number handed out to routers.
	BaseAS uint32 `toml:"base_as,omitempty"`
}

// InitDefaults populates unset fields to their default values.
func (cfg *BGPParams) InitDefaults() {
	if cfg.BaseAS == 0 {
		cfg.BaseAS = 65000
	}
}

// Validate validates the config.
func (cfg *BGPParams) Validate() error {
	if cfg.BaseAS == 0 {
		return serrors.New("base AS must be set")
	}
	// Partitioned topologies assign up to four numbers above the base.
	if cfg.BaseAS > 1<<32-5 {
		return serrors.New("base AS leaves no room for quadrant numbers",
			"base_as", cfg.BaseAS)
	}
	return nil
}

// Sample writes the sample configuration to dst.
func (cfg *BGPParams) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, bgpSample)
}

// ConfigName returns the name this config should have in a struct embedding
// it.
func (cfg *BGPParams) ConfigName() string {
	return "bgp"
}

const bfdSample = `
# Number of missed control packets before a session is declared down
# (default 3)
detect_multiplier = 3

# Minimum interval between received control packets (default 300ms)
receive_interval = "300ms"

# Minimum interval between transmitted control packets (default 300ms)
transmit_interval = "300ms"

# Enable echo mode on all sessions (default false)
echo_mode = false
`

// BFDParams configures the bfdd instances of a lab.
type BFDParams struct {
	// DetectMultiplier is the number of missed control packets before a
	// session is declared down.
	DetectMultiplier int `toml:"detect_multiplier,omitempty"`
	// ReceiveInterval is the minimum interval between received control
	// packets.
	ReceiveInterval util.DurWrap `toml:"receive_interval,omitempty"`
	// TransmitInterval is the minimum interval between transmitted control
	// packets.
	TransmitInterval util.DurWrap `toml:"transmit_interval,omitempty"`
	// EchoMode enables echo mode on all sessions.
	EchoMode bool `toml:"echo_mode,omitempty"`
}

// InitDefaults populates unset fields to their default values.
func (cfg *BFDParams) InitDefaults() {
	if cfg.DetectMultiplier == 0 {
		cfg.DetectMultiplier = 3
	}
	if cfg.ReceiveInterval.Duration == 0 {
		cfg.ReceiveInterval.Duration = 300 * time.Millisecond
	}
	if cfg.TransmitInterval.Duration == 0 {
		cfg.TransmitInterval.Duration = 300 * time.Millisecond
	}
}

// Validate validates the config.
func (cfg *BFDParams) Validate() error {
	if cfg.DetectMultiplier < 1 || cfg.DetectMultiplier > 255 {
		return serrors.New("detect multiplier out of range",
			"detect_multiplier", cfg.DetectMultiplier)
	}
	if cfg.ReceiveInterval.Duration < 10*time.Millisecond {
		return serrors.New("receive interval below 10ms",
			"receive_interval", cfg.ReceiveInterval)
	}
	if cfg.TransmitInterval.Duration < 10*time.Millisecond {
		return serrors.New("transmit interval below 10ms",
			"transmit_interval", cfg.TransmitInterval)
	}
	return nil
}

// Sample writes the sample configuration to dst.
func (cfg *BFDParams) Sample(dst io.Writer, _ config.Path, _ config.CtxMap) {
	config.WriteString(dst, bfdSample)
}

// ConfigName returns the name this config should have in a struct embedding
// it.
func (cfg *BFDParams) ConfigName() string {
	return "bfd"
}
