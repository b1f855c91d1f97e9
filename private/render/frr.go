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
	"bytes"
	"fmt"
	"net/netip"
	"sort"
	"text/template"
	"time"

	"github.com/netsimlab/topogen/pkg/grid"
	"github.com/netsimlab/topogen/pkg/private/serrors"
	"github.com/netsimlab/topogen/pkg/private/util"
	"github.com/netsimlab/topogen/private/lab"
	"github.com/netsimlab/topogen/private/topology"
)

// frozenSPFThrottle is the maximum throttle FRR accepts. Applying it to
// every router but the flooding origin keeps routing tables empty while
// LSAs still propagate.
const frozenSPFThrottle = 600000

var daemonsTmpl = template.Must(template.New("daemons").Parse(`zebra=yes
bgpd={{ .BGPD }}
ospfd=no
ospf6d={{ .OSPF6D }}
ripd=no
ripngd=no
isisd={{ .ISISD }}
pimd=no
ldpd=no
nhrpd=no
eigrpd=no
babeld=no
sharpd=no
pbrd=no
bfdd={{ .BFDD }}
fabricd=no
vrrpd=no
pathd=no
staticd=yes

vtysh_enable=yes
zebra_options="  -A 127.0.0.1 -s 90000000"
bgpd_options="   -A 127.0.0.1"
ospfd_options="  -A 127.0.0.1"
ospf6d_options=" -A ::1"
ripd_options="   -A 127.0.0.1"
ripngd_options=" -A ::1"
isisd_options="  -A 127.0.0.1"
pimd_options="   -A 127.0.0.1"
ldpd_options="   -A 127.0.0.1"
nhrpd_options="  -A 127.0.0.1"
eigrpd_options=" -A 127.0.0.1"
babeld_options=" -A 127.0.0.1"
sharpd_options=" -A 127.0.0.1"
pbrd_options="   -A 127.0.0.1"
staticd_options="-A 127.0.0.1"
bfdd_options="   --bfdctl /run/frr/bfdd.sock"
fabricd_options="-A 127.0.0.1"
vrrpd_options="  -A 127.0.0.1"
pathd_options="  -A 127.0.0.1"
`))

var vtyshTmpl = template.Must(template.New("vtysh").Parse(`hostname {{ .Hostname }}
service integrated-vtysh-config
`))

var basicTmpl = template.Must(template.New("basic").Parse(`hostname {{ .Hostname }}
{{- if .LogFile }}
log file {{ .LogFile }}
{{- end }}
!
`))

var zebraTmpl = template.Must(template.New("zebra").Parse(`hostname {{ .Hostname }}
{{- if .LogFile }}
log file {{ .LogFile }}
{{- end }}
!
interface lo
 ipv6 address {{ .Loopback }}
!
{{- range .Interfaces }}
interface {{ .Name }}
 ipv6 address {{ .Addr }}
!
{{- end }}
ip forwarding
ipv6 forwarding
!
`))

var ospf6Tmpl = template.Must(template.New("ospf6d").Parse(`hostname {{ .Hostname }}
{{- if .LogFile }}
log file {{ .LogFile }}
{{- end }}
!
{{- range .Interfaces }}
interface {{ .Name }}
 ipv6 ospf6 area {{ $.Area }}
 ipv6 ospf6 hello-interval {{ .Hello }}
 ipv6 ospf6 dead-interval {{ .Dead }}
 ipv6 ospf6 retransmit-interval {{ .Retransmit }}
 ipv6 ospf6 transmit-delay {{ .TransmitDelay }}
 ipv6 ospf6 priority {{ .Priority }}
 ipv6 ospf6 cost {{ .Cost }}
!
{{- end }}
interface lo
 ipv6 ospf6 area {{ .Area }}
!
router ospf6
 ospf6 router-id {{ .RouterID }}
 timers throttle spf {{ .SPFThrottle }}
 timers lsa min-arrival {{ .LSAMinArrival }}
 maximum-paths {{ .MaximumPaths }}
 area {{ .Area }} range {{ .LoopbackRange }}
!
`))

var isisTmpl = template.Must(template.New("isisd").Parse(`hostname {{ .Hostname }}
{{- if .LogFile }}
log file {{ .LogFile }}
{{- end }}
!
interface lo
 ipv6 router isis 1
 isis passive
!
{{- range .Interfaces }}
interface {{ .Name }}
 ipv6 router isis 1
 isis network point-to-point
 isis circuit-type {{ $.LevelType }}
 isis metric {{ .Metric }}
 isis hello-interval {{ $.Hello }}
 isis hello-multiplier {{ $.Multiplier }}
 isis csnp-interval {{ $.CSNP }}
 isis psnp-interval {{ $.PSNP }}
!
{{- end }}
router isis 1
 net {{ .NET }}
 is-type {{ .LevelType }}
 metric-style {{ .MetricStyle }}
 lsp-gen-interval {{ .LSPGen }}
 lsp-refresh-interval {{ .LSPRefresh }}
 max-lsp-lifetime {{ .MaxLifetime }}
 spf-interval {{ .SPFInterval }}
 spf-delay-ietf init-delay {{ .SPFInit }} short-delay {{ .SPFShort }} long-delay {{ .SPFLong }} holddown {{ .SPFHolddown }} time-to-learn {{ .SPFLearn }}
!
`))

var bgpdTmpl = template.Must(template.New("bgpd").Parse(`hostname {{ .Hostname }}
{{- if .LogFile }}
log file {{ .LogFile }}
{{- end }}
!
router bgp {{ .ASN }}
 bgp router-id {{ .RouterID }}
 no bgp ebgp-requires-policy
 no bgp default ipv4-unicast
{{- range .EBGP }}
 neighbor {{ . }} interface remote-as external
{{- end }}
{{- range .IBGP }}
 neighbor {{ .Addr }} remote-as {{ .ASN }}
 neighbor {{ .Addr }} update-source lo
{{- end }}
 !
 address-family ipv6 unicast
  network {{ .Network }}
{{- range .EBGP }}
  neighbor {{ . }} activate
{{- end }}
{{- range .IBGP }}
  neighbor {{ .Addr }} activate
  neighbor {{ .Addr }} next-hop-self
{{- end }}
{{- if .RedistributeOSPF6 }}
  redistribute ospf6
{{- end }}
  redistribute connected
 exit-address-family
!
`))

var bfddTmpl = template.Must(template.New("bfdd").Parse(`hostname {{ .Hostname }}
{{- if .LogFile }}
log file {{ .LogFile }}
{{- end }}
!
bfd
{{- range .Peers }}
 peer {{ .Addr }} interface {{ .Interface }}
  detect-multiplier {{ $.DetectMultiplier }}
  receive-interval {{ $.ReceiveInterval }}
  transmit-interval {{ $.TransmitInterval }}
{{- if $.EchoMode }}
  echo-mode
{{- end }}
 !
{{- end }}
!
`))

// wireEnd is the far side of a wired link as seen from one interface.
type wireEnd struct {
	peer *lab.Router
	addr netip.Addr
}

// wireMap indexes the far ends of all wired links by router name and
// local interface.
type wireMap map[string]map[string]wireEnd

func buildWires(l *lab.Lab) wireMap {
	wires := make(wireMap, len(l.Routers))
	bind := func(local, remote lab.Endpoint) {
		r, ok := l.Router(remote.Router)
		if !ok {
			return
		}
		m := wires[local.Router]
		if m == nil {
			m = make(map[string]wireEnd, 4)
			wires[local.Router] = m
		}
		m[local.Interface] = wireEnd{peer: r, addr: remote.Addr.Addr()}
	}
	for _, link := range l.WiredLinks() {
		bind(link.A, link.B)
		bind(link.B, link.A)
	}
	return wires
}

func sortedInterfaces(r *lab.Router) []string {
	names := make([]string, 0, len(r.Interfaces))
	for name := range r.Interfaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ebgpInterfaces returns the interfaces holding a session to a different
// autonomous system, in name order. Only wired links can carry such a
// session.
func ebgpInterfaces(r *lab.Router, wires wireMap) []string {
	if r.ASN == 0 {
		return nil
	}
	var names []string
	for name, end := range wires[r.Name] {
		if end.peer.ASN != 0 && end.peer.ASN != r.ASN {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func logFile(daemon string, opts Options) string {
	if opts.DisableLogging {
		return ""
	}
	return "/var/log/frr/" + daemon + ".log"
}

func secs(d util.DurWrap) int {
	return int(d.Duration / time.Second)
}

func msecs(d util.DurWrap) int {
	return int(d.Duration / time.Millisecond)
}

func execute(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, serrors.Wrap("executing template", err, "template", tmpl.Name())
	}
	return buf.Bytes(), nil
}

func yesno(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

type daemonsContext struct {
	BGPD   string
	OSPF6D string
	ISISD  string
	BFDD   string
}

func daemonsFile(r *lab.Router, l *lab.Lab, opts Options) ([]byte, error) {
	// On partitioned topologies only the gateways speak BGP. The other
	// routers still get a bgpd.conf, it just stays unused.
	bgp := opts.BGP != nil &&
		(l.Topology.Variant() != topology.Special || r.Type == grid.Gateway)
	data := daemonsContext{
		BGPD:   yesno(bgp && !opts.DaemonsOff && !opts.BGPDOff),
		OSPF6D: yesno(opts.OSPF != nil && !opts.DaemonsOff && !opts.OSPF6DOff),
		ISISD:  yesno(opts.ISIS != nil && !opts.DaemonsOff && !opts.ISISDOff),
		BFDD:   yesno(opts.BFD != nil && !opts.DaemonsOff && !opts.BFDDOff),
	}
	return execute(daemonsTmpl, data)
}

type hostContext struct {
	Hostname string
	LogFile  string
}

func vtyshConf(r *lab.Router) ([]byte, error) {
	return execute(vtyshTmpl, hostContext{Hostname: r.Hostname()})
}

func staticdConf(r *lab.Router, opts Options) ([]byte, error) {
	data := hostContext{Hostname: r.Hostname(), LogFile: logFile("staticd", opts)}
	return execute(basicTmpl, data)
}

func mgmtdConf(r *lab.Router) ([]byte, error) {
	return execute(basicTmpl, hostContext{Hostname: r.Hostname()})
}

type zebraInterface struct {
	Name string
	Addr string
}

type zebraContext struct {
	Hostname   string
	LogFile    string
	Loopback   string
	Interfaces []zebraInterface
}

func zebraConf(r *lab.Router, opts Options) ([]byte, error) {
	data := zebraContext{
		Hostname: r.Hostname(),
		LogFile:  logFile("zebra", opts),
		Loopback: netip.PrefixFrom(r.Loopback, 128).String(),
	}
	for _, name := range sortedInterfaces(r) {
		data.Interfaces = append(data.Interfaces, zebraInterface{
			Name: name,
			Addr: r.Interfaces[name].String(),
		})
	}
	return execute(zebraTmpl, data)
}

type ospf6Interface struct {
	Name          string
	Hello         int
	Dead          int
	Retransmit    int
	TransmitDelay int
	Priority      int
	Cost          int
}

type ospf6Context struct {
	Hostname      string
	LogFile       string
	Area          string
	RouterID      string
	SPFThrottle   string
	LSAMinArrival int
	MaximumPaths  int
	LoopbackRange string
	Interfaces    []ospf6Interface
}

func ospf6Conf(r *lab.Router, wires wireMap, opts Options) ([]byte, error) {
	cfg := opts.OSPF
	throttle := msecs(cfg.SPFDelay)
	if cfg.LSAOnly && r.Coord != (grid.Coordinate{}) {
		throttle = frozenSPFThrottle
	}
	data := ospf6Context{
		Hostname:      r.Hostname(),
		LogFile:       logFile("ospf6d", opts),
		Area:          r.AreaID,
		RouterID:      r.RouterID,
		SPFThrottle:   fmt.Sprintf("%d %d %d", throttle, throttle, throttle),
		LSAMinArrival: msecs(cfg.LSAMinArrival),
		MaximumPaths:  cfg.MaximumPaths,
		LoopbackRange: netip.PrefixFrom(r.Loopback, 128).String(),
	}
	// Interfaces handed to BGP stay out of the IGP so that the sessions
	// across them remain the only path between the systems.
	skip := make(map[string]bool)
	if opts.BGP != nil {
		for _, name := range ebgpInterfaces(r, wires) {
			skip[name] = true
		}
	}
	for _, name := range sortedInterfaces(r) {
		if skip[name] {
			continue
		}
		dir, err := grid.DirectionOfInterface(name)
		if err != nil {
			return nil, serrors.Wrap("classifying interface", err, "interface", name)
		}
		cost := cfg.HorizontalCost
		if dir.Vertical() {
			cost = cfg.VerticalCost
		}
		data.Interfaces = append(data.Interfaces, ospf6Interface{
			Name:          name,
			Hello:         secs(cfg.HelloInterval),
			Dead:          secs(cfg.DeadInterval),
			Retransmit:    secs(cfg.RetransmitInterval),
			TransmitDelay: secs(cfg.TransmitDelay),
			Priority:      cfg.Priority,
			Cost:          cost,
		})
	}
	return execute(ospf6Tmpl, data)
}

type isisInterface struct {
	Name   string
	Metric int
}

type isisContext struct {
	Hostname    string
	LogFile     string
	NET         string
	LevelType   string
	MetricStyle string
	Hello       int
	Multiplier  int
	CSNP        int
	PSNP        int
	LSPGen      int
	LSPRefresh  int
	MaxLifetime int
	SPFInterval int
	SPFInit     int
	SPFShort    int
	SPFLong     int
	SPFHolddown int
	SPFLearn    int
	Interfaces  []isisInterface
}

// isisNET derives the network entity title from the lattice position. The
// system identifier packs the coordinate into its last group.
func isisNET(area string, c grid.Coordinate) string {
	sysid := fmt.Sprintf("0000.0000.%04d", c.Row*100+c.Col+1)
	return fmt.Sprintf("%s.%s.00", area, sysid)
}

func isisConf(r *lab.Router, opts Options) ([]byte, error) {
	cfg := opts.ISIS
	data := isisContext{
		Hostname:    r.Hostname(),
		LogFile:     logFile("isisd", opts),
		NET:         isisNET(cfg.Area, r.Coord),
		LevelType:   cfg.LevelType,
		MetricStyle: cfg.MetricStyle,
		Hello:       secs(cfg.HelloInterval),
		Multiplier:  cfg.HelloMultiplier,
		CSNP:        secs(cfg.CSNPInterval),
		PSNP:        secs(cfg.PSNPInterval),
		LSPGen:      secs(cfg.LSPGenInterval),
		LSPRefresh:  secs(cfg.LSPRefreshInterval),
		MaxLifetime: secs(cfg.MaxLSPLifetime),
		SPFInterval: secs(cfg.SPFInterval),
		SPFInit:     msecs(cfg.SPFInitDelay),
		SPFShort:    msecs(cfg.SPFShortDelay),
		SPFLong:     msecs(cfg.SPFLongDelay),
		SPFHolddown: msecs(cfg.SPFHolddown),
		SPFLearn:    msecs(cfg.SPFTimeToLearn),
	}
	for _, name := range sortedInterfaces(r) {
		dir, err := grid.DirectionOfInterface(name)
		if err != nil {
			return nil, serrors.Wrap("classifying interface", err, "interface", name)
		}
		metric := cfg.HorizontalMetric
		if dir.Vertical() {
			metric = cfg.VerticalMetric
		}
		data.Interfaces = append(data.Interfaces, isisInterface{Name: name, Metric: metric})
	}
	return execute(isisTmpl, data)
}

type bgpPeer struct {
	Addr string
	ASN  uint32
}

type bgpContext struct {
	Hostname          string
	LogFile           string
	ASN               uint32
	RouterID          string
	Network           string
	RedistributeOSPF6 bool
	EBGP              []string
	IBGP              []bgpPeer
}

// ibgpPeers returns the internal peers of a router in row-major order. On
// partitioned topologies the mesh is restricted to the gateways of the
// same system, everywhere else all routers peer with each other.
func ibgpPeers(r *lab.Router, l *lab.Lab) []bgpPeer {
	special := l.Topology.Variant() == topology.Special
	var peers []bgpPeer
	for _, other := range l.Routers {
		if other.Name == r.Name || other.ASN != r.ASN {
			continue
		}
		if special && other.Type != grid.Gateway {
			continue
		}
		peers = append(peers, bgpPeer{Addr: other.Loopback.String(), ASN: other.ASN})
	}
	return peers
}

func bgpdConf(r *lab.Router, l *lab.Lab, wires wireMap, opts Options) ([]byte, error) {
	if r.ASN == 0 {
		return nil, serrors.New("router has no AS number", "router", r.Name)
	}
	data := bgpContext{
		Hostname:          r.Hostname(),
		LogFile:           logFile("bgpd", opts),
		ASN:               r.ASN,
		RouterID:          r.RouterID,
		Network:           netip.PrefixFrom(r.Loopback, 128).String(),
		RedistributeOSPF6: opts.OSPF != nil,
		EBGP:              ebgpInterfaces(r, wires),
		IBGP:              ibgpPeers(r, l),
	}
	return execute(bgpdTmpl, data)
}

type bfdPeer struct {
	Addr      string
	Interface string
}

type bfdContext struct {
	Hostname         string
	LogFile          string
	DetectMultiplier int
	ReceiveInterval  int
	TransmitInterval int
	EchoMode         bool
	Peers            []bfdPeer
}

func bfddConf(r *lab.Router, wires wireMap, opts Options) ([]byte, error) {
	cfg := opts.BFD
	data := bfdContext{
		Hostname:         r.Hostname(),
		LogFile:          logFile("bfdd", opts),
		DetectMultiplier: cfg.DetectMultiplier,
		ReceiveInterval:  msecs(cfg.ReceiveInterval),
		TransmitInterval: msecs(cfg.TransmitInterval),
		EchoMode:         cfg.EchoMode,
	}
	for _, name := range sortedInterfaces(r) {
		end, ok := wires[r.Name][name]
		if !ok {
			continue
		}
		data.Peers = append(data.Peers, bfdPeer{
			Addr:      end.addr.String(),
			Interface: name,
		})
	}
	return execute(bfddTmpl, data)
}
