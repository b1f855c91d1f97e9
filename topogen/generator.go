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

// Package topogen drives the generation of one routing lab: from a validated
// configuration it derives the lattice, the router and link records, the
// per-router FRR configuration trees and the containerlab description that
// wires the emulation containers together.
package topogen

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/opentracing/opentracing-go"

	"github.com/netsimlab/topogen/pkg/grid"
	"github.com/netsimlab/topogen/pkg/log"
	"github.com/netsimlab/topogen/pkg/metrics"
	"github.com/netsimlab/topogen/pkg/private/prom"
	"github.com/netsimlab/topogen/pkg/private/serrors"
	"github.com/netsimlab/topogen/private/lab"
	"github.com/netsimlab/topogen/private/manifest"
	"github.com/netsimlab/topogen/private/render"
	"github.com/netsimlab/topogen/private/topology"
	"github.com/netsimlab/topogen/private/tracing"
	"github.com/netsimlab/topogen/topogen/config"
)

// Generator derives a complete lab from a configuration.
type Generator struct {
	// Config is the application configuration. It is validated at the
	// start of every run.
	Config *config.Config

	// Renderer writes the per-router configuration trees. The zero value
	// renders to the local filesystem with default concurrency.
	Renderer render.Renderer

	// Metrics are the metrics exported by the generator. Nil disables
	// them.
	Metrics *Metrics
}

// Result is the outcome of one generation run.
type Result struct {
	// Lab holds the generated router and link records.
	Lab *lab.Lab
	// Stats summarizes the run.
	Stats lab.Stats
	// OutputDir is the directory the artifacts were written to.
	OutputDir string
	// ClabFile is the path of the written containerlab description.
	ClabFile string
}

// Run generates the lab. The phases run strictly in order: the configuration
// is validated, the lattice and the lab records are derived, the directory
// skeleton is laid out, the FRR configuration trees are rendered and the
// containerlab description is written last. Equal configurations produce
// byte-identical output trees.
func (g *Generator) Run(ctx context.Context) (*Result, error) {
	if g.Config == nil {
		return nil, serrors.New("config must not be nil")
	}
	logger := log.FromCtx(ctx)

	span, ctx := opentracing.StartSpanFromContext(ctx, "topogen.run")
	defer span.Finish()
	tracing.Component(span, "topogen")

	if err := g.Config.Validate(); err != nil {
		tracing.Error(span, err)
		return nil, serrors.Wrap("validating configuration", err)
	}
	topo, err := g.buildTopology(ctx)
	if err != nil {
		tracing.Error(span, err)
		return nil, err
	}
	logger.Debug("Lattice derived", "topology", topo)

	l, err := g.buildLab(ctx, topo)
	if err != nil {
		tracing.Error(span, err)
		return nil, err
	}
	dir := g.outputDir(topo)
	if err := g.scaffold(ctx, dir, l); err != nil {
		tracing.Error(span, err)
		return nil, err
	}
	if err := g.render(ctx, dir, l); err != nil {
		tracing.Error(span, err)
		return nil, err
	}
	clabFile, err := g.writeManifest(ctx, dir, l)
	if err != nil {
		tracing.Error(span, err)
		return nil, err
	}

	stats := l.Stats()
	g.observe(stats)
	tracing.ResultLabel(span, dir)
	logger.Info("Lab generated",
		"dir", dir,
		"routers", stats.Routers,
		"wired_links", stats.WiredLinks,
		"route_only_links", stats.RouteOnlyLinks,
		"interfaces", stats.Interfaces,
	)
	return &Result{
		Lab:       l,
		Stats:     stats,
		OutputDir: dir,
		ClabFile:  clabFile,
	}, nil
}

func (g *Generator) buildTopology(ctx context.Context) (*topology.Topology, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "topogen.build_topology")
	defer span.Finish()
	topo, err := g.Config.Topology.Build()
	if err != nil {
		tracing.Error(span, err)
		return nil, serrors.Wrap("building topology", err)
	}
	return topo, nil
}

func (g *Generator) buildLab(ctx context.Context, topo *topology.Topology) (*lab.Lab, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "topogen.build_lab")
	defer span.Finish()
	cfg := g.Config
	builder := lab.Builder{
		Plan:      cfg.Network.Plan(),
		MultiArea: cfg.Topology.MultiArea,
		AreaSize:  cfg.Topology.AreaSize,
		// Partitioned topologies carry autonomous system numbers even
		// without bgpd, the quadrant identity is part of the records.
		AssignASNs: cfg.Protocols.Active("bgp") || topo.Variant() == topology.Special,
		BaseAS:     cfg.BGP.BaseAS,
		NoLinks:    cfg.Modes.NoLinks,
	}
	l, err := builder.Build(topo)
	if err != nil {
		tracing.Error(span, err)
		return nil, serrors.Wrap("building lab records", err)
	}
	return l, nil
}

func (g *Generator) scaffold(ctx context.Context, dir string, l *lab.Lab) error {
	span, _ := opentracing.StartSpanFromContext(ctx, "topogen.scaffold")
	defer span.Finish()
	if err := manifest.Scaffold(dir, l); err != nil {
		tracing.Error(span, err)
		return serrors.Wrap("scaffolding lab directory", err, "dir", dir)
	}
	return nil
}

func (g *Generator) render(ctx context.Context, dir string, l *lab.Lab) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "topogen.render")
	defer span.Finish()
	ren := g.Renderer
	if ren.Writer == nil {
		ren.Writer = render.OSWriter()
	}
	if g.Metrics != nil {
		ren.Writer = &countingWriter{
			FileWriter: ren.Writer,
			files:      metrics.NewPromCounter(g.Metrics.FilesWrittenTotal),
		}
	}
	if err := ren.Render(ctx, l, dir, g.renderOptions()); err != nil {
		tracing.Error(span, err)
		return serrors.Wrap("rendering configuration trees", err)
	}
	return nil
}

func (g *Generator) writeManifest(ctx context.Context, dir string, l *lab.Lab) (string, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "topogen.manifest")
	defer span.Finish()
	file, err := manifest.WriteClab(dir, l, g.naming(), g.Config.Lab)
	if err != nil {
		tracing.Error(span, err)
		return "", serrors.Wrap("writing containerlab description", err)
	}
	if g.Metrics != nil {
		metrics.CounterInc(metrics.NewPromCounter(g.Metrics.FilesWrittenTotal))
	}
	return file, nil
}

// renderOptions maps the configuration onto the renderer toggles.
func (g *Generator) renderOptions() render.Options {
	cfg := g.Config
	opts := render.Options{
		DisableLogging: cfg.Modes.DisableLogging,
		DaemonsOff:     cfg.Modes.DaemonsOff,
		DummyConfig:    cfg.Modes.DummyConfig,
		NoConfig:       cfg.Modes.NoConfig,
		KeepStale:      cfg.Features.KeepStaleConfigs,
	}
	if cfg.Protocols.Active("ospf6") {
		opts.OSPF = &cfg.OSPF
	}
	if cfg.Protocols.Active("isis") {
		opts.ISIS = &cfg.ISIS
	}
	if cfg.Protocols.Active("bgp") {
		opts.BGP = &cfg.BGP
	}
	if cfg.Protocols.Active("bfd") {
		opts.BFD = &cfg.BFD
	}
	for _, daemon := range cfg.Modes.DaemonsDisabled {
		switch daemon {
		case "ospf6d":
			opts.OSPF6DOff = true
		case "isisd":
			opts.ISISDOff = true
		case "bgpd":
			opts.BGPDOff = true
		case "bfdd":
			opts.BFDDOff = true
		}
	}
	return opts
}

func (g *Generator) naming() manifest.Naming {
	cfg := g.Config
	return manifest.Naming{
		OSPF:    cfg.Protocols.Active("ospf6"),
		ISIS:    cfg.Protocols.Active("isis"),
		LSAOnly: cfg.Protocols.Active("ospf6") && cfg.OSPF.LSAOnly,
	}
}

// outputDir resolves the output directory. An explicit override wins over
// the conventional name.
func (g *Generator) outputDir(topo *topology.Topology) string {
	if dir := g.Config.Lab.OutputDir; dir != "" {
		return dir
	}
	return g.naming().OutputDir(topo)
}

func (g *Generator) observe(stats lab.Stats) {
	if g.Metrics == nil {
		return
	}
	variant := stats.Variant.String()
	routers := metrics.NewPromCounter(g.Metrics.RoutersBuiltTotal)
	metrics.CounterAdd(metrics.CounterWith(routers, prom.LabelVariant, variant),
		float64(stats.Routers))
	links := metrics.NewPromCounter(g.Metrics.LinksBuiltTotal)
	metrics.CounterAdd(
		metrics.CounterWith(links, prom.LabelVariant, variant, prom.LabelKind, "wired"),
		float64(stats.WiredLinks))
	metrics.CounterAdd(
		metrics.CounterWith(links, prom.LabelVariant, variant, prom.LabelKind, "route_only"),
		float64(stats.RouteOnlyLinks))
	metrics.GaugeSet(metrics.NewPromGauge(g.Metrics.LastRunTimestamp),
		float64(time.Now().Unix()))
}

// countingWriter counts successful writes on top of the wrapped writer.
type countingWriter struct {
	render.FileWriter
	files metrics.Counter
}

func (w *countingWriter) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if err := w.FileWriter.WriteFile(path, data, perm); err != nil {
		return err
	}
	metrics.CounterInc(w.files)
	return nil
}

// Human writes a short human readable run summary to the writer.
func (r *Result) Human(w io.Writer, colored bool) {
	noColor := color.New()
	keys := noColor
	values := noColor
	header := noColor
	if colored {
		keys = color.New(color.FgHiCyan)
		header = color.New(color.FgHiBlack)
	}

	header.Fprintf(w, "Generated %s:\n", r.Lab.Topology)
	links := fmt.Sprintf("%d wired", r.Stats.WiredLinks)
	if r.Stats.RouteOnlyLinks > 0 {
		links = fmt.Sprintf("%s, %d route-only", links, r.Stats.RouteOnlyLinks)
	}
	entries := [][2]string{
		{"Output", r.OutputDir},
		{"Routers", strconv.Itoa(r.Stats.Routers)},
		{"Links", links},
		{"Deploy", "containerlab deploy -t " + r.ClabFile},
	}
	for _, e := range entries {
		fmt.Fprintf(w, "  %s: %s\n", keys.Sprint(e[0]), values.Sprint(e[1]))
	}
}

// DiagnosticsWrite writes the full router and link tables of the run to w.
func (r *Result) DiagnosticsWrite(w io.Writer) {
	fmt.Fprintf(w, "LAB %s (%s)\n", r.OutputDir, r.Lab.Topology)

	fmt.Fprint(w, "\nROUTERS:\n")
	routers := make([][]string, 0, len(r.Lab.Routers))
	for _, router := range r.Lab.Routers {
		asn := ""
		if router.ASN != 0 {
			asn = strconv.FormatUint(uint64(router.ASN), 10)
		}
		routers = append(routers, []string{
			router.Name,
			router.Type.String(),
			router.RouterID,
			router.Loopback.String(),
			router.AreaID,
			asn,
			strconv.Itoa(len(router.Interfaces)),
		})
	}
	renderTable(w, []string{"NAME", "TYPE", "ROUTER-ID", "LOOPBACK", "AREA", "ASN", "IFACES"},
		routers)

	fmt.Fprint(w, "\nLINKS:\n")
	links := make([][]string, 0, len(r.Lab.Links))
	for _, link := range r.Lab.Links {
		mode := "wired"
		if link.RouteOnly {
			mode = "route-only"
		}
		links = append(links, []string{
			endpointString(link.A),
			endpointString(link.B),
			link.Network.String(),
			mode,
		})
	}
	renderTable(w, []string{"A", "B", "NETWORK", "MODE"}, links)

	fmt.Fprint(w, "\nSTATS:\n")
	fmt.Fprintf(w, "  routers: %d\n", r.Stats.Routers)
	for _, t := range sortedNodeTypes(r.Stats.NodeTypes) {
		fmt.Fprintf(w, "    %s: %d\n", t, r.Stats.NodeTypes[t])
	}
	fmt.Fprintf(w, "  wired links: %d\n", r.Stats.WiredLinks)
	fmt.Fprintf(w, "  route-only links: %d\n", r.Stats.RouteOnlyLinks)
	fmt.Fprintf(w, "  interfaces: %d\n", r.Stats.Interfaces)
}

func endpointString(ep lab.Endpoint) string {
	if ep.Interface == "" {
		return ep.Router
	}
	return ep.Router + ":" + ep.Interface
}

func sortedNodeTypes(m map[grid.NodeType]int) []grid.NodeType {
	types := make([]grid.NodeType, 0, len(m))
	for t := range m {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetHeaderLine(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(header)
	table.AppendBulk(rows)
	table.Render()
}
