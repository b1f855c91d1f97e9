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

// Package lab assembles the complete record set of one emulated network:
// every router with its identity and addressing, and every link with its
// network and endpoint bindings. The records are built once per generation
// run and never mutated afterwards; renderers only read them.
package lab

import (
	"fmt"
	"net/netip"

	"github.com/netsimlab/topogen/pkg/grid"
	"github.com/netsimlab/topogen/private/topology"
)

// Router is the full identity of one emulated router.
type Router struct {
	// Name is the long router name used for directories and lab nodes.
	Name string
	// Coord is the lattice position.
	Coord grid.Coordinate
	// Type is the topological role of the node.
	Type grid.NodeType
	// RouterID is the dotted-quad protocol identifier.
	RouterID string
	// Loopback is the router loopback address.
	Loopback netip.Addr
	// AreaID is the dotted-quad area identifier.
	AreaID string
	// ASN is the autonomous system number. Zero when no number was
	// assigned.
	ASN uint32
	// Neighbors maps occupied interface slots to the wired peer.
	Neighbors map[grid.Direction]grid.Coordinate
	// Interfaces maps interface names to the address advertised on them.
	// Populated exactly once, after all links are derived.
	Interfaces map[string]netip.Prefix
}

// Hostname returns the short name configured inside the routing daemons.
func (r *Router) Hostname() string {
	return fmt.Sprintf("r%02d_%02d", r.Coord.Row, r.Coord.Col)
}

// RouterName returns the long name of the router at the given coordinate.
func RouterName(c grid.Coordinate) string {
	return fmt.Sprintf("router_%02d_%02d", c.Row, c.Col)
}

// Endpoint is one side of a link.
type Endpoint struct {
	// Router is the long name of the router.
	Router string
	// Interface is the bound interface name. Empty on route-only links.
	Interface string
	// Addr is the interface address within the link network.
	Addr netip.Prefix
}

// Link is a point-to-point connection. A is always the endpoint with the
// smaller linear id.
type Link struct {
	// ID is the pairing index the link network was derived from.
	ID uint64
	// Network is the /126 the endpoint addresses live in.
	Network netip.Prefix
	A       Endpoint
	B       Endpoint
	// RouteOnly marks links that carry addressing for route computation but
	// are never wired in the lab.
	RouteOnly bool
}

// Lab is the assembled record set of one generation run.
type Lab struct {
	// Topology is the lattice the records were built from.
	Topology *topology.Topology
	// Routers holds all routers in row-major coordinate order.
	Routers []*Router
	// Links holds the wired links in canonical enumeration order, followed
	// by the route-only links.
	Links []Link

	byName  map[string]*Router
	byCoord map[grid.Coordinate]*Router
}

// Router looks a router up by its long name.
func (l *Lab) Router(name string) (*Router, bool) {
	r, ok := l.byName[name]
	return r, ok
}

// RouterAt looks a router up by its lattice position.
func (l *Lab) RouterAt(c grid.Coordinate) (*Router, bool) {
	r, ok := l.byCoord[c]
	return r, ok
}

// WiredLinks returns the links that are wired in the lab.
func (l *Lab) WiredLinks() []Link {
	wired := make([]Link, 0, len(l.Links))
	for _, link := range l.Links {
		if !link.RouteOnly {
			wired = append(wired, link)
		}
	}
	return wired
}

// Stats summarizes one generation run.
type Stats struct {
	Routers        int
	NodeTypes      map[grid.NodeType]int
	WiredLinks     int
	RouteOnlyLinks int
	Interfaces     int
	Variant        topology.Variant
	Size           int
}

// Stats computes the summary of the lab.
func (l *Lab) Stats() Stats {
	s := Stats{
		Routers:   len(l.Routers),
		NodeTypes: make(map[grid.NodeType]int),
		Variant:   l.Topology.Variant(),
		Size:      l.Topology.Size(),
	}
	for _, r := range l.Routers {
		s.NodeTypes[r.Type]++
		s.Interfaces += len(r.Interfaces)
	}
	for _, link := range l.Links {
		if link.RouteOnly {
			s.RouteOnlyLinks++
			continue
		}
		s.WiredLinks++
	}
	return s
}
