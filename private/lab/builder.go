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

package lab

import (
	"fmt"
	"net/netip"

	"github.com/netsimlab/topogen/pkg/grid"
	"github.com/netsimlab/topogen/pkg/private/serrors"
	"github.com/netsimlab/topogen/private/addrgen"
	"github.com/netsimlab/topogen/private/topology"
)

// Builder derives the lab records from a topology. The zero value is not
// usable; the address plan is mandatory.
type Builder struct {
	// Plan supplies the global address prefixes.
	Plan addrgen.Plan
	// MultiArea splits the lattice into AreaSize wide area bands instead of
	// a single backbone area.
	MultiArea bool
	// AreaSize is the band width. Required when MultiArea is set.
	AreaSize int
	// AssignASNs attaches autonomous system numbers to the routers.
	AssignASNs bool
	// BaseAS is the first autonomous system number.
	BaseAS uint32
	// NoLinks skips link derivation and interface assignment, producing
	// routers with empty neighbor and interface maps.
	NoLinks bool
}

// Build assembles the full record set for the topology.
func (b Builder) Build(topo *topology.Topology) (*Lab, error) {
	if err := b.Plan.Validate(); err != nil {
		return nil, serrors.Wrap("validating address plan", err)
	}
	if b.MultiArea && (b.AreaSize < 2 || b.AreaSize > topo.Size()) {
		return nil, serrors.New("area size out of range",
			"area_size", b.AreaSize, "size", topo.Size())
	}
	l := &Lab{
		Topology: topo,
		byName:   make(map[string]*Router),
		byCoord:  make(map[grid.Coordinate]*Router),
	}
	for _, c := range topo.Coordinates() {
		r, err := b.buildRouter(topo, c)
		if err != nil {
			return nil, err
		}
		l.Routers = append(l.Routers, r)
		l.byName[r.Name] = r
		l.byCoord[r.Coord] = r
	}
	if b.NoLinks {
		return l, nil
	}
	if err := b.buildLinks(l, topo); err != nil {
		return nil, err
	}
	return l, nil
}

func (b Builder) buildRouter(topo *topology.Topology, c grid.Coordinate) (*Router, error) {
	areaID, areaNum := b.area(c)
	r := &Router{
		Name:       RouterName(c),
		Coord:      c,
		Type:       topo.NodeType(c),
		RouterID:   fmt.Sprintf("10.%d.%d.1", c.Row, c.Col),
		Loopback:   b.Plan.Loopback(areaNum, c),
		AreaID:     areaID,
		ASN:        b.asn(topo, c),
		Neighbors:  make(map[grid.Direction]grid.Coordinate),
		Interfaces: make(map[string]netip.Prefix),
	}
	if b.NoLinks {
		return r, nil
	}
	nbrs, err := topo.Neighbors(c)
	if err != nil {
		return nil, serrors.Wrap("computing neighbors", err, "coord", c)
	}
	r.Neighbors = nbrs
	return r, nil
}

// area returns the dotted-quad area identifier and the numeric area the
// loopback address is derived from.
func (b Builder) area(c grid.Coordinate) (string, int) {
	if !b.MultiArea {
		return "0.0.0.0", 0
	}
	rowBand := c.Row / b.AreaSize
	colBand := c.Col / b.AreaSize
	return fmt.Sprintf("%d.%d.0.0", rowBand, colBand), rowBand
}

func (b Builder) asn(topo *topology.Topology, c grid.Coordinate) uint32 {
	if !b.AssignASNs {
		return 0
	}
	if topo.Variant() != topology.Special {
		return b.BaseAS
	}
	return b.BaseAS + 1 + uint32(topo.Region(c))
}

func (b Builder) buildLinks(l *Lab, topo *topology.Topology) error {
	networks := make(map[netip.Prefix]Link)
	add := func(e topology.Edge, routeOnly bool) error {
		la := b.Plan.Link(topo.Size(), e.A, e.B)
		link := Link{
			ID:        la.ID,
			Network:   la.Network,
			A:         Endpoint{Router: RouterName(e.A), Addr: la.First},
			B:         Endpoint{Router: RouterName(e.B), Addr: la.Second},
			RouteOnly: routeOnly,
		}
		if prev, ok := networks[la.Network]; ok {
			return serrors.New("link network collision",
				"network", la.Network,
				"first", fmt.Sprintf("%s~%s", prev.A.Router, prev.B.Router),
				"second", fmt.Sprintf("%s~%s", link.A.Router, link.B.Router))
		}
		networks[la.Network] = link
		if !routeOnly {
			if err := bindEndpoint(l, &link.A, e.A, e.B, topo.Size()); err != nil {
				return err
			}
			if err := bindEndpoint(l, &link.B, e.B, e.A, topo.Size()); err != nil {
				return err
			}
		}
		l.Links = append(l.Links, link)
		return nil
	}
	for _, e := range topo.WiredEdges() {
		if err := add(e, false); err != nil {
			return err
		}
	}
	for _, e := range topo.RouteOnlyEdges() {
		if err := add(e, true); err != nil {
			return err
		}
	}
	return nil
}

// bindEndpoint attaches the link to the interface slot the neighbor map
// reserved for the peer and records the interface address on the router.
func bindEndpoint(l *Lab, ep *Endpoint, c, peer grid.Coordinate, size int) error {
	r, ok := l.RouterAt(c)
	if !ok {
		return serrors.New("link endpoint outside lattice", "coord", c)
	}
	d, err := slotFor(r, peer, size)
	if err != nil {
		return err
	}
	ep.Interface = d.Interface()
	r.Interfaces[ep.Interface] = ep.Addr
	return nil
}

// slotFor resolves the interface slot wired to the peer. The geometric
// direction wins when it holds the peer; bridges that were displaced to a
// fallback slot are found by scanning the occupied slots.
func slotFor(r *Router, peer grid.Coordinate, size int) (grid.Direction, error) {
	if d, err := grid.DirectionBetween(r.Coord, peer, size, size); err == nil {
		if n, ok := r.Neighbors[d]; ok && n == peer {
			return d, nil
		}
	}
	for _, d := range grid.Directions() {
		if n, ok := r.Neighbors[d]; ok && n == peer {
			return d, nil
		}
	}
	return 0, serrors.New("no interface slot for peer",
		"router", r.Name, "peer", peer)
}
