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

package topology

import (
	"github.com/netsimlab/topogen/pkg/grid"
	"github.com/netsimlab/topogen/pkg/private/serrors"
)

// Neighbors returns the wired neighbor set of a coordinate, at most one
// entry per direction. For the partitioned variant this is the
// quadrant-filtered base adjacency plus the internal bridges; route-only
// bridges are not included. The error is ErrCapacity when a bridge cannot be
// given a free interface slot.
func (t *Topology) Neighbors(c grid.Coordinate) (map[grid.Direction]grid.Coordinate, error) {
	nbrs := t.baseNeighbors(c)
	if t.variant != Special {
		return nbrs, nil
	}
	for _, e := range t.special.InternalBridges {
		other, ok := e.otherEnd(c)
		if !ok || containsNeighbor(nbrs, other) {
			continue
		}
		d, err := freeSlot(nbrs, c, other, t.size)
		if err != nil {
			return nil, err
		}
		nbrs[d] = other
	}
	return nbrs, nil
}

// NodeType classifies a coordinate within the topology.
func (t *Topology) NodeType(c grid.Coordinate) grid.NodeType {
	switch t.variant {
	case Torus:
		return grid.Internal
	case Strip:
		if c.Col == 0 || c.Col == t.size-1 {
			return grid.Edge
		}
		return grid.Internal
	case Special:
		switch {
		case c == t.special.Source:
			return grid.Source
		case c == t.special.Destination:
			return grid.Destination
		case t.gateways[c]:
			return grid.Gateway
		}
		return grid.Internal
	}
	onRowBoundary := c.Row == 0 || c.Row == t.size-1
	onColBoundary := c.Col == 0 || c.Col == t.size-1
	switch {
	case onRowBoundary && onColBoundary:
		return grid.Corner
	case onRowBoundary || onColBoundary:
		return grid.Edge
	}
	return grid.Internal
}

// baseNeighbors computes the adjacency of the underlying lattice, before any
// bridge is applied.
func (t *Topology) baseNeighbors(c grid.Coordinate) map[grid.Direction]grid.Coordinate {
	nbrs := make(map[grid.Direction]grid.Coordinate, 4)
	switch t.variant {
	case Torus:
		for _, d := range grid.Directions() {
			v := d.Vector()
			nbrs[d] = grid.Coordinate{
				Row: (c.Row + v.DRow + t.size) % t.size,
				Col: (c.Col + v.DCol + t.size) % t.size,
			}
		}
	case Strip:
		// The row axis wraps into vertical rings, the column axis stays
		// open.
		for _, d := range grid.Directions() {
			v := d.Vector()
			if d.Vertical() {
				nbrs[d] = grid.Coordinate{
					Row: (c.Row + v.DRow + t.size) % t.size,
					Col: c.Col,
				}
				continue
			}
			n, err := c.Add(v)
			if err != nil || !n.InBounds(t.size, t.size) {
				continue
			}
			nbrs[d] = n
		}
	case Special:
		if !t.special.IncludeBase {
			return nbrs
		}
		region := t.Region(c)
		for _, d := range grid.Directions() {
			n, err := c.Add(d.Vector())
			if err != nil || !n.InBounds(t.size, t.size) {
				continue
			}
			if t.Region(n) != region {
				continue
			}
			nbrs[d] = n
		}
	default:
		for _, d := range grid.Directions() {
			n, err := c.Add(d.Vector())
			if err != nil || !n.InBounds(t.size, t.size) {
				continue
			}
			nbrs[d] = n
		}
	}
	return nbrs
}

func containsNeighbor(nbrs map[grid.Direction]grid.Coordinate, c grid.Coordinate) bool {
	for _, n := range nbrs {
		if n == c {
			return true
		}
	}
	return false
}

// freeSlot picks the interface slot for a bridge link: the link direction
// when free, otherwise the first free slot in canonical order.
func freeSlot(
	nbrs map[grid.Direction]grid.Coordinate,
	c, other grid.Coordinate,
	size int,
) (grid.Direction, error) {

	d, err := grid.DirectionBetween(c, other, size, size)
	if err != nil {
		return 0, err
	}
	if _, taken := nbrs[d]; !taken {
		return d, nil
	}
	for _, alt := range grid.Directions() {
		if _, taken := nbrs[alt]; !taken {
			return alt, nil
		}
	}
	return 0, serrors.Wrap("assigning bridge slot", ErrCapacity,
		"coord", c, "peer", other)
}
