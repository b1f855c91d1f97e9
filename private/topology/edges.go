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
)

// WiredEdges enumerates every edge that is wired as a link, in canonical
// order: a row-major scan over the kept coordinates visiting directions
// north, south, west, east, followed by the internal bridges in configured
// order. Each undirected edge appears exactly once, the endpoint with the
// smaller linear id first.
func (t *Topology) WiredEdges() []Edge {
	seen := make(map[Edge]bool)
	var edges []Edge
	add := func(a, b grid.Coordinate) {
		e := Edge{A: a, B: b}.canonical(t.size)
		if seen[e] {
			return
		}
		seen[e] = true
		edges = append(edges, e)
	}
	for _, c := range t.Coordinates() {
		base := t.baseNeighbors(c)
		for _, d := range grid.Directions() {
			if n, ok := base[d]; ok {
				add(c, n)
			}
		}
	}
	if t.variant == Special {
		for _, e := range t.special.InternalBridges {
			add(e.A, e.B)
		}
	}
	return edges
}

// RouteOnlyEdges returns the torus-bridge edges in configured order,
// canonicalized and with duplicates of wired links dropped. These edges get
// link addresses but no interface slot and no lab wiring.
func (t *Topology) RouteOnlyEdges() []Edge {
	if t.variant != Special || len(t.special.TorusBridges) == 0 {
		return nil
	}
	seen := make(map[Edge]bool)
	for _, e := range t.WiredEdges() {
		seen[e] = true
	}
	var edges []Edge
	for _, e := range t.special.TorusBridges {
		c := e.canonical(t.size)
		if seen[c] {
			continue
		}
		seen[c] = true
		edges = append(edges, c)
	}
	return edges
}

// TotalLinkCount returns the number of wired links. The uniform variants
// have closed forms; the partitioned variant is counted by enumeration. On a
// two-wide lattice the wrap edge coincides with the direct edge, so the
// wrapping variants fall back to enumeration there.
func (t *Topology) TotalLinkCount() int {
	n := t.size
	switch t.variant {
	case Grid:
		return 2 * n * (n - 1)
	case Torus:
		if n > 2 {
			return 2 * n * n
		}
	case Strip:
		if n > 2 {
			return n*n + n*(n-1)
		}
	}
	return len(t.WiredEdges())
}
