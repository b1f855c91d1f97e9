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

// Edge is an undirected connection between two lattice coordinates.
type Edge struct {
	A grid.Coordinate
	B grid.Coordinate
}

// otherEnd returns the opposite endpoint when the coordinate is part of the
// edge.
func (e Edge) otherEnd(c grid.Coordinate) (grid.Coordinate, bool) {
	switch c {
	case e.A:
		return e.B, true
	case e.B:
		return e.A, true
	}
	return grid.Coordinate{}, false
}

// canonical orders the endpoints by linear id, the smaller one first.
func (e Edge) canonical(cols int) Edge {
	if e.A.Linear(cols) > e.B.Linear(cols) {
		return Edge{A: e.B, B: e.A}
	}
	return e
}

// SpecialConfig parameterizes the partitioned topology. The base lattice is
// split into four quadrants with all quadrant-crossing edges removed;
// internal bridges are extra wired links, torus bridges exist for routing and
// addressing only and are never wired.
type SpecialConfig struct {
	Source      grid.Coordinate
	Destination grid.Coordinate
	Gateways    []grid.Coordinate
	// InternalBridges are wired as real links and compete for interface
	// slots.
	InternalBridges []Edge
	// TorusBridges are assigned link addresses but consume no interface
	// slot and never appear in the lab wiring.
	TorusBridges []Edge
	// Base is the lattice whose quadrant-filtered adjacency underlies the
	// partition. Only Grid is supported.
	Base Variant
	// IncludeBase wires the filtered base adjacency in addition to the
	// bridges. Without it only bridge endpoints remain connected.
	IncludeBase bool
}

// Validate checks the configuration against the lattice bounds.
func (cfg SpecialConfig) Validate(size int) error {
	if cfg.Base != Grid {
		return serrors.New("unsupported base topology", "base", cfg.Base)
	}
	check := func(c grid.Coordinate, what string) error {
		if !c.InBounds(size, size) {
			return serrors.New("coordinate out of bounds",
				"role", what, "coord", c, "size", size)
		}
		return nil
	}
	if err := check(cfg.Source, "source"); err != nil {
		return err
	}
	if err := check(cfg.Destination, "destination"); err != nil {
		return err
	}
	for _, g := range cfg.Gateways {
		if err := check(g, "gateway"); err != nil {
			return err
		}
	}
	for _, e := range append(append([]Edge{}, cfg.InternalBridges...), cfg.TorusBridges...) {
		if e.A == e.B {
			return serrors.New("bridge endpoints are equal", "coord", e.A)
		}
		if err := check(e.A, "bridge endpoint"); err != nil {
			return err
		}
		if err := check(e.B, "bridge endpoint"); err != nil {
			return err
		}
	}
	return nil
}

// connected returns the coordinates reachable through the partition: source,
// destination, every gateway, and every bridge endpoint.
func (cfg SpecialConfig) connected() map[grid.Coordinate]bool {
	keep := map[grid.Coordinate]bool{
		cfg.Source:      true,
		cfg.Destination: true,
	}
	for _, g := range cfg.Gateways {
		keep[g] = true
	}
	for _, e := range cfg.InternalBridges {
		keep[e.A] = true
		keep[e.B] = true
	}
	for _, e := range cfg.TorusBridges {
		keep[e.A] = true
		keep[e.B] = true
	}
	return keep
}

// Sample6x6 returns the reference partitioned scenario shipped with the
// sample configuration: a six-by-six lattice with one traffic source, one
// destination, sixteen gateways, four wired bridges across the quadrant
// boundaries, and four route-only wraparound bridges.
func Sample6x6() SpecialConfig {
	return SpecialConfig{
		Source:      grid.Coordinate{Row: 1, Col: 4},
		Destination: grid.Coordinate{Row: 4, Col: 1},
		Gateways: []grid.Coordinate{
			{Row: 0, Col: 1}, {Row: 0, Col: 4},
			{Row: 1, Col: 0}, {Row: 1, Col: 2}, {Row: 1, Col: 3}, {Row: 1, Col: 5},
			{Row: 2, Col: 1}, {Row: 2, Col: 4},
			{Row: 3, Col: 1}, {Row: 3, Col: 4},
			{Row: 4, Col: 0}, {Row: 4, Col: 2}, {Row: 4, Col: 3}, {Row: 4, Col: 5},
			{Row: 5, Col: 1}, {Row: 5, Col: 4},
		},
		InternalBridges: []Edge{
			{A: grid.Coordinate{Row: 1, Col: 2}, B: grid.Coordinate{Row: 1, Col: 3}},
			{A: grid.Coordinate{Row: 4, Col: 2}, B: grid.Coordinate{Row: 4, Col: 3}},
			{A: grid.Coordinate{Row: 2, Col: 1}, B: grid.Coordinate{Row: 3, Col: 1}},
			{A: grid.Coordinate{Row: 2, Col: 4}, B: grid.Coordinate{Row: 3, Col: 4}},
		},
		TorusBridges: []Edge{
			{A: grid.Coordinate{Row: 0, Col: 1}, B: grid.Coordinate{Row: 5, Col: 1}},
			{A: grid.Coordinate{Row: 0, Col: 4}, B: grid.Coordinate{Row: 5, Col: 4}},
			{A: grid.Coordinate{Row: 1, Col: 0}, B: grid.Coordinate{Row: 1, Col: 5}},
			{A: grid.Coordinate{Row: 4, Col: 0}, B: grid.Coordinate{Row: 4, Col: 5}},
		},
		Base:        Grid,
		IncludeBase: true,
	}
}
