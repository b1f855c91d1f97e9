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

// Package topology models the lattice shapes the generator can produce.
//
// A Topology is an immutable value built from a validated configuration. It
// answers three questions about the lattice: which coordinates exist, which
// neighbors a coordinate is wired to, and what role a coordinate plays. All
// answers are deterministic over the construction parameters.
package topology

import (
	"fmt"

	"github.com/netsimlab/topogen/pkg/grid"
	"github.com/netsimlab/topogen/pkg/private/serrors"
)

const (
	// MinSize is the smallest supported lattice dimension.
	MinSize = 2
	// MaxSize is the largest supported lattice dimension.
	MaxSize = 100
)

// ErrCapacity indicates a node accumulated more wired neighbor relationships
// than it has interface slots.
var ErrCapacity = serrors.New("interface slots exhausted")

// Variant enumerates the supported lattice shapes.
type Variant int

const (
	Grid Variant = iota
	Torus
	Strip
	Special
)

var variantNames = [...]string{"grid", "torus", "strip", "special"}

// Valid reports whether the variant is one of the defined values.
func (v Variant) Valid() bool {
	return v >= Grid && v <= Special
}

func (v Variant) String() string {
	if !v.Valid() {
		return "invalid"
	}
	return variantNames[v]
}

// VariantFromString parses the lowercase variant name.
func VariantFromString(s string) (Variant, error) {
	for i, name := range variantNames {
		if name == s {
			return Variant(i), nil
		}
	}
	return 0, serrors.New("unknown topology variant", "input", s)
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, serrors.New("invalid topology variant", "value", int(v))
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := VariantFromString(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Topology is an immutable description of one lattice.
type Topology struct {
	variant  Variant
	size     int
	special  *SpecialConfig
	gateways map[grid.Coordinate]bool
	// keep holds the coordinates that survive pruning. A nil map keeps the
	// whole lattice.
	keep map[grid.Coordinate]bool
}

// New builds a uniform topology. The partitioned variant carries extra
// parameters and is built with NewSpecial instead.
func New(variant Variant, size int) (*Topology, error) {
	if !variant.Valid() {
		return nil, serrors.New("invalid topology variant", "value", int(variant))
	}
	if variant == Special {
		return nil, serrors.New("partitioned topology requires its configuration")
	}
	if err := checkSize(size); err != nil {
		return nil, err
	}
	return &Topology{variant: variant, size: size}, nil
}

// NewSpecial builds the partitioned topology from its configuration. The
// configuration is validated against the lattice bounds before any graph
// construction happens.
func NewSpecial(size int, cfg SpecialConfig) (*Topology, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	if err := cfg.Validate(size); err != nil {
		return nil, err
	}
	t := &Topology{
		variant:  Special,
		size:     size,
		special:  &cfg,
		gateways: make(map[grid.Coordinate]bool, len(cfg.Gateways)),
	}
	for _, g := range cfg.Gateways {
		t.gateways[g] = true
	}
	if !cfg.IncludeBase {
		t.keep = cfg.connected()
	}
	return t, nil
}

func checkSize(size int) error {
	if size < MinSize || size > MaxSize {
		return serrors.New("lattice size out of range",
			"size", size, "min", MinSize, "max", MaxSize)
	}
	return nil
}

// Variant returns the lattice shape.
func (t *Topology) Variant() Variant {
	return t.variant
}

// Size returns the lattice dimension. The lattice is always square.
func (t *Topology) Size() int {
	return t.size
}

// Special returns the partition parameters. The second return value is false
// for uniform topologies.
func (t *Topology) Special() (SpecialConfig, bool) {
	if t.special == nil {
		return SpecialConfig{}, false
	}
	return *t.special, true
}

// Contains reports whether the coordinate survives pruning.
func (t *Topology) Contains(c grid.Coordinate) bool {
	if !c.InBounds(t.size, t.size) {
		return false
	}
	if t.keep == nil {
		return true
	}
	return t.keep[c]
}

// Coordinates returns the kept coordinates in row-major order.
func (t *Topology) Coordinates() []grid.Coordinate {
	coords := make([]grid.Coordinate, 0, t.size*t.size)
	for row := 0; row < t.size; row++ {
		for col := 0; col < t.size; col++ {
			c := grid.Coordinate{Row: row, Col: col}
			if t.Contains(c) {
				coords = append(coords, c)
			}
		}
	}
	return coords
}

// Region returns the quadrant a coordinate falls in. Quadrants are numbered
// row-major: 0 top-left, 1 top-right, 2 bottom-left, 3 bottom-right.
func (t *Topology) Region(c grid.Coordinate) int {
	half := t.size / 2
	region := 0
	if c.Row >= half {
		region += 2
	}
	if c.Col >= half {
		region++
	}
	return region
}

func (t *Topology) String() string {
	return fmt.Sprintf("%s %dx%d", t.variant, t.size, t.size)
}
