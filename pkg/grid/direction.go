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

package grid

import (
	"github.com/netsimlab/topogen/pkg/private/serrors"
)

// Direction identifies one of the four lattice directions. The constant
// order is canonical: it fixes both the interface numbering and the order in
// which neighbors are visited everywhere in the generator.
type Direction int

const (
	North Direction = iota
	South
	West
	East
)

// Directions returns all directions in canonical order.
func Directions() [4]Direction {
	return [4]Direction{North, South, West, East}
}

var (
	directionNames   = [4]string{"north", "south", "west", "east"}
	directionIfaces  = [4]string{"eth1", "eth2", "eth3", "eth4"}
	directionVectors = [4]Vector{{DRow: -1}, {DRow: 1}, {DCol: -1}, {DCol: 1}}
	opposites        = [4]Direction{South, North, East, West}
	clockwise        = [4]Direction{East, West, North, South}
	counterclockwise = [4]Direction{West, East, South, North}
)

// Valid reports whether the direction is one of the four defined values.
func (d Direction) Valid() bool {
	return d >= North && d <= East
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return opposites[d]
}

// Clockwise returns the direction rotated by a quarter turn clockwise.
func (d Direction) Clockwise() Direction {
	return clockwise[d]
}

// Counterclockwise returns the direction rotated by a quarter turn
// counterclockwise.
func (d Direction) Counterclockwise() Direction {
	return counterclockwise[d]
}

// Vector returns the unit translation of the direction.
func (d Direction) Vector() Vector {
	return directionVectors[d]
}

// Vertical reports whether the direction runs along the row axis.
func (d Direction) Vertical() bool {
	return d == North || d == South
}

// Interface returns the data-plane interface name wired toward the
// direction.
func (d Direction) Interface() string {
	return directionIfaces[d]
}

func (d Direction) String() string {
	if !d.Valid() {
		return "invalid"
	}
	return directionNames[d]
}

// DirectionOfInterface is the inverse of Direction.Interface.
func DirectionOfInterface(name string) (Direction, error) {
	for i, iface := range directionIfaces {
		if iface == name {
			return Direction(i), nil
		}
	}
	return 0, serrors.New("unknown interface", "name", name)
}

// DirectionBetween resolves the direction leading from one coordinate toward
// another on a lattice with the given dimensions. Direct neighbors and exact
// wraparound deltas resolve to the adjacency direction. Every other distinct
// pair resolves along the dominant axis, ties going to the row axis.
func DirectionBetween(from, to Coordinate, rows, cols int) (Direction, error) {
	if from == to {
		return 0, serrors.New("equal coordinates", "coord", from)
	}
	rowDiff := to.Row - from.Row
	colDiff := to.Col - from.Col

	switch {
	case rowDiff == -1 && colDiff == 0:
		return North, nil
	case rowDiff == 1 && colDiff == 0:
		return South, nil
	case rowDiff == 0 && colDiff == -1:
		return West, nil
	case rowDiff == 0 && colDiff == 1:
		return East, nil
	}

	wrapRow, wrapCol := rows-1, cols-1
	switch {
	case rowDiff == wrapRow && colDiff == 0:
		return North, nil
	case rowDiff == -wrapRow && colDiff == 0:
		return South, nil
	case rowDiff == 0 && colDiff == wrapCol:
		return West, nil
	case rowDiff == 0 && colDiff == -wrapCol:
		return East, nil
	}

	if abs(rowDiff) >= abs(colDiff) {
		if rowDiff < 0 {
			return North, nil
		}
		return South, nil
	}
	if colDiff < 0 {
		return West, nil
	}
	return East, nil
}
