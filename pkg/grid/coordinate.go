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
	"fmt"

	"github.com/netsimlab/topogen/pkg/private/serrors"
)

// Coordinate addresses a node on the lab lattice. Row zero is the top row,
// column zero the leftmost column.
type Coordinate struct {
	Row int
	Col int
}

// Vector is a translation on the lattice.
type Vector struct {
	DRow int
	DCol int
}

// Add translates the coordinate by the given vector. Translations that leave
// the non-negative quadrant are rejected.
func (c Coordinate) Add(v Vector) (Coordinate, error) {
	t := Coordinate{Row: c.Row + v.DRow, Col: c.Col + v.DCol}
	if t.Row < 0 || t.Col < 0 {
		return Coordinate{}, serrors.New("translation out of range", "from", c, "to", t)
	}
	return t, nil
}

// InBounds reports whether the coordinate lies on a lattice with the given
// dimensions.
func (c Coordinate) InBounds(rows, cols int) bool {
	return c.Row >= 0 && c.Row < rows && c.Col >= 0 && c.Col < cols
}

// Linear is the row-major index of the coordinate on a lattice with the
// given number of columns. It fixes the canonical node order used for link
// identifiers and deterministic iteration.
func (c Coordinate) Linear(cols int) int {
	return c.Row*cols + c.Col
}

// Distance is the Manhattan distance to the other coordinate.
func (c Coordinate) Distance(o Coordinate) int {
	return abs(c.Row-o.Row) + abs(c.Col-o.Col)
}

// Adjacent reports whether the other coordinate is a direct lattice
// neighbor, ignoring wraparound.
func (c Coordinate) Adjacent(o Coordinate) bool {
	return c.Distance(o) == 1
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
