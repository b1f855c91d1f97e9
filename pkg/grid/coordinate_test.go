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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinateAdd(t *testing.T) {
	testCases := map[string]struct {
		coord     Coordinate
		vec       Vector
		want      Coordinate
		assertErr assert.ErrorAssertionFunc
	}{
		"move south east": {
			coord:     Coordinate{Row: 1, Col: 1},
			vec:       Vector{DRow: 1, DCol: 1},
			want:      Coordinate{Row: 2, Col: 2},
			assertErr: assert.NoError,
		},
		"move north from top": {
			coord:     Coordinate{Row: 0, Col: 3},
			vec:       Vector{DRow: -1},
			assertErr: assert.Error,
		},
		"move west from left": {
			coord:     Coordinate{Row: 3, Col: 0},
			vec:       Vector{DCol: -1},
			assertErr: assert.Error,
		},
		"zero vector": {
			coord:     Coordinate{Row: 4, Col: 2},
			vec:       Vector{},
			want:      Coordinate{Row: 4, Col: 2},
			assertErr: assert.NoError,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			got, err := tc.coord.Add(tc.vec)
			tc.assertErr(t, err)
			if err != nil {
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCoordinateLinear(t *testing.T) {
	assert.Equal(t, 0, Coordinate{}.Linear(6))
	assert.Equal(t, 5, Coordinate{Row: 0, Col: 5}.Linear(6))
	assert.Equal(t, 6, Coordinate{Row: 1, Col: 0}.Linear(6))
	assert.Equal(t, 35, Coordinate{Row: 5, Col: 5}.Linear(6))
	assert.Equal(t, 7, Coordinate{Row: 2, Col: 1}.Linear(3))
}

func TestCoordinateDistance(t *testing.T) {
	a := Coordinate{Row: 1, Col: 1}
	assert.Equal(t, 0, a.Distance(a))
	assert.Equal(t, 1, a.Distance(Coordinate{Row: 0, Col: 1}))
	assert.Equal(t, 4, a.Distance(Coordinate{Row: 3, Col: 3}))
	assert.True(t, a.Adjacent(Coordinate{Row: 1, Col: 2}))
	assert.False(t, a.Adjacent(Coordinate{Row: 2, Col: 2}))
	assert.False(t, a.Adjacent(a))
}

func TestCoordinateInBounds(t *testing.T) {
	assert.True(t, Coordinate{}.InBounds(1, 1))
	assert.True(t, Coordinate{Row: 5, Col: 5}.InBounds(6, 6))
	assert.False(t, Coordinate{Row: 6, Col: 5}.InBounds(6, 6))
	assert.False(t, Coordinate{Row: 5, Col: 6}.InBounds(6, 6))
	assert.False(t, Coordinate{Row: -1, Col: 0}.InBounds(6, 6))
}

func TestCoordinateString(t *testing.T) {
	assert.Equal(t, "(2,3)", Coordinate{Row: 2, Col: 3}.String())
}
