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

package addrgen_test

import (
	"net/netip"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go4.org/netipx"

	"github.com/netsimlab/topogen/pkg/grid"
	"github.com/netsimlab/topogen/pkg/private/xtest"
	"github.com/netsimlab/topogen/private/addrgen"
	"github.com/netsimlab/topogen/private/topology"
)

func TestPlanValidate(t *testing.T) {
	testCases := map[string]struct {
		plan      addrgen.Plan
		assertErr assert.ErrorAssertionFunc
	}{
		"default": {
			plan:      addrgen.Default(),
			assertErr: assert.NoError,
		},
		"wrong prefix length": {
			plan: addrgen.Plan{
				Loopbacks: netip.MustParsePrefix("2001:db8:1000::/64"),
				Links:     netip.MustParsePrefix("2001:db8:2000::/48"),
			},
			assertErr: assert.Error,
		},
		"not IPv6": {
			plan: addrgen.Plan{
				Loopbacks: netip.MustParsePrefix("10.0.0.0/8"),
				Links:     netip.MustParsePrefix("2001:db8:2000::/48"),
			},
			assertErr: assert.Error,
		},
		"overlapping roots": {
			plan: addrgen.Plan{
				Loopbacks: netip.MustParsePrefix("2001:db8:2000::/48"),
				Links:     netip.MustParsePrefix("2001:db8:2000::/48"),
			},
			assertErr: assert.Error,
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			tc.assertErr(t, tc.plan.Validate())
		})
	}
}

func TestLoopback(t *testing.T) {
	plan := addrgen.Default()
	testCases := map[string]struct {
		area  int
		coord grid.Coordinate
		want  string
	}{
		"origin": {
			area:  0,
			coord: grid.Coordinate{Row: 0, Col: 0},
			want:  "2001:db8:1000::1",
		},
		"flat area": {
			area:  0,
			coord: grid.Coordinate{Row: 1, Col: 4},
			want:  "2001:db8:1000:0:1:4::1",
		},
		"nonzero area": {
			area:  3,
			coord: grid.Coordinate{Row: 2, Col: 5},
			want:  "2001:db8:1000:3:2:5::1",
		},
		"largest lattice": {
			area:  49,
			coord: grid.Coordinate{Row: 99, Col: 99},
			want:  "2001:db8:1000:31:63:63::1",
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			addr := plan.Loopback(tc.area, tc.coord)
			assert.Equal(t, xtest.MustParseAddr(t, tc.want), addr)
			assert.Equal(t, addr, plan.Loopback(tc.area, tc.coord))
		})
	}
}

func TestLink(t *testing.T) {
	plan := addrgen.Default()
	testCases := map[string]struct {
		cols    int
		a, b    grid.Coordinate
		id      uint64
		network string
	}{
		"first horizontal pair": {
			cols:    6,
			a:       grid.Coordinate{Row: 0, Col: 0},
			b:       grid.Coordinate{Row: 0, Col: 1},
			id:      2,
			network: "2001:db8:2000:0:2::/126",
		},
		"first vertical pair": {
			cols:    6,
			a:       grid.Coordinate{Row: 0, Col: 0},
			b:       grid.Coordinate{Row: 1, Col: 0},
			id:      27,
			network: "2001:db8:2000:0:1b::/126",
		},
		"wraparound pair": {
			cols:    6,
			a:       grid.Coordinate{Row: 0, Col: 5},
			b:       grid.Coordinate{Row: 0, Col: 0},
			id:      20,
			network: "2001:db8:2000:0:14::/126",
		},
		"last pair": {
			cols:    6,
			a:       grid.Coordinate{Row: 5, Col: 4},
			b:       grid.Coordinate{Row: 5, Col: 5},
			id:      2450,
			network: "2001:db8:2000:0:992::/126",
		},
		"index spills into the second group": {
			cols:    100,
			a:       grid.Coordinate{Row: 2, Col: 55},
			b:       grid.Coordinate{Row: 2, Col: 56},
			id:      131072,
			network: "2001:db8:2000:2::/126",
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			link := plan.Link(tc.cols, tc.a, tc.b)
			assert.Equal(t, tc.id, link.ID)
			assert.Equal(t, xtest.MustParsePrefix(t, tc.network), link.Network)
			want := link.Network.Addr().As16()
			want[15] = 1
			assert.Equal(t, netip.PrefixFrom(netip.AddrFrom16(want), 127), link.First)
			want[15] = 3
			assert.Equal(t, netip.PrefixFrom(netip.AddrFrom16(want), 127), link.Second)

			assert.Equal(t, link, plan.Link(tc.cols, tc.b, tc.a))
			assert.Equal(t, link, plan.Link(tc.cols, tc.a, tc.b))
		})
	}
}

// TestLinkGroupSplit pins the pair of pairing indices that would collide if
// the index were rendered as a single address group whenever it fits one.
func TestLinkGroupSplit(t *testing.T) {
	plan := addrgen.Default()
	low := plan.Link(100, grid.Coordinate{Row: 0, Col: 0}, grid.Coordinate{Row: 0, Col: 1})
	high := plan.Link(100, grid.Coordinate{Row: 2, Col: 55}, grid.Coordinate{Row: 2, Col: 56})
	assert.Equal(t, uint64(2), low.ID)
	assert.Equal(t, uint64(131072), high.ID)
	assert.NotEqual(t, low.Network, high.Network)
}

func TestAddressesDisjoint(t *testing.T) {
	plan := addrgen.Default()
	testCases := map[string]struct {
		variant topology.Variant
		links   int
	}{
		"grid":  {variant: topology.Grid, links: 60},
		"torus": {variant: topology.Torus, links: 72},
		"strip": {variant: topology.Strip, links: 66},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			topo, err := topology.New(tc.variant, 6)
			require.NoError(t, err)
			edges := topo.WiredEdges()
			require.Len(t, edges, tc.links)

			var builder netipx.IPSetBuilder
			for _, c := range topo.Coordinates() {
				builder.AddPrefix(netip.PrefixFrom(plan.Loopback(0, c), 128))
			}
			for _, e := range edges {
				builder.AddPrefix(plan.Link(6, e.A, e.B).Network)
			}
			set, err := builder.IPSet()
			require.NoError(t, err)
			// Every network is far from its neighbors in address space, so
			// any shrinkage of the range count means two derivations
			// collided.
			assert.Len(t, set.Ranges(), 36+tc.links)
		})
	}
}

func TestDerivationProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)
	plan := addrgen.Default()

	properties.Property("endpoint order does not matter", prop.ForAll(
		func(ar, ac, br, bc int) bool {
			a := grid.Coordinate{Row: ar, Col: ac}
			b := grid.Coordinate{Row: br, Col: bc}
			return plan.Link(100, a, b) == plan.Link(100, b, a)
		},
		gen.IntRange(0, 99), gen.IntRange(0, 99),
		gen.IntRange(0, 99), gen.IntRange(0, 99),
	))

	properties.Property("distinct pairs get distinct networks", prop.ForAll(
		func(ar, ac, br, bc, cr, cc, dr, dc int) bool {
			a := grid.Coordinate{Row: ar, Col: ac}
			b := grid.Coordinate{Row: br, Col: bc}
			c := grid.Coordinate{Row: cr, Col: cc}
			d := grid.Coordinate{Row: dr, Col: dc}
			if a == b || c == d {
				return true
			}
			first := plan.Link(100, a, b)
			second := plan.Link(100, c, d)
			if canonicalPair(a, b) == canonicalPair(c, d) {
				return first == second
			}
			return first.Network != second.Network
		},
		gen.IntRange(0, 99), gen.IntRange(0, 99),
		gen.IntRange(0, 99), gen.IntRange(0, 99),
		gen.IntRange(0, 99), gen.IntRange(0, 99),
		gen.IntRange(0, 99), gen.IntRange(0, 99),
	))

	properties.Property("distinct routers get distinct loopbacks", prop.ForAll(
		func(aArea, aRow, aCol, bArea, bRow, bCol int) bool {
			first := plan.Loopback(aArea, grid.Coordinate{Row: aRow, Col: aCol})
			second := plan.Loopback(bArea, grid.Coordinate{Row: bRow, Col: bCol})
			same := aArea == bArea && aRow == bRow && aCol == bCol
			return same == (first == second)
		},
		gen.IntRange(0, 100), gen.IntRange(0, 100), gen.IntRange(0, 100),
		gen.IntRange(0, 100), gen.IntRange(0, 100), gen.IntRange(0, 100),
	))

	properties.TestingRun(t)
}

func canonicalPair(a, b grid.Coordinate) [2]grid.Coordinate {
	if a.Linear(100) > b.Linear(100) {
		return [2]grid.Coordinate{b, a}
	}
	return [2]grid.Coordinate{a, b}
}
