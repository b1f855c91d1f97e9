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

// Package addrgen derives every IPv6 address in a lab from the lattice
// geometry. All derivations are pure functions of their inputs, so repeated
// runs over the same topology produce bit-identical address plans.
package addrgen

import (
	"encoding/binary"
	"net/netip"

	"github.com/netsimlab/topogen/pkg/grid"
	"github.com/netsimlab/topogen/pkg/private/serrors"
)

const (
	// PrefixLen is the required length of the global prefixes.
	PrefixLen = 48
	// NetworkLen is the length of a per-link network.
	NetworkLen = 126
	// InterfaceLen is the prefix length advertised on link interfaces.
	InterfaceLen = 127
)

// Plan holds the global prefixes all derived addresses live under.
type Plan struct {
	// Loopbacks is the prefix loopback addresses are derived in.
	Loopbacks netip.Prefix
	// Links is the prefix per-link networks are derived in.
	Links netip.Prefix
}

// Default returns the address plan used by generated labs unless the
// configuration overrides it.
func Default() Plan {
	return Plan{
		Loopbacks: netip.MustParsePrefix("2001:db8:1000::/48"),
		Links:     netip.MustParsePrefix("2001:db8:2000::/48"),
	}
}

// Validate checks that both prefixes are usable derivation roots.
func (p Plan) Validate() error {
	for _, prefix := range []netip.Prefix{p.Loopbacks, p.Links} {
		if !prefix.IsValid() || !prefix.Addr().Is6() || prefix.Addr().Is4In6() {
			return serrors.New("prefix is not IPv6", "prefix", prefix)
		}
		if prefix.Bits() != PrefixLen {
			return serrors.New("prefix length not supported",
				"prefix", prefix, "expected", PrefixLen)
		}
	}
	if p.Loopbacks.Overlaps(p.Links) {
		return serrors.New("loopback and link prefixes overlap",
			"loopbacks", p.Loopbacks, "links", p.Links)
	}
	return nil
}

// Loopback derives the loopback address of the router at the given
// coordinate. The area number and both coordinate components each occupy one
// address group; the lattice bounds keep all of them under 16 bits.
func (p Plan) Loopback(area int, c grid.Coordinate) netip.Addr {
	b := p.Loopbacks.Addr().As16()
	putGroup(&b, 3, uint16(area))
	putGroup(&b, 4, uint16(c.Row))
	putGroup(&b, 5, uint16(c.Col))
	putGroup(&b, 7, 1)
	return netip.AddrFrom16(b)
}

// LinkAddr is the addressing of one point-to-point link. The network is a
// /126; the endpoints sit on its two odd host addresses and advertise a /127
// interface prefix.
type LinkAddr struct {
	// ID is the pairing index the network was derived from.
	ID uint64
	// Network is the /126 covering both endpoint addresses.
	Network netip.Prefix
	// First addresses the endpoint with the smaller linear id.
	First netip.Prefix
	// Second addresses the endpoint with the larger linear id.
	Second netip.Prefix
}

// Link derives the addressing of the link between two coordinates. The
// result is symmetric in the endpoints: the pair is canonicalized to the
// smaller linear id first before any derivation.
func (p Plan) Link(cols int, a, b grid.Coordinate) LinkAddr {
	small, large := uint64(a.Linear(cols)), uint64(b.Linear(cols))
	if small > large {
		small, large = large, small
	}
	id := pairingIndex(small, large)
	bytes := p.Links.Addr().As16()
	// The pairing index spans two address groups. For any supported lattice
	// it stays below 2^32, so the split is total and injective.
	putGroup(&bytes, 3, uint16(id>>16))
	putGroup(&bytes, 4, uint16(id))
	network := netip.AddrFrom16(bytes)
	bytes[15] = 1
	first := netip.AddrFrom16(bytes)
	bytes[15] = 3
	second := netip.AddrFrom16(bytes)
	return LinkAddr{
		ID:      id,
		Network: netip.PrefixFrom(network, NetworkLen),
		First:   netip.PrefixFrom(first, InterfaceLen),
		Second:  netip.PrefixFrom(second, InterfaceLen),
	}
}

// pairingIndex folds an ordered id pair into a unique integer with the
// triangular pairing function.
func pairingIndex(small, large uint64) uint64 {
	sum := small + large
	return sum*(sum+1)/2 + large
}

func putGroup(b *[16]byte, group int, v uint16) {
	binary.BigEndian.PutUint16(b[2*group:], v)
}
