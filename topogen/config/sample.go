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

package config

const topologySample = `
# Lattice family of the generated topology (grid|torus|strip|special).
# (default "grid")
variant = "grid"

# Lattice dimension. Generated labs are always square (min 2, max 100).
# (required)
size = 5

# Split the lattice into area bands instead of a single backbone area.
# (default false)
multi_area = false

# Band width in lattice rows and columns. Required when multi_area is set.
# area_size = 2
`

const networkSample = `
# IPv6 prefix loopback addresses are derived in. Must be a /48.
# (default "2001:db8:1000::/48")
loopback_prefix = "2001:db8:1000::/48"

# IPv6 prefix per-link networks are derived in. Must be a /48 disjoint
# from the loopback prefix. (default "2001:db8:2000::/48")
link_prefix = "2001:db8:2000::/48"
`

const protocolsSample = `
# Routing protocols rendered into the lab (ospf6|isis|bgp|bfd). An explicit
# empty list produces a lab that runs zebra only. (default ["ospf6"])
enabled = ["ospf6"]
`

const modesSample = `
# Render the daemon files without log statements. (default false)
disable_logging = false

# Mark every routing daemon disabled in the daemons file. The configuration
# files are still rendered. (default false)
daemons_off = false

# Daemons marked disabled individually (ospf6d|isisd|bgpd|bfdd).
# daemons_disabled = []

# Daemons whose configuration is diverted to a -bak file, leaving an empty
# live file behind (daemons|zebra|ospf6d|isisd|bgpd|bfdd).
# dummy_config = []

# Daemons that get an empty live file (daemons|zebra|ospf6d|isisd|bgpd|bfdd).
# no_config = []

# Build routers without links or interface assignments. (default false)
no_links = false
`
