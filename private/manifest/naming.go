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

package manifest

import (
	"fmt"
	"strings"

	"github.com/netsimlab/topogen/private/topology"
)

// Naming derives the conventional artifact names of a lab from the
// enabled routing protocols.
type Naming struct {
	// OSPF indicates that OSPFv3 runs in the lab.
	OSPF bool
	// ISIS indicates that IS-IS runs in the lab.
	ISIS bool
	// LSAOnly indicates that the lab floods LSAs without installing
	// routes. It only affects the output directory name.
	LSAOnly bool
}

// ProtocolSuffix returns the protocol part of the artifact names. Labs
// without any IGP are named after OSPFv3 since they still carry its
// configuration tree.
func (n Naming) ProtocolSuffix() string {
	var parts []string
	if n.OSPF {
		parts = append(parts, "ospf6")
	}
	if n.ISIS {
		parts = append(parts, "isis")
	}
	if len(parts) == 0 {
		return "ospf6"
	}
	return strings.Join(parts, "_")
}

// OutputDir returns the conventional output directory name for a lab of
// the given shape.
func (n Naming) OutputDir(topo *topology.Topology) string {
	suffix := ""
	if n.LSAOnly {
		suffix = "_lsa_only"
	}
	return fmt.Sprintf("%s_%s%dx%d%s",
		n.ProtocolSuffix(), topo.Variant(), topo.Size(), topo.Size(), suffix)
}

// ClabFile returns the file name of the containerlab topology
// description.
func (n Naming) ClabFile(topo *topology.Topology) string {
	return fmt.Sprintf("%s_%s%dx%d.clab.yaml",
		n.ProtocolSuffix(), topo.Variant(), topo.Size(), topo.Size())
}

// LabName returns the containerlab name of the lab. Partitioned
// topologies expand to the base variant they were carved from so that
// the name stays unique per shape.
func (n Naming) LabName(topo *topology.Topology) string {
	proto := strings.ReplaceAll(n.ProtocolSuffix(), "_", "-")
	return fmt.Sprintf("%s-%s%dx%d",
		proto, expandedVariant(topo), topo.Size(), topo.Size())
}

func expandedVariant(topo *topology.Topology) string {
	cfg, ok := topo.Special()
	if !ok {
		return topo.Variant().String()
	}
	if cfg.IncludeBase {
		return cfg.Base.String() + "_special"
	}
	return "pure_special"
}
