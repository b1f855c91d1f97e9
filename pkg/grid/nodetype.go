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

// NodeType classifies the role a node plays in the generated lab.
type NodeType int

const (
	// Corner marks the four corner nodes of an open grid.
	Corner NodeType = iota
	// Edge marks non-corner boundary nodes.
	Edge
	// Internal marks nodes with a full neighbor set.
	Internal
	// Gateway marks inter-region border nodes of a partitioned topology.
	Gateway
	// Source marks the traffic origin of a partitioned topology.
	Source
	// Destination marks the traffic sink of a partitioned topology.
	Destination
)

var nodeTypeNames = [...]string{
	Corner:      "corner",
	Edge:        "edge",
	Internal:    "internal",
	Gateway:     "gateway",
	Source:      "source",
	Destination: "destination",
}

func (t NodeType) String() string {
	if t < 0 || int(t) >= len(nodeTypeNames) {
		return "invalid"
	}
	return nodeTypeNames[t]
}
