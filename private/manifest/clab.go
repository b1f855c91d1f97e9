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
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"

	"gopkg.in/yaml.v2"

	"github.com/netsimlab/topogen/pkg/private/serrors"
	"github.com/netsimlab/topogen/pkg/private/util"
	"github.com/netsimlab/topogen/private/lab"
)

type clabFile struct {
	Name     string       `yaml:"name"`
	Mgmt     clabMgmt     `yaml:"mgmt"`
	Topology clabTopology `yaml:"topology"`
}

type clabMgmt struct {
	IPv4Subnet     string `yaml:"ipv4-subnet"`
	IPv6Subnet     string `yaml:"ipv6-subnet"`
	ExternalAccess bool   `yaml:"external-access"`
}

type clabTopology struct {
	Defaults clabDefaults        `yaml:"defaults"`
	Nodes    map[string]clabNode `yaml:"nodes"`
	Links    []clabLink          `yaml:"links"`
}

type clabDefaults struct {
	CPUSet string  `yaml:"cpu-set,omitempty"`
	CPU    float64 `yaml:"cpu,omitempty"`
	Memory string  `yaml:"memory,omitempty"`
}

type clabNode struct {
	Kind        string   `yaml:"kind"`
	Image       string   `yaml:"image"`
	Binds       []string `yaml:"binds"`
	NetworkMode string   `yaml:"network-mode,omitempty"`
	Exec        []string `yaml:"exec,omitempty"`
}

type clabLink struct {
	Endpoints []string `yaml:"endpoints"`
}

// Clab renders the containerlab topology description of the lab. Only
// wired links become veth pairs, the wrap-around bridges of partitioned
// topologies exist in the routing configuration alone.
func Clab(l *lab.Lab, n Naming, p Params) ([]byte, error) {
	image := p.Image
	if image == "" {
		image = DefaultImage
	}
	f := clabFile{
		Name: n.LabName(l.Topology),
		Mgmt: clabMgmt{
			IPv4Subnet: "10.0.0.0/16",
			IPv6Subnet: "2001:db8::/64",
		},
		Topology: clabTopology{
			Defaults: clabDefaults{
				CPUSet: resolveCPUSet(p.CPUSet),
				CPU:    p.CPULimit,
				Memory: p.MemoryLimit,
			},
			Nodes: make(map[string]clabNode, len(l.Routers)),
		},
	}
	for _, r := range l.Routers {
		node := clabNode{
			Kind:  "linux",
			Image: image,
			Binds: []string{
				path.Join("etc", r.Name, "conf") + ":/etc/frr",
				path.Join("etc", r.Name, "log") + ":/var/log/frr",
			},
		}
		// Podman attaches the containers to its default network, the
		// Docker runtime keeps them detached and only the veth pairs
		// below connect them.
		if !p.Podman {
			node.NetworkMode = "none"
		}
		if p.LinkDelay.Duration > 0 {
			delay := util.FmtDuration(p.LinkDelay.Duration)
			for _, intf := range sortedInterfaces(r) {
				node.Exec = append(node.Exec,
					fmt.Sprintf("tc qdisc add dev %s root netem delay %s", intf, delay))
			}
		}
		f.Topology.Nodes[r.Name] = node
	}
	for _, link := range l.WiredLinks() {
		f.Topology.Links = append(f.Topology.Links, clabLink{
			Endpoints: []string{
				link.A.Router + ":" + link.A.Interface,
				link.B.Router + ":" + link.B.Interface,
			},
		})
	}
	raw, err := yaml.Marshal(f)
	if err != nil {
		return nil, serrors.Wrap("marshalling containerlab description", err)
	}
	return raw, nil
}

// WriteClab renders the containerlab description and writes it under
// dir using the conventional file name. It returns the written path.
func WriteClab(dir string, l *lab.Lab, n Naming, p Params) (string, error) {
	raw, err := Clab(l, n, p)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", serrors.Wrap("creating output directory", err, "dir", dir)
	}
	file := filepath.Join(dir, n.ClabFile(l.Topology))
	if err := os.WriteFile(file, raw, 0o644); err != nil {
		return "", serrors.Wrap("writing containerlab description", err, "file", file)
	}
	return file, nil
}

func resolveCPUSet(v string) string {
	if v != "auto" {
		return v
	}
	return fmt.Sprintf("0-%d", max(0, runtime.NumCPU()-2))
}

func sortedInterfaces(r *lab.Router) []string {
	names := make([]string, 0, len(r.Interfaces))
	for name := range r.Interfaces {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
