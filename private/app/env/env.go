// Copyright 2021 Anapaya Systems
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

// Package env supplies the host environment file. The file carries machine
// wide defaults shared by every lab generated on it, most prominently the
// registry mirrors that hold the router container image.
package env

import (
	"strings"

	"github.com/netsimlab/topogen/pkg/private/serrors"
)

// Lab is the definition of the host environment for lab generation.
type Lab struct {
	General General `json:"general,omitempty"`
	// Mirrors maps a short mirror name to the registry mirror description.
	Mirrors map[string]Mirror `json:"mirrors,omitempty"`
}

// Validate validates the environment.
func (l Lab) Validate() error {
	if err := l.General.Validate(); err != nil {
		return serrors.Wrap("validating general", err)
	}
	for name, mirror := range l.Mirrors {
		if name == "" {
			return serrors.New("mirror name must not be empty")
		}
		if err := mirror.Validate(); err != nil {
			return serrors.Wrap("validating mirror", err, "mirror", name)
		}
	}
	return nil
}

// General contains general environment values.
type General struct {
	// DefaultMirror is the name of the mirror that is used when none is
	// selected explicitly.
	DefaultMirror string `json:"default_mirror,omitempty"`
}

// Validate validates the general environment values.
func (g General) Validate() error {
	if strings.ContainsAny(g.DefaultMirror, "/: \t") {
		return serrors.New("default mirror must be a plain name",
			"name", g.DefaultMirror)
	}
	return nil
}

// Mirror describes one registry mirror carrying the router image.
type Mirror struct {
	// Image is the fully qualified image reference on this mirror.
	Image string `json:"image,omitempty"`
}

// Validate validates the mirror description.
func (m Mirror) Validate() error {
	if m.Image == "" {
		return serrors.New("no image specified")
	}
	if strings.ContainsAny(m.Image, " \t") {
		return serrors.New("malformed image reference", "image", m.Image)
	}
	if !strings.Contains(m.Image, ":") {
		return serrors.New("image reference must carry a tag", "image", m.Image)
	}
	return nil
}
