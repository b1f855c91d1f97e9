// Copyright 2019 Anapaya Systems
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

// Package config defines the common pattern for configuration structs.
//
// Every configuration struct implements the Config interface, which splits
// into three concerns: defaults, validation and sample generation. Defaults
// are applied with InitDefaults, which recursively fills all unset fields.
// Validate recursively checks that the values make sense. Sample generation
// produces a commented TOML sample, and the envtest helpers verify that
// sample and defaults stay consistent.
//
// Sample methods are allowed to panic when writing fails.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/netsimlab/topogen/pkg/private/serrors"
)

// ID is the sample generation context key under which the element ID is
// passed.
const ID = "id"

// Config ties the three parts of a configuration struct together.
type Config interface {
	Sampler
	Validator
	Defaulter
}

// Validator wraps the Validate method.
type Validator interface {
	// Validate checks the block and everything nested in it for invalid
	// values.
	Validate() error
}

// Defaulter wraps the InitDefaults method.
type Defaulter interface {
	// InitDefaults fills in defaults for every field that is still unset,
	// including nested blocks.
	InitDefaults()
}

// Sampler wraps the Sample method.
type Sampler interface {
	// Sample writes a commented sample config block to dst. The path names
	// the enclosing sections, ctx carries additional information.
	Sample(dst io.Writer, path Path, ctx CtxMap)
}

// TableSampler is a Sampler whose sample is written as its own TOML table.
type TableSampler interface {
	Sampler
	// ConfigName returns the name of the table. Keeping the name on the
	// type forces the same section name across all binaries that embed
	// the block.
	ConfigName() string
}

// Path names the nested sections that lead to a config block.
type Path []string

// Extend returns a copy of the path with s appended.
func (p Path) Extend(s string) Path {
	c := append(Path(nil), p...)
	return append(c, s)
}

// NoValidator can be embedded in config structs that have nothing to
// validate.
type NoValidator struct{}

func (NoValidator) Validate() error {
	return nil
}

// NoDefaulter can be embedded in config structs that have no defaults.
type NoDefaulter struct{}

func (NoDefaulter) InitDefaults() {}

// ValidateAll validates the validators in order. The first error
// encountered is returned.
func ValidateAll(validators ...Validator) error {
	for _, v := range validators {
		if err := v.Validate(); err != nil {
			return serrors.Wrap("validating", err, "type", fmt.Sprintf("%T", v))
		}
	}
	return nil
}

// InitAll applies the defaults of all defaulters in order.
func InitAll(defaulters ...Defaulter) {
	for _, d := range defaulters {
		d.InitDefaults()
	}
}

// Decode parses a raw TOML config. Unknown keys are rejected, so typos in
// the file do not go unnoticed.
func Decode(raw []byte, cfg any) error {
	return toml.NewDecoder(bytes.NewReader(raw)).DisallowUnknownFields().Decode(cfg)
}

// LoadFile reads and decodes the config file.
func LoadFile(file string, cfg any) error {
	raw, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	return Decode(raw, cfg)
}
