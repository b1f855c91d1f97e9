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

package flag

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/spf13/pflag"

	"github.com/netsimlab/topogen/pkg/private/serrors"
	"github.com/netsimlab/topogen/private/app/env"
)

const defaultEnvironmentFile = "/etc/topogen/environment.json"

// LabEnvironment resolves the common lab generation values, like the router
// container image and the output location, from command line flags, OS
// environment variables and the host environment file.
type LabEnvironment struct {
	image      string
	imageFlag  *pflag.Flag
	output     string
	outputFlag *pflag.Flag
	imageEnv   *string
	outputEnv  *string
	file       env.Lab
	filepath   string

	mtx sync.Mutex
}

// Register registers the command line flags on the given flag set. Without
// this call the accessors simply skip the flag values.
func (e *LabEnvironment) Register(flagSet *pflag.FlagSet) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	flagSet.StringVar(&e.image, "image", "",
		"Router container image to run in the lab.")
	flagSet.StringVarP(&e.output, "output", "o", "",
		"Directory the lab is generated into.")
	e.imageFlag = flagSet.Lookup("image")
	e.outputFlag = flagSet.Lookup("output")
}

// SetFilePath sets the location of the host environment file.
func (e *LabEnvironment) SetFilePath(path string) {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	e.filepath = path
}

// LoadExternalVars reads the host environment file and the OS environment
// variables. Neither has to be present, but whatever is present has to parse.
func (e *LabEnvironment) LoadExternalVars() error {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if err := e.loadFile(); err != nil {
		return serrors.Wrap("loading environment file", err)
	}
	if err := e.loadEnv(); err != nil {
		return serrors.Wrap("loading environment variables", err)
	}
	return nil
}

func (e *LabEnvironment) loadFile() error {
	if e.filepath == "" {
		e.filepath = defaultEnvironmentFile
	}

	raw, err := os.ReadFile(e.filepath)
	if errors.Is(err, fs.ErrNotExist) {
		// Hosts without an environment file fall back to flags and
		// environment variables.
		return nil
	}
	if err != nil {
		return serrors.Wrap("loading file", err)
	}
	if err := json.Unmarshal(raw, &e.file); err != nil {
		return serrors.Wrap("parsing file", err)
	}
	if err := e.file.Validate(); err != nil {
		return serrors.Wrap("validating file", err)
	}
	return nil
}

func (e *LabEnvironment) loadEnv() error {
	if img, ok := os.LookupEnv("TOPOGEN_IMAGE"); ok {
		e.imageEnv = &img
	}
	if out, ok := os.LookupEnv("TOPOGEN_OUTPUT"); ok {
		e.outputEnv = &out
	}
	return nil
}

// Image returns the router container image. The value is loaded from one of
// the following sources with the precedence as listed:
//  1. Command line flag (--image)
//  2. Environment variable (TOPOGEN_IMAGE)
//  3. The default mirror of the host environment file
//
// If none are set, the empty string is returned and the caller falls back to
// its configured default.
func (e *LabEnvironment) Image() string {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.imageFlag != nil && e.imageFlag.Changed {
		return e.image
	}
	if e.imageEnv != nil {
		return *e.imageEnv
	}
	if mirror, ok := e.file.Mirrors[e.file.General.DefaultMirror]; ok {
		return mirror.Image
	}
	return ""
}

// Output returns the output directory override. The value is loaded from one
// of the following sources with the precedence as listed:
//  1. Command line flag (--output)
//  2. Environment variable (TOPOGEN_OUTPUT)
//
// If none are set, the empty string is returned and the directory name is
// derived from the generated lab.
func (e *LabEnvironment) Output() string {
	e.mtx.Lock()
	defer e.mtx.Unlock()

	if e.outputFlag != nil && e.outputFlag.Changed {
		return e.output
	}
	if e.outputEnv != nil {
		return *e.outputEnv
	}
	return ""
}
