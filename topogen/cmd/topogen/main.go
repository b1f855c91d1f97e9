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

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/netsimlab/topogen/pkg/log"
	"github.com/netsimlab/topogen/pkg/private/serrors"
	"github.com/netsimlab/topogen/private/app/feature"
	"github.com/netsimlab/topogen/private/app/flag"
	"github.com/netsimlab/topogen/private/app/launcher"
	"github.com/netsimlab/topogen/topogen"
	"github.com/netsimlab/topogen/topogen/config"
)

var (
	globalCfg   config.Config
	environment flag.LabEnvironment
	features    []string
	diagnostics bool
)

func main() {
	application := launcher.Application{
		TOMLConfig: &globalCfg,
		ShortName:  "Topology Generator",
		AddFlags: func(fs *pflag.FlagSet) {
			environment.Register(fs)
			fs.StringSliceVar(&features, "features", nil,
				fmt.Sprintf("Enable development features (%v).",
					feature.String(&feature.Default{}, "|")))
			fs.BoolVar(&diagnostics, "diagnostics", false,
				"Print the full router and link tables after generation.")
		},
		Main: realMain,
	}
	application.Run()
}

func realMain(ctx context.Context) error {
	closer, err := topogen.InitTracer(globalCfg.Tracing, globalCfg.General.ID)
	if err != nil {
		return serrors.Wrap("initializing tracer", err)
	}
	defer closer.Close()

	if err := environment.LoadExternalVars(); err != nil {
		return serrors.Wrap("loading host environment", err)
	}
	applyEnvironment()
	// Features given on the command line come on top of the ones enabled
	// in the config file.
	if err := feature.Parse(features, &globalCfg.Features.Default); err != nil {
		return serrors.Wrap("parsing --features", err)
	}

	// The metrics endpoint stays up after generation until the process is
	// interrupted, so the run counters can be scraped. Without a configured
	// address the group finishes immediately.
	g, errCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer log.HandlePanic()
		return globalCfg.Metrics.ServePrometheus(errCtx)
	})

	generator := &topogen.Generator{
		Config:  &globalCfg,
		Metrics: topogen.NewMetrics(),
	}
	res, err := generator.Run(ctx)
	if err != nil {
		return err
	}
	res.Human(os.Stdout, isatty.IsTerminal(os.Stdout.Fd()))
	if diagnostics {
		res.DiagnosticsWrite(os.Stdout)
	}
	return g.Wait()
}

// applyEnvironment folds the flag and environment variable overrides into
// the configuration. Explicit values win over the TOML file.
func applyEnvironment() {
	if image := environment.Image(); image != "" {
		globalCfg.Lab.Image = image
	}
	if output := environment.Output(); output != "" {
		globalCfg.Lab.OutputDir = output
	}
}
