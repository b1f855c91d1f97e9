// Copyright 2018 ETH Zurich, Anapaya Systems
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

// Package env gathers the configuration sections that every command line
// application carries, along with the helpers to act on them. Anything that
// only one application needs belongs next to that application instead.
package env

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strconv"
	"time"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	jaeger "github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"

	"github.com/netsimlab/topogen/pkg/log"
	"github.com/netsimlab/topogen/pkg/private/serrors"
	"github.com/netsimlab/topogen/private/app/feature"
	"github.com/netsimlab/topogen/private/config"
)

// HandlerTimeout bounds how long the metrics handler may take to answer a
// scrape before it replies with an error.
const HandlerTimeout = time.Minute

var _ config.Config = (*General)(nil)

type General struct {
	config.NoDefaulter
	// ID identifies the process in logs, metrics and traces.
	ID string `toml:"id,omitempty"`
}

func (cfg *General) Validate() error {
	if cfg.ID == "" {
		return serrors.New("no element id specified")
	}
	return nil
}

func (cfg *General) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	config.WriteString(dst, fmt.Sprintf(generalSample, ctx[config.ID]))
}

func (cfg *General) ConfigName() string {
	return "general"
}

var _ config.Config = (*Features)(nil)

// Features exposes the feature flags in the configuration file. The flags
// themselves and their meaning live in private/app/feature. Feature flags
// are always boolean. Don't use any other types here!
type Features struct {
	config.NoDefaulter
	feature.Default
}

func (cfg *Features) Validate() error {
	return nil
}

func (cfg *Features) Sample(dst io.Writer, path config.Path, ctx config.CtxMap) {
	config.WriteString(dst, fmt.Sprintf(featuresSample, feature.String(&feature.Default{}, "|")))
}

func (cfg *Features) ConfigName() string {
	return "features"
}

var _ config.Config = (*Metrics)(nil)

type Metrics struct {
	config.NoDefaulter
	config.NoValidator
	// Prometheus is the address to serve the prometheus exporter on. When
	// empty, metrics are not exported.
	Prometheus string `toml:"prometheus,omitempty"`
}

func (cfg *Metrics) Sample(dst io.Writer, path config.Path, _ config.CtxMap) {
	config.WriteString(dst, metricsSample)
}

func (cfg *Metrics) ConfigName() string {
	return "metrics"
}

// ServePrometheus exposes the default registry on the configured address and
// blocks until the context is cancelled. Without a configured address the
// call returns immediately.
func (cfg *Metrics) ServePrometheus(ctx context.Context) error {
	if cfg.Prometheus == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.InstrumentMetricHandler(
		prometheus.DefaultRegisterer,
		promhttp.HandlerFor(
			prometheus.DefaultGatherer,
			promhttp.HandlerOpts{Timeout: HandlerTimeout},
		),
	))
	log.Info("Serving prometheus metrics", "addr", cfg.Prometheus)

	server := &http.Server{Addr: cfg.Prometheus, Handler: mux}
	go func() {
		defer log.HandlePanic()
		<-ctx.Done()
		server.Close()
	}()
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return serrors.Wrap("serving prometheus metrics", err)
	}
	return nil
}

// Tracing is the configuration for the trace reporting.
type Tracing struct {
	config.NoValidator
	// Enabled turns on trace reporting for this process.
	Enabled bool `toml:"enabled,omitempty"`
	// Debug samples every trace instead of relying on the agent defaults.
	Debug bool `toml:"debug,omitempty"`
	// Agent is the address of the local agent that collects the reported
	// traces. It defaults to the jaeger agent address localhost:6831.
	Agent string `toml:"agent,omitempty"`
}

func (cfg *Tracing) InitDefaults() {
	if cfg.Agent == "" {
		cfg.Agent = net.JoinHostPort(
			jaeger.DefaultUDPSpanServerHost,
			strconv.Itoa(jaeger.DefaultUDPSpanServerPort),
		)
	}
}

func (cfg *Tracing) Sample(dst io.Writer, path config.Path, _ config.CtxMap) {
	config.WriteString(dst, tracingSample)
}

func (cfg *Tracing) ConfigName() string {
	return "tracing"
}

// NewTracer creates a tracer for the given configuration. With tracing
// disabled it still hands out noop objects, so callers never need to check.
func (cfg *Tracing) NewTracer(id string) (opentracing.Tracer, io.Closer, error) {
	traceConfig := jaegercfg.Configuration{
		ServiceName: id,
		Disabled:    !cfg.Enabled,
		Reporter: &jaegercfg.ReporterConfig{
			LocalAgentHostPort: cfg.Agent,
		},
	}
	if cfg.Debug {
		traceConfig.Sampler = &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		}
	}
	bp := jaeger.NewBinaryPropagator(nil)
	return traceConfig.NewTracer(
		jaegercfg.Extractor(opentracing.Binary, bp),
		jaegercfg.Injector(opentracing.Binary, bp))
}

// LogAppStarted should be called by applications as soon as logging is
// initialized.
func LogAppStarted(svcType, elemID string) {
	log.Info(fmt.Sprintf("=====================> Service started %s %s", svcType, elemID),
		"version", Version(),
		"pid", os.Getpid(),
		"args", fmt.Sprintf("%q", os.Args),
	)
}

func LogAppStopped(svcType, elemID string) {
	log.Info(fmt.Sprintf("=====================> Service stopped %s %s", svcType, elemID))
}

// Version returns the module version stamped into the binary, or "unknown"
// for binaries built without module support.
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	return info.Main.Version
}
