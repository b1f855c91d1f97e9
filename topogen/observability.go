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

package topogen

import (
	"io"

	"github.com/opentracing/opentracing-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/netsimlab/topogen/pkg/private/prom"
	"github.com/netsimlab/topogen/private/env"
)

// These are the metrics exported by the generator.
var (
	RoutersBuiltTotalMeta = MetricMeta{
		Name:   "topogen_routers_built_total",
		Help:   "Total number of routers built over all generation runs.",
		Labels: []string{prom.LabelVariant},
	}
	LinksBuiltTotalMeta = MetricMeta{
		Name:   "topogen_links_built_total",
		Help:   "Total number of links built over all generation runs.",
		Labels: []string{prom.LabelVariant, prom.LabelKind},
	}
	FilesWrittenTotalMeta = MetricMeta{
		Name:   "topogen_files_written_total",
		Help:   "Total number of configuration files written over all generation runs.",
		Labels: []string{},
	}
	LastRunTimestampMeta = MetricMeta{
		Name:   "topogen_last_run_timestamp_seconds",
		Help:   "UNIX timestamp of the last successful generation run.",
		Labels: []string{},
	}
)

type MetricMeta struct {
	Name   string
	Help   string
	Labels []string
}

func (mm *MetricMeta) NewCounterVec() *prometheus.CounterVec {
	return promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: mm.Name,
			Help: mm.Help,
		},
		mm.Labels,
	)
}

func (mm *MetricMeta) NewGaugeVec() *prometheus.GaugeVec {
	return promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: mm.Name,
			Help: mm.Help,
		},
		mm.Labels,
	)
}

// Metrics defines the metrics exported by the generator.
type Metrics struct {
	RoutersBuiltTotal *prometheus.CounterVec
	LinksBuiltTotal   *prometheus.CounterVec
	FilesWrittenTotal *prometheus.CounterVec
	LastRunTimestamp  *prometheus.GaugeVec
}

// NewMetrics initializes the metrics for the generator and registers them
// with the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		RoutersBuiltTotal: RoutersBuiltTotalMeta.NewCounterVec(),
		LinksBuiltTotal:   LinksBuiltTotalMeta.NewCounterVec(),
		FilesWrittenTotal: FilesWrittenTotalMeta.NewCounterVec(),
		LastRunTimestamp:  LastRunTimestampMeta.NewGaugeVec(),
	}
}

// InitTracer installs the jaeger tracer as the process wide default and
// returns the closer that flushes buffered spans on shutdown.
func InitTracer(tracing env.Tracing, id string) (io.Closer, error) {
	tracer, trCloser, err := tracing.NewTracer(id)
	if err != nil {
		return nil, err
	}
	opentracing.SetGlobalTracer(tracer)
	return trCloser, nil
}
