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

package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/netsimlab/topogen/pkg/metrics"
)

func TestPromCounter(t *testing.T) {
	cv := prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "files_total"},
		[]string{"kind"},
	)
	c := metrics.NewPromCounter(cv)
	metrics.CounterInc(metrics.CounterWith(c, "kind", "config"))
	metrics.CounterAdd(metrics.CounterWith(c, "kind", "config"), 2)
	assert.Equal(t, 3.0, testutil.ToFloat64(cv))
}

func TestPromGauge(t *testing.T) {
	gv := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: "last_run"}, nil)
	g := metrics.NewPromGauge(gv)
	metrics.GaugeSet(g, 42)
	assert.Equal(t, 42.0, testutil.ToFloat64(gv))
}

func TestNilSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.CounterInc(nil)
		metrics.CounterAdd(nil, 2)
		metrics.GaugeSet(nil, 1)
	})
	assert.Nil(t, metrics.CounterWith(nil, "kind", "config"))
	assert.Nil(t, metrics.NewPromCounter(nil))
	assert.Nil(t, metrics.NewPromGauge(nil))
}

func TestFakes(t *testing.T) {
	c := metrics.NewTestCounter()
	metrics.CounterInc(metrics.CounterWith(c, "kind", "wired"))
	metrics.CounterAdd(c, 2)
	assert.Equal(t, 3.0, metrics.CounterValue(c))

	g := metrics.NewTestGauge()
	metrics.GaugeSet(g.With("variant", "grid"), 9)
	assert.Equal(t, 9.0, metrics.GaugeValue(g))
}
