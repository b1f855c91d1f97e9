// Copyright 2020 Anapaya Systems
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

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// NewPromCounter wraps a prometheus counter vector as a Counter. A nil
// vector yields a nil Counter.
func NewPromCounter(cv *prometheus.CounterVec) Counter {
	if cv == nil {
		return nil
	}
	return promCounter{cv: cv}
}

// NewPromCounterFrom constructs a counter vector according to opts,
// registers it with the default registry, and wraps it as a Counter.
func NewPromCounterFrom(opts prometheus.CounterOpts, labelNames []string) Counter {
	cv := prometheus.NewCounterVec(opts, labelNames)
	prometheus.MustRegister(cv)
	return promCounter{cv: cv}
}

// NewPromGauge wraps a prometheus gauge vector as a Gauge. A nil vector
// yields a nil Gauge.
func NewPromGauge(gv *prometheus.GaugeVec) Gauge {
	if gv == nil {
		return nil
	}
	return promGauge{gv: gv}
}

// The wrapper types below are derived from the metrics interfaces in the
// go-kit/kit project under the prometheus package, adapted to keep the
// types unexported. That code is published under the following license:
//
// The MIT License (MIT)
//
// Copyright (c) 2015 Peter Bourgon
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// labelValues accumulates the label pairs curried onto a metric through
// successive With calls.
type labelValues []string

// with appends the pairs to a copy of the label values. An odd number of
// strings is padded so the prometheus vector lookup cannot fail on it.
func (lvs labelValues) with(pairs ...string) labelValues {
	if len(pairs)%2 != 0 {
		pairs = append(pairs, "unknown")
	}
	next := make(labelValues, len(lvs), len(lvs)+len(pairs))
	copy(next, lvs)
	return append(next, pairs...)
}

func (lvs labelValues) labels() prometheus.Labels {
	labels := make(prometheus.Labels, len(lvs)/2)
	for i := 0; i+1 < len(lvs); i += 2 {
		labels[lvs[i]] = lvs[i+1]
	}
	return labels
}

// promCounter implements Counter via a prometheus CounterVec.
type promCounter struct {
	cv  *prometheus.CounterVec
	lvs labelValues
}

func (c promCounter) With(pairs ...string) Counter {
	return promCounter{cv: c.cv, lvs: c.lvs.with(pairs...)}
}

func (c promCounter) Add(delta float64) {
	c.cv.With(c.lvs.labels()).Add(delta)
}

// promGauge implements Gauge via a prometheus GaugeVec.
type promGauge struct {
	gv  *prometheus.GaugeVec
	lvs labelValues
}

func (g promGauge) With(pairs ...string) Gauge {
	return promGauge{gv: g.gv, lvs: g.lvs.with(pairs...)}
}

func (g promGauge) Set(value float64) {
	g.gv.With(g.lvs.labels()).Set(value)
}
