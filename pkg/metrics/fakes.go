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
	"sync"
)

// TestCounter implements a counter for use in tests. All label values map
// to the same backing value, so tests observe the total across labels.
type TestCounter struct {
	mtx sync.Mutex
	v   float64
}

// NewTestCounter creates a new counter for use in tests.
func NewTestCounter() *TestCounter {
	return &TestCounter{}
}

// With returns the counter itself, the fake does not track labels.
func (c *TestCounter) With(labelValues ...string) Counter {
	return c
}

// Add increases the counter by delta. Negative deltas panic.
func (c *TestCounter) Add(delta float64) {
	if delta < 0 {
		panic("counter delta must not be negative")
	}
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.v += delta
}

// CounterValue extracts the value out of a TestCounter. It panics if the
// argument is a different Counter implementation.
func CounterValue(c Counter) float64 {
	tc := c.(*TestCounter)
	tc.mtx.Lock()
	defer tc.mtx.Unlock()
	return tc.v
}

// TestGauge implements a gauge for use in tests. All label values map to
// the same backing value.
type TestGauge struct {
	mtx sync.Mutex
	v   float64
}

// NewTestGauge creates a new gauge for use in tests.
func NewTestGauge() *TestGauge {
	return &TestGauge{}
}

// With returns the gauge itself, the fake does not track labels.
func (g *TestGauge) With(labelValues ...string) Gauge {
	return g
}

// Set sets the gauge to value.
func (g *TestGauge) Set(v float64) {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	g.v = v
}

// GaugeValue extracts the value out of a TestGauge. It panics if the
// argument is a different Gauge implementation.
func GaugeValue(g Gauge) float64 {
	tg := g.(*TestGauge)
	tg.mtx.Lock()
	defer tg.mtx.Unlock()
	return tg.v
}
