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

// Package metrics defines a backend agnostic interface for reporting
// metrics, with prometheus as the only production backend. Code that
// reports metrics accepts the interfaces of this package, so that tests
// can observe the reported values through the fakes.
package metrics

// Counter describes a metric that accumulates values monotonically.
type Counter interface {
	With(labelValues ...string) Counter
	Add(delta float64)
}

// Gauge describes a metric that takes a specific value over time.
type Gauge interface {
	With(labelValues ...string) Gauge
	Set(value float64)
}

// CounterInc increments the counter by one. A nil counter is a no-op.
func CounterInc(c Counter) {
	if c != nil {
		c.Add(1)
	}
}

// CounterAdd increases the counter by delta. A nil counter is a no-op.
func CounterAdd(c Counter, delta float64) {
	if c != nil {
		c.Add(delta)
	}
}

// CounterWith returns the counter curried with the label values. A nil
// counter stays nil.
func CounterWith(c Counter, labelValues ...string) Counter {
	if c == nil {
		return nil
	}
	return c.With(labelValues...)
}

// GaugeSet sets the gauge to value. A nil gauge is a no-op.
func GaugeSet(g Gauge, value float64) {
	if g != nil {
		g.Set(value)
	}
}
