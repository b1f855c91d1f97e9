// Copyright 2018 Anapaya Systems
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

package util

import (
	"encoding"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/netsimlab/topogen/pkg/private/serrors"
)

const (
	day  = 24 * time.Hour
	week = 7 * day
	year = 365 * day
)

var durationRegexp = regexp.MustCompile(`^(\d+)(ns|us|µs|ms|s|m|h|d|w|y)$`)

// ParseDuration parses a duration with a single unit. In addition to the
// units understood by time.ParseDuration it supports d (day), w (week) and
// y (year). Composite values such as "1h30m" are rejected.
func ParseDuration(s string) (time.Duration, error) {
	m := durationRegexp.FindStringSubmatch(s)
	if m == nil {
		return 0, serrors.New("invalid duration", "val", s)
	}
	num, err := strconv.ParseUint(m[1], 10, 63)
	if err != nil {
		return 0, serrors.Wrap("invalid duration value", err, "val", s)
	}
	var unit time.Duration
	switch m[2] {
	case "ns":
		unit = time.Nanosecond
	case "us", "µs":
		unit = time.Microsecond
	case "ms":
		unit = time.Millisecond
	case "s":
		unit = time.Second
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	case "d":
		unit = day
	case "w":
		unit = week
	case "y":
		unit = year
	}
	return time.Duration(num) * unit, nil
}

// FmtDuration formats the duration with the largest unit that divides it
// without remainder.
func FmtDuration(d time.Duration) string {
	if d == 0 {
		return "0s"
	}
	units := []string{"y", "w", "d", "h", "m", "s", "ms", "us", "ns"}
	dividers := []time.Duration{year, week, day, time.Hour, time.Minute,
		time.Second, time.Millisecond, time.Microsecond, time.Nanosecond}
	for i, unit := range units {
		if d%dividers[i] == 0 {
			return fmt.Sprintf("%d%s", d/dividers[i], unit)
		}
	}
	// Unreachable, every duration is a whole number of nanoseconds.
	return d.String()
}

var (
	_ encoding.TextUnmarshaler = (*DurWrap)(nil)
	_ encoding.TextMarshaler   = DurWrap{}
)

// DurWrap wraps a duration so that it marshals to and from TOML in the
// single unit format of ParseDuration.
type DurWrap struct {
	time.Duration
}

func (d *DurWrap) UnmarshalText(text []byte) error {
	parsed, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

func (d DurWrap) MarshalText() ([]byte, error) {
	return []byte(FmtDuration(d.Duration)), nil
}

func (d DurWrap) String() string {
	return FmtDuration(d.Duration)
}
