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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netsimlab/topogen/private/config"
)

func TestParseDuration(t *testing.T) {
	testCases := []struct {
		src       string
		dur       time.Duration
		assertErr assert.ErrorAssertionFunc
	}{
		{"", 0, assert.Error},
		{"0", 0, assert.Error},
		{"1", 0, assert.Error},
		{"1x", 0, assert.Error},
		{"-1s", 0, assert.Error},
		{"1h30m", 0, assert.Error},
		{"0s", 0, assert.NoError},
		{"5ns", 5 * time.Nanosecond, assert.NoError},
		{"250us", 250 * time.Microsecond, assert.NoError},
		{"250µs", 250 * time.Microsecond, assert.NoError},
		{"300ms", 300 * time.Millisecond, assert.NoError},
		{"40s", 40 * time.Second, assert.NoError},
		{"10m", 10 * time.Minute, assert.NoError},
		{"6h", 6 * time.Hour, assert.NoError},
		{"1d", 24 * time.Hour, assert.NoError},
		{"2w", 2 * 7 * 24 * time.Hour, assert.NoError},
		{"1y", 365 * 24 * time.Hour, assert.NoError},
	}
	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			dur, err := ParseDuration(tc.src)
			tc.assertErr(t, err)
			if err != nil {
				return
			}
			assert.Equal(t, tc.dur, dur)
		})
	}
}

func TestFmtDuration(t *testing.T) {
	testCases := []struct {
		dur time.Duration
		str string
	}{
		{0, "0s"},
		{5 * time.Nanosecond, "5ns"},
		{250 * time.Microsecond, "250us"},
		{40 * time.Second, "40s"},
		{90 * time.Second, "90s"},
		{10 * time.Minute, "10m"},
		{24 * time.Hour, "1d"},
		{14 * 24 * time.Hour, "2w"},
		{365 * 24 * time.Hour, "1y"},
	}
	for _, tc := range testCases {
		t.Run(tc.str, func(t *testing.T) {
			assert.Equal(t, tc.str, FmtDuration(tc.dur))
		})
	}
}

func TestDurWrapRoundTrip(t *testing.T) {
	var cfg struct {
		Interval DurWrap `toml:"interval"`
	}
	require.NoError(t, config.Decode([]byte(`interval = "300ms"`), &cfg))
	assert.Equal(t, 300*time.Millisecond, cfg.Interval.Duration)
	assert.Equal(t, "300ms", cfg.Interval.String())

	text, err := cfg.Interval.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "300ms", string(text))
}
