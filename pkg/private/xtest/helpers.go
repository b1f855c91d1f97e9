// Copyright 2018 ETH Zurich
// Copyright 2020 ETH Zurich, Anapaya Systems
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

// Package xtest contains helpers shared by tests across the code base.
package xtest

import (
	"bytes"
	"flag"
	"net/netip"
	"os"
	"path/filepath"
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/require"
)

// UpdateGoldenFiles registers the '-update' flag for the test.
//
// Golden file tests check this flag to decide whether the golden files
// should be regenerated instead of compared. The golden content must be
// deterministic. To update the golden files of a package, run:
//
//	go test ./path/to/package -update
//
// The flag must be registered as a package global variable:
//
//	var update = xtest.UpdateGoldenFiles()
func UpdateGoldenFiles() *bool {
	return flag.Bool("update", false, "set to regenerate the golden files")
}

// ExpandPath returns testdata/file.
func ExpandPath(file string) string {
	return filepath.Join("testdata", file)
}

// AssertGolden compares the actual content against the golden file and, on
// mismatch, fails the test with a readable diff of the two.
func AssertGolden(t testing.TB, goldenFile string, actual []byte) {
	t.Helper()

	want, err := os.ReadFile(goldenFile)
	require.NoError(t, err)
	if bytes.Equal(want, actual) {
		return
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(want), string(actual), true)
	t.Errorf("content differs from %q:\n%s", goldenFile, dmp.DiffPrettyText(diffs))
}

// MustParseAddr parses s and returns the corresponding netip.Addr object.
// It fails the test if s is not a valid address string.
func MustParseAddr(t testing.TB, s string) netip.Addr {
	t.Helper()

	a, err := netip.ParseAddr(s)
	require.NoError(t, err)
	return a
}

// MustParsePrefix parses s and returns the corresponding netip.Prefix
// object. It fails the test if s is not a valid CIDR string.
func MustParsePrefix(t testing.TB, s string) netip.Prefix {
	t.Helper()

	p, err := netip.ParsePrefix(s)
	require.NoError(t, err)
	return p
}
