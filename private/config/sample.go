// Copyright 2019 Anapaya Systems
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

package config

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// CtxMap carries additional information for sample generation.
type CtxMap map[string]string

// WriteSample writes the sample blocks of all samplers to dst, in order of
// appearance. Table samplers are written with a section header and their
// content indented. WriteSample panics if writing fails.
func WriteSample(dst io.Writer, path Path, ctx CtxMap, samplers ...Sampler) {
	var buf bytes.Buffer
	for _, sampler := range samplers {
		buf.Reset()
		ts, ok := sampler.(TableSampler)
		if !ok {
			sampler.Sample(&buf, path, ctx)
			if _, err := io.Copy(dst, &buf); err != nil {
				panic(fmt.Sprintf("writing sample: %s", err))
			}
			continue
		}
		sub := path.Extend(ts.ConfigName())
		WriteString(dst, fmt.Sprintf("\n[%s]", strings.Join(sub, ".")))
		ts.Sample(&buf, sub, ctx)
		indent(dst, &buf)
	}
}

// WriteString writes the string to dst and panics if writing fails.
func WriteString(dst io.Writer, s string) {
	if _, err := io.WriteString(dst, s); err != nil {
		panic(fmt.Sprintf("writing sample string: %s", err))
	}
}

// indent copies src to dst with every non-empty line indented one level.
func indent(dst io.Writer, src io.Reader) {
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		if line := scanner.Text(); len(line) > 0 {
			fmt.Fprintf(dst, "    %s\n", line)
		} else {
			fmt.Fprintln(dst)
		}
	}
}
