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

package envtest

import (
	"bytes"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"

	"github.com/netsimlab/topogen/private/config"
	"github.com/netsimlab/topogen/private/env"
)

// decodeSample writes the sample of cfg and decodes it back into cfg. The
// decoder rejects unknown fields, so samples with stale keys fail here.
func decodeSample(t *testing.T, cfg config.Sampler, ctx config.CtxMap) {
	t.Helper()
	var sample bytes.Buffer
	cfg.Sample(&sample, nil, ctx)
	dec := toml.NewDecoder(bytes.NewReader(sample.Bytes())).DisallowUnknownFields()
	require.NoError(t, dec.Decode(cfg))
}

func TestGeneralSample(t *testing.T) {
	var cfg env.General
	InitTestGeneral(&cfg)
	decodeSample(t, &cfg, config.CtxMap{config.ID: "general"})
	CheckTestGeneral(t, &cfg, "general")
}

func TestFeaturesSample(t *testing.T) {
	var cfg env.Features
	InitTestFeatures(&cfg)
	decodeSample(t, &cfg, nil)
	CheckTestFeatures(t, &cfg)
}

func TestMetricsSample(t *testing.T) {
	var cfg env.Metrics
	InitTestMetrics(&cfg)
	decodeSample(t, &cfg, nil)
	CheckTestMetrics(t, &cfg)
}

func TestTracingSample(t *testing.T) {
	var cfg env.Tracing
	InitTestTracing(&cfg)
	decodeSample(t, &cfg, nil)
	CheckTestTracing(t, &cfg)
}
