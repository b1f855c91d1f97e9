// Copyright 2021 Anapaya Systems
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

package env_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/netsimlab/topogen/private/app/env"
)

func TestLab(t *testing.T) {
	testCases := map[string]struct {
		input           string
		parseError      assert.ErrorAssertionFunc
		validationError assert.ErrorAssertionFunc
	}{
		"valid": {
			input: `
				{
					"general": {
						"default_mirror": "quay"
					},
					"mirrors": {
						"quay": {
							"image": "quay.io/frrouting/frr:10.3.1"
						}
					}
				}
			`,
			parseError:      assert.NoError,
			validationError: assert.NoError,
		},
		"parse error": {
			input: `
				{
					"general": {
						"default_mirror": "quay"
					},
					"mirrors": ["quay"]
				}
			`,
			parseError:      assert.Error,
			validationError: assert.NoError,
		},
		"validation error - general": {
			input: `
				{
					"general": {
						"default_mirror": "quay.io/frrouting"
					},
					"mirrors": {
						"quay": {
							"image": "quay.io/frrouting/frr:10.3.1"
						}
					}
				}
			`,
			parseError:      assert.NoError,
			validationError: assert.Error,
		},
		"validation error - mirrors": {
			input: `
				{
					"general": {
						"default_mirror": "quay"
					},
					"mirrors": {
						"quay": {
							"image": "quay.io/frrouting/frr"
						}
					}
				}
			`,
			parseError:      assert.NoError,
			validationError: assert.Error,
		},
		// The per-section tests below cover the individual validation rules.
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var l env.Lab
			err := json.Unmarshal([]byte(tc.input), &l)
			tc.parseError(t, err)
			if err == nil {
				tc.validationError(t, l.Validate())
			}
		})
	}
}

func TestGeneral(t *testing.T) {
	testCases := map[string]struct {
		input           string
		parseError      assert.ErrorAssertionFunc
		validationError assert.ErrorAssertionFunc
	}{
		"valid": {
			input: `
				{
					"default_mirror": "internal"
				}
			`,
			parseError:      assert.NoError,
			validationError: assert.NoError,
		},
		"empty": {
			input:           `{}`,
			parseError:      assert.NoError,
			validationError: assert.NoError,
		},
		"parse error": {
			input: `
				{
					"default_mirror": 5
				}
			`,
			parseError:      assert.Error,
			validationError: assert.NoError,
		},
		"validation error": {
			input: `
				{
					"default_mirror": "registry.example.org/frr"
				}
			`,
			parseError:      assert.NoError,
			validationError: assert.Error,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var g env.General
			err := json.Unmarshal([]byte(tc.input), &g)
			tc.parseError(t, err)
			if err == nil {
				tc.validationError(t, g.Validate())
			}
		})
	}
}

func TestMirror(t *testing.T) {
	testCases := map[string]struct {
		input           string
		parseError      assert.ErrorAssertionFunc
		validationError assert.ErrorAssertionFunc
	}{
		"valid": {
			input: `
				{
					"image": "registry.example.org/frr/frr:10.3.1"
				}
			`,
			parseError:      assert.NoError,
			validationError: assert.NoError,
		},
		"parse error": {
			input: `
				{
					"image": 1234
				}
			`,
			parseError:      assert.Error,
			validationError: assert.NoError,
		},
		"no image": {
			input:           `{}`,
			parseError:      assert.NoError,
			validationError: assert.Error,
		},
		"whitespace": {
			input: `
				{
					"image": "registry.example.org/frr/frr 10.3.1"
				}
			`,
			parseError:      assert.NoError,
			validationError: assert.Error,
		},
		"missing tag": {
			input: `
				{
					"image": "registry.example.org/frr/frr"
				}
			`,
			parseError:      assert.NoError,
			validationError: assert.Error,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var m env.Mirror
			err := json.Unmarshal([]byte(tc.input), &m)
			tc.parseError(t, err)
			if err == nil {
				tc.validationError(t, m.Validate())
			}
		})
	}
}
