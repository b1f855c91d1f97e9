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

package env

const generalSample = `
# ID of this process in logs, metrics and traces. (required)
id = "%s"
`

const featuresSample = `
# Feature flags are boolean properties as defined in private/app/feature (%s).
`

const metricsSample = `
# The address to serve prometheus metrics on (host:port, ip:port or :port).
# The metrics are exposed under /metrics. If not set, metrics are not
# exported. (default "")
prometheus = ""
`

const tracingSample = `
# Report traces to the agent. (default false)
enabled = false
# Sample every trace. (default false)
debug = false
# Address of the local agent that collects the reported traces.
# (default localhost:6831)
agent = "localhost:6831"
`
