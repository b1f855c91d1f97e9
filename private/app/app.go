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

// Package app provides helpers shared by the command line applications.
package app

import (
	"context"
	"os"
	"os/signal"
)

// WithSignal derives a child context that is canceled as soon as one of the
// given signals arrives. The signal subscription lasts for the lifetime of
// the process.
func WithSignal(ctx context.Context, sig ...os.Signal) context.Context {
	ctx, _ = signal.NotifyContext(ctx, sig...)
	return ctx
}
