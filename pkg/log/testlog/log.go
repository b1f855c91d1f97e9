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

// Package testlog provides a logger that forwards all entries to the test
// runner, so they show up interleaved with the test output and are only
// printed for failing tests.
package testlog

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/netsimlab/topogen/pkg/log"
)

// NewLogger builds a logger that writes every entry through t.Log.
func NewLogger(t testing.TB, opts ...zaptest.LoggerOption) log.Logger {
	return &logger{inner: zaptest.NewLogger(t, opts...)}
}

type logger struct {
	inner *zap.Logger
}

func (l *logger) New(ctx ...any) log.Logger {
	return &logger{inner: l.inner.With(fields(ctx)...)}
}

func (l *logger) Debug(msg string, ctx ...any) {
	l.inner.Debug(msg, fields(ctx)...)
}

func (l *logger) Info(msg string, ctx ...any) {
	l.inner.Info(msg, fields(ctx)...)
}

func (l *logger) Error(msg string, ctx ...any) {
	l.inner.Error(msg, fields(ctx)...)
}

func (l *logger) Enabled(lvl log.Level) bool {
	return l.inner.Core().Enabled(lvl)
}

func fields(ctx []any) []zap.Field {
	fs := make([]zap.Field, 0, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		fs = append(fs, zap.Any(fmt.Sprint(ctx[i]), ctx[i+1]))
	}
	return fs
}
