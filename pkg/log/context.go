// Copyright 2018 ETH Zurich
// Copyright 2019 ETH Zurich, Anapaya Systems
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

package log

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"go.uber.org/zap"
)

type contextKey struct{}

// CtxWith returns a child context that carries the given logger. A logger
// already present in ctx is shadowed.
func CtxWith(ctx context.Context, logger Logger) context.Context {
	if ctx == nil {
		panic("nil context")
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromCtx extracts the logger carried by ctx. If ctx carries none, the root
// logger is returned instead, so the result is never nil. When a tracing
// span is active on ctx, the returned logger mirrors every entry onto the
// span as well.
func FromCtx(ctx context.Context) Logger {
	if ctx == nil {
		return Root()
	}
	l, ok := ctx.Value(contextKey{}).(Logger)
	if !ok {
		l = Root()
	}
	if _, attached := l.(Span); attached {
		return l
	}
	span := opentracing.SpanFromContext(ctx)
	if span == nil {
		return l
	}
	return Span{Logger: skipCaller(l), Span: span}
}

// skipCaller rewinds the caller annotation by one frame, so that entries
// funneled through the Span wrapper report the original call site. Loggers
// that do not expose their zap options are returned unchanged.
func skipCaller(l Logger) Logger {
	if optioner, ok := l.(interface{ WithOptions(...zap.Option) Logger }); ok {
		return optioner.WithOptions(zap.AddCallerSkip(1))
	}
	return l
}
