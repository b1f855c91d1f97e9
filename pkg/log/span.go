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

package log

import (
	"fmt"

	"github.com/opentracing/opentracing-go"
	otlog "github.com/opentracing/opentracing-go/log"
)

// Span mirrors every log entry onto an opentracing span, in addition to
// writing it through the wrapped logger.
type Span struct {
	Logger Logger
	Span   opentracing.Span
}

// New derives a logger with the additional context attached. The derived
// logger keeps mirroring onto the same span.
func (s Span) New(ctx ...any) Logger {
	return Span{
		Logger: s.Logger.New(ctx...),
		Span:   s.Span,
	}
}

// Debug logs at debug level and attaches the entry to the span.
func (s Span) Debug(msg string, ctx ...any) {
	s.mirror("debug", msg, ctx...)
	s.Logger.Debug(msg, ctx...)
}

// Info logs at info level and attaches the entry to the span.
func (s Span) Info(msg string, ctx ...any) {
	s.mirror("info", msg, ctx...)
	s.Logger.Info(msg, ctx...)
}

// Error logs at error level and attaches the entry to the span.
func (s Span) Error(msg string, ctx ...any) {
	s.mirror("error", msg, ctx...)
	s.Logger.Error(msg, ctx...)
}

// Enabled reports whether the wrapped logger emits entries at the level.
func (s Span) Enabled(lvl Level) bool {
	return s.Logger.Enabled(lvl)
}

func (s Span) mirror(lvl, msg string, ctx ...any) {
	fields := make([]otlog.Field, 0, 2+len(ctx)/2)
	fields = append(fields, otlog.String("level", lvl), otlog.String("event", msg))
	for i := 0; i+1 < len(ctx); i += 2 {
		fields = append(fields, otlog.Object(fmt.Sprint(ctx[i]), ctx[i+1]))
	}
	s.Span.LogFields(fields...)
}
