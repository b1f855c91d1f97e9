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
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/netsimlab/topogen/pkg/private/serrors"
)

// Setup configures the logging backend according to the given configuration.
// It must be called before the logging facade is used, otherwise all entries
// are discarded.
func Setup(cfg Config, opts ...Option) error {
	cfg.InitDefaults()
	if err := setupConsole(cfg.Console, applyOptions(opts)); err != nil {
		return err
	}
	return nil
}

func setupConsole(cfg ConsoleConfig, opts options) error {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return serrors.Wrap("unsupported console log level", err, "level", cfg.Level)
	}
	encoding := "console"
	if cfg.Format == "json" {
		encoding = "json"
	}
	zCfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		DisableCaller:     cfg.DisableCaller,
		DisableStacktrace: true,
		Encoding:          encoding,
		EncoderConfig:     encoderConfig(encoding),
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
	zOpts := []zap.Option{zap.AddCallerSkip(1)}
	if cfg.StacktraceLevel != "none" {
		var stacktraceLevel zapcore.Level
		if err := stacktraceLevel.UnmarshalText([]byte(cfg.StacktraceLevel)); err != nil {
			return serrors.Wrap("unsupported stacktrace level", err,
				"level", cfg.StacktraceLevel)
		}
		zCfg.DisableStacktrace = false
		zOpts = append(zOpts, zap.AddStacktrace(stacktraceLevel))
	}
	if opts.entriesCounter != nil {
		zOpts = append(zOpts, zap.Hooks(opts.entriesCounter.hook))
	}
	logger, err := zCfg.Build(zOpts...)
	if err != nil {
		return serrors.Wrap("creating logger", err)
	}
	zap.ReplaceGlobals(logger)
	return nil
}

func encoderConfig(encoding string) zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	if encoding == "console" {
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		cfg.ConsoleSeparator = " "
	}
	return cfg
}

type options struct {
	entriesCounter *EntriesCounter
}

func applyOptions(opts []Option) options {
	var o options
	for _, option := range opts {
		option(&o)
	}
	return o
}

// Option is a function that sets an option.
type Option func(o *options)

// WithEntriesCounter configures metrics counters that are incremented with
// every emitted log entry.
func WithEntriesCounter(m EntriesCounter) Option {
	return func(o *options) {
		o.entriesCounter = &m
	}
}
