// Copyright 2016 ETH Zurich
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

// Package serrors provides errors that carry log context in the form of
// key value pairs. Errors are created with New, Wrap and Join, and support
// the Is and As functionality of the errors package: for any returned
// error err, errors.Is(err, err) is true; an error that wraps a cause or
// joins a base error reports true for those as well; any other combination
// of errors can be assumed to report false.
package serrors

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// pair is one key value item of error context.
type pair struct {
	key   string
	value any
}

// annotation holds the context and cause shared by the two error
// implementations. The context slice is referenced through a pointer to
// keep the enclosing structs comparable, errors.Is short circuits on ==
// for comparable errors.
type annotation struct {
	ctx   *[]pair
	cause error
}

func annotate(cause error, errCtx ...any) annotation {
	pairs := make([]pair, len(errCtx)/2)
	for i := range pairs {
		pairs[i] = pair{key: fmt.Sprint(errCtx[2*i]), value: errCtx[2*i+1]}
	}
	sort.Slice(pairs, func(a, b int) bool {
		return pairs[a].key < pairs[b].key
	})
	return annotation{ctx: &pairs, cause: cause}
}

// suffix renders the context and cause part of the error message.
func (a annotation) suffix() string {
	var sb strings.Builder
	if len(*a.ctx) != 0 {
		sb.WriteString(" {")
		for i, p := range *a.ctx {
			if i > 0 {
				sb.WriteString("; ")
			}
			fmt.Fprintf(&sb, "%s=%v", p.key, p.value)
		}
		sb.WriteString("}")
	}
	if a.cause != nil {
		fmt.Fprintf(&sb, ": %s", a.cause)
	}
	return sb.String()
}

func (a annotation) addFields(enc zapcore.ObjectEncoder) error {
	if a.cause != nil {
		if m, ok := a.cause.(zapcore.ObjectMarshaler); ok {
			if err := enc.AddObject("cause", m); err != nil {
				return err
			}
		} else {
			enc.AddString("cause", a.cause.Error())
		}
	}
	for _, p := range *a.ctx {
		zap.Any(p.key, p.value).AddTo(enc)
	}
	return nil
}

// basicError carries its own message besides cause and context.
type basicError struct {
	annotation
	msg string
}

func (e basicError) Error() string {
	return e.msg + e.suffix()
}

func (e basicError) Unwrap() error {
	return e.cause
}

// MarshalLogObject implements zapcore.ObjectMarshaler for a structured log
// representation.
func (e basicError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("msg", e.msg)
	return e.addFields(enc)
}

// New creates an error with the given message and context. The underlying
// type of the returned error is a pointer, so that distinct calls with
// identical arguments yield distinct errors. To make sentinel errors,
// errors.New should be preferred.
func New(msg string, errCtx ...any) error {
	return &basicError{annotation: annotate(nil, errCtx...), msg: msg}
}

// Wrap returns an error with the given message that wraps the cause unless
// nil and attaches the context.
//
// The returned error supports Is, and Is(cause) returns true.
func Wrap(msg string, cause error, errCtx ...any) error {
	return basicError{annotation: annotate(cause, errCtx...), msg: msg}
}

// joinedError attaches cause and context to a base error, commonly a
// sentinel. The base error is not assumed to be of any particular
// implementation.
type joinedError struct {
	annotation
	base error
}

func (e joinedError) Error() string {
	return e.base.Error() + e.suffix()
}

func (e joinedError) Unwrap() []error {
	return []error{e.base, e.cause}
}

// MarshalLogObject implements zapcore.ObjectMarshaler. The base error is
// treated as a plain error and not dissected.
func (e joinedError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("msg", e.base.Error())
	return e.addFields(enc)
}

// Join returns an error that combines the base error err with the cause
// unless nil and attaches the context. Join returns nil if both err and
// cause are nil.
//
// The returned error supports Is. Is(err) returns true, and if cause is
// not nil, Is(cause) returns true as well.
func Join(err, cause error, errCtx ...any) error {
	if err == nil && cause == nil {
		return nil
	}
	return joinedError{annotation: annotate(cause, errCtx...), base: err}
}

// IsTimeout returns whether err is or is caused by a timeout error.
func IsTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// IsTemporary returns whether err is or is caused by a temporary error.
func IsTemporary(err error) bool {
	var t interface{ Temporary() bool }
	return errors.As(err, &t) && t.Temporary()
}

// List is a slice of errors.
type List []error

// Error implements the error interface.
func (e List) Error() string {
	s := make([]string, 0, len(e))
	for _, err := range e {
		s = append(s, err.Error())
	}
	return fmt.Sprintf("[ %s ]", strings.Join(s, "; "))
}

// ToError returns the list as an error, or nil if the list is empty.
func (e List) ToError() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// MarshalLogArray implements zapcore.ArrayMarshaller for a structured log
// representation of the list.
func (e List) MarshalLogArray(ae zapcore.ArrayEncoder) error {
	for _, err := range e {
		if m, ok := err.(zapcore.ObjectMarshaler); ok {
			if err := ae.AppendObject(m); err != nil {
				return err
			}
		} else {
			ae.AppendString(err.Error())
		}
	}
	return nil
}
