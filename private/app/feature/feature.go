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

// Package feature provides a simple mechanism for command line tools to
// accept and parse feature flags.
//
// A feature set is a struct of booleans. Every boolean field is discovered
// as a flag, either under its Go name or under the name given in a feature
// tag. Fields of other types are ignored.
package feature

import (
	"reflect"
	"sort"
	"strings"

	"github.com/netsimlab/topogen/pkg/private/serrors"
)

// Default describes the feature set understood by all commands.
type Default struct {
	// KeepStaleConfigs leaves configuration files of disabled daemons in
	// place instead of removing them when a lab is regenerated.
	KeepStaleConfigs bool `feature:"keep_stale_configs" toml:"keep_stale_configs,omitempty"`
}

// Parse enables the named features on the feature set. The feature set
// must be a non-nil pointer to a struct. Names that do not correspond to
// a boolean field are rejected.
func Parse(names []string, featureSet any) error {
	val := reflect.ValueOf(featureSet)
	if !val.IsValid() || val.IsZero() {
		return serrors.New("feature set must not be nil")
	}
	if val.Kind() != reflect.Ptr {
		return serrors.New("feature set must be pointer")
	}
	fields := index(featureSet)
	for _, name := range names {
		i, ok := fields[name]
		if !ok {
			return serrors.New("feature not supported", "feature", name)
		}
		val.Elem().Field(i).SetBool(true)
	}
	return nil
}

// Features lists the features supported by the feature set, sorted by
// name.
func Features(featureSet any) []string {
	var names []string
	for name := range index(featureSet) {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String returns the supported features joined by the separator.
func String(featureSet any, sep string) string {
	return strings.Join(Features(featureSet), sep)
}

// index maps the feature names to the field indices of the struct. It
// works on the type alone, so typed nil pointers are acceptable.
func index(featureSet any) map[string]int {
	val := reflect.ValueOf(featureSet)
	if !val.IsValid() {
		return nil
	}
	typ := val.Type()
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	fields := map[string]int{}
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if field.Type.Kind() != reflect.Bool {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("feature"); ok {
			name = strings.Split(tag, ",")[0]
		}
		fields[name] = i
	}
	return fields
}
