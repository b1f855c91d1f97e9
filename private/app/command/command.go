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

// Package command contains shared cobra commands and helpers for building
// command line applications.
package command

import (
	"strings"
)

// Pather returns the path to a command.
type Pather interface {
	CommandPath() string
}

// StringPather implements Pather with a static string.
type StringPather string

// CommandPath returns the static string.
func (s StringPather) CommandPath() string {
	return string(s)
}

// Join joins the path of the pather with the additional elements.
func Join(pather Pather, elems ...string) string {
	return strings.Join(append([]string{pather.CommandPath()}, elems...), " ")
}
