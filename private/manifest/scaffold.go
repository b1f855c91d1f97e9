// Copyright 2025 Anapaya Systems
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

package manifest

import (
	"os"
	"path/filepath"

	"github.com/netsimlab/topogen/pkg/private/serrors"
	"github.com/netsimlab/topogen/private/lab"
)

// logFiles are pre-created per router so the bind-mounted log directory
// works no matter which daemon combination runs in the container.
var logFiles = []string{
	"zebra.log",
	"ospf6d.log",
	"bgpd.log",
	"bfdd.log",
	"staticd.log",
	"route.json",
	"isisd.log",
}

// Scaffold creates the per-router directory skeleton under dir: a conf
// directory for the rendered FRR files and a log directory with
// pre-created files the daemons can append to. Existing log files keep
// their content, so a lab can be regenerated in place without losing
// previous runs.
func Scaffold(dir string, l *lab.Lab) error {
	for _, r := range l.Routers {
		routerDir := filepath.Join(dir, "etc", r.Name)
		if err := os.MkdirAll(filepath.Join(routerDir, "conf"), 0o755); err != nil {
			return serrors.Wrap("creating conf directory", err, "router", r.Name)
		}
		logDir := filepath.Join(routerDir, "log")
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return serrors.Wrap("creating log directory", err, "router", r.Name)
		}
		for _, name := range logFiles {
			if err := touch(filepath.Join(logDir, name)); err != nil {
				return serrors.Wrap("creating log file", err,
					"router", r.Name, "file", name)
			}
		}
	}
	return nil
}

// touch creates the file if needed without truncating it. The container
// daemons run under their own uid, so the file is opened up completely.
func touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o666)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Chmod(path, 0o777)
}
