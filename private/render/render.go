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

// Package render turns the assembled lab records into the FRR
// configuration tree consumed by the emulation containers.
//
// Every router gets a directory etc/<router>/conf holding the daemons
// file and one configuration file per routing daemon. The daemon set is
// selected through Options: a nil parameter struct disables the daemon
// and removes its configuration file from earlier runs.
package render

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/netsimlab/topogen/pkg/private/serrors"
	"github.com/netsimlab/topogen/private/lab"
)

// Daemon base names accepted by the dummy and no-config lists.
var configurable = map[string]bool{
	"daemons": true,
	"zebra":   true,
	"ospf6d":  true,
	"isisd":   true,
	"bgpd":    true,
	"bfdd":    true,
}

// Configurable reports whether the named daemon can appear in the dummy and
// no-config lists.
func Configurable(daemon string) bool {
	return configurable[daemon]
}

// FileWriter sinks rendered files. The default implementation writes to
// the local filesystem.
type FileWriter interface {
	// WriteFile stores data under path, creating parent directories as
	// needed.
	WriteFile(path string, data []byte, perm fs.FileMode) error
	// Remove deletes the file at path. Removing a file that does not
	// exist is not an error.
	Remove(path string) error
}

// OSWriter returns the FileWriter backed by the local filesystem.
func OSWriter() FileWriter {
	return osWriter{}
}

type osWriter struct{}

func (osWriter) WriteFile(path string, data []byte, perm fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

func (osWriter) Remove(path string) error {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Options selects the daemons to render and the run-wide toggles.
type Options struct {
	// OSPF enables ospf6d rendering. Nil disables the daemon.
	OSPF *OSPFParams
	// ISIS enables isisd rendering. Nil disables the daemon.
	ISIS *ISISParams
	// BGP enables bgpd rendering. Nil disables the daemon.
	BGP *BGPParams
	// BFD enables bfdd rendering. Nil disables the daemon.
	BFD *BFDParams

	// DisableLogging drops the log file statements from all files.
	DisableLogging bool
	// DaemonsOff marks every routing daemon disabled in the daemons
	// file. The configuration files are still rendered.
	DaemonsOff bool
	// Per daemon variants of DaemonsOff.
	OSPF6DOff bool
	ISISDOff  bool
	BGPDOff   bool
	BFDDOff   bool

	// DummyConfig diverts the real configuration of the named daemons to
	// a -bak file and leaves an empty live file behind.
	DummyConfig []string
	// NoConfig leaves an empty live file for the named daemons and
	// drops a -bak file from an earlier dummy run.
	NoConfig []string

	// KeepStale leaves configuration files of disabled daemons in place
	// when regenerating over an earlier run.
	KeepStale bool
}

func (o Options) validate() error {
	for _, name := range o.DummyConfig {
		if !configurable[name] {
			return serrors.New("unknown daemon in dummy list", "daemon", name)
		}
	}
	for _, name := range o.NoConfig {
		if !configurable[name] {
			return serrors.New("unknown daemon in no-config list", "daemon", name)
		}
	}
	return nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Renderer writes the per-router configuration trees of a lab.
type Renderer struct {
	// Writer sinks the rendered files. Defaults to the local filesystem.
	Writer FileWriter
	// Workers bounds the number of routers rendered concurrently.
	// Defaults to the number of usable CPUs.
	Workers int
}

// Render writes the configuration tree of every router in the lab below
// dir. Files of daemons that are disabled in opts are removed so that
// rerunning with different options never leaves stale configuration
// behind.
func (ren Renderer) Render(ctx context.Context, l *lab.Lab, dir string, opts Options) error {
	if err := opts.validate(); err != nil {
		return err
	}
	w := ren.Writer
	if w == nil {
		w = osWriter{}
	}
	workers := ren.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	wires := buildWires(l)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, r := range l.Routers {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := renderRouter(w, r, l, wires, dir, opts); err != nil {
				return serrors.Wrap("rendering router", err, "router", r.Name)
			}
			return nil
		})
	}
	return g.Wait()
}

// routerFile is one entry of the per-router file set.
type routerFile struct {
	name    string
	enabled bool
	render  func() ([]byte, error)
}

func renderRouter(
	w FileWriter,
	r *lab.Router,
	l *lab.Lab,
	wires wireMap,
	dir string,
	opts Options,
) error {
	confDir := filepath.Join(dir, "etc", r.Name, "conf")

	// The management files are written as-is, the run modes never touch
	// them.
	plain := []routerFile{
		{name: "vtysh.conf", render: func() ([]byte, error) { return vtyshConf(r) }},
		{name: "staticd.conf", render: func() ([]byte, error) { return staticdConf(r, opts) }},
		{name: "mgmtd.conf", render: func() ([]byte, error) { return mgmtdConf(r) }},
	}
	for _, f := range plain {
		data, err := f.render()
		if err != nil {
			return err
		}
		if err := write(w, confDir, f.name, data); err != nil {
			return err
		}
	}

	files := []routerFile{
		{
			name:    "daemons",
			enabled: true,
			render:  func() ([]byte, error) { return daemonsFile(r, l, opts) },
		},
		{
			name:    "zebra.conf",
			enabled: true,
			render:  func() ([]byte, error) { return zebraConf(r, opts) },
		},
		{
			name:    "ospf6d.conf",
			enabled: opts.OSPF != nil,
			render:  func() ([]byte, error) { return ospf6Conf(r, wires, opts) },
		},
		{
			name:    "isisd.conf",
			enabled: opts.ISIS != nil,
			render:  func() ([]byte, error) { return isisConf(r, opts) },
		},
		{
			name:    "bgpd.conf",
			enabled: opts.BGP != nil,
			render:  func() ([]byte, error) { return bgpdConf(r, l, wires, opts) },
		},
		{
			name:    "bfdd.conf",
			enabled: opts.BFD != nil,
			render:  func() ([]byte, error) { return bfddConf(r, wires, opts) },
		},
	}
	for _, f := range files {
		base := strings.TrimSuffix(f.name, ".conf")
		live := filepath.Join(confDir, f.name)
		bak := filepath.Join(confDir, base+"-bak.conf")
		switch {
		case !f.enabled:
			if opts.KeepStale {
				continue
			}
			// Drop leftovers from runs with a larger daemon set.
			if err := w.Remove(live); err != nil {
				return serrors.Wrap("removing stale config", err, "file", f.name)
			}
		case contains(opts.NoConfig, base):
			if err := w.Remove(bak); err != nil {
				return serrors.Wrap("removing backup config", err, "file", f.name)
			}
			if err := write(w, confDir, f.name, nil); err != nil {
				return err
			}
		case contains(opts.DummyConfig, base):
			data, err := f.render()
			if err != nil {
				return err
			}
			if err := w.WriteFile(bak, data, 0o644); err != nil {
				return serrors.Wrap("writing backup config", err, "file", f.name)
			}
			if err := write(w, confDir, f.name, nil); err != nil {
				return err
			}
		default:
			data, err := f.render()
			if err != nil {
				return err
			}
			if err := write(w, confDir, f.name, data); err != nil {
				return err
			}
		}
	}
	return nil
}

func write(w FileWriter, dir, name string, data []byte) error {
	if err := w.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return serrors.Wrap("writing config", err, "file", name)
	}
	return nil
}
