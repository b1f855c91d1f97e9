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

package render_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/netsimlab/topogen/pkg/private/serrors"
	"github.com/netsimlab/topogen/pkg/private/xtest"
	"github.com/netsimlab/topogen/private/addrgen"
	"github.com/netsimlab/topogen/private/lab"
	"github.com/netsimlab/topogen/private/render"
	"github.com/netsimlab/topogen/private/render/mock_render"
	"github.com/netsimlab/topogen/private/topology"
)

var update = xtest.UpdateGoldenFiles()

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRenderGrid(t *testing.T) {
	l := gridLab(t, lab.Builder{Plan: addrgen.Default()})
	dir := t.TempDir()
	opts := render.Options{OSPF: ospfDefaults(), BFD: bfdDefaults()}
	err := render.Renderer{}.Render(context.Background(), l, dir, opts)
	require.NoError(t, err)

	files := []string{
		"daemons", "vtysh.conf", "staticd.conf", "mgmtd.conf",
		"zebra.conf", "ospf6d.conf", "bfdd.conf",
	}
	for _, name := range files {
		t.Run(name, func(t *testing.T) {
			assertGoldenFile(t, dir, "router_00_00", name, "grid_00_00")
		})
	}
	for _, r := range l.Routers {
		entries, err := os.ReadDir(confDir(dir, r.Name))
		require.NoError(t, err)
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		assert.ElementsMatch(t, files, names, "router %s", r.Name)
	}
}

func TestRenderUniformBGP(t *testing.T) {
	l := gridLab(t, lab.Builder{Plan: addrgen.Default(), AssignASNs: true, BaseAS: 65000})
	dir := t.TempDir()
	opts := render.Options{OSPF: ospfDefaults(), BGP: bgpDefaults()}
	err := render.Renderer{}.Render(context.Background(), l, dir, opts)
	require.NoError(t, err)

	assertGoldenFile(t, dir, "router_00_00", "bgpd.conf", "grid_bgp_00_00")
	// Uniform topologies run BGP on every router.
	daemons := readConf(t, dir, "router_01_01", "daemons")
	assert.Contains(t, daemons, "bgpd=yes\n")
}

func TestRenderSpecial(t *testing.T) {
	l := specialLab(t)
	dir := t.TempDir()
	opts := render.Options{OSPF: ospfDefaults(), BGP: bgpDefaults()}
	err := render.Renderer{}.Render(context.Background(), l, dir, opts)
	require.NoError(t, err)

	for _, name := range []string{"daemons", "ospf6d.conf", "bgpd.conf"} {
		t.Run(name, func(t *testing.T) {
			assertGoldenFile(t, dir, "router_01_02", name, "special_01_02")
		})
	}
	t.Run("corner daemons", func(t *testing.T) {
		assertGoldenFile(t, dir, "router_00_00", "daemons", "special_00_00")
	})
	t.Run("source runs no bgpd", func(t *testing.T) {
		daemons := readConf(t, dir, "router_01_04", "daemons")
		assert.Contains(t, daemons, "bgpd=no\n")
	})
	t.Run("route-only links stay unaddressed", func(t *testing.T) {
		// The wrap-around bridge of (0,1) carries addressing for route
		// computation only, no interface may reference it.
		zebra := readConf(t, dir, "router_00_01", "zebra.conf")
		assert.NotContains(t, zebra, "interface eth1")
	})
}

func TestRenderISIS(t *testing.T) {
	l := gridLab(t, lab.Builder{Plan: addrgen.Default()})
	dir := t.TempDir()
	opts := render.Options{ISIS: isisDefaults()}
	err := render.Renderer{}.Render(context.Background(), l, dir, opts)
	require.NoError(t, err)

	assertGoldenFile(t, dir, "router_01_00", "isisd.conf", "isis_01_00")
	daemons := readConf(t, dir, "router_01_00", "daemons")
	assert.Contains(t, daemons, "isisd=yes\n")
	assert.Contains(t, daemons, "ospf6d=no\n")
	assert.NoFileExists(t, filepath.Join(confDir(dir, "router_01_00"), "ospf6d.conf"))
}

func TestRenderLSAOnly(t *testing.T) {
	cfg := ospfDefaults()
	cfg.LSAOnly = true
	l := gridLab(t, lab.Builder{Plan: addrgen.Default()})
	dir := t.TempDir()
	err := render.Renderer{}.Render(context.Background(), l, dir, render.Options{OSPF: cfg})
	require.NoError(t, err)

	// Only the flooding origin keeps a live SPF.
	origin := readConf(t, dir, "router_00_00", "ospf6d.conf")
	assert.Contains(t, origin, "timers throttle spf 20 20 20\n")
	other := readConf(t, dir, "router_00_01", "ospf6d.conf")
	assert.Contains(t, other, "timers throttle spf 600000 600000 600000\n")
}

func TestRenderDisableLogging(t *testing.T) {
	l := gridLab(t, lab.Builder{Plan: addrgen.Default()})
	dir := t.TempDir()
	opts := render.Options{OSPF: ospfDefaults(), DisableLogging: true}
	err := render.Renderer{}.Render(context.Background(), l, dir, opts)
	require.NoError(t, err)

	assert.NotContains(t, readConf(t, dir, "router_00_00", "zebra.conf"), "log file")
	assert.Equal(t, "hostname r00_00\n!\n", readConf(t, dir, "router_00_00", "staticd.conf"))
}

func TestRenderModes(t *testing.T) {
	l := gridLab(t, lab.Builder{Plan: addrgen.Default()})

	t.Run("shrinking the daemon set drops stale files", func(t *testing.T) {
		dir := t.TempDir()
		ren := render.Renderer{}
		opts := render.Options{OSPF: ospfDefaults(), ISIS: isisDefaults()}
		require.NoError(t, ren.Render(context.Background(), l, dir, opts))
		require.FileExists(t, filepath.Join(confDir(dir, "router_00_00"), "isisd.conf"))

		opts = render.Options{OSPF: ospfDefaults()}
		require.NoError(t, ren.Render(context.Background(), l, dir, opts))
		assert.NoFileExists(t, filepath.Join(confDir(dir, "router_00_00"), "isisd.conf"))
		assert.FileExists(t, filepath.Join(confDir(dir, "router_00_00"), "ospf6d.conf"))
	})

	t.Run("keep-stale leaves dropped daemons alone", func(t *testing.T) {
		dir := t.TempDir()
		ren := render.Renderer{}
		opts := render.Options{OSPF: ospfDefaults(), ISIS: isisDefaults()}
		require.NoError(t, ren.Render(context.Background(), l, dir, opts))
		require.FileExists(t, filepath.Join(confDir(dir, "router_00_00"), "isisd.conf"))

		opts = render.Options{OSPF: ospfDefaults(), KeepStale: true}
		require.NoError(t, ren.Render(context.Background(), l, dir, opts))
		assert.FileExists(t, filepath.Join(confDir(dir, "router_00_00"), "isisd.conf"))
	})

	t.Run("dummy diverts the real config", func(t *testing.T) {
		dir := t.TempDir()
		opts := render.Options{
			OSPF:        ospfDefaults(),
			BFD:         bfdDefaults(),
			DummyConfig: []string{"ospf6d"},
		}
		require.NoError(t, render.Renderer{}.Render(context.Background(), l, dir, opts))

		live, err := os.ReadFile(filepath.Join(confDir(dir, "router_00_00"), "ospf6d.conf"))
		require.NoError(t, err)
		assert.Empty(t, live)
		bak, err := os.ReadFile(filepath.Join(confDir(dir, "router_00_00"), "ospf6d-bak.conf"))
		require.NoError(t, err)
		want, err := os.ReadFile(xtest.ExpandPath(filepath.Join("grid_00_00", "ospf6d.conf")))
		require.NoError(t, err)
		assert.Equal(t, string(want), string(bak))
	})

	t.Run("no-config drops the backup", func(t *testing.T) {
		dir := t.TempDir()
		ren := render.Renderer{}
		opts := render.Options{OSPF: ospfDefaults(), DummyConfig: []string{"ospf6d"}}
		require.NoError(t, ren.Render(context.Background(), l, dir, opts))
		require.FileExists(t, filepath.Join(confDir(dir, "router_00_00"), "ospf6d-bak.conf"))

		opts = render.Options{OSPF: ospfDefaults(), NoConfig: []string{"ospf6d"}}
		require.NoError(t, ren.Render(context.Background(), l, dir, opts))
		assert.NoFileExists(t, filepath.Join(confDir(dir, "router_00_00"), "ospf6d-bak.conf"))
		live, err := os.ReadFile(filepath.Join(confDir(dir, "router_00_00"), "ospf6d.conf"))
		require.NoError(t, err)
		assert.Empty(t, live)
	})

	t.Run("unknown daemon names are rejected", func(t *testing.T) {
		dir := t.TempDir()
		opts := render.Options{OSPF: ospfDefaults(), DummyConfig: []string{"ospf6d.conf"}}
		assert.Error(t, render.Renderer{}.Render(context.Background(), l, dir, opts))
		opts = render.Options{OSPF: ospfDefaults(), NoConfig: []string{"frr"}}
		assert.Error(t, render.Renderer{}.Render(context.Background(), l, dir, opts))
	})
}

func TestRenderFileCount(t *testing.T) {
	mctrl := gomock.NewController(t)
	defer mctrl.Finish()

	l := gridLab(t, lab.Builder{Plan: addrgen.Default()})
	w := mock_render.NewMockFileWriter(mctrl)
	// Four routers, one enabled protocol: six files written each, the
	// three files of disabled daemons removed.
	w.EXPECT().WriteFile(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(24)
	w.EXPECT().Remove(gomock.Any()).Return(nil).Times(12)

	ren := render.Renderer{Writer: w}
	opts := render.Options{OSPF: ospfDefaults()}
	require.NoError(t, ren.Render(context.Background(), l, "out", opts))
}

func TestRenderWriterError(t *testing.T) {
	mctrl := gomock.NewController(t)
	defer mctrl.Finish()

	l := gridLab(t, lab.Builder{Plan: addrgen.Default()})
	w := mock_render.NewMockFileWriter(mctrl)
	w.EXPECT().WriteFile(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(serrors.New("disk full"))

	ren := render.Renderer{Writer: w, Workers: 1}
	err := ren.Render(context.Background(), l, "out", render.Options{OSPF: ospfDefaults()})
	assert.Error(t, err)
}

func TestRenderCancelled(t *testing.T) {
	mctrl := gomock.NewController(t)
	defer mctrl.Finish()

	l := gridLab(t, lab.Builder{Plan: addrgen.Default()})
	w := mock_render.NewMockFileWriter(mctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := render.Renderer{Writer: w}.Render(ctx, l, "out", render.Options{OSPF: ospfDefaults()})
	assert.ErrorIs(t, err, context.Canceled)
}

func gridLab(t *testing.T, builder lab.Builder) *lab.Lab {
	t.Helper()

	topo, err := topology.New(topology.Grid, 2)
	require.NoError(t, err)
	l, err := builder.Build(topo)
	require.NoError(t, err)
	return l
}

func specialLab(t *testing.T) *lab.Lab {
	t.Helper()

	topo, err := topology.NewSpecial(6, topology.Sample6x6())
	require.NoError(t, err)
	builder := lab.Builder{Plan: addrgen.Default(), AssignASNs: true, BaseAS: 65000}
	l, err := builder.Build(topo)
	require.NoError(t, err)
	return l
}

func confDir(dir, router string) string {
	return filepath.Join(dir, "etc", router, "conf")
}

func readConf(t *testing.T, dir, router, name string) string {
	t.Helper()

	raw, err := os.ReadFile(filepath.Join(confDir(dir, router), name))
	require.NoError(t, err)
	return string(raw)
}

func assertGoldenFile(t *testing.T, dir, router, name, golden string) {
	t.Helper()

	raw, err := os.ReadFile(filepath.Join(confDir(dir, router), name))
	require.NoError(t, err)
	goldenFile := xtest.ExpandPath(filepath.Join(golden, name))
	if *update {
		require.NoError(t, os.WriteFile(goldenFile, raw, 0o644))
	}
	xtest.AssertGolden(t, goldenFile, raw)
}

func ospfDefaults() *render.OSPFParams {
	cfg := &render.OSPFParams{}
	cfg.InitDefaults()
	return cfg
}

func isisDefaults() *render.ISISParams {
	cfg := &render.ISISParams{}
	cfg.InitDefaults()
	return cfg
}

func bgpDefaults() *render.BGPParams {
	cfg := &render.BGPParams{}
	cfg.InitDefaults()
	return cfg
}

func bfdDefaults() *render.BFDParams {
	cfg := &render.BFDParams{}
	cfg.InitDefaults()
	return cfg
}
