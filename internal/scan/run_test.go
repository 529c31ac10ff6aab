package scan

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRunFullTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "diag.log",
		goodVIN+"\n"+
			"device AA:BB:CC:DD:EE:01 Connected\n"+
			"userId=42 https://srv.example.com/api\n"+
			"sn=V123456\npwd=hunter2\n"+
			`{"mainItem":"Peugeot 208 2013-2019"}`+"\n"+
			"SetVehicleMake: Peugeot\n")
	writeFile(t, root, "DCIM/pic.jpg", "img")

	export := t.TempDir()
	res, err := Run(Config{Root: root, ExportDir: export, Log: quietLogger()})
	require.NoError(t, err)
	require.Len(t, res.Modules, len(All))

	counts := map[string]int{}
	for _, m := range res.Modules {
		require.NoError(t, m.Err, m.ID)
		counts[m.ID] = m.Count
	}
	require.Equal(t, 1, counts["vins"])
	require.Equal(t, 2, counts["mac"], "1 inventory entry + 1 connection event")
	require.Equal(t, 2, counts["users"])
	require.Equal(t, 1, counts["credentials"])
	require.Equal(t, 1, counts["vehicles"])
	require.Equal(t, 1, counts["media"])
	require.GreaterOrEqual(t, counts["logevents"], 1)

	for _, name := range []string{FileVins, FileMacs, FileMacEvents, FileCredentials,
		FileUserIDs, FileEndpoints, FileVehicleRefs, FileLogEvents} {
		_, err := os.Stat(filepath.Join(export, name))
		require.NoError(t, err, name)
	}
}

func TestRunEnableDisable(t *testing.T) {
	root := t.TempDir()
	export := t.TempDir()

	res, err := Run(Config{Root: root, ExportDir: export, Enable: "vins,mac", Log: quietLogger()})
	require.NoError(t, err)
	require.Len(t, res.Modules, 2)
	require.Equal(t, "vins", res.Modules[0].ID)
	require.Equal(t, "mac", res.Modules[1].ID)

	res, err = Run(Config{Root: root, ExportDir: t.TempDir(), Disable: "sqlite", Log: quietLogger()})
	require.NoError(t, err)
	require.Len(t, res.Modules, len(All)-1)
}

func TestRunModuleFaultIsolation(t *testing.T) {
	root := t.TempDir()
	// a file only the mac module opens line by line; make it unreadable so
	// the module logs and moves on rather than failing
	p := writeFile(t, root, "locked.log", "AA:BB:CC:DD:EE:01")
	require.NoError(t, os.Chmod(p, 0o000))
	t.Cleanup(func() { _ = os.Chmod(p, 0o644) })

	res, err := Run(Config{Root: root, ExportDir: t.TempDir(), Log: quietLogger()})
	require.NoError(t, err)
	for _, m := range res.Modules {
		require.NoError(t, m.Err, "an unreadable file must not fail module %s", m.ID)
	}
}

func TestWeightedProgress(t *testing.T) {
	var got []float64
	w := NewWeightedProgress([]string{"a", "b"}, func(p float64, _ string) {
		got = append(got, p)
	})

	w.Update("a", 0, 2)
	w.Update("a", 1, 2)
	w.Update("a", 2, 2)
	w.Update("b", 0, 0) // total 0 marks the module done
	w.Update("ghost", 1, 1)

	require.Equal(t, []float64{0, 25, 50, 100}, got)
	for _, p := range got {
		require.False(t, math.IsNaN(p))
	}
}

func TestWeightedProgressNoModules(t *testing.T) {
	called := false
	w := NewWeightedProgress(nil, func(float64, string) { called = true })
	w.Update("a", 1, 1)
	require.False(t, called)
}
