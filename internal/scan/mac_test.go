package scan

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vindex/vindex/internal/refdata"
)

func TestCanonicalMacs(t *testing.T) {
	got := canonicalMacs([]string{"aa-bb-cc-dd-ee-01", "AA:BB:CC:DD:EE:01", "00:11:22:33:44:55"})
	require.Equal(t, []string{"00:11:22:33:44:55", "AA:BB:CC:DD:EE:01"}, got)
}

func TestIsRandomized(t *testing.T) {
	require.True(t, IsRandomized("02:00:00:00:00:01"))
	require.True(t, IsRandomized("DA:A1:19:00:00:01"))
	require.False(t, IsRandomized("00:11:22:33:44:55"))
	require.False(t, IsRandomized("garbage"))
}

func TestExtractMacs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "bt.log",
		"2023-05-01 10:15:00 device AA:BB:CC:DD:EE:01 Connected to host\n"+
			"seen again AA:BB:CC:DD:EE:01\n"+
			"idle 00-11-22-33-44-55 nothing happened\n")

	ctx := newTestContext(t, root)
	count, err := extractMacs(ctx)
	require.NoError(t, err)

	// 2 inventory rows plus 1 connection event
	require.Equal(t, 3, count)

	_, inv := readCSV(t, filepath.Join(ctx.Cfg.ExportDir, FileMacs))
	require.Len(t, inv, 2)
	require.Equal(t, "AA:BB:CC:DD:EE:01", inv[0][0])
	require.Equal(t, "Inconnu", inv[0][1], "no OUI table loaded")
	require.Equal(t, "Oui", inv[0][2], "AA has the locally-administered bit set")
	require.Equal(t, "00:11:22:33:44:55", inv[1][0])
	require.Equal(t, "Non", inv[1][2])

	_, evts := readCSV(t, filepath.Join(ctx.Cfg.ExportDir, FileMacEvents))
	require.Len(t, evts, 1)
	require.Equal(t, "AA:BB:CC:DD:EE:01", evts[0][0])
	require.Equal(t, "connected", evts[0][1])
	require.Equal(t, "2023-05-01 10:15:00", evts[0][2])
}

func TestExtractMacsVendorLookup(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "wifi.log", "ap 00:50:C2:00:00:01\n")
	ouiPath := writeFile(t, t.TempDir(), "oui.csv",
		"Registry,Assignment,Organization Name,Organization Address\n"+
			"MA-L,0050C2,Acme Networks,Somewhere\n")

	ctx := newTestContext(t, root)
	oui, err := refdata.LoadOUI(ouiPath)
	require.NoError(t, err)
	ctx.OUI = oui

	_, err = extractMacs(ctx)
	require.NoError(t, err)
	_, inv := readCSV(t, filepath.Join(ctx.Cfg.ExportDir, FileMacs))
	require.Len(t, inv, 1)
	require.Equal(t, "Acme Networks", inv[0][1])
}
