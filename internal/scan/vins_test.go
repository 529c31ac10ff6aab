package scan

import (
	"path/filepath"
	"strings"
	"testing"
)

const goodVIN = "1HGCM82633A004352"

func TestFindVinsOverlap(t *testing.T) {
	// 18 valid characters contain two 17-character windows. KNM and NM0
	// are both registered manufacturer codes, so the lookahead must
	// surface both overlapping candidates.
	text := "KNM0AAAAAAAAAAAAAA"
	got := findVins(text)
	if len(got) != 2 {
		t.Fatalf("expected 2 overlapping candidates, got %v", got)
	}
}

func TestFindVinsWMIFilter(t *testing.T) {
	if got := findVins("ZZZZZ82633A004352"); got != nil {
		t.Fatalf("unknown WMI should be dropped, got %v", got)
	}
	if got := findVins(goodVIN); len(got) != 1 || got[0] != goodVIN {
		t.Fatalf("known WMI lost: %v", got)
	}
}

func TestFindVinsDedupAndSort(t *testing.T) {
	text := "vf3abcde12t345678 " + goodVIN + " VF3ABCDE12T345678"
	got := findVins(text)
	if len(got) != 2 {
		t.Fatalf("case-insensitive dedup failed: %v", got)
	}
	if got[0] != goodVIN || got[1] != "VF3ABCDE12T345678" {
		t.Fatalf("not sorted: %v", got)
	}
}

func TestDecodeASCIIPreservesOffsets(t *testing.T) {
	raw := []byte("abc\x00\xFFdef\n")
	got := decodeASCII(raw)
	if len(got) != len(raw) {
		t.Fatalf("length changed: %d != %d", len(got), len(raw))
	}
	if got != "abc  def\n" {
		t.Fatalf("unexpected mapping: %q", got)
	}
}

func TestDecodeASCIISplitsVinFragments(t *testing.T) {
	// Binary garbage between two 9-character fragments must not fuse them
	// into a single fake window.
	frag := "1HGCM8263"
	raw := []byte(frag + "\x00\x01" + "3A004352")
	if got := findVins(decodeASCII(raw)); got != nil {
		t.Fatalf("fused window across binary bytes: %v", got)
	}
}

func TestExtractVins(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.log", "boot ok vin="+goodVIN+" done\n")
	writeFile(t, root, "sub/b.txt", goodVIN+"\n")
	writeFile(t, root, "skip.zip", goodVIN)

	ctx := newTestContext(t, root)
	count, err := extractVins(ctx)
	if err != nil {
		t.Fatalf("extractVins: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 rows, got %d", count)
	}

	header, rows := readCSV(t, filepath.Join(ctx.Cfg.ExportDir, FileVins))
	if header[3] != "statut_validation" {
		t.Fatalf("unexpected header: %v", header)
	}
	for _, row := range rows {
		if row[1] != goodVIN {
			t.Errorf("unexpected VIN %q", row[1])
		}
		if row[3] != "Valide" {
			t.Errorf("check digit should validate: %v", row)
		}
		if row[2] == "" {
			t.Errorf("missing modification time: %v", row)
		}
	}
}

func TestExtractVinsInvalidCheckDigit(t *testing.T) {
	root := t.TempDir()
	bad := goodVIN[:8] + "4" + goodVIN[9:]
	writeFile(t, root, "a.log", bad)

	ctx := newTestContext(t, root)
	if _, err := extractVins(ctx); err != nil {
		t.Fatalf("extractVins: %v", err)
	}
	_, rows := readCSV(t, filepath.Join(ctx.Cfg.ExportDir, FileVins))
	if len(rows) != 1 || rows[0][3] != "Check Digit Invalide" {
		t.Fatalf("expected one invalid row, got %v", rows)
	}
}

func TestExtractVinsEmptyTreeStillWritesHeader(t *testing.T) {
	ctx := newTestContext(t, t.TempDir())
	count, err := extractVins(ctx)
	if err != nil || count != 0 {
		t.Fatalf("count=%d err=%v", count, err)
	}
	header, rows := readCSV(t, filepath.Join(ctx.Cfg.ExportDir, FileVins))
	if len(rows) != 0 || !strings.HasPrefix(header[0], "chemin") {
		t.Fatalf("header=%v rows=%v", header, rows)
	}
}
