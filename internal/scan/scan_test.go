package scan

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/vindex/vindex/internal/refdata"
)

// newTestContext builds a Context over root with a throwaway export dir and
// empty reference tables.
func newTestContext(t *testing.T, root string) *Context {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	oui, err := refdata.LoadOUI("")
	if err != nil {
		t.Fatalf("LoadOUI: %v", err)
	}
	skip, err := refdata.LoadSkiplist("")
	if err != nil {
		t.Fatalf("LoadSkiplist: %v", err)
	}
	return &Context{
		Cfg:      Config{Root: root, ExportDir: t.TempDir()},
		OUI:      oui,
		Skiplist: skip,
		Log:      log.WithField("module", "test"),
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	full := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return full
}

// readCSV parses an exported report, checking and stripping the BOM.
func readCSV(t *testing.T, path string) (header []string, rows [][]string) {
	t.Helper()
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	bom := []byte{0xEF, 0xBB, 0xBF}
	if !bytes.HasPrefix(raw, bom) {
		t.Fatalf("%s: missing UTF-8 BOM", path)
	}
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, bom)))
	r.FieldsPerRecord = -1
	all, err := r.ReadAll()
	if err != nil {
		t.Fatalf("parse %s: %v", path, err)
	}
	if len(all) == 0 {
		t.Fatalf("%s: no header row", path)
	}
	return all[0], all[1:]
}
