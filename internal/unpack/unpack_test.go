package unpack

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func makeZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, content := range entries {
		hdr := &zip.FileHeader{Name: name, Modified: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestZip(t *testing.T) {
	archive := makeZip(t, map[string]string{
		"root/a.log":     "hello",
		"root/sub/b.txt": "world",
	})

	dir, err := Zip(archive, DefaultLimits)
	if err != nil {
		t.Fatalf("Zip: %v", err)
	}
	defer os.RemoveAll(dir)

	raw, err := os.ReadFile(filepath.Join(dir, "root", "a.log"))
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != "hello" {
		t.Fatalf("content: %q", raw)
	}

	info, err := os.Stat(filepath.Join(dir, "root", "a.log"))
	if err != nil {
		t.Fatal(err)
	}
	want := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	if !info.ModTime().Equal(want) {
		t.Fatalf("entry mtime not preserved: %v", info.ModTime())
	}
}

func TestZipRefusesTraversal(t *testing.T) {
	archive := makeZip(t, map[string]string{"../escape.txt": "nope"})
	if _, err := Zip(archive, DefaultLimits); err == nil {
		t.Fatal("path traversal entry accepted")
	}
}

func TestZipEntryLimit(t *testing.T) {
	archive := makeZip(t, map[string]string{"a.log": "1", "b.log": "2", "c.log": "3"})
	if _, err := Zip(archive, Limits{MaxEntries: 2}); err == nil {
		t.Fatal("entry limit not enforced")
	}
}

func TestZipByteLimit(t *testing.T) {
	archive := makeZip(t, map[string]string{"a.log": "0123456789"})
	if _, err := Zip(archive, Limits{MaxTotalBytes: 4}); err == nil {
		t.Fatal("byte limit not enforced")
	}
}

func TestZipMissingArchive(t *testing.T) {
	if _, err := Zip(filepath.Join(t.TempDir(), "nope.zip"), DefaultLimits); err == nil {
		t.Fatal("missing archive accepted")
	}
}
