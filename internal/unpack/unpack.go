// Package unpack extracts a zip evidence archive to a temporary directory
// so the scanners can treat it like a plain filesystem dump. Entry
// modification times are preserved: the VIN report carries them as
// evidence. 7z archives are not supported; pre-extract those externally.
package unpack

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Limits bounds extraction so a hostile archive cannot fill the disk.
type Limits struct {
	MaxTotalBytes int64
	MaxEntries    int
}

// DefaultLimits is sized for real tablet dumps (tens of GB would be
// unusual; dumps observed in practice stay well under this).
var DefaultLimits = Limits{MaxTotalBytes: 16 << 30, MaxEntries: 500000}

// Zip extracts archive into a fresh temp directory and returns its path.
// The caller owns cleanup. Extraction failures are run-fatal: a partly
// extracted source would silently shrink every report.
func Zip(archive string, lim Limits) (string, error) {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return "", fmt.Errorf("ouverture de l'archive %s: %w", archive, err)
	}
	defer zr.Close()

	dir, err := os.MkdirTemp("", "vindex_")
	if err != nil {
		return "", err
	}

	var total int64
	for n, f := range zr.File {
		if lim.MaxEntries > 0 && n >= lim.MaxEntries {
			os.RemoveAll(dir)
			return "", fmt.Errorf("archive %s: trop d'entrées (limite %d)", archive, lim.MaxEntries)
		}
		if err := extractEntry(dir, f, lim, &total); err != nil {
			os.RemoveAll(dir)
			return "", err
		}
	}
	return dir, nil
}

func extractEntry(dir string, f *zip.File, lim Limits, total *int64) error {
	name := filepath.FromSlash(f.Name)
	if strings.Contains(name, "..") {
		// path traversal attempt; refuse the whole archive
		return fmt.Errorf("entrée d'archive suspecte: %s", f.Name)
	}
	dst := filepath.Join(dir, name)
	if f.FileInfo().IsDir() {
		return os.MkdirAll(dst, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("entrée %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	var r io.Reader = rc
	if lim.MaxTotalBytes > 0 {
		r = io.LimitReader(rc, lim.MaxTotalBytes-*total+1)
	}
	n, err := io.Copy(out, r)
	*total += n
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("extraction de %s: %w", f.Name, err)
	}
	if lim.MaxTotalBytes > 0 && *total > lim.MaxTotalBytes {
		return fmt.Errorf("archive dépassant %d octets décompressés", lim.MaxTotalBytes)
	}
	if !f.Modified.IsZero() {
		_ = os.Chtimes(dst, f.Modified, f.Modified)
	}
	return nil
}
