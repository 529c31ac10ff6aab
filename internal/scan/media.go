package scan

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var mediaExts = map[string]struct{}{
	".jpg": {}, ".png": {}, ".mp4": {}, ".mov": {},
}

// copyMedia mirrors the device's DCIM tree into the export directory,
// preserving relative paths and timestamps. No parsing happens here; the
// copies exist so the examiner's report bundle is self-contained.
func copyMedia(ctx *Context) (int, error) {
	dcim := filepath.Join(ctx.Cfg.Root, "DCIM")
	if info, err := os.Stat(dcim); err != nil || !info.IsDir() {
		ctx.step(1, 1)
		return 0, nil
	}

	var media []string
	_ = filepath.WalkDir(dcim, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if _, ok := mediaExts[strings.ToLower(filepath.Ext(p))]; ok {
			media = append(media, p)
		}
		return nil
	})

	total := len(media)
	ctx.step(0, total)
	copied := 0
	for i, full := range media {
		ctx.step(i+1, total)
		rel, err := filepath.Rel(ctx.Cfg.Root, full)
		if err != nil {
			continue
		}
		dst := filepath.Join(ctx.Cfg.ExportDir, rel)
		if err := copyPreserving(full, dst); err != nil {
			ctx.Log.WithField("path", rel).Warnf("copie impossible: %v", err)
			continue
		}
		copied++
	}
	return copied, nil
}

func copyPreserving(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if info, err := os.Stat(src); err == nil {
		_ = os.Chtimes(dst, info.ModTime(), info.ModTime())
	}
	return nil
}
