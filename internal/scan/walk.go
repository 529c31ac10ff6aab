package scan

import (
	"io/fs"
	"path/filepath"
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"
)

// textExts are the extensions treated as text-like by the line-oriented
// extractors. Log archives add ".zip" on top of these.
var textExts = []string{".log", ".txt"}

// listFiles walks cfg.Root and returns the relative paths of all regular
// files whose lowercase name ends with one of exts. An empty exts list
// matches every file. Unreadable directory entries are skipped, never
// surfaced: a forensic pass must not abort on a single bad inode.
func (c *Context) listFiles(exts ...string) []string {
	var out []string
	root := c.Cfg.Root
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return nil
		}
		if !matchExt(rel, exts) {
			return nil
		}
		if !allowedByGlobs(rel, c.Cfg) {
			return nil
		}
		if c.Cfg.MaxBytes > 0 {
			if info, infoErr := d.Info(); infoErr == nil && info.Size() > c.Cfg.MaxBytes {
				return nil
			}
		}
		out = append(out, rel)
		return nil
	})
	return out
}

func matchExt(rel string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	lower := strings.ToLower(rel)
	for _, e := range exts {
		if strings.HasSuffix(lower, e) {
			return true
		}
	}
	return false
}

// allowedByGlobs applies the include/exclude glob configuration to a
// relative path. Include globs, when present, act as a positive filter;
// exclude globs are subtracted last. Matching uses forward-slash semantics.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, filepath.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}
