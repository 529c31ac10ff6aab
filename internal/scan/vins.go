package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/vindex/vindex/internal/refdata"
	"github.com/vindex/vindex/internal/report"
	"github.com/vindex/vindex/internal/types"
	"github.com/vindex/vindex/internal/vin"
)

// The lookahead keeps the search overlap-preserving: a 17-character window
// starting at p does not consume input past p, so a window at p+1 is still
// found. The VIN alphabet excludes I, O and Q.
var vinWindowRe = regexp2.MustCompile(`(?=([A-HJ-NPR-Z0-9]{17}))`, regexp2.IgnoreCase)

// Media and package formats never hold VINs as text; scanning them only
// burns time on false windows inside compressed data.
var vinExcludedExts = map[string]struct{}{
	".apk": {}, ".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {},
	".mp4": {}, ".mov": {}, ".avi": {}, ".zip": {},
}

var vinHeader = []string{"chemin_fichier", "vin", "date_modification", "statut_validation"}

func extractVins(ctx *Context) (int, error) {
	files := ctx.listFiles()
	total := len(files)
	ctx.step(0, total)

	var rows [][]string
	count := 0
	for i, rel := range files {
		ctx.step(i+1, total)
		if _, excluded := vinExcludedExts[strings.ToLower(filepath.Ext(rel))]; excluded {
			continue
		}
		full := filepath.Join(ctx.Cfg.Root, rel)
		if ctx.skippedByHash(full) {
			continue
		}
		raw, err := os.ReadFile(full)
		if err != nil {
			// unreadable files contribute zero candidates and never abort the run
			continue
		}
		found := findVins(decodeASCII(raw))
		if len(found) == 0 {
			continue
		}
		modTime := ""
		if info, statErr := os.Stat(full); statErr == nil {
			modTime = info.ModTime().Format("2006-01-02 15:04:05")
		}
		for _, v := range found {
			status := types.CheckDigitInvalid
			if vin.Validate(v) {
				status = types.CheckDigitValid
			}
			rec := types.VinRecord{Path: rel, VIN: v, ModifiedTime: modTime, CheckDigit: status}
			rows = append(rows, rec.Row())
			count++
		}
	}

	out := filepath.Join(ctx.Cfg.ExportDir, FileVins)
	if err := report.WriteCSV(out, vinHeader, rows); err != nil {
		return count, err
	}
	return count, nil
}

// findVins returns the deduplicated, alphabetically sorted VIN candidates
// in text that pass the WMI plausibility filter.
func findVins(text string) []string {
	seen := map[string]struct{}{}
	m, err := vinWindowRe.FindStringMatch(text)
	for err == nil && m != nil {
		candidate := strings.ToUpper(m.GroupByNumber(1).String())
		if refdata.ValidWMI(candidate) {
			seen[candidate] = struct{}{}
		}
		m, err = vinWindowRe.FindNextMatch(m)
	}
	if len(seen) == 0 {
		return nil
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// decodeASCII maps raw bytes to a same-length ASCII string, replacing every
// byte outside the printable range with a space so that two VIN fragments
// separated by binary garbage never fuse into one window.
func decodeASCII(raw []byte) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, c := range raw {
		if c >= 0x20 && c < 0x7F || c == '\n' || c == '\r' || c == '\t' {
			b.WriteByte(c)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
