package scan

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vindex/vindex/internal/report"
	"github.com/vindex/vindex/internal/types"
)

var (
	credSerialRe = regexp.MustCompile(`sn[:=]\s*(\S+)`)
	credPwdRe    = regexp.MustCompile(`pwd[:=]\s*(\S+)`)
	credJSONRe   = regexp.MustCompile(`(?m)queryAppInfo encrypt strJson = (\{.*?\})$`)
)

var credHeader = []string{"serial", "password", "format_source", "path"}

type credKey struct{ serial, password string }

func extractCredentials(ctx *Context) (int, error) {
	files := ctx.listFiles(textExts...)
	total := len(files)
	ctx.step(0, total)

	seen := map[credKey]struct{}{}
	var rows [][]string

	for i, rel := range files {
		ctx.step(i+1, total)
		content, err := os.ReadFile(filepath.Join(ctx.Cfg.Root, rel))
		if err != nil {
			ctx.Log.WithField("path", rel).Warnf("lecture du fichier impossible: %v", err)
			continue
		}
		text := string(content)

		// Text form: the i-th serial is paired with the i-th password found
		// in the same file. Pairing is by discovery order, not proximity; a
		// known limitation of the evidence format, kept as-is so reported
		// pairs stay comparable across tool versions.
		serials := credSerialRe.FindAllStringSubmatch(text, -1)
		pwds := credPwdRe.FindAllStringSubmatch(text, -1)
		n := len(serials)
		if len(pwds) < n {
			n = len(pwds)
		}
		for j := 0; j < n; j++ {
			sn := strings.Trim(serials[j][1], `",`)
			pwd := strings.Trim(pwds[j][1], `",`)
			key := credKey{sn, pwd}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			rec := types.CredentialRecord{Serial: sn, Password: pwd, Source: types.CredentialText, Path: rel}
			rows = append(rows, rec.Row())
		}

		// JSON form: parse failures skip that match only.
		for _, m := range credJSONRe.FindAllStringSubmatch(text, -1) {
			var blob map[string]any
			if err := json.Unmarshal([]byte(m[1]), &blob); err != nil {
				continue
			}
			sn, _ := blob["sn"].(string)
			pwd, _ := blob["password"].(string)
			if sn == "" || pwd == "" {
				continue
			}
			key := credKey{sn, pwd}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			rec := types.CredentialRecord{Serial: sn, Password: pwd, Source: types.CredentialJSON, Path: rel}
			rows = append(rows, rec.Row())
		}
	}

	out := filepath.Join(ctx.Cfg.ExportDir, FileCredentials)
	if err := report.WriteCSV(out, credHeader, rows); err != nil {
		return len(rows), err
	}
	return len(rows), nil
}
