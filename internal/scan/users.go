package scan

import (
	"os"
	"path/filepath"
	"regexp"

	"github.com/vindex/vindex/internal/report"
	"github.com/vindex/vindex/internal/types"
)

var (
	userIDRe = regexp.MustCompile(`userId[:=]\s*(\d+)`)
	urlRe    = regexp.MustCompile(`https?://[^\s'"]+`)
)

var (
	userHeader     = []string{"userId", "path"}
	endpointHeader = []string{"endpoint", "path"}
)

// extractUsersEndpoints records every occurrence: repeated sightings of the
// same account or URL are themselves evidence, so there is no dedup here.
func extractUsersEndpoints(ctx *Context) (int, error) {
	files := ctx.listFiles(textExts...)
	total := len(files)
	ctx.step(0, total)

	var userRows, endpointRows [][]string
	for i, rel := range files {
		ctx.step(i+1, total)
		content, err := os.ReadFile(filepath.Join(ctx.Cfg.Root, rel))
		if err != nil {
			continue
		}
		text := string(content)
		for _, m := range userIDRe.FindAllStringSubmatch(text, -1) {
			rec := types.UserIDRecord{UserID: m[1], Path: rel}
			userRows = append(userRows, rec.Row())
		}
		for _, m := range urlRe.FindAllString(text, -1) {
			rec := types.EndpointRecord{URL: m, Path: rel}
			endpointRows = append(endpointRows, rec.Row())
		}
	}

	if err := report.WriteCSV(filepath.Join(ctx.Cfg.ExportDir, FileUserIDs), userHeader, userRows); err != nil {
		return 0, err
	}
	if err := report.WriteCSV(filepath.Join(ctx.Cfg.ExportDir, FileEndpoints), endpointHeader, endpointRows); err != nil {
		return 0, err
	}
	return len(userRows) + len(endpointRows), nil
}
