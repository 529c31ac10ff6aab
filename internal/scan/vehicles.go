package scan

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/vindex/vindex/internal/report"
	"github.com/vindex/vindex/internal/types"
)

var (
	mainItemRe   = regexp.MustCompile(`"mainItem"\s*:\s*"(\w+)\s+(.*?)\s+(\d{4})-(\d{4})"`)
	referenceRe  = regexp.MustCompile(`(?i)Reference (OEM|FCCID)[:=]\s*([^\s"]+)`)
	vehicleExts  = []string{".json", ".txt", ".log"}
)

// junkBrands suppresses generic menu/system tokens that match the brand
// position of a mainItem field.
var junkBrands = map[string]struct{}{
	"system": {}, "menu": {}, "path": {}, "read": {},
	"code": {}, "all": {}, "obd": {}, "selection": {},
}

var vehicleRefHeader = []string{"type", "marque", "modele", "annees", "reference", "path"}

func extractVehicleRefs(ctx *Context) (int, error) {
	files := ctx.listFiles(vehicleExts...)
	total := len(files)
	ctx.step(0, total)

	var rows [][]string
	for i, rel := range files {
		ctx.step(i+1, total)
		f, err := os.Open(filepath.Join(ctx.Cfg.Root, rel))
		if err != nil {
			ctx.Log.WithField("path", rel).Warnf("lecture du fichier impossible: %v", err)
			continue
		}
		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 64*1024), 1024*1024)
		for sc.Scan() {
			line := sc.Text()
			if m := mainItemRe.FindStringSubmatch(line); m != nil {
				brand := strings.TrimSpace(m[1])
				model := strings.TrimSpace(m[2])
				_, junk := junkBrands[strings.ToLower(brand)]
				if len(brand) > 2 && !junk {
					rec := types.VehicleRefRecord{
						Kind:      types.RefVehicle,
						Brand:     brand,
						Model:     model,
						YearRange: m[3] + "-" + m[4],
						Path:      rel,
					}
					rows = append(rows, rec.Row())
				}
			}
			if m := referenceRe.FindStringSubmatch(line); m != nil {
				value := strings.TrimSpace(m[2])
				// short values are placeholders or parse garbage
				if len(value) > 4 {
					rec := types.VehicleRefRecord{
						Kind:      types.VehicleRefKind(strings.ToUpper(m[1])),
						Reference: value,
						Path:      rel,
					}
					rows = append(rows, rec.Row())
				}
			}
		}
		f.Close()
	}

	out := filepath.Join(ctx.Cfg.ExportDir, FileVehicleRefs)
	if err := report.WriteCSV(out, vehicleRefHeader, rows); err != nil {
		return len(rows), err
	}
	return len(rows), nil
}
