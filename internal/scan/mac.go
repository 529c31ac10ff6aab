package scan

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/vindex/vindex/internal/report"
	"github.com/vindex/vindex/internal/types"
)

var (
	macRe      = regexp.MustCompile(`(?:[0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}`)
	macEventRe = regexp.MustCompile(`(?i)(connected|disconnected)`)
	macTimeRe  = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2})\b`)
)

var (
	macHeader      = []string{"mac", "vendor", "randomized", "path"}
	macEventHeader = []string{"mac", "event", "date", "vendor", "randomized", "path"}
)

func extractMacs(ctx *Context) (int, error) {
	files := ctx.listFiles(textExts...)
	total := len(files)
	ctx.step(0, total)

	// seen spans the whole run but lives on this invocation's stack, so
	// repeated runs stay isolated.
	seen := map[string]struct{}{}
	var inventory []types.MacRecord
	var events []types.MacEventRecord

	for i, rel := range files {
		ctx.step(i+1, total)
		full := filepath.Join(ctx.Cfg.Root, rel)
		f, err := os.Open(full)
		if err != nil {
			ctx.Log.WithField("path", rel).Warnf("lecture du fichier impossible: %v", err)
			continue
		}
		sc := bufio.NewScanner(f)
		sc.Buffer(make([]byte, 64*1024), 1024*1024)
		for sc.Scan() {
			line := sc.Text()
			raw := macRe.FindAllString(line, -1)
			if len(raw) == 0 {
				continue
			}
			macs := canonicalMacs(raw)
			for _, mac := range macs {
				if _, dup := seen[mac]; dup {
					continue
				}
				seen[mac] = struct{}{}
				inventory = append(inventory, types.MacRecord{
					MAC:        mac,
					Vendor:     ctx.OUI.Vendor(mac),
					Randomized: IsRandomized(mac),
					Path:       rel,
				})
			}
			if evt := macEventRe.FindStringSubmatch(line); evt != nil {
				ts := ""
				if tm := macTimeRe.FindStringSubmatch(line); tm != nil {
					ts = tm[1]
				}
				for _, mac := range macs {
					events = append(events, types.MacEventRecord{
						MAC:        mac,
						Event:      strings.ToLower(evt[1]),
						Timestamp:  ts,
						Vendor:     ctx.OUI.Vendor(mac),
						Randomized: IsRandomized(mac),
						Path:       rel,
					})
				}
			}
		}
		f.Close()
	}

	invRows := make([][]string, 0, len(inventory))
	for _, r := range inventory {
		invRows = append(invRows, r.Row())
	}
	if err := report.WriteCSV(filepath.Join(ctx.Cfg.ExportDir, FileMacs), macHeader, invRows); err != nil {
		return 0, err
	}
	evtRows := make([][]string, 0, len(events))
	for _, r := range events {
		evtRows = append(evtRows, r.Row())
	}
	if err := report.WriteCSV(filepath.Join(ctx.Cfg.ExportDir, FileMacEvents), macEventHeader, evtRows); err != nil {
		return 0, err
	}
	return len(inventory) + len(events), nil
}

// canonicalMacs normalizes raw matches (hyphens to colons, uppercase) and
// returns each distinct address on the line once, in sorted order so event
// rows come out deterministic.
func canonicalMacs(raw []string) []string {
	set := map[string]struct{}{}
	for _, m := range raw {
		set[strings.ToUpper(strings.ReplaceAll(m, "-", ":"))] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// IsRandomized reports whether the locally-administered bit (value 2) of
// the first octet is set, the usual privacy-randomization signal.
func IsRandomized(mac string) bool {
	sep := strings.IndexByte(mac, ':')
	if sep != 2 {
		return false
	}
	octet, err := strconv.ParseUint(mac[:2], 16, 8)
	if err != nil {
		return false
	}
	return octet&0x02 != 0
}
