package scan

import (
	"archive/zip"
	"bufio"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/vindex/vindex/internal/report"
	"github.com/vindex/vindex/internal/types"
)

// logRule binds an event tag to its line pattern. The table is ordered: a
// line is tested against every rule, and every match of every rule emits a
// row, so one line can produce several events.
type logRule struct {
	tag string
	re  *regexp.Regexp
}

var logRules = []logRule{
	// user activity JSON blobs
	{"USER_ACTIVITY_JSON", regexp.MustCompile(`(?i)jsonStr\s*-->\s*(\{.*?\})$`)},
	{"KEYTOOL_USE_JSON", regexp.MustCompile(`(?i)"eventType":"IM_KEYTOOL_USE".*?(\{.*?\})`)},
	{"VIN_HISTORY_JSON", regexp.MustCompile(`"vtHis":\[(.*?)\]`)},

	// system and radio environment
	{"BLUETOOTH_STORED", regexp.MustCompile(`Stored bluetooth Name=(.*?),Address=(.*?)$`)},
	{"BLUETOOTH_DEVICE_FOUND", regexp.MustCompile(`search_result_file_init: addr:\[(.*?)\] name:\[(.*?)\]`)},
	{"WIFI_SSID_FOUND", regexp.MustCompile(`Skip scan ssid for single scan:\s*(.*)`)},

	// technical diagnostics
	{"SERIAL_PASSWORD_QUERY", regexp.MustCompile(`queryAppInfo encrypt strJson = (.*?)$`)},
	{"SET_VEHICLE", regexp.MustCompile(`SetVehicleMake:\s*(.*?)$`)},
	{"ENCRYPTION", regexp.MustCompile(`AesRsaEcrypt begin n=(.*?) inLen=(.*?)$`)},
	{"EXCEPTION", regexp.MustCompile(`(Exception:.*)`)},
}

// Bounds on zip traversal so a hostile archive cannot stall the run.
const (
	maxZipEntries     = 10000
	maxZipEntryBytes  = 64 << 20
	maxZipTotalBytes  = 1 << 30
)

func extractLogEvents(ctx *Context) (int, error) {
	exts := append([]string{}, textExts...)
	exts = append(exts, ".zip")
	files := ctx.listFiles(exts...)
	total := len(files)
	ctx.step(0, total)

	var events []types.LogEvent
	for i, rel := range files {
		ctx.step(i+1, total)
		full := filepath.Join(ctx.Cfg.Root, rel)
		if strings.HasSuffix(strings.ToLower(rel), ".zip") {
			events = append(events, scanLogArchive(ctx, full, rel)...)
			continue
		}
		evs, err := scanLogFile(full, rel)
		if err != nil {
			ctx.Log.WithField("path", rel).Warnf("lecture du fichier log impossible: %v", err)
			continue
		}
		events = append(events, evs...)
	}

	out := filepath.Join(ctx.Cfg.ExportDir, FileLogEvents)
	if err := report.WriteCSV(out, logEventHeader(events), eventRows(events)); err != nil {
		return len(events), err
	}
	return len(events), nil
}

func scanLogFile(full, display string) ([]types.LogEvent, error) {
	f, err := os.Open(full)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return scanLogLines(f, display), nil
}

// scanLogArchive reads every text-like entry of a zip as a virtual file
// whose logical path is "archive -> entry". A corrupt entry is logged and
// skipped; it never stops sibling entries.
func scanLogArchive(ctx *Context, full, rel string) []types.LogEvent {
	zr, err := zip.OpenReader(full)
	if err != nil {
		ctx.Log.WithField("path", rel).Warnf("archive zip illisible: %v", err)
		return nil
	}
	defer zr.Close()

	var events []types.LogEvent
	var totalBytes int64
	for n, zf := range zr.File {
		if n >= maxZipEntries || totalBytes > maxZipTotalBytes {
			ctx.Log.WithField("path", rel).Warn("archive zip tronquée: limites de traversée atteintes")
			break
		}
		if zf.FileInfo().IsDir() {
			continue
		}
		lower := strings.ToLower(zf.Name)
		if !strings.HasSuffix(lower, ".log") && !strings.HasSuffix(lower, ".txt") {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			ctx.Log.WithField("path", rel+" -> "+zf.Name).Warnf("entrée zip illisible: %v", err)
			continue
		}
		limited := io.LimitReader(rc, maxZipEntryBytes)
		events = append(events, scanLogLines(limited, rel+" -> "+zf.Name)...)
		totalBytes += int64(zf.UncompressedSize64)
		rc.Close()
	}
	return events
}

func scanLogLines(r io.Reader, display string) []types.LogEvent {
	var events []types.LogEvent
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := sc.Text()
		for _, rule := range logRules {
			for _, m := range rule.re.FindAllStringSubmatch(line, -1) {
				details := make([]string, 0, len(m)-1)
				for _, g := range m[1:] {
					details = append(details, strings.TrimSpace(g))
				}
				events = append(events, types.LogEvent{
					Path:    display,
					Line:    lineNum,
					Type:    rule.tag,
					Details: details,
				})
			}
		}
	}
	return events
}

// logEventHeader sizes the header to the widest emitted row. Rows with
// fewer details stay short; readers must tolerate ragged rows.
func logEventHeader(events []types.LogEvent) []string {
	maxDetails := 0
	for _, e := range events {
		if len(e.Details) > maxDetails {
			maxDetails = len(e.Details)
		}
	}
	header := []string{"chemin_fichier", "numero_ligne", "type_evenement"}
	for i := 1; i <= maxDetails; i++ {
		header = append(header, "detail_"+strconv.Itoa(i))
	}
	return header
}

func eventRows(events []types.LogEvent) [][]string {
	rows := make([][]string, 0, len(events))
	for _, e := range events {
		rows = append(rows, e.Row())
	}
	return rows
}
