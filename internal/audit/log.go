package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vindex/vindex/internal/scan"
)

// HistoryFile is the JSONL run history kept next to the exports in the
// destination folder, one record per analysis.
const HistoryFile = "vindex_history.jsonl"

// RunRecord is one past analysis as persisted in the history file.
type RunRecord struct {
	Timestamp time.Time      `json:"timestamp"`
	RunID     string         `json:"run_id"`
	Source    string         `json:"source"`
	ExportDir string         `json:"export_dir"`
	Counts    map[string]int `json:"counts"`
	Failures  []string       `json:"failures,omitempty"`
	Duration  string         `json:"duration"`
}

// NewRecord summarizes a finished run.
func NewRecord(source, exportDir string, res scan.Result) RunRecord {
	rec := RunRecord{
		Timestamp: time.Now(),
		RunID:     fmt.Sprintf("run_%d", time.Now().Unix()),
		Source:    source,
		ExportDir: exportDir,
		Counts:    make(map[string]int, len(res.Modules)),
		Duration:  res.Duration.String(),
	}
	for _, m := range res.Modules {
		if m.Err != nil {
			rec.Failures = append(rec.Failures, m.ID)
			continue
		}
		rec.Counts[m.ID] = m.Count
	}
	return rec
}

// Append adds a record to the history in dest. Owner-only permissions, the
// history names analyzed evidence paths.
func Append(dest string, rec RunRecord) error {
	f, err := os.OpenFile(filepath.Join(dest, HistoryFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("ouverture de l'historique: %w", err)
	}
	defer f.Close()
	if err := json.NewEncoder(f).Encode(rec); err != nil {
		return fmt.Errorf("écriture de l'historique: %w", err)
	}
	return nil
}

// Load reads the history in dest, newest first. Malformed lines are skipped.
func Load(dest string) ([]RunRecord, error) {
	f, err := os.Open(filepath.Join(dest, HistoryFile))
	if err != nil {
		return nil, fmt.Errorf("ouverture de l'historique: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	dec := json.NewDecoder(f)
	for dec.More() {
		var rec RunRecord
		if err := dec.Decode(&rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}
