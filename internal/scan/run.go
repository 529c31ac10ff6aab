package scan

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vindex/vindex/internal/refdata"
)

// ModuleResult is one extractor's outcome. Err non-nil marks a failed
// module; its Count is then meaningless and rendered as an error sentinel.
type ModuleResult struct {
	ID    string
	Name  string
	Count int
	Err   error
}

// Result aggregates a full run.
type Result struct {
	Modules      []ModuleResult
	Duration     time.Duration
	SkiplistSize int
	OUISize      int
}

// Run executes every enabled extractor in registry order. A failing module
// is recorded and the remaining modules still run; only preparation
// failures (export directory, reference data read errors other than
// missing files) abort the run.
func Run(cfg Config) (Result, error) {
	var res Result
	started := time.Now()

	if cfg.Log == nil {
		cfg.Log = logrus.New()
		cfg.Log.SetOutput(os.Stderr)
	}
	if err := os.MkdirAll(cfg.ExportDir, 0o755); err != nil {
		return res, fmt.Errorf("création du dossier d'export: %w", err)
	}

	oui, err := refdata.LoadOUI(cfg.OUIPath)
	if err != nil {
		return res, fmt.Errorf("chargement de la table OUI: %w", err)
	}
	skiplist, err := refdata.LoadSkiplist(cfg.SkiplistPath)
	if err != nil {
		return res, fmt.Errorf("chargement de la liste d'exclusion: %w", err)
	}
	res.OUISize = oui.Len()
	res.SkiplistSize = skiplist.Len()

	enabled := enabledExtractors(cfg)
	for _, ext := range enabled {
		log := cfg.Log.WithField("module", ext.ID)
		ctx := &Context{Cfg: cfg, OUI: oui, Skiplist: skiplist, Log: log}
		if cfg.Progress != nil {
			id := ext.ID
			ctx.Progress = func(current, total int) {
				cfg.Progress(id, current, total)
			}
		}
		count, err := runOne(ext, ctx)
		if err != nil {
			log.Errorf("échec du module: %v", err)
		}
		res.Modules = append(res.Modules, ModuleResult{ID: ext.ID, Name: ext.Name, Count: count, Err: err})
	}

	res.Duration = time.Since(started)
	return res, nil
}

// runOne confines a module failure, including panics from unexpected input,
// to that module's result.
func runOne(ext Extractor, ctx *Context) (count int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panique dans le module %s: %v", ext.ID, r)
		}
	}()
	return ext.Run(ctx)
}

func enabledExtractors(cfg Config) []Extractor {
	allowed := splitIDs(cfg.Enable)
	blocked := splitIDs(cfg.Disable)
	var out []Extractor
	for _, ext := range All {
		if len(allowed) > 0 {
			if _, ok := allowed[ext.ID]; !ok {
				continue
			}
		}
		if _, ok := blocked[ext.ID]; ok {
			continue
		}
		out = append(out, ext)
	}
	return out
}

func splitIDs(s string) map[string]struct{} {
	out := map[string]struct{}{}
	if s == "" {
		return out
	}
	for _, id := range strings.Split(s, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			out[id] = struct{}{}
		}
	}
	return out
}

// WeightedProgress folds per-extractor (current, total) updates into one
// overall percentage: each module owns an equal share of the bar, entered
// in registry order. It is safe for a single goroutine only.
type WeightedProgress struct {
	sink    func(percent float64, module string)
	shares  map[string]int
	modules int
}

// NewWeightedProgress builds the fold for the given enabled extractor IDs.
func NewWeightedProgress(ids []string, sink func(percent float64, module string)) *WeightedProgress {
	shares := make(map[string]int, len(ids))
	for i, id := range ids {
		shares[id] = i
	}
	return &WeightedProgress{sink: sink, shares: shares, modules: len(ids)}
}

// Update is the Config.Progress adapter. total == 0 marks the module done.
func (w *WeightedProgress) Update(extractor string, current, total int) {
	if w.sink == nil || w.modules == 0 {
		return
	}
	idx, ok := w.shares[extractor]
	if !ok {
		return
	}
	share := 100.0 / float64(w.modules)
	frac := 1.0
	if total > 0 {
		frac = float64(current) / float64(total)
	}
	w.sink(float64(idx)*share+frac*share, extractor)
}
