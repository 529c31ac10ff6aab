package vindex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vindex/vindex/internal/audit"
	"github.com/vindex/vindex/internal/config"
	"github.com/vindex/vindex/internal/devinfo"
	"github.com/vindex/vindex/internal/report"
	"github.com/vindex/vindex/internal/scan"
	"github.com/vindex/vindex/internal/types"
	"github.com/vindex/vindex/internal/unpack"
)

var (
	flagSource   string
	flagDest     string
	flagOUI      string
	flagSkiplist string
	flagTables   []string
	flagInclude  string
	flagExclude  string
	flagMaxBytes int64
	flagEnable   string
	flagDisable  string
)

// RunLogFile is the name of the run log written to the destination folder.
const RunLogFile = "vindex_debug.log"

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a dump (directory or .zip) and export evidence reports",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagSource, "source", "s", "", "dump directory or .zip archive to analyze")
	cmd.Flags().StringVarP(&flagDest, "dest", "d", "", "destination folder for the export")
	cmd.Flags().StringVar(&flagOUI, "oui", "", "path to the OUI vendor CSV (registry, prefix, vendor)")
	cmd.Flags().StringVar(&flagSkiplist, "skiplist", "", "path to the content-hash skip list (one digest per line)")
	cmd.Flags().StringSliceVar(&flagTables, "tables", nil, "SQLite tables to export when present (default tb_history_menu,tb_user_info,tb_vci_record)")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 0, "skip files larger than this (0 = no limit)")
	cmd.Flags().StringVar(&flagEnable, "enable", "", "only run these extractors (comma-separated IDs)")
	cmd.Flags().StringVar(&flagDisable, "disable", "", "disable these extractors (comma-separated IDs)")
	_ = cmd.MarkFlagRequired("source")
	_ = cmd.MarkFlagRequired("dest")
}

func runScan(cmd *cobra.Command, _ []string) error {
	started := time.Now()
	source, _ := filepath.Abs(flagSource)
	dest, _ := filepath.Abs(flagDest)

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("création du dossier de destination: %w", err)
	}

	// Archive sources are unpacked to a temp dir first; scanners only ever
	// see a plain directory tree.
	root := source
	if info, err := os.Stat(source); err != nil {
		return fmt.Errorf("source introuvable: %w", err)
	} else if !info.IsDir() {
		switch strings.ToLower(filepath.Ext(source)) {
		case ".zip":
			dir, err := unpack.Zip(source, unpack.DefaultLimits)
			if err != nil {
				return err
			}
			defer os.RemoveAll(dir)
			root = dir
		case ".7z":
			return fmt.Errorf("les archives .7z ne sont pas gérées: extrayez %s au préalable", source)
		default:
			return fmt.Errorf("source non gérée: %s (dossier ou .zip attendu)", source)
		}
	}

	var gcfg, lcfg config.FileConfig
	if c, err := config.LoadGlobal(); err == nil {
		gcfg = c
	}
	if c, err := config.LoadLocal(root); err == nil {
		lcfg = c
	}

	if !flagQuiet {
		if lcfg.Quiet != nil {
			flagQuiet = *lcfg.Quiet
		} else if gcfg.Quiet != nil {
			flagQuiet = *gcfg.Quiet
		}
	}

	log, logFile, err := setupRunLog(dest)
	if err != nil {
		return err
	}
	defer logFile.Close()

	info := devinfo.Collect(root, log.WithField("module", "devinfo"))
	serial := info.Serial
	if serial == "" {
		serial = "inconnu"
	}
	exportDir := filepath.Join(dest, fmt.Sprintf("Analyse_%s_%s", serial, started.Format("20060102_150405")))

	cfg := scan.Config{
		Root:         root,
		ExportDir:    exportDir,
		OUIPath:      pickString(flagOUI, lcfg.OUIPath, gcfg.OUIPath),
		SkiplistPath: pickString(flagSkiplist, lcfg.SkiplistPath, gcfg.SkiplistPath),
		Tables:       defaultTables(pickStrings(flagTables, lcfg.Tables, gcfg.Tables)),
		IncludeGlobs: pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs: pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:     pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		Enable:       pickString(flagEnable, lcfg.Enable, gcfg.Enable),
		Disable:      pickString(flagDisable, lcfg.Disable, gcfg.Disable),
		Log:          log,
	}

	var bar *pterm.ProgressbarPrinter
	if !flagQuiet {
		bar, _ = pterm.DefaultProgressbar.WithTotal(100).WithTitle("Analyse").Start()
		last := 0
		weighted := scan.NewWeightedProgress(enabledIDs(cfg), func(percent float64, module string) {
			p := int(percent)
			if p > last {
				bar.Add(p - last)
				last = p
			}
			bar.UpdateTitle(module)
		})
		cfg.Progress = weighted.Update
	}

	res, err := scan.Run(cfg)
	if bar != nil {
		if bar.Current < bar.Total {
			bar.Add(bar.Total - bar.Current)
		}
		_, _ = bar.Stop()
	}
	if err != nil {
		return err
	}

	if err := report.WriteDeviceInfo(exportDir, info); err != nil {
		log.Warnf("écriture de tablet_info.csv impossible: %v", err)
	}
	if err := report.WriteReadme(exportDir); err != nil {
		log.Warnf("écriture du LISEZMOI impossible: %v", err)
	}
	summary := buildSummary(source, exportDir, info, res)
	if err := report.WriteSummary(summary); err != nil {
		log.Warnf("écriture du rapport impossible: %v", err)
	}
	if err := audit.Append(dest, audit.NewRecord(source, exportDir, res)); err != nil {
		log.Warnf("écriture de l'historique impossible: %v", err)
	}

	if !flagQuiet {
		report.RenderSummaryTable(os.Stdout, summary)
		fmt.Printf("Export dans %s\n", exportDir)
	}
	return nil
}

func setupRunLog(dest string) (*logrus.Logger, *os.File, error) {
	f, err := os.Create(filepath.Join(dest, RunLogFile))
	if err != nil {
		return nil, nil, fmt.Errorf("création du journal d'exécution: %w", err)
	}
	log := logrus.New()
	log.SetOutput(f)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"})
	if flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	}
	return log, f, nil
}

func buildSummary(source, exportDir string, info types.DeviceInfo, res scan.Result) report.Summary {
	s := report.Summary{
		SourcePath: source,
		ExportDir:  exportDir,
		Device:     info,
		Duration:   res.Duration,
	}
	for _, m := range res.Modules {
		s.Modules = append(s.Modules, report.ModuleSummary{Name: m.Name, Count: m.Count, Failed: m.Err != nil})
	}
	return s
}

// defaultTables fills in the diagnostic history tables exported when
// neither the flags nor any config file name a table set.
func defaultTables(tables []string) []string {
	if len(tables) > 0 {
		return tables
	}
	return []string{"tb_history_menu", "tb_user_info", "tb_vci_record"}
}

func enabledIDs(cfg scan.Config) []string {
	var ids []string
	for _, id := range scan.IDs() {
		if allowedID(id, cfg.Enable, cfg.Disable) {
			ids = append(ids, id)
		}
	}
	return ids
}

func allowedID(id, enable, disable string) bool {
	if enable != "" && !containsID(enable, id) {
		return false
	}
	return !containsID(disable, id)
}

func containsID(list, id string) bool {
	for _, s := range strings.Split(list, ",") {
		if strings.TrimSpace(s) == id {
			return true
		}
	}
	return false
}
