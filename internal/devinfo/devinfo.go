// Package devinfo identifies the tablet a filesystem dump was taken from
// before extraction starts: serial and model from the update log, capture
// date and timezone from the device config file, interface language from
// the system database.
package devinfo

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"crawshaw.io/sqlite"
	"github.com/sirupsen/logrus"

	"github.com/vindex/vindex/internal/types"
)

var (
	// "# Tue Aug 12 14:03:21 EDT 2025" style line in .config.txt
	configDateRe = regexp.MustCompile(`^#\s*(\w{3})\s+(\w{3})\s+(\d{1,2})\s+([\d:]{8})\s+(\S+)\s+(\d{4})`)
	deviceSnRe   = regexp.MustCompile(`"deviceSn":"(\w+)"`)
	deviceMdlRe  = regexp.MustCompile(`"deviceModel":"([^"]+)"`)
)

const systemDBRelPath = "MaxiApScan/DataBase/masdas.db"

// Collect sweeps root for identification artifacts. Every lookup is best
// effort; missing artifacts leave the matching field empty.
func Collect(root string, log *logrus.Entry) types.DeviceInfo {
	info := types.DeviceInfo{ExtractedAt: time.Now().Format(time.RFC3339)}

	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		name := strings.ToLower(d.Name())
		switch {
		case info.ConfigDate == "" && d.Name() == ".config.txt":
			readConfigDate(p, &info)
		case info.Serial == "" && strings.HasSuffix(name, "smart_update_log.txt"):
			readUpdateLog(p, &info)
		}
		if info.ConfigDate != "" && info.Serial != "" {
			return fs.SkipAll
		}
		return nil
	})

	if info.Language == "" {
		dbPath := filepath.Join(root, filepath.FromSlash(systemDBRelPath))
		if lang, err := readLanguage(dbPath); err != nil {
			if log != nil {
				log.Warnf("langue illisible depuis %s: %v", systemDBRelPath, err)
			}
		} else {
			info.Language = lang
		}
	}
	return info
}

func readConfigDate(path string, info *types.DeviceInfo) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if m := configDateRe.FindStringSubmatch(sc.Text()); m != nil {
			// m: [_, weekday, month, day, time, tz, year]
			info.ConfigDate = m[6] + "-" + m[2] + "-" + m[3] + " " + m[4]
			info.Timezone = m[5]
			return
		}
	}
}

func readUpdateLog(path string, info *types.DeviceInfo) {
	content, err := os.ReadFile(path)
	if err != nil {
		return
	}
	if m := deviceSnRe.FindSubmatch(content); m != nil {
		info.Serial = string(m[1])
	}
	if m := deviceMdlRe.FindSubmatch(content); m != nil {
		info.Model = string(m[1])
	}
}

func readLanguage(dbPath string) (string, error) {
	if _, err := os.Stat(dbPath); err != nil {
		return "", err
	}
	conn, err := sqlite.OpenConn(dbPath, sqlite.SQLITE_OPEN_READONLY)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	stmt, err := conn.Prepare("SELECT Value FROM tb_sys_config WHERE Key = 'language'")
	if err != nil {
		return "", err
	}
	defer stmt.Finalize()

	hasRow, err := stmt.Step()
	if err != nil || !hasRow {
		return "", err
	}
	return stmt.ColumnText(0), nil
}
