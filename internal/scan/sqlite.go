package scan

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"crawshaw.io/sqlite"

	"github.com/vindex/vindex/internal/report"
)

// sqliteMagic is the 16-byte file signature of an SQLite 3 database.
var sqliteMagic = []byte("SQLite format 3\x00")

var sqliteExts = []string{".db", ".sqlite", ".db3"}

// exportTables projects every requested table of every SQLite database
// found under the scan root into its own CSV. One broken database or table
// never aborts the others.
func exportTables(ctx *Context) (int, error) {
	if len(ctx.Cfg.Tables) == 0 {
		ctx.step(1, 1)
		return 0, nil
	}
	files := ctx.listFiles(sqliteExts...)
	total := len(files)
	ctx.step(0, total)

	exported := 0
	for i, rel := range files {
		ctx.step(i+1, total)
		full := filepath.Join(ctx.Cfg.Root, rel)
		if !hasSQLiteHeader(full) {
			continue
		}
		n, err := exportDatabase(ctx, full, rel)
		if err != nil {
			ctx.Log.WithField("path", rel).Errorf("erreur SQLite: %v", err)
			continue
		}
		exported += n
	}
	return exported, nil
}

func hasSQLiteHeader(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	header := make([]byte, 16)
	if _, err := f.Read(header); err != nil {
		return false
	}
	return bytes.Equal(header, sqliteMagic)
}

func exportDatabase(ctx *Context, full, rel string) (int, error) {
	conn, err := sqlite.OpenConn(full, sqlite.SQLITE_OPEN_READONLY)
	if err != nil {
		return 0, fmt.Errorf("ouverture en lecture seule: %w", err)
	}
	defer conn.Close()

	available, err := tableNames(conn)
	if err != nil {
		return 0, fmt.Errorf("lecture du catalogue: %w", err)
	}

	exported := 0
	base := filepath.Base(rel)
	for _, table := range ctx.Cfg.Tables {
		if _, ok := available[table]; !ok {
			continue
		}
		out := filepath.Join(ctx.Cfg.ExportDir, base+"_"+table+".csv")
		if err := exportTable(conn, table, out); err != nil {
			ctx.Log.WithField("path", rel).WithField("table", table).Errorf("export impossible: %v", err)
			continue
		}
		exported++
	}
	return exported, nil
}

func tableNames(conn *sqlite.Conn) (map[string]struct{}, error) {
	stmt, err := conn.Prepare("SELECT name FROM sqlite_master WHERE type='table'")
	if err != nil {
		return nil, err
	}
	names := map[string]struct{}{}
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, err
		}
		if !hasRow {
			break
		}
		names[stmt.GetText("name")] = struct{}{}
	}
	return names, stmt.Finalize()
}

func exportTable(conn *sqlite.Conn, table, out string) error {
	stmt, err := conn.Prepare(fmt.Sprintf(`SELECT * FROM "%s"`, table))
	if err != nil {
		return err
	}

	cols := stmt.ColumnCount()
	header := make([]string, cols)
	for i := 0; i < cols; i++ {
		header[i] = stmt.ColumnName(i)
	}

	var rows [][]string
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			_ = stmt.Finalize()
			return err
		}
		if !hasRow {
			break
		}
		row := make([]string, cols)
		for i := 0; i < cols; i++ {
			row[i] = stmt.ColumnText(i)
		}
		rows = append(rows, row)
	}
	if err := stmt.Finalize(); err != nil {
		return err
	}
	return report.WriteCSV(out, header, rows)
}
