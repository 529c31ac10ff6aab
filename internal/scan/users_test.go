package scan

import (
	"path/filepath"
	"testing"
)

func TestExtractUsersEndpoints(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "s.log",
		"login userId: 1001 ok\n"+
			"retry userId=1001\n"+
			"GET https://api.example.com/v1/scan?id=7 done\n"+
			"userId=abc ignored\n")

	ctx := newTestContext(t, root)
	count, err := extractUsersEndpoints(ctx)
	if err != nil {
		t.Fatalf("extractUsersEndpoints: %v", err)
	}
	if count != 3 {
		t.Fatalf("count=%d, want 2 userIds + 1 endpoint", count)
	}

	_, users := readCSV(t, filepath.Join(ctx.Cfg.ExportDir, FileUserIDs))
	// every occurrence is a row, repeats included
	if len(users) != 2 || users[0][0] != "1001" || users[1][0] != "1001" {
		t.Fatalf("users=%v", users)
	}

	_, endpoints := readCSV(t, filepath.Join(ctx.Cfg.ExportDir, FileEndpoints))
	if len(endpoints) != 1 || endpoints[0][0] != "https://api.example.com/v1/scan?id=7" {
		t.Fatalf("endpoints=%v", endpoints)
	}
}
