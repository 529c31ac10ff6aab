package scan

import (
	"github.com/sirupsen/logrus"

	"github.com/vindex/vindex/internal/refdata"
)

// Output filenames are fixed per evidence category. Readers downstream key
// on these names, so they are not configurable.
const (
	FileVins        = "vins_extraits.csv"
	FileMacs        = "mac_found.csv"
	FileMacEvents   = "mac_connections_found.csv"
	FileCredentials = "pwd_sn_found.csv"
	FileUserIDs     = "userId_found.csv"
	FileEndpoints   = "endpoints_found.csv"
	FileVehicleRefs = "vehicule_refs_found.csv"
	FileLogEvents   = "log_events_found.csv"
)

// Progress receives (current, total) updates from an extractor. It is
// invoked once with (0, total) before any unit is processed and once per
// unit thereafter. total may be 0.
type Progress func(current, total int)

// Config controls a scan run: scope, reference data, and output location.
type Config struct {
	Root         string
	ExportDir    string
	OUIPath      string
	SkiplistPath string
	Tables       []string
	IncludeGlobs string
	ExcludeGlobs string
	MaxBytes     int64

	// Enable/Disable are comma-separated extractor IDs; Enable, when
	// non-empty, acts as an allow-list.
	Enable  string
	Disable string

	// Progress, when set, receives per-extractor updates. The extractor ID
	// is passed so sinks can label the bar.
	Progress func(extractor string, current, total int)

	Log *logrus.Logger
}

// Context is handed to each extractor invocation. It owns no mutable state
// shared between extractors; reference tables are read-only for the run.
type Context struct {
	Cfg      Config
	OUI      *refdata.OUITable
	Skiplist *refdata.Skiplist
	Log      *logrus.Entry
	Progress Progress
}

func (c *Context) step(current, total int) {
	if c.Progress != nil {
		c.Progress(current, total)
	}
}

// Extractor is one independent evidence scanner. Run returns the number of
// records emitted. Extractors write only to their own output files and
// never mutate shared state, so a caller may run them concurrently.
type Extractor struct {
	ID   string
	Name string
	Run  func(ctx *Context) (int, error)
}

// All is the fixed, ordered extractor registry. Adding a category is a data
// change here, not a control-flow change elsewhere.
var All = []Extractor{
	{ID: "vins", Name: "Extraction des VINs", Run: extractVins},
	{ID: "logevents", Name: "Extraction des événements de logs", Run: extractLogEvents},
	{ID: "mac", Name: "Extraction des adresses MAC", Run: extractMacs},
	{ID: "users", Name: "Extraction des utilisateurs et URLs", Run: extractUsersEndpoints},
	{ID: "credentials", Name: "Extraction des mots de passe", Run: extractCredentials},
	{ID: "vehicles", Name: "Extraction des références véhicule", Run: extractVehicleRefs},
	{ID: "media", Name: "Copie des médias DCIM", Run: copyMedia},
	{ID: "sqlite", Name: "Export des tables SQLite", Run: exportTables},
}

// IDs returns the registry's extractor IDs in run order.
func IDs() []string {
	ids := make([]string, len(All))
	for i, e := range All {
		ids[i] = e.ID
	}
	return ids
}
