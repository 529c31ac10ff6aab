package refdata

import (
	"encoding/csv"
	"io"
	"os"
	"strings"
)

// UnknownVendor is returned for MAC prefixes absent from the OUI table.
const UnknownVendor = "Inconnu"

// OUITable maps a 6-hex-digit MAC prefix (uppercase, no separators) to the
// registered vendor name. Loaded once per run, read-only afterwards.
type OUITable struct {
	vendors map[string]string
}

// LoadOUI reads an IEEE OUI registry export: a CSV with a header row and at
// least three columns (registry, assignment prefix, organization name).
// A missing file yields an empty table, not an error; MAC classification
// then falls back to UnknownVendor for every address.
func LoadOUI(path string) (*OUITable, error) {
	t := &OUITable{vendors: map[string]string{}}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// tolerate ragged or quoted-garbage rows in registry exports
			continue
		}
		if header {
			header = false
			continue
		}
		if len(row) < 3 {
			continue
		}
		prefix := strings.ToUpper(strings.TrimSpace(row[1]))
		if len(prefix) < 6 {
			continue
		}
		t.vendors[prefix[:6]] = row[2]
	}
	return t, nil
}

// Vendor looks up the vendor for a canonical MAC (AA:BB:CC:DD:EE:FF).
func (t *OUITable) Vendor(mac string) string {
	prefix := strings.ReplaceAll(mac, ":", "")
	if len(prefix) < 6 {
		return UnknownVendor
	}
	if v, ok := t.vendors[strings.ToUpper(prefix[:6])]; ok {
		return v
	}
	return UnknownVendor
}

// Len reports the number of loaded prefixes.
func (t *OUITable) Len() int { return len(t.vendors) }
