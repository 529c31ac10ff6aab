package types

import "strconv"

// CheckDigitStatus is the result of validating a VIN's ISO 3779 check digit.
// The string values are the vocabulary used in the emitted CSV files.
type CheckDigitStatus string

const (
	CheckDigitValid   CheckDigitStatus = "Valide"
	CheckDigitInvalid CheckDigitStatus = "Check Digit Invalide"
)

// VinRecord is one VIN found in one file. A VIN appearing several times in
// the same file yields a single record for that file.
type VinRecord struct {
	Path         string           `json:"path"`
	VIN          string           `json:"vin"`
	ModifiedTime string           `json:"modified_time"`
	CheckDigit   CheckDigitStatus `json:"check_digit_status"`
}

func (r VinRecord) Row() []string {
	return []string{r.Path, r.VIN, r.ModifiedTime, string(r.CheckDigit)}
}

// MacRecord is a deduplicated MAC address inventory entry. Path is the file
// in which the address was first seen during the run.
type MacRecord struct {
	MAC        string `json:"mac"`
	Vendor     string `json:"vendor"`
	Randomized bool   `json:"randomized"`
	Path       string `json:"path"`
}

func (r MacRecord) Row() []string {
	return []string{r.MAC, r.Vendor, ouiNon(r.Randomized), r.Path}
}

// MacEventRecord is one connect/disconnect sighting. Event records are
// append-only evidence and are never deduplicated.
type MacEventRecord struct {
	MAC        string `json:"mac"`
	Event      string `json:"event"` // connected | disconnected
	Timestamp  string `json:"timestamp,omitempty"`
	Vendor     string `json:"vendor"`
	Randomized bool   `json:"randomized"`
	Path       string `json:"path"`
}

func (r MacEventRecord) Row() []string {
	return []string{r.MAC, r.Event, r.Timestamp, r.Vendor, ouiNon(r.Randomized), r.Path}
}

// CredentialSource identifies which recognizer produced a credential pair.
type CredentialSource string

const (
	CredentialText CredentialSource = "Texte"
	CredentialJSON CredentialSource = "JSON"
)

// CredentialRecord is a (serial, password) pair. The pair is the natural
// dedup key across the whole run, regardless of source format.
type CredentialRecord struct {
	Serial   string           `json:"serial"`
	Password string           `json:"password"`
	Source   CredentialSource `json:"format_source"`
	Path     string           `json:"path"`
}

func (r CredentialRecord) Row() []string {
	return []string{r.Serial, r.Password, string(r.Source), r.Path}
}

type UserIDRecord struct {
	UserID string `json:"user_id"`
	Path   string `json:"path"`
}

func (r UserIDRecord) Row() []string { return []string{r.UserID, r.Path} }

type EndpointRecord struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

func (r EndpointRecord) Row() []string { return []string{r.URL, r.Path} }

// VehicleRefKind distinguishes structured brand/model sightings from
// OEM/FCCID part references.
type VehicleRefKind string

const (
	RefVehicle VehicleRefKind = "Vehicule"
	RefOEM     VehicleRefKind = "OEM"
	RefFCCID   VehicleRefKind = "FCCID"
)

type VehicleRefRecord struct {
	Kind      VehicleRefKind `json:"kind"`
	Brand     string         `json:"brand,omitempty"`
	Model     string         `json:"model,omitempty"`
	YearRange string         `json:"year_range,omitempty"`
	Reference string         `json:"reference_value,omitempty"`
	Path      string         `json:"path"`
}

func (r VehicleRefRecord) Row() []string {
	return []string{string(r.Kind), r.Brand, r.Model, r.YearRange, r.Reference, r.Path}
}

// LogEvent is one pattern hit on one line of a log file. Path may be a
// virtual path of the form "archive.zip -> entry.log" for zip entries.
// Details is ragged: its length depends on the rule's capture groups.
type LogEvent struct {
	Path    string   `json:"path"`
	Line    int      `json:"line"`
	Type    string   `json:"event_type"`
	Details []string `json:"details"`
}

func (e LogEvent) Row() []string {
	row := make([]string, 0, 3+len(e.Details))
	row = append(row, e.Path, strconv.Itoa(e.Line), e.Type)
	return append(row, e.Details...)
}

// DeviceInfo identifies the tablet a dump was taken from. Unknown fields
// keep their zero value and are rendered as "inconnu" in the report.
type DeviceInfo struct {
	Serial      string `json:"serial"`
	Model       string `json:"model"`
	Timezone    string `json:"timezone"`
	Language    string `json:"language"`
	ConfigDate  string `json:"config_date"`
	ExtractedAt string `json:"extracted_at"`
}

func ouiNon(b bool) string {
	if b {
		return "Oui"
	}
	return "Non"
}
