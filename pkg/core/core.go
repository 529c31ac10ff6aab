package core

import (
	"github.com/vindex/vindex/internal/scan"
	"github.com/vindex/vindex/internal/types"
	"github.com/vindex/vindex/internal/vin"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type Config = scan.Config
type Result = scan.Result
type ModuleResult = scan.ModuleResult
type DeviceInfo = types.DeviceInfo

// Run is the stable entrypoint for other programs. It executes every enabled
// extractor against cfg.Root and writes the reports under cfg.ExportDir.
func Run(cfg Config) (Result, error) {
	return scan.Run(cfg)
}

// ExtractorIDs returns the registry order of extractor IDs.
// Exposed for convenience so callers can build enable/disable lists.
func ExtractorIDs() []string { return scan.IDs() }

// ValidateVIN reports whether a 17-character VIN carries a correct
// ISO 3779 check digit.
func ValidateVIN(candidate string) bool { return vin.Validate(candidate) }
