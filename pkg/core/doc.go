// Package core provides a small, stable facade over vindex's internal scan
// engine for external integrations. It deliberately re-exports a narrow API
// surface so other tools can depend on a stable import path without reaching
// into internal packages.
//
// Example:
//
//	cfg := core.Config{Root: "/evidence/dump", ExportDir: "/case/out"}
//	res, err := core.Run(cfg)
//	if err != nil { /* handle */ }
//	_ = core.MarshalResult(os.Stdout, res)
package core
