// Package vindex provides the command-line interface for the vindex tool.
// It configures subcommands (scan, extractors, vin), parses flags, and
// executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/vindex/vindex/cmd/vindex"
//	func main() { vindex.Execute() }
package vindex
