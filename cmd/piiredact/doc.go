// Package piiredact provides the command-line interface for piiredact.
// It wires configuration, the detection engine and the CSV layer into
// subcommands (scan, check, identifiers, browse, history, config).
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/redactyl/piiredact/cmd/piiredact"
//	func main() { piiredact.Execute() }
package piiredact
