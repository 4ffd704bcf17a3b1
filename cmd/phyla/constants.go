package main

// Default limits for CLI commands.
const (
	DefaultSearchLimit = 10
	DefaultListLimit   = 50
	DefaultExportLimit = 0 // no limit
)

// Valid export formats.
var validFormats = []string{"json", "csv", "markdown"}

// Valid genome output formats.
var validGenomeFormats = []string{"text", "yaml"}
