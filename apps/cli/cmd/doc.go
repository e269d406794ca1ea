// Package cmd implements the shapematch CLI commands using Cobra.
//
// Available commands:
//   - match: Compare an actual document file against an expected pattern
//   - response: Fetch a URL and check it against the JSON response contract
//   - collection: Compare a SQLite document collection against expected documents
//   - init: Create a .shapematch.json or .shapematch.yaml config file
//   - version: Show shapematch version information
//
// Patterns are JSON or YAML files; see package patternfile for the
// identifier and regular expression string forms.
package cmd
