// Package cmd implements the storyspec CLI commands using Cobra.
//
// Available commands:
//   - report: Format a JSON results document as console, text, JUnit, or TAP
//   - history: List, show, and summarize runs stored in the history database
//   - init: Create a storyspec config and example behavior test
//   - version: Show storyspec version information
//
// Scenarios themselves run inside Go tests via the runner package; the CLI
// works with the result documents those runs produce.
package cmd
