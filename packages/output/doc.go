// Package output formats completed behavior runs for people and machines.
//
// Formatters consume a Document, the serializable projection of one or more
// feature result trees:
//   - Console: human-readable colored terminal output
//   - Text: plain-text report for logs and files
//   - JSON: machine-readable output, parseable back into a Document
//   - JUnit: JUnit XML for CI integration
//   - TAP: Test Anything Protocol
package output
