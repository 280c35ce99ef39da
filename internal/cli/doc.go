// Package cli implements the command-line interface for fgo-events.
//
// The cli package provides the Cobra-based root command. A run loads the item
// catalogs, walks the FGO news archive, writes every event record to the output
// file, and prints a short text summary. Logs go to stderr as JSON lines.
package cli
