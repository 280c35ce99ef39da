// Package event provides the event record model and period parsing for FGO news pages.
//
// A Record is built once per event announcement page and is never mutated afterwards.
// Event periods are published as Japanese date-range sentences in JST; ParsePeriod
// converts them to open/close instants with an inclusive end-of-minute close boundary.
package event
