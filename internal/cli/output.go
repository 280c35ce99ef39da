package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/fgo-events/internal/event"
)

const summaryTimeLayout = "2006-01-02 15:04"

// Summary describes the result of one run
type Summary struct {
	OutputFile string
	Events     int
	Revivals   int
	New        int // events whose URL was not in the previous output
	Items      int // distinct item IDs across all events
	Elapsed    time.Duration
	Records    []*event.Record

	isNew map[string]bool
}

// NewSummary computes run totals from the scraped records. previous is the
// content of the output file before this run, nil if there was none.
func NewSummary(records, previous []*event.Record, outputFile string, elapsed time.Duration) *Summary {
	s := &Summary{
		OutputFile: outputFile,
		Events:     len(records),
		Elapsed:    elapsed,
		Records:    records,
		isNew:      make(map[string]bool),
	}

	seen := make(map[string]bool, len(previous))
	for _, r := range previous {
		seen[r.URL] = true
	}

	ids := make(map[int]bool)
	for _, r := range records {
		if r.Revival {
			s.Revivals++
		}
		if !seen[r.URL] {
			s.New++
			s.isNew[r.URL] = true
		}
		for _, item := range r.Items {
			ids[item.ID] = true
		}
	}
	s.Items = len(ids)

	return s
}

// WriteSummary writes the run summary as human-readable text.
// verbose adds one line per event.
func WriteSummary(w io.Writer, s *Summary, verbose bool) error {
	if s.Events == 0 {
		_, err := fmt.Fprintf(w, "No events found. Wrote empty list to %s\n", s.OutputFile)
		return err
	}

	if verbose {
		for _, r := range s.Records {
			marker := ""
			if r.Revival {
				marker += " [revival]"
			}
			if s.isNew[r.URL] {
				marker += " [new]"
			}
			fmt.Fprintf(w, "%s%s: %s, %d items\n", r.Name, marker, formatPeriod(r), len(r.Items))
		}
		fmt.Fprintln(w)
	}

	_, err := fmt.Fprintf(w, "Total: %d events (%d revivals, %d new), %d distinct items, written to %s in %s\n",
		s.Events, s.Revivals, s.New, s.Items, s.OutputFile, s.Elapsed.Round(time.Second))
	return err
}

// formatPeriod renders the event period in JST with its length in days
func formatPeriod(r *event.Record) string {
	seconds := r.Duration()
	if seconds == 0 {
		return "period unknown"
	}
	opened := time.Unix(r.OpenedAt, 0).In(event.JST).Format(summaryTimeLayout)
	closed := time.Unix(r.ClosedAt, 0).In(event.JST).Format(summaryTimeLayout)
	return fmt.Sprintf("%s ~ %s JST (%.1f days)", opened, closed, float64(seconds)/86400)
}
