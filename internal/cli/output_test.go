package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/fgo-events/internal/event"
)

func testRecords() []*event.Record {
	return []*event.Record{
		event.NewRecord("Test Event", "「Test Event」", "https://news.fate-go.jp/2020/test/", false,
			1577847600, 1580482799,
			[]event.Item{{ID: 1, Name: "テストアイテム"}, {ID: 2, Name: "B"}}),
		event.NewRecord("ぐだぐだ本能寺", "【復刻】「ぐだぐだ本能寺」", "https://news.fate-go.jp/2020/guda/", true,
			0, 0,
			[]event.Item{{ID: 2, Name: "B"}}),
	}
}

func TestNewSummary(t *testing.T) {
	previous := testRecords()[1:]
	s := NewSummary(testRecords(), previous, "fgo_event.json", 3*time.Second)

	if s.Events != 2 {
		t.Errorf("Events = %d, expected 2", s.Events)
	}
	if s.Revivals != 1 {
		t.Errorf("Revivals = %d, expected 1", s.Revivals)
	}
	if s.New != 1 {
		t.Errorf("New = %d, expected 1", s.New)
	}
	if s.Items != 2 {
		t.Errorf("Items = %d, expected 2", s.Items)
	}
}

func TestNewSummary_NoPreviousOutput(t *testing.T) {
	s := NewSummary(testRecords(), nil, "fgo_event.json", time.Second)

	if s.New != 2 {
		t.Errorf("New = %d, expected every event to be new", s.New)
	}
}

func TestWriteSummary(t *testing.T) {
	tests := []struct {
		name     string
		records  []*event.Record
		previous []*event.Record
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name:     "no events",
			records:  nil,
			contains: []string{"No events found", "out.json"},
		},
		{
			name:     "totals only",
			records:  testRecords(),
			previous: testRecords(),
			contains: []string{"Total: 2 events (1 revivals, 0 new), 2 distinct items, written to out.json"},
			excludes: []string{"Test Event:"},
		},
		{
			name:     "verbose lists events",
			records:  testRecords(),
			previous: testRecords()[:1],
			verbose:  true,
			contains: []string{
				"Test Event: 2020-01-01 12:00 ~ 2020-01-31 23:59 JST (30.5 days), 2 items",
				"ぐだぐだ本能寺 [revival] [new]: period unknown, 1 items",
				"Total: 2 events",
			},
			excludes: []string{"Test Event [new]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			s := NewSummary(tt.records, tt.previous, "out.json", 2*time.Second)
			if err := WriteSummary(&buf, s, tt.verbose); err != nil {
				t.Fatalf("WriteSummary failed: %v", err)
			}

			out := buf.String()
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(out, unwanted) {
					t.Errorf("output should not contain %q:\n%s", unwanted, out)
				}
			}
		})
	}
}
