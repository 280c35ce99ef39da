package calendar

import (
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/pfrederiksen/fgo-events/internal/event"
)

var testNow = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

// unfold joins folded content lines back together
func unfold(ics string) string {
	return strings.ReplaceAll(ics, "\r\n ", "")
}

func testRecord() *event.Record {
	return event.NewRecord("Test Event", "期間限定イベント「Test Event」開催", "https://news.fate-go.jp/2020/test_event/", false,
		1577847600, 1580482799,
		[]event.Item{
			{ID: 1, Name: "テストアイテム"},
			{ID: 2, Name: "ぐん肥"},
		})
}

func TestGenerateICS(t *testing.T) {
	ics := unfold(GenerateICS([]*event.Record{testRecord()}, testNow))

	requiredFields := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//FGO Events//fgo-events//JA",
		"BEGIN:VEVENT",
		"UID:2020-test_event@news.fate-go.jp",
		"DTSTAMP:20260301T000000Z",
		"DTSTART:20200101T030000Z",
		"DTEND:20200131T150000Z",
		"SUMMARY:Test Event",
		"DESCRIPTION:期間限定イベント「Test Event」開催\\nItems: テストアイテム\\, ぐん肥",
		"URL:https://news.fate-go.jp/2020/test_event/",
		"END:VEVENT",
		"END:VCALENDAR",
	}

	for _, field := range requiredFields {
		if !strings.Contains(ics, field) {
			t.Errorf("ICS missing required field: %s", field)
		}
	}

	// Check that lines end with \r\n
	if !strings.Contains(ics, "\r\n") {
		t.Error("ICS should use \\r\\n line endings")
	}
}

func TestGenerateICS_SkipsUnknownPeriods(t *testing.T) {
	unknown := event.NewRecord("No Period", "「No Period」", "https://news.fate-go.jp/2020/none/", false, 0, 0, nil)

	ics := GenerateICS([]*event.Record{unknown, testRecord()}, testNow)

	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 1 {
		t.Errorf("expected 1 VEVENT, got %d", got)
	}
	if strings.Contains(ics, "No Period") {
		t.Error("record without a period should be skipped")
	}
}

func TestGenerateICS_Empty(t *testing.T) {
	ics := GenerateICS(nil, testNow)

	if !strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n") || !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Errorf("expected an empty calendar, got %q", ics)
	}
	if strings.Contains(ics, "BEGIN:VEVENT") {
		t.Error("empty input should produce no events")
	}
}

func TestGenerateICS_Summary(t *testing.T) {
	tests := []struct {
		name     string
		record   *event.Record
		expected string
	}{
		{
			name:     "revival prefix",
			record:   event.NewRecord("ぐだぐだ本能寺", "【復刻】「ぐだぐだ本能寺」", "https://news.fate-go.jp/2020/a/", true, 1, 2, nil),
			expected: "SUMMARY:[復刻] ぐだぐだ本能寺",
		},
		{
			name:     "page title fallback",
			record:   event.NewRecord("", "ニュース; 特別編", "https://news.fate-go.jp/2020/b/", false, 1, 2, nil),
			expected: "SUMMARY:ニュース\\; 特別編",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ics := unfold(GenerateICS([]*event.Record{tt.record}, testNow))
			if !strings.Contains(ics, tt.expected) {
				t.Errorf("ICS missing %q:\n%s", tt.expected, ics)
			}
		})
	}
}

func TestEventUID(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://news.fate-go.jp/2020/test_event/", "2020-test_event"},
		{"https://news.fate-go.jp/2018/0808mhxa/", "2018-0808mhxa"},
		{"https://news.fate-go.jp/", "https---news.fate-go.jp-"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := eventUID(tt.url); got != tt.expected {
				t.Errorf("eventUID(%q) = %q, expected %q", tt.url, got, tt.expected)
			}
		})
	}
}

func TestEscapeICS(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Simple text", "Simple text"},
		{"Text, with comma", "Text\\, with comma"},
		{"Text; with semicolon", "Text\\; with semicolon"},
		{"Text\\with backslash", "Text\\\\with backslash"},
		{"Text\nwith newline", "Text\\nwith newline"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := escapeICS(tt.input); got != tt.expected {
				t.Errorf("escapeICS(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFoldICS(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"short ascii", "SUMMARY:Test Event"},
		{"exactly 75 octets", "DESCRIPTION:" + strings.Repeat("a", 63)},
		{"long ascii", "DESCRIPTION:" + strings.Repeat("abcdefghij", 20)},
		{"long japanese", "DESCRIPTION:期間限定イベント「ぐだぐだ明治維新」開催\\nItems: " + strings.Repeat("ぐだぐだ煎餅\\, ", 12)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			folded := foldICS(tt.line)

			if unfold(folded) != tt.line {
				t.Errorf("unfolding does not restore the line:\n%q", folded)
			}
			for i, part := range strings.Split(folded, "\r\n") {
				if len(part) > maxLineOctets {
					t.Errorf("line %d is %d octets, limit %d", i, len(part), maxLineOctets)
				}
				if !utf8.ValidString(part) {
					t.Errorf("line %d splits a multi-byte character: %q", i, part)
				}
				if i > 0 && !strings.HasPrefix(part, " ") {
					t.Errorf("continuation line %d does not start with a space", i)
				}
			}
			if len(tt.line) <= maxLineOctets && folded != tt.line {
				t.Errorf("short line was folded: %q", folded)
			}
		})
	}
}

func TestGenerateICS_FoldsLongLines(t *testing.T) {
	items := make([]event.Item, 0, 10)
	for i := 1; i <= 10; i++ {
		items = append(items, event.Item{ID: i, Name: fmt.Sprintf("ぐだぐだアイテム%d", i)})
	}
	record := event.NewRecord("ぐだぐだ明治維新", "期間限定イベント「ぐだぐだ明治維新」開催", "https://news.fate-go.jp/2020/gudaguda/", false,
		1577847600, 1580482799, items)

	ics := GenerateICS([]*event.Record{record}, testNow)

	for _, line := range strings.Split(strings.TrimSuffix(ics, "\r\n"), "\r\n") {
		if len(line) > maxLineOctets {
			t.Errorf("line exceeds %d octets: %q", maxLineOctets, line)
		}
	}
	if !strings.Contains(unfold(ics), "ぐだぐだアイテム10") {
		t.Error("unfolded description lost the last item")
	}
}
