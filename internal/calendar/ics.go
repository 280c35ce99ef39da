// Package calendar renders event periods as an iCalendar feed.
package calendar

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/pfrederiksen/fgo-events/internal/event"
)

// uidDomain scopes event UIDs to the news site
const uidDomain = "news.fate-go.jp"

// GenerateICS generates an iCalendar (.ics) document with one VEVENT per record.
// Records without a known period are left out.
func GenerateICS(records []*event.Record, now time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//FGO Events//fgo-events//JA\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("X-WR-TIMEZONE:Asia/Tokyo\r\n")

	for _, r := range records {
		if r.OpenedAt == 0 || r.ClosedAt == 0 {
			continue
		}
		writeEvent(&ics, r, now)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

// writeEvent writes one VEVENT block
func writeEvent(ics *strings.Builder, r *event.Record, now time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")
	writeProperty(ics, "UID", eventUID(r.URL)+"@"+uidDomain)
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(now)))

	// The close second is inclusive, DTEND is exclusive
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(time.Unix(r.OpenedAt, 0))))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(time.Unix(r.ClosedAt+1, 0))))

	summary := r.Name
	if summary == "" {
		summary = r.PageTitle
	}
	if r.Revival {
		summary = "[復刻] " + summary
	}
	writeProperty(ics, "SUMMARY", escapeICS(summary))

	description := r.PageTitle
	if len(r.Items) > 0 {
		names := make([]string, 0, len(r.Items))
		for _, item := range r.Items {
			names = append(names, item.Name)
		}
		description = fmt.Sprintf("%s\nItems: %s", description, strings.Join(names, ", "))
	}
	writeProperty(ics, "DESCRIPTION", escapeICS(description))

	if r.URL != "" {
		writeProperty(ics, "URL", r.URL)
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("TRANSP:TRANSPARENT\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// writeProperty writes one folded content line
func writeProperty(ics *strings.Builder, name, value string) {
	ics.WriteString(foldICS(name + ":" + value))
	ics.WriteString("\r\n")
}

// maxLineOctets is the content line limit of RFC 5545, excluding the CRLF
const maxLineOctets = 75

// foldICS breaks line into chunks of at most 75 octets joined by CRLF and a
// space. Multi-byte characters are never split.
func foldICS(line string) string {
	if len(line) <= maxLineOctets {
		return line
	}

	var b strings.Builder
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		// Continuation lines spend one octet on the leading space
		limit = maxLineOctets - 1
	}
	b.WriteString(line)

	return b.String()
}

// eventUID derives a stable identifier from the announcement URL path
func eventUID(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil || strings.Trim(u.Path, "/") == "" {
		return strings.NewReplacer("/", "-", ":", "-").Replace(pageURL)
	}
	return strings.ReplaceAll(strings.Trim(u.Path, "/"), "/", "-")
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
