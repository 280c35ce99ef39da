package event

import (
	"regexp"
	"strings"
	"time"
)

// JST is the fixed offset the news site publishes every event period in.
var JST = time.FixedZone("JST", 9*60*60)

// periodLayout matches "2020年1月1日12:00:00" once annotations are removed
const periodLayout = "2006年1月2日15:04:05"

var (
	// "<year>年<open>～<close>まで"
	periodPattern = regexp.MustCompile(`(?P<year>20\d\d)年(?P<open>.+)～(?P<close>.+)まで`)

	// Weekday and similar annotations such as "(水)"
	annotationPattern = regexp.MustCompile(`\([^()]*\)`)

	periodReplacer = strings.NewReplacer("（", "(", "）", ")", "：", ":")
)

// NormalizePeriodText converts full-width parentheses and colons to ASCII and
// removes all whitespace.
func NormalizePeriodText(text string) string {
	text = periodReplacer.Replace(text)
	return strings.Join(strings.Fields(text), "")
}

// ParsePeriod attempts to parse an event period sentence such as
// "2020年1月1日(水)12:00～1月31日(金)23:59まで" into open and close instants.
// The open time gets ":00" seconds and the close time ":59" seconds.
// Returns ok=false if the text does not follow the grammar.
func ParsePeriod(text string) (opened, closed time.Time, ok bool) {
	m := periodPattern.FindStringSubmatch(NormalizePeriodText(text))
	if m == nil {
		return time.Time{}, time.Time{}, false
	}

	year := m[periodPattern.SubexpIndex("year")]
	openPart := cleanPeriodPart(strings.ReplaceAll(m[periodPattern.SubexpIndex("open")], ")9:", ")09:"))
	closePart := cleanPeriodPart(m[periodPattern.SubexpIndex("close")])

	opened, err := time.ParseInLocation(periodLayout, year+"年"+openPart+":00", JST)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	closed, err = time.ParseInLocation(periodLayout, year+"年"+closePart+":59", JST)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	// The close part never carries its own year, so a December to January
	// period lands before its open time.
	if closed.Before(opened) {
		closed = closed.AddDate(1, 0, 0)
	}

	return opened, closed, true
}

// ParsePeriodUnix is ParsePeriod returning epoch seconds, (0, 0) on failure.
func ParsePeriodUnix(text string) (openedAt, closedAt int64) {
	opened, closed, ok := ParsePeriod(text)
	if !ok {
		return 0, 0
	}
	return opened.Unix(), closed.Unix()
}

func cleanPeriodPart(part string) string {
	part = annotationPattern.ReplaceAllString(part, "")
	return strings.ReplaceAll(part, "AM", "0")
}
