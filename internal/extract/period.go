package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/fgo-events/internal/event"
	"github.com/pfrederiksen/fgo-events/internal/logger"
	"golang.org/x/net/html"
)

// periodLabels locate the "event period" heading, first match wins
var periodLabels = []string{
	`span:contains("イベント開催期間")`,
	`span:contains("開催期間")`,
	`span.strong:contains("イベント開催")`,
	`p:contains("◆イベント開催期間◆")`,
}

// maxPeriodSteps bounds the walk from the label to the date text
const maxPeriodSteps = 8

// Period finds the open/close instants of the event described by a page
type Period struct {
	Overrides *Overrides
}

// NewPeriod creates a Period extractor backed by the given override table
func NewPeriod(overrides *Overrides) *Period {
	return &Period{Overrides: overrides}
}

// Extract returns the event period in epoch seconds, or (0, 0) if it cannot be found
func (p *Period) Extract(doc *goquery.Document, pageURL string) (openedAt, closedAt int64) {
	if o, ok := p.Overrides.Period(pageURL); ok {
		logger.Debug("Using period override", logger.Fields{"url": pageURL})
		return o.OpenedAt, o.ClosedAt
	}

	label := findPeriodLabel(doc)
	if label == nil {
		logger.Debug("Period label not found", logger.Fields{"url": pageURL})
		return 0, 0
	}

	text := periodText(label)
	openedAt, closedAt = event.ParsePeriodUnix(text)
	if openedAt == 0 {
		logger.Debug("Period text did not parse", logger.Fields{
			"url":  pageURL,
			"text": text,
		})
	}
	return openedAt, closedAt
}

// findPeriodLabel returns the innermost node matching the first label selector that hits
func findPeriodLabel(doc *goquery.Document) *html.Node {
	for _, selector := range periodLabels {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		for {
			inner := sel.Find(selector).First()
			if inner.Length() == 0 {
				break
			}
			sel = inner
		}
		return sel.Get(0)
	}
	return nil
}

// periodText walks forward from the label, skipping empty and "◆"-only nodes,
// and returns the text of the first node that carries content.
func periodText(label *html.Node) string {
	n := label
	for i := 0; i < maxPeriodSteps; i++ {
		n = following(n)
		if n == nil {
			return ""
		}
		text := strings.TrimSpace(nodeText(n))
		if text == "" || strings.Trim(text, "◆") == "" {
			continue
		}
		return text
	}
	return ""
}

// following returns the node after n in document order, not descending into n
func following(n *html.Node) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur.NextSibling != nil {
			return cur.NextSibling
		}
	}
	return nil
}

// nodeText concatenates the text nodes under n
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	if n.Type != html.ElementNode {
		return ""
	}

	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}
