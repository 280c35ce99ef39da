package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/fgo-events/internal/logger"
	"golang.org/x/text/unicode/norm"
)

// exchangeSuffixes follow the item name in shop section headings,
// e.g. "ぐん肥で交換可能なアイテム".
var exchangeSuffixes = []string{"で交換可能なアイテム", "で獲得可能なアイテム"}

// damagePoint headings list raid rewards, not an exchange currency
const damagePoint = "ダメージポイント"

// Exchange extracts the currencies used in event exchange shops
type Exchange struct {
	Names     NameChecker
	Overrides *Overrides
}

// NewExchange creates an Exchange extractor. names is used to avoid splitting
// item names that themselves contain a middle dot.
func NewExchange(names NameChecker, overrides *Overrides) *Exchange {
	return &Exchange{Names: names, Overrides: overrides}
}

func (e *Exchange) Name() string { return "exchange" }

func (e *Exchange) Extract(doc *goquery.Document, pageURL string) []string {
	if items, ok := e.Overrides.Exchange(pageURL); ok {
		logger.Debug("Using exchange override", logger.Fields{"url": pageURL})
		return append([]string(nil), items...)
	}

	headings := texts(doc, "span.strong")
	if len(headings) == 0 {
		headings = texts(doc, "strong")
	}

	var names []string
	for _, heading := range headings {
		if !hasExchangeSuffix(heading) {
			continue
		}
		names = append(names, e.splitHeading(heading)...)
	}
	return names
}

// splitHeading turns one shop heading into item names
func (e *Exchange) splitHeading(heading string) []string {
	for _, suffix := range exchangeSuffixes {
		heading = strings.ReplaceAll(heading, suffix, "")
	}
	heading = norm.NFKC.String(heading)
	heading = strings.TrimSpace(strings.ReplaceAll(heading, "◆", ""))

	if heading == "" || heading == damagePoint {
		return nil
	}

	var parts []string
	switch {
	case strings.Contains(heading, "、"):
		parts = strings.Split(heading, "、")
	case strings.Contains(heading, "・") && !e.isName(heading):
		parts = strings.Split(heading, "・")
	default:
		parts = []string{heading}
	}

	names := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if !e.isName(part) {
			part = strings.TrimSpace(parenPattern.ReplaceAllString(part, ""))
		}
		if part == "" || part == damagePoint {
			continue
		}
		names = append(names, part)
	}
	return names
}

func (e *Exchange) isName(s string) bool {
	return e.Names != nil && e.Names.HasName(s)
}

func hasExchangeSuffix(s string) bool {
	for _, suffix := range exchangeSuffixes {
		if strings.Contains(s, suffix) {
			return true
		}
	}
	return false
}
