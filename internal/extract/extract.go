package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/fgo-events/internal/logger"
	"golang.org/x/text/unicode/norm"
)

// Extractor finds raw item names of one mention family in a page.
// Returned names are not yet resolved against the catalog.
type Extractor interface {
	Name() string
	Extract(doc *goquery.Document, pageURL string) []string
}

// NameChecker reports whether a string is a known catalog item name
type NameChecker interface {
	HasName(name string) bool
}

// Default returns the five mention extractors in the order they run on every page
func Default(names NameChecker, overrides *Overrides) []Extractor {
	return []Extractor{
		&Described{},
		NewExchange(names, overrides),
		&Point{},
		&Ticket{},
		&Dice{},
	}
}

// Rule is a named sentence template. The "items" group, or the first group
// when there is none, holds the captured text.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

func newRule(name, expr string) Rule {
	return Rule{Name: name, Pattern: regexp.MustCompile(expr)}
}

// Match applies the rule to text and returns the captured group
func (r Rule) Match(text string) (string, bool) {
	m := r.Pattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}

	i := r.Pattern.SubexpIndex("items")
	if i < 0 {
		if len(m) < 2 {
			return m[0], true
		}
		i = 1
	}
	return m[i], true
}

// firstMatch tries rules in order and returns the first hit
func firstMatch(rules []Rule, text string) (string, bool) {
	for _, r := range rules {
		if captured, ok := r.Match(text); ok {
			logger.Debug("Rule matched", logger.Fields{"rule": r.Name})
			return captured, true
		}
	}
	return "", false
}

var (
	bracketReplacer = strings.NewReplacer("｢", "「", "｣", "」")
	quotedPattern   = regexp.MustCompile(`「(.+?)」`)
	parenPattern    = regexp.MustCompile(`\([^()]*\)`)
)

// quotedNames returns every 「...」 delimited string in s. Half-width corner
// brackets are accepted.
func quotedNames(s string) []string {
	s = bracketReplacer.Replace(s)

	var names []string
	for _, m := range quotedPattern.FindAllStringSubmatch(s, -1) {
		names = append(names, m[1])
	}
	return names
}

// bracketedNames is quotedNames for captures whose outer brackets may have been
// consumed by the template, e.g. "A」「B".
func bracketedNames(s string) []string {
	s = bracketReplacer.Replace(s)
	if !strings.HasPrefix(s, "「") {
		s = "「" + s
	}
	if !strings.HasSuffix(s, "」") {
		s = s + "」"
	}
	return quotedNames(s)
}

// normalizeAll applies NFKC to every name
func normalizeAll(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, norm.NFKC.String(n))
	}
	return out
}

// texts returns the text of every node matching selector
func texts(doc *goquery.Document, selector string) []string {
	var out []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.Text())
	})
	return out
}

// without removes every occurrence of drop from names
func without(names []string, drop string) []string {
	out := names[:0]
	for _, n := range names {
		if n != drop {
			out = append(out, n)
		}
	}
	return out
}
