package scraper

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/fgo-events/internal/catalog"
	"github.com/pfrederiksen/fgo-events/internal/event"
	"github.com/pfrederiksen/fgo-events/internal/extract"
	"github.com/pfrederiksen/fgo-events/internal/filter"
	"github.com/pfrederiksen/fgo-events/internal/logger"
)

const (
	NewsURL     = "https://news.fate-go.jp"
	TitleSuffix = "  |  Fate/Grand Order 公式サイト"
	UserAgent   = "fgo-events/1.0 (github.com/pfrederiksen/fgo-events)"
	Timeout     = 30 * time.Second
)

const (
	newsLinkSelector = "ul.list_news li a"
	prevPageSelector = "div.pager p.prev a"
)

// eventNamePattern captures the event name between corner brackets
var eventNamePattern = regexp.MustCompile(`[｢「](.+)[｣」]`)

// Scraper handles fetching and parsing FGO news pages
type Scraper struct {
	client     *http.Client
	url        string
	index      *catalog.Index
	period     *extract.Period
	extractors []extract.Extractor
	filter     *filter.TitleFilter
}

// New creates a new Scraper that resolves items against index
func New(index *catalog.Index) *Scraper {
	overrides := extract.DefaultOverrides()

	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		url:        NewsURL,
		index:      index,
		period:     extract.NewPeriod(overrides),
		extractors: extract.Default(index, overrides),
		filter:     filter.NewTitleFilter(),
	}
}

// FetchEvents walks the whole news archive starting at the newest index page
func (s *Scraper) FetchEvents() ([]*event.Record, error) {
	return s.Walk(s.url)
}

// Walk visits startURL and every older index page reachable through the pager,
// parsing each linked announcement. Records are returned in site order: page by
// page from newest to oldest, links in document order within a page.
//
// Failing to fetch startURL is an error. Failing to fetch a later index page ends
// the walk and returns what was collected.
func (s *Scraper) Walk(startURL string) ([]*event.Record, error) {
	records := make([]*event.Record, 0)
	visited := make(map[string]bool)

	for next := startURL; next != "" && !visited[next]; {
		visited[next] = true

		doc, err := s.fetchDocument(next)
		if err != nil {
			if next == startURL {
				return nil, fmt.Errorf("fetching index page: %w", err)
			}
			logger.Error("Index page failed, stopping pagination", logger.Fields{"url": next}, err)
			break
		}
		logger.IncrCounter("index.pages")
		logger.Info("Walking index page", logger.Fields{"url": next})

		records = append(records, s.parseIndex(doc, next)...)
		next = s.prevPage(doc, next)
	}

	return records, nil
}

// parseIndex parses every announcement linked from one index page
func (s *Scraper) parseIndex(doc *goquery.Document, indexURL string) []*event.Record {
	var records []*event.Record

	doc.Find(newsLinkSelector).Each(func(_ int, a *goquery.Selection) {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}

		pageURL, err := resolveURL(indexURL, href)
		if err != nil {
			logger.Warn("Skipping bad link", logger.Fields{"href": href, "index": indexURL})
			return
		}

		record, err := s.ParsePage(pageURL)
		if err != nil {
			logger.IncrCounter("pages.failed")
			logger.Error("Page skipped", logger.Fields{"url": pageURL}, err)
			return
		}
		if record == nil {
			return
		}

		logger.IncrCounter("pages.parsed")
		records = append(records, record)
	})

	return records
}

// prevPage returns the absolute URL of the older index page, or "" if there is none
func (s *Scraper) prevPage(doc *goquery.Document, indexURL string) string {
	href, ok := doc.Find(prevPageSelector).First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return ""
	}

	prev, err := resolveURL(indexURL, href)
	if err != nil {
		logger.Warn("Bad pager link", logger.Fields{"href": href, "index": indexURL})
		return ""
	}
	return prev
}

// ParsePage fetches one announcement and builds its record.
// Returns nil, nil for pages excluded by title.
func (s *Scraper) ParsePage(pageURL string) (*event.Record, error) {
	doc, err := s.fetchDocument(pageURL)
	if err != nil {
		return nil, err
	}
	return s.parsePage(doc, pageURL)
}

// parsePage extracts a record from a parsed announcement page
func (s *Scraper) parsePage(doc *goquery.Document, pageURL string) (*event.Record, error) {
	pageTitle := strings.TrimSpace(strings.ReplaceAll(doc.Find("title").First().Text(), TitleSuffix, ""))

	if keyword, excluded := s.filter.Excludes(pageTitle); excluded {
		logger.IncrCounter("pages.excluded")
		logger.Debug("Page excluded", logger.Fields{
			"url":     pageURL,
			"title":   pageTitle,
			"keyword": keyword,
		})
		return nil, nil
	}

	revival := filter.IsRevival(pageTitle)
	openedAt, closedAt := s.period.Extract(doc, pageURL)

	items, err := catalog.Resolve(s.index, s.mentions(doc, pageURL), revival)
	if err != nil {
		return nil, fmt.Errorf("resolving items: %w", err)
	}

	record := event.NewRecord(eventName(doc, pageTitle), pageTitle, pageURL, revival, openedAt, closedAt, items)

	logger.Info("Parsed page", logger.Fields{
		"url":     pageURL,
		"name":    record.Name,
		"revival": revival,
		"items":   len(record.Items),
	})

	return record, nil
}

// mentions runs every extractor and returns the union of their names
func (s *Scraper) mentions(doc *goquery.Document, pageURL string) []string {
	seen := make(map[string]bool)
	var names []string

	for _, e := range s.extractors {
		found := e.Extract(doc, pageURL)
		if len(found) > 0 {
			logger.Debug("Extractor found names", logger.Fields{
				"extractor": e.Name(),
				"url":       pageURL,
				"names":     found,
			})
		}
		for _, name := range found {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	sort.Strings(names)
	return names
}

// eventName extracts the bracketed event name from the page heading,
// falling back to the page title
func eventName(doc *goquery.Document, pageTitle string) string {
	text := pageTitle
	if heading := doc.Find("div.title").First(); heading.Length() > 0 {
		text = heading.Text()
	}

	if m := eventNamePattern.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// fetchDocument downloads and parses one HTML page
func (s *Scraper) fetchDocument(pageURL string) (*goquery.Document, error) {
	start := time.Now()

	req, err := http.NewRequest("GET", pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := parseDocument(resp.Body)
	if err != nil {
		return nil, err
	}

	logger.RecordTiming("page.fetch", time.Since(start))
	return doc, nil
}

// parseDocument parses HTML
func parseDocument(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}

// resolveURL resolves href against the page it appeared on
func resolveURL(base, href string) (string, error) {
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", fmt.Errorf("parsing link: %w", err)
	}
	return b.ResolveReference(ref).String(), nil
}
