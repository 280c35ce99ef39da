// Package scraper crawls the FGO news site and builds event records.
//
// The scraper walks the news index from the newest page through the "previous page"
// pager, fetches every linked announcement, drops non-event pages by title, and runs
// the period and item mention extractors on the rest. Extracted names are resolved
// against the catalog index. A page that fails to fetch or resolve is logged and
// skipped; it never stops the walk.
package scraper
