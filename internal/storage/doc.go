// Package storage persists the scraped event records as a JSON document.
//
// The output file is a single JSON array of event records in the order the news
// site lists them. It is rewritten in full on every run. Non-ASCII text is written
// as literal UTF-8 and HTML characters in titles are not escaped.
package storage
