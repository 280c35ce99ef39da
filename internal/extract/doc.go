// Package extract locates event periods and item mentions in FGO news pages.
//
// Each item mention family (described items, exchange shop items, point items,
// lottery ticket items, dice items) is an Extractor. Sentence templates are named
// Rules tried in a fixed order, so a new site wording is added as a new Rule.
// Pages the rules cannot handle are covered by the URL override tables embedded
// from overrides.yaml, which are consulted before any rule runs.
//
// Extractors never fail: a page without the expected structure yields no names.
package extract
