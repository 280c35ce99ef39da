package extract

import (
	"github.com/PuerkitoBio/goquery"
)

// describedRules match "equipping X increases the drop count of event item 「A」「B」".
// The pickup wording is tried before the bare sentence.
var describedRules = []Rule{
	newRule("described.equip",
		`(聖晶石召喚|ピックアップ).+を装備することで(|、)(|本)イベント(|収集|専用)アイテム(?P<items>.+)(|それぞれ)の(|ドロップ)獲得数が(増加|アップ)します。`),
	newRule("described.plain",
		`(|本)イベント(|収集|専用)アイテム(?P<items>.+)(|それぞれ)の(|ドロップ)獲得数が(増加|アップ)します。`),
}

// Described extracts items whose drop count is boosted by event craft essences
type Described struct{}

func (d *Described) Name() string { return "described" }

func (d *Described) Extract(doc *goquery.Document, pageURL string) []string {
	var names []string
	for _, text := range texts(doc, ".em01") {
		captured, ok := firstMatch(describedRules, bracketReplacer.Replace(text))
		if !ok {
			continue
		}
		names = append(names, quotedNames(captured)...)
	}
	return normalizeAll(names)
}
