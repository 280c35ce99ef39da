package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// eventPoint is the generic point currency, never a concrete item
const eventPoint = "イベントポイント"

var (
	pointBonusRule = newRule("point.ce_bonus",
		`イベント限定概念礼装.+イベント収集アイテム「(?P<items>.+)」(|それぞれ)の(|ドロップ)獲得(量|数)が(増加|アップ)します。`)

	// Checked line by line
	pointMilestoneRule = newRule("point.milestone",
		`^(?P<items>.+)の(|総)獲得量が一定量に到達する(と|ごとに)、(|獲得量に応じた)達成報酬を獲得できます。`)
)

// Point extracts point currencies: those boosted by limited craft essences and
// those whose cumulative total unlocks milestone rewards.
type Point struct{}

func (p *Point) Name() string { return "point" }

func (p *Point) Extract(doc *goquery.Document, pageURL string) []string {
	var names []string

	for _, text := range texts(doc, ".em01") {
		text = bracketReplacer.Replace(text)

		if strings.Contains(text, "装備することで") {
			if captured, ok := firstMatch([]Rule{pointBonusRule}, text); ok {
				names = append(names, bracketedNames(captured)...)
			}
		}

		for _, line := range strings.Split(text, "\n") {
			if captured, ok := firstMatch([]Rule{pointMilestoneRule}, strings.TrimSpace(line)); ok {
				names = append(names, bracketedNames(captured)...)
			}
		}
	}

	return without(normalizeAll(names), eventPoint)
}
