package extract

import (
	"github.com/PuerkitoBio/goquery"
)

var (
	// Sentence announcing that prizes are drawn by lottery
	ticketLotteryGate = newRule("ticket.lottery_gate", `との交換は(|、)抽選で(おこな|行)われます。`)

	ticketLotteryRule = newRule("ticket.lottery",
		`イベントクエストで(?P<items>.+)を集め、.+と交換しましょう！`)
	ticketPresentRule = newRule("ticket.present",
		`イベントクエストで(?P<items>.+)を集め(|て)、.+からプレゼントを(もら|貰)いましょう！`)
)

// Ticket extracts lottery tickets and gift-exchange items collected in event quests
type Ticket struct{}

func (t *Ticket) Name() string { return "ticket" }

func (t *Ticket) Extract(doc *goquery.Document, pageURL string) []string {
	var names []string

	for _, text := range texts(doc, ".em01") {
		if _, ok := ticketLotteryGate.Match(text); !ok {
			continue
		}
		if captured, ok := firstMatch([]Rule{ticketLotteryRule}, text); ok {
			names = append(names, bracketedNames(captured)...)
		}
	}

	for _, text := range texts(doc, "p") {
		if captured, ok := firstMatch([]Rule{ticketPresentRule}, text); ok {
			names = append(names, bracketedNames(captured)...)
		}
	}

	return normalizeAll(names)
}
