package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// diceHeader is the first header cell of the dice table
const diceHeader = "ダイスの種類"

// Dice extracts dice names from the second column of the dice table
type Dice struct{}

func (d *Dice) Name() string { return "dice" }

func (d *Dice) Extract(doc *goquery.Document, pageURL string) []string {
	var names []string

	doc.Find("table tbody").EachWithBreak(func(_ int, tbody *goquery.Selection) bool {
		found := false

		tbody.Find("tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
			if i == 0 {
				th := tr.Find("th").First()
				found = th.Length() > 0 && strings.TrimSpace(th.Text()) == diceHeader
				return found
			}

			td := tr.Find("td:nth-child(2)").First()
			if td.Length() == 0 {
				return false
			}
			if name := strings.TrimSpace(td.Text()); name != "" {
				names = append(names, name)
			}
			return true
		})

		// Only the first dice table is read
		return !found
	})

	return normalizeAll(names)
}
