package event

import "sort"

// Item is a quest material resolved against the item catalog
type Item struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	EnglishName string `json:"name_eng"` // Empty when the NA catalog has no entry
	Type        string `json:"type"`
}

// Record represents one event announcement page
type Record struct {
	Name      string `json:"name"`
	PageTitle string `json:"page_title"`
	URL       string `json:"url"`
	Revival   bool   `json:"revival"`
	OpenedAt  int64  `json:"openedAt"` // Epoch seconds, 0 when unknown
	ClosedAt  int64  `json:"closedAt"` // Epoch seconds, 0 when unknown
	Items     []Item `json:"item"`
}

// NewRecord creates a Record, copying items so that the record owns a sorted,
// id-unique item list. A nil item list becomes an empty one.
func NewRecord(name, pageTitle, url string, revival bool, openedAt, closedAt int64, items []Item) *Record {
	return &Record{
		Name:      name,
		PageTitle: pageTitle,
		URL:       url,
		Revival:   revival,
		OpenedAt:  openedAt,
		ClosedAt:  closedAt,
		Items:     SortItems(items),
	}
}

// SortItems returns a copy of items sorted ascending by ID with duplicate IDs removed.
// The first occurrence of an ID wins.
func SortItems(items []Item) []Item {
	seen := make(map[int]bool, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		out = append(out, it)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

// Duration returns the length of the event period in seconds.
// Returns 0 if either boundary is unknown.
func (r *Record) Duration() int64 {
	if r.OpenedAt == 0 || r.ClosedAt == 0 {
		return 0
	}
	return r.ClosedAt - r.OpenedAt
}
