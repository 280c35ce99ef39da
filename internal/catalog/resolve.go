package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pfrederiksen/fgo-events/internal/event"
)

// ErrUnknownName is returned when an extracted name has no catalog entry.
// It means an extraction rule produced something that is not an item name.
var ErrUnknownName = errors.New("unknown item name")

// excludedNames are mentioned in event text but are not quest materials
var excludedNames = map[string]bool{
	"Eリアクター":  true,
	"予備リアクター": true,
	"日輪扇子":    true,
}

// spellingFixes maps historical spellings on the news site to catalog spellings
var spellingFixes = strings.NewReplacer("力のおにぎり", "ちからのおにぎり")

// Resolve converts raw extracted names into catalog items sorted by ID.
// Craft essence names and the static exclusion list are dropped. An unresolvable
// name fails the whole call with an error wrapping ErrUnknownName.
func Resolve(idx *Index, raw []string, revival bool) ([]event.Item, error) {
	items := make([]event.Item, 0, len(raw))

	for _, r := range raw {
		name := Normalize(spellingFixes.Replace(r))
		if name == "" || idx.IsEquip(name) || excludedNames[name] {
			continue
		}

		id, ok := idx.Lookup(name, revival)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
		}

		items = append(items, event.Item{
			ID:          id,
			Name:        idx.Name(id),
			EnglishName: idx.EnglishName(id),
			Type:        idx.Type(id),
		})
	}

	return event.SortItems(items), nil
}
