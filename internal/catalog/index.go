package catalog

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Entry is a catalog element as published by the export API.
// Only the fields needed for reconciliation are decoded.
type Entry struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Index holds the lookup tables built from the catalogs
type Index struct {
	idToName      map[int]string
	nameToIDFirst map[string]int // duplicate names resolve to the first-listed entry
	nameToIDLast  map[string]int // duplicate names resolve to the last-listed entry
	idToEnglish   map[int]string
	idToType      map[int]string
	equipNames    map[string]bool
}

// NewIndex builds an Index from the JP item list, the JP equipment list and the NA item list.
// Every ID in items is present in all ID-keyed tables; IDs missing from itemsEN get an
// empty English name.
func NewIndex(items, equips, itemsEN []Entry) *Index {
	idx := &Index{
		idToName:      make(map[int]string, len(items)),
		nameToIDFirst: make(map[string]int, len(items)),
		nameToIDLast:  make(map[string]int, len(items)),
		idToEnglish:   make(map[int]string, len(items)),
		idToType:      make(map[int]string, len(items)),
		equipNames:    make(map[string]bool, len(equips)),
	}

	english := make(map[int]string, len(itemsEN))
	for _, e := range itemsEN {
		english[e.ID] = e.Name
	}

	for _, e := range items {
		name := Normalize(e.Name)
		idx.idToName[e.ID] = name
		idx.nameToIDLast[name] = e.ID
		idx.idToEnglish[e.ID] = english[e.ID]
		idx.idToType[e.ID] = e.Type
	}

	// Walking backwards lets the first-listed entry overwrite later duplicates
	for i := len(items) - 1; i >= 0; i-- {
		idx.nameToIDFirst[Normalize(items[i].Name)] = items[i].ID
	}

	for _, e := range equips {
		idx.equipNames[Normalize(e.Name)] = true
	}

	return idx
}

// Normalize applies Unicode compatibility normalization (NFKC) and trims whitespace
func Normalize(name string) string {
	return strings.TrimSpace(norm.NFKC.String(name))
}

// Lookup returns the ID registered for name. Revival events use the last-listed entry
// for duplicated names, original events the first-listed one.
func (idx *Index) Lookup(name string, revival bool) (int, bool) {
	table := idx.nameToIDFirst
	if revival {
		table = idx.nameToIDLast
	}
	id, ok := table[name]
	return id, ok
}

// HasName reports whether name is a known item name
func (idx *Index) HasName(name string) bool {
	_, ok := idx.nameToIDFirst[name]
	return ok
}

// IsEquip reports whether name belongs to the craft essence catalog
func (idx *Index) IsEquip(name string) bool {
	return idx.equipNames[name]
}

// Name returns the normalized JP name for id
func (idx *Index) Name(id int) string {
	return idx.idToName[id]
}

// EnglishName returns the NA name for id, or "" if the NA catalog lacks it
func (idx *Index) EnglishName(id int) string {
	return idx.idToEnglish[id]
}

// Type returns the catalog category for id
func (idx *Index) Type(id int) string {
	return idx.idToType[id]
}

// Len returns the number of items in the index
func (idx *Index) Len() int {
	return len(idx.idToName)
}

// EquipLen returns the number of craft essence names
func (idx *Index) EquipLen() int {
	return len(idx.equipNames)
}
