// Package catalog fetches the Atlas Academy item catalogs and resolves item names.
//
// The Index holds read-only lookup tables built once at startup from the JP item list,
// the JP craft essence list and the NA item list. Two name-to-ID tables are kept because
// the JP list contains duplicate names: original events use the first-listed ID and
// revival events use the last-listed one.
package catalog
