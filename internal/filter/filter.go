// Package filter decides which news pages describe item-bearing events.
//
// Most pages on the news site are announcements, campaigns, maintenance notices and
// the like. A TitleFilter rejects them by keyword before any extraction runs.
// The package also recognizes revival (復刻) and light-version (ライト版) titles,
// which select a different name table during item resolution.
//
// Example usage:
//
//	f := filter.NewTitleFilter()
//	if keyword, excluded := f.Excludes(title); excluded {
//	    // skip the page
//	}
//	revival := filter.IsRevival(title)
package filter

import (
	"strings"
)

// DefaultBlocklist holds title keywords of pages that never carry event items
var DefaultBlocklist = []string{
	"召喚", "TIPS", "キャンペーン",
	"重要", "交換可能なアイテムについて",
	"サーヴァント強化クエスト", "【カルデア広報局より】",
	"プレゼント", "ログインボーナス", "ミステリーフェア",
	"【ご報告】", "につきまして", "について", "アンケート",
	"カルデアボーイズコレクション", "メンテナンス",
	"お知らせ", "出展情報", "お願い", "公開", "開幕", "端末",
	"対応", "ぐだテク", "マチ★アソビ", "Anniversary",
	"サウンドトラック", "開放", "記念", "ぐだぐだお得テクニック",
	"絆レベル上限開放", "投票", "発売中", "監獄塔", "曜日クエスト",
	"クラス別サーヴァント戦",
}

// revivalMarkers identify re-runs of earlier events
var revivalMarkers = []string{"復刻", "ライト版"}

// TitleFilter rejects pages by title keyword
type TitleFilter struct {
	Keywords []string
}

// NewTitleFilter creates a filter with the default blocklist
func NewTitleFilter() *TitleFilter {
	return &TitleFilter{
		Keywords: append([]string(nil), DefaultBlocklist...),
	}
}

// Excludes reports whether title contains a blocklisted keyword and returns the
// first keyword that matched
func (f *TitleFilter) Excludes(title string) (string, bool) {
	for _, keyword := range f.Keywords {
		if strings.Contains(title, keyword) {
			return keyword, true
		}
	}
	return "", false
}

// IsRevival reports whether title announces a revival or light version of an event
func IsRevival(title string) bool {
	for _, marker := range revivalMarkers {
		if strings.Contains(title, marker) {
			return true
		}
	}
	return false
}
