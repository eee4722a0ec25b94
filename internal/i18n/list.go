package i18n

import (
	"bytes"
	"encoding/json"
)

// List is a bilingual ordered collection such as tags or key features.
type List struct {
	EN []string `json:"en"`
	CN []string `json:"cn"`
}

// ListOf builds a List from per-item bilingual values. Each item falls back
// independently, so a tag missing its cn name still shows in Chinese listings.
func ListOf(items []Text) List {
	var l List
	for _, item := range items {
		if item.IsZero() {
			continue
		}
		l.EN = append(l.EN, item.Resolve(English))
		l.CN = append(l.CN, item.Resolve(Chinese))
	}
	return l
}

// Resolve returns the collection for a canonical language code, falling back
// to the other language when the preferred one is empty. Never nil.
func (l List) Resolve(lang string) []string {
	preferred, fallback := l.EN, l.CN
	if IsChinese(lang) {
		preferred, fallback = l.CN, l.EN
	}
	switch {
	case len(preferred) > 0:
		return append([]string{}, preferred...)
	case len(fallback) > 0:
		return append([]string{}, fallback...)
	default:
		return []string{}
	}
}

// Len returns the number of items in the longer variant.
func (l List) Len() int {
	if len(l.CN) > len(l.EN) {
		return len(l.CN)
	}
	return len(l.EN)
}

// UnmarshalJSON accepts an array of strings or bilingual objects, or an object
// of per-language arrays ({"en": [...], "cn": [...]}).
func (l *List) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*l = List{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '[' {
		var items []Text
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = ListOf(items)
		return nil
	}

	var raw map[string][]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	l.EN = raw["en"]
	l.CN = raw["cn"]
	if len(l.CN) == 0 {
		l.CN = raw["zh"]
	}
	return nil
}

// ParseList decodes a JSON column into a List. Malformed input yields an empty List.
func ParseList(data []byte) List {
	var l List
	if err := json.Unmarshal(data, &l); err != nil {
		return List{}
	}
	return l
}
