package i18n

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Text is a bilingual value. Missing variants are empty strings.
type Text struct {
	EN string `json:"en"`
	CN string `json:"cn"`
}

// Plain wraps an untranslated string.
func Plain(s string) Text {
	return Text{EN: s}
}

// Resolve picks the variant for a canonical language code: Chinese callers get
// cn then en, everyone else en then cn. Never fails; an empty Text yields "".
func (t Text) Resolve(lang string) string {
	if IsChinese(lang) {
		return firstNonEmpty(t.CN, t.EN)
	}
	return firstNonEmpty(t.EN, t.CN)
}

// IsZero reports whether no variant is present.
func (t Text) IsZero() bool {
	return t.EN == "" && t.CN == ""
}

// UnmarshalJSON accepts either an object keyed by language ("zh" is read as
// "cn") or a bare string, which is kept as the English variant.
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*t = Text{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		t.EN = s
		return nil
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		t.EN = scalarString(raw["en"])
		t.CN = firstNonEmpty(scalarString(raw["cn"]), scalarString(raw["zh"]))
		return nil
	default:
		// numbers and booleans are rendered as their literal text
		t.EN = string(data)
		return nil
	}
}

// ParseText decodes a JSON column into a Text. Malformed input yields an empty Text.
func ParseText(data []byte) Text {
	var t Text
	if err := json.Unmarshal(data, &t); err != nil {
		return Text{}
	}
	return t
}

func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
