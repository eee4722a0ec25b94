package i18n

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Canonical language codes
const (
	English = "en"
	Chinese = "cn"
)

var aliases = map[string]string{
	"zh":      Chinese,
	"zh-cn":   Chinese,
	"chinese": Chinese,
	"english": English,
}

// Normalize maps a caller supplied language identifier to its canonical code.
// Unknown identifiers are returned lower-cased. An empty identifier means English.
func Normalize(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return English
	}
	if canonical, ok := aliases[lang]; ok {
		return canonical
	}
	return lang
}

// IsChinese reports whether a canonical code belongs to the Chinese family.
func IsChinese(lang string) bool {
	return strings.HasPrefix(lang, Chinese) || strings.HasPrefix(lang, "zh")
}

// TitleFromKey turns a stable key such as "image-generation" into a display
// name ("Image Generation") for entities that carry no translation.
func TitleFromKey(key string) string {
	if key == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(key, "-", " "))
}

// Slugify derives a URL key from an English label: lower-cased, with spaces
// and underscores turned into hyphens.
func Slugify(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	return strings.NewReplacer(" ", "-", "_", "-").Replace(label)
}
