// Package i18n translates user-facing strings. English and Arabic are built in;
// unknown keys fall back to the key itself.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported lists the built-in languages, default first.
var Supported = []language.Tag{language.English, language.Arabic}

var (
	builder = newCatalog()
	matcher = language.NewMatcher(Supported)
	known   = knownKeys()
)

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, e := range catalogEntries {
		_ = b.SetString(language.English, e.key, e.en)
		_ = b.SetString(language.Arabic, e.key, e.ar)
	}
	return b
}

func knownKeys() map[string]bool {
	out := make(map[string]bool, len(catalogEntries))
	for _, e := range catalogEntries {
		out[e.key] = true
	}
	return out
}

// Localizer formats messages for one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// New picks the closest supported language for code ("ar", "ar-EG", "en-US").
// Unknown or empty codes get English.
func New(code string) *Localizer {
	tag := language.English
	if code != "" {
		if parsed, err := language.Parse(code); err == nil {
			_, idx, conf := matcher.Match(parsed)
			if conf != language.No {
				tag = Supported[idx]
			}
		}
	}
	return &Localizer{tag: tag, printer: message.NewPrinter(tag, message.Catalog(builder))}
}

// Language is the base language code, e.g. "en" or "ar".
func (l *Localizer) Language() string {
	base, _ := l.tag.Base()
	return base.String()
}

// RTL reports whether the language is written right to left.
func (l *Localizer) RTL() bool {
	return l.tag == language.Arabic
}

// T formats the message registered under key with args.
func (l *Localizer) T(key string, args ...interface{}) string {
	if !known[key] {
		return key
	}
	return l.printer.Sprintf(key, args...)
}
