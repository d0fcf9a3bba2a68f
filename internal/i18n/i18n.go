// Package i18n serves the app's user-facing strings in the supported
// locales, with English as the fallback.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"

	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

const fallbackLocale = "en"

// Bundle holds every embedded locale. Construct once with NewBundle and
// hand out Translators per user locale.
type Bundle struct {
	tags     []language.Tag
	matcher  language.Matcher
	messages map[string]map[string]string
}

func NewBundle() (*Bundle, error) {
	entries, err := fs.ReadDir(localeFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	b := &Bundle{messages: make(map[string]map[string]string)}
	// English first so the matcher falls back to it.
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	for i, n := range names {
		if n == fallbackLocale && i != 0 {
			names[0], names[i] = names[i], names[0]
		}
	}

	for _, name := range names {
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("locale %s: %w", name, err)
		}
		raw, err := localeFS.ReadFile("locales/" + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("locale %s: %w", name, err)
		}
		msgs := map[string]string{}
		if err := json.Unmarshal(raw, &msgs); err != nil {
			return nil, fmt.Errorf("locale %s: %w", name, err)
		}
		b.tags = append(b.tags, tag)
		b.messages[tag.String()] = msgs
	}

	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Locales lists the supported locale names.
func (b *Bundle) Locales() []string {
	out := make([]string, len(b.tags))
	for i, t := range b.tags {
		out[i] = t.String()
	}
	return out
}

// Translator resolves keys for one locale. Unknown or unparseable locales
// match to the closest supported one, ultimately English.
func (b *Bundle) Translator(locale string) *Translator {
	desired, _ := language.Parse(locale)
	_, idx, _ := b.matcher.Match(desired)
	return &Translator{bundle: b, tag: b.tags[idx]}
}

type Translator struct {
	bundle *Bundle
	tag    language.Tag
}

// Locale is the resolved locale this translator serves.
func (t *Translator) Locale() string {
	return t.tag.String()
}

// T returns the message for key, formatted with args when given. Missing
// keys fall back to English, then to the key itself so a gap is visible
// rather than silent.
func (t *Translator) T(key string, args ...any) string {
	msg, ok := t.bundle.messages[t.tag.String()][key]
	if !ok {
		msg, ok = t.bundle.messages[fallbackLocale][key]
	}
	if !ok {
		return key
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
