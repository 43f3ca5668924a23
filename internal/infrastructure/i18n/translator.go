// Package i18n provides domain-scoped string translation backed by
// golang.org/x/text message catalogs.
package i18n

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// domain -> language -> message -> translation
type fileFormat map[string]map[string]map[string]string

// Translator looks up translated labels for a single active language.
type Translator struct {
	mu      sync.RWMutex
	builder *catalog.Builder
	entries map[string]map[string]struct{} // language -> catalog keys
	lang    string
	printer *message.Printer
}

// NewTranslator returns a translator with an empty catalog. Every lookup
// returns its input until translations are loaded.
func NewTranslator(lang string) *Translator {
	t := &Translator{
		builder: catalog.NewBuilder(),
		entries: make(map[string]map[string]struct{}),
	}
	t.SetLanguage(lang)
	return t
}

// LoadFile loads a YAML translations file. A missing file is not an error.
func (t *Translator) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read translations file %s: %w", path, err)
	}
	return t.LoadYAML(data)
}

// LoadYAML adds every translation found in data to the catalog.
func (t *Translator) LoadYAML(data []byte) error {
	var parsed fileFormat
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("failed to parse translations: %w", err)
	}

	for domain, languages := range parsed {
		for lang, messages := range languages {
			for msg, translated := range messages {
				if err := t.Set(lang, domain, msg, translated); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// Set adds one translation.
func (t *Translator) Set(lang, domain, msg, translated string) error {
	tag, err := language.Parse(lang)
	if err != nil {
		return fmt.Errorf("invalid language %q: %w", lang, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	key := catalogKey(domain, msg)
	// Catalog strings are format strings; translations are literal text.
	if err := t.builder.SetString(tag, key, strings.ReplaceAll(translated, "%", "%%")); err != nil {
		return fmt.Errorf("failed to set translation %s %s %q: %w", domain, lang, msg, err)
	}

	name := tag.String()
	if t.entries[name] == nil {
		t.entries[name] = make(map[string]struct{})
	}
	t.entries[name][key] = struct{}{}
	t.resolvePrinter()
	return nil
}

// SetLanguage changes the active language.
func (t *Translator) SetLanguage(lang string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lang = lang
	t.resolvePrinter()
}

// Language returns the active language.
func (t *Translator) Language() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lang
}

// Translate returns msg translated for domain, or msg itself when the active
// language has no entry for it.
func (t *Translator) Translate(msg, domain string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.printer == nil {
		return msg
	}
	key := catalogKey(domain, msg)
	if _, ok := t.entries[t.activeTag()][key]; !ok {
		return msg
	}
	return t.printer.Sprintf(key)
}

// resolvePrinter must be called with mu held.
func (t *Translator) resolvePrinter() {
	tag := t.activeTag()
	if tag == "" {
		t.printer = nil
		return
	}
	t.printer = message.NewPrinter(language.MustParse(tag), message.Catalog(t.builder))
}

// activeTag returns the catalog language serving the active language: an
// exact match, else its base language, else "".
func (t *Translator) activeTag() string {
	tag, err := language.Parse(t.lang)
	if err != nil {
		return ""
	}
	if _, ok := t.entries[tag.String()]; ok {
		return tag.String()
	}
	base, _ := tag.Base()
	if _, ok := t.entries[base.String()]; ok {
		return base.String()
	}
	return ""
}

func catalogKey(domain, msg string) string {
	return domain + "\x04" + msg
}
