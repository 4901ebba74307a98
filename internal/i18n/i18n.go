// Package i18n holds the UI string table for every supported language.
package i18n

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/nivara-backend/internal/domain"
)

//go:embed translations.yaml
var translationsYAML []byte

// Table maps language to key to display string.
type Table map[domain.Language]map[string]string

// Parse decodes a YAML string table and checks that only known languages
// are present.
func Parse(data []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode translations: %w", err)
	}
	for lang := range t {
		if !lang.IsValid() {
			return nil, fmt.Errorf("decode translations: unknown language %q", lang)
		}
	}
	return t, nil
}

// Default returns the built-in table. It panics if the embedded file is
// malformed, which is a build defect.
func Default() Table {
	t, err := Parse(translationsYAML)
	if err != nil {
		panic(err)
	}
	return t
}

// Translate looks key up for lang. A missing or empty entry yields the key
// itself, so callers never render a blank label.
func (t Table) Translate(lang domain.Language, key string) string {
	if v := t[lang][key]; v != "" {
		return v
	}
	return key
}

// Keys returns the number of entries for lang.
func (t Table) Keys(lang domain.Language) int {
	return len(t[lang])
}
